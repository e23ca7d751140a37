package enums

import "fmt"

// CartEventKind enumerates the notifications a cart mutation can emit.
type CartEventKind string

const (
	CartEventAdded      CartEventKind = "added"
	CartEventUpdated    CartEventKind = "updated"
	CartEventRemoved    CartEventKind = "removed"
	CartEventCleared    CartEventKind = "cleared"
	CartEventStockLimit CartEventKind = "stock_limit"
)

var validCartEventKinds = []CartEventKind{
	CartEventAdded,
	CartEventUpdated,
	CartEventRemoved,
	CartEventCleared,
	CartEventStockLimit,
}

// String implements fmt.Stringer.
func (c CartEventKind) String() string {
	return string(c)
}

// IsValid reports whether the value is known.
func (c CartEventKind) IsValid() bool {
	for _, candidate := range validCartEventKinds {
		if candidate == c {
			return true
		}
	}
	return false
}

// CartEventKinds returns every known kind, in declaration order.
func CartEventKinds() []CartEventKind {
	out := make([]CartEventKind, len(validCartEventKinds))
	copy(out, validCartEventKinds)
	return out
}

// ParseCartEventKind converts raw input into a CartEventKind.
func ParseCartEventKind(value string) (CartEventKind, error) {
	for _, candidate := range validCartEventKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart event kind %q", value)
}
