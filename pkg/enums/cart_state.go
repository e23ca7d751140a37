package enums

import "fmt"

// CartState is the coarse state used to pick between checkout affordances and the empty view.
type CartState string

const (
	CartStateEmpty    CartState = "empty"
	CartStateNonEmpty CartState = "non_empty"
)

var validCartStates = []CartState{
	CartStateEmpty,
	CartStateNonEmpty,
}

// String implements fmt.Stringer.
func (c CartState) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartState.
func (c CartState) IsValid() bool {
	for _, candidate := range validCartStates {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCartState converts raw input into a CartState.
func ParseCartState(value string) (CartState, error) {
	for _, candidate := range validCartStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart state %q", value)
}
