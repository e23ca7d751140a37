package enums

import (
	"fmt"
	"strings"
)

// CartItemKind separates licensable designs from physical products.
type CartItemKind string

const (
	CartItemKindDesign  CartItemKind = "design"
	CartItemKindProduct CartItemKind = "product"
)

var validCartItemKinds = []CartItemKind{
	CartItemKindDesign,
	CartItemKindProduct,
}

// String implements fmt.Stringer.
func (k CartItemKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known CartItemKind.
func (k CartItemKind) IsValid() bool {
	for _, candidate := range validCartItemKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseCartItemKind converts raw input into a CartItemKind. Matching is case-insensitive.
func ParseCartItemKind(value string) (CartItemKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validCartItemKinds {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart item kind %q", value)
}
