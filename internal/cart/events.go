package cart

import "github.com/angelmondragon/storefront-cart/pkg/enums"

// Event describes one observable outcome of a cart transition.
type Event struct {
	Kind     enums.CartEventKind
	ItemID   string
	Title    string
	Quantity int
	// Requested and Limit are only set on stock limit events.
	Requested int
	Limit     int
}
