package cart

import (
	"github.com/angelmondragon/storefront-cart/pkg/enums"
	"github.com/shopspring/decimal"
)

// Cart is an immutable list of line items. Transitions return a new Cart plus
// the events they produced and never touch storage or notifiers.
type Cart struct {
	items []LineItem
}

// New builds a cart from the given items.
func New(items ...LineItem) Cart {
	return Cart{items: cloneItems(items)}
}

// Items returns a copy of the line items in insertion order.
func (c Cart) Items() []LineItem {
	return cloneItems(c.items)
}

func (c Cart) Len() int {
	return len(c.items)
}

func (c Cart) State() enums.CartState {
	if len(c.items) == 0 {
		return enums.CartStateEmpty
	}
	return enums.CartStateNonEmpty
}

func (c Cart) TotalItemCount() int {
	return TotalItemCount(c.items)
}

func (c Cart) TotalAmount() decimal.Decimal {
	return TotalAmount(c.items)
}

// Find returns the line item with the given id.
func (c Cart) Find(id string) (LineItem, bool) {
	if idx := c.indexOf(id); idx >= 0 {
		return c.items[idx].clone(), true
	}
	return LineItem{}, false
}

// Add appends a line item or, for a product variant already in the cart,
// increases its quantity. Designs always get a new line item.
func (c Cart) Add(draft ItemDraft, quantity int, newID IDFunc) (Cart, []Event, error) {
	if quantity < 1 {
		return c, nil, invalidItem("quantity must be at least 1")
	}
	if err := draft.Validate(); err != nil {
		return c, nil, err
	}
	if newID == nil {
		newID = NewLineItemID
	}

	limit, limited := draft.StockLimit()

	if draft.Kind() == enums.CartItemKindProduct {
		for idx, existing := range c.items {
			if !existing.matchesVariant(draft) {
				continue
			}
			requested := existing.Quantity + quantity
			if limited && requested > limit {
				return c, []Event{stockLimitEvent(existing.ID, existing.Title, requested, limit)}, stockLimitError(existing.ID, requested, limit)
			}
			items := cloneItems(c.items)
			merged := items[idx]
			merged.Quantity = requested
			if limited {
				product, _ := merged.Product()
				product.StockLimit = &limit
				merged.Variant = product
			}
			items[idx] = merged
			return Cart{items: items}, []Event{{
				Kind:     enums.CartEventUpdated,
				ItemID:   merged.ID,
				Title:    merged.Title,
				Quantity: merged.Quantity,
			}}, nil
		}
	}

	if limited && quantity > limit {
		return c, []Event{stockLimitEvent("", draft.Title, quantity, limit)}, stockLimitError("", quantity, limit)
	}

	item := LineItem{
		ItemDraft: draft.clone(),
		ID:        newID(),
		Quantity:  quantity,
	}
	items := append(cloneItems(c.items), item)
	return Cart{items: items}, []Event{{
		Kind:     enums.CartEventAdded,
		ItemID:   item.ID,
		Title:    item.Title,
		Quantity: item.Quantity,
	}}, nil
}

// Remove drops the line item with the given id. Unknown ids are a no-op.
func (c Cart) Remove(id string) (Cart, []Event) {
	idx := c.indexOf(id)
	if idx < 0 {
		return c, nil
	}
	removed := c.items[idx]
	items := make([]LineItem, 0, len(c.items)-1)
	items = append(items, cloneItems(c.items[:idx])...)
	items = append(items, cloneItems(c.items[idx+1:])...)
	return Cart{items: items}, []Event{{
		Kind:   enums.CartEventRemoved,
		ItemID: removed.ID,
		Title:  removed.Title,
	}}
}

// UpdateQuantity sets the quantity of a line item. A quantity of zero or less
// removes the item; unknown ids are a no-op.
func (c Cart) UpdateQuantity(id string, quantity int) (Cart, []Event, error) {
	if quantity <= 0 {
		next, events := c.Remove(id)
		return next, events, nil
	}
	idx := c.indexOf(id)
	if idx < 0 {
		return c, nil, nil
	}
	current := c.items[idx]
	if limit, ok := current.StockLimit(); ok && quantity > limit {
		return c, []Event{stockLimitEvent(current.ID, current.Title, quantity, limit)}, stockLimitError(current.ID, quantity, limit)
	}
	items := cloneItems(c.items)
	items[idx].Quantity = quantity
	return Cart{items: items}, []Event{{
		Kind:     enums.CartEventUpdated,
		ItemID:   current.ID,
		Title:    current.Title,
		Quantity: quantity,
	}}, nil
}

// Clear empties the cart. Clearing an empty cart is allowed.
func (c Cart) Clear() (Cart, []Event) {
	return Cart{}, []Event{{Kind: enums.CartEventCleared}}
}

func (c Cart) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for idx, item := range c.items {
		if item.ID == id {
			return idx
		}
	}
	return -1
}

func stockLimitEvent(itemID, title string, requested, limit int) Event {
	return Event{
		Kind:      enums.CartEventStockLimit,
		ItemID:    itemID,
		Title:     title,
		Requested: requested,
		Limit:     limit,
	}
}

func cloneItems(items []LineItem) []LineItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = item.clone()
	}
	return out
}
