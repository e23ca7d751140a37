package cart

import (
	"github.com/angelmondragon/storefront-cart/internal/cart"
	"github.com/angelmondragon/storefront-cart/pkg/enums"
	"github.com/shopspring/decimal"
)

// AddItemRequest is the body of POST /api/v1/cart/items.
type AddItemRequest struct {
	Kind             string           `json:"kind" validate:"required,oneof=design product DESIGN PRODUCT"`
	ReferenceID      int64            `json:"reference_id" validate:"gte=0"`
	Title            string           `json:"title" validate:"required,max=200"`
	Category         string           `json:"category,omitempty"`
	Subcategory      string           `json:"subcategory,omitempty"`
	ProductKind      string           `json:"product_kind,omitempty"`
	Image            string           `json:"image,omitempty"`
	Description      string           `json:"description,omitempty"`
	Tags             []string         `json:"tags,omitempty"`
	UnitPrice        decimal.Decimal  `json:"unit_price" validate:"dgte=0"`
	DiscountPercent  *decimal.Decimal `json:"discount_percent,omitempty" validate:"omitempty,dgte=0,dlt=100"`
	Quantity         *int             `json:"quantity,omitempty" validate:"omitempty,gte=1"`
	Size             string           `json:"size,omitempty"`
	Color            string           `json:"color,omitempty"`
	StockLimit       *int             `json:"stock_limit,omitempty" validate:"omitempty,gte=0"`
	Material         string           `json:"material,omitempty"`
	Brand            string           `json:"brand,omitempty"`
	Weight           string           `json:"weight,omitempty"`
	Dimensions       string           `json:"dimensions,omitempty"`
	CareInstructions string           `json:"care_instructions,omitempty"`
	DesignerName     string           `json:"designer_name,omitempty"`
	IsPremium        bool             `json:"is_premium,omitempty"`
}

// UpdateQuantityRequest is the body of PATCH /api/v1/cart/items/{itemId}.
// Zero or less removes the item.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func (r AddItemRequest) quantity() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

func (r AddItemRequest) toDraft() (cart.ItemDraft, error) {
	kind, err := enums.ParseCartItemKind(r.Kind)
	if err != nil {
		return cart.ItemDraft{}, err
	}

	draft := cart.ItemDraft{
		ReferenceID: r.ReferenceID,
		Title:       r.Title,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		ProductKind: r.ProductKind,
		Image:       r.Image,
		Description: r.Description,
		Tags:        r.Tags,
		UnitPrice:   r.UnitPrice,
	}
	if r.DiscountPercent != nil {
		draft.DiscountPercent = *r.DiscountPercent
	}

	switch kind {
	case enums.CartItemKindProduct:
		draft.Variant = cart.ProductVariant{
			Size:             r.Size,
			Color:            r.Color,
			StockLimit:       r.StockLimit,
			Material:         r.Material,
			Brand:            r.Brand,
			Weight:           r.Weight,
			Dimensions:       r.Dimensions,
			CareInstructions: r.CareInstructions,
		}
	default:
		draft.Variant = cart.DesignVariant{
			DesignerName: r.DesignerName,
			IsPremium:    r.IsPremium,
		}
	}
	return draft, nil
}
