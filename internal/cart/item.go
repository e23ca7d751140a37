package cart

import (
	"strings"

	"github.com/angelmondragon/storefront-cart/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-cart/pkg/errors"
	"github.com/shopspring/decimal"
)

// Variant carries the fields that only make sense for one item kind.
// DesignVariant and ProductVariant are the only implementations.
type Variant interface {
	Kind() enums.CartItemKind
}

// DesignVariant describes a licensable digital design.
type DesignVariant struct {
	DesignerName string
	IsPremium    bool
}

func (DesignVariant) Kind() enums.CartItemKind { return enums.CartItemKindDesign }

// ProductVariant describes one size/colour variant of a physical product.
type ProductVariant struct {
	Size             string
	Color            string
	StockLimit       *int
	Material         string
	Brand            string
	Weight           string
	Dimensions       string
	CareInstructions string
}

func (ProductVariant) Kind() enums.CartItemKind { return enums.CartItemKindProduct }

// ItemDraft is everything a caller supplies when adding to the cart.
type ItemDraft struct {
	ReferenceID     int64
	Title           string
	Category        string
	Subcategory     string
	ProductKind     string
	Image           string
	Description     string
	Tags            []string
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	Variant         Variant
}

// LineItem is one entry of the cart.
type LineItem struct {
	ItemDraft
	ID       string
	Quantity int
}

// Kind reports whether the draft is a design or a product. Drafts without a
// variant are treated as designs. A nil variant pointer keeps the kind of its
// type and is rejected by Validate.
func (d ItemDraft) Kind() enums.CartItemKind {
	switch v := d.Variant.(type) {
	case nil:
		return enums.CartItemKindDesign
	case *DesignVariant:
		return enums.CartItemKindDesign
	case *ProductVariant:
		return enums.CartItemKindProduct
	default:
		return v.Kind()
	}
}

// Product returns the product variant, if the item is a product.
func (d ItemDraft) Product() (ProductVariant, bool) {
	switch v := d.Variant.(type) {
	case ProductVariant:
		return v, true
	case *ProductVariant:
		if v != nil {
			return *v, true
		}
	}
	return ProductVariant{}, false
}

// Design returns the design variant, if the item is a design.
func (d ItemDraft) Design() (DesignVariant, bool) {
	switch v := d.Variant.(type) {
	case DesignVariant:
		return v, true
	case *DesignVariant:
		if v != nil {
			return *v, true
		}
	case nil:
		return DesignVariant{}, true
	}
	return DesignVariant{}, false
}

// StockLimit returns the purchasable ceiling for product items.
func (d ItemDraft) StockLimit() (int, bool) {
	product, ok := d.Product()
	if !ok || product.StockLimit == nil {
		return 0, false
	}
	return *product.StockLimit, true
}

// Validate enforces the pricing invariants of a draft.
func (d ItemDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return invalidItem("title is required")
	}
	if d.UnitPrice.IsNegative() {
		return invalidItem("unit price must not be negative")
	}
	if d.DiscountPercent.IsNegative() || d.DiscountPercent.GreaterThanOrEqual(hundred) {
		return invalidItem("discount percent must be in [0, 100)")
	}
	if limit, ok := d.StockLimit(); ok && limit < 0 {
		return invalidItem("stock limit must not be negative")
	}
	switch v := d.Variant.(type) {
	case nil, DesignVariant, ProductVariant:
	case *DesignVariant:
		if v == nil {
			return invalidItem("design variant is nil")
		}
	case *ProductVariant:
		if v == nil {
			return invalidItem("product variant is nil")
		}
	default:
		return invalidItem("unsupported item variant")
	}
	return nil
}

// matchesVariant reports whether the draft targets the same product variant as the line item.
func (l LineItem) matchesVariant(d ItemDraft) bool {
	existing, ok := l.Product()
	if !ok {
		return false
	}
	incoming, ok := d.Product()
	if !ok {
		return false
	}
	return l.ReferenceID == d.ReferenceID &&
		existing.Size == incoming.Size &&
		existing.Color == incoming.Color
}

func (d ItemDraft) clone() ItemDraft {
	out := d
	if d.Tags != nil {
		out.Tags = append([]string(nil), d.Tags...)
	}
	switch v := d.Variant.(type) {
	case ProductVariant:
		out.Variant = v.clone()
	case *ProductVariant:
		if v != nil {
			out.Variant = v.clone()
		}
	case *DesignVariant:
		if v != nil {
			out.Variant = *v
		}
	}
	return out
}

func (l LineItem) clone() LineItem {
	out := l
	out.ItemDraft = l.ItemDraft.clone()
	return out
}

func (p ProductVariant) clone() ProductVariant {
	out := p
	if p.StockLimit != nil {
		limit := *p.StockLimit
		out.StockLimit = &limit
	}
	return out
}

func invalidItem(msg string) error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, ErrInvalidItem, msg)
}
