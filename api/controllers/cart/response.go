package cart

import (
	"github.com/angelmondragon/storefront-cart/internal/cart"
	"github.com/shopspring/decimal"
)

// LineItemResponse is the public shape of one line item.
type LineItemResponse struct {
	ID               string          `json:"id"`
	Kind             string          `json:"kind"`
	ReferenceID      int64           `json:"reference_id"`
	Title            string          `json:"title"`
	Category         string          `json:"category,omitempty"`
	Subcategory      string          `json:"subcategory,omitempty"`
	ProductKind      string          `json:"product_kind,omitempty"`
	Image            string          `json:"image,omitempty"`
	Description      string          `json:"description,omitempty"`
	Tags             []string        `json:"tags,omitempty"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	DiscountPercent  decimal.Decimal `json:"discount_percent"`
	FinalUnitPrice   decimal.Decimal `json:"final_unit_price"`
	LineTotal        decimal.Decimal `json:"line_total"`
	Size             string          `json:"size,omitempty"`
	Color            string          `json:"color,omitempty"`
	StockLimit       *int            `json:"stock_limit,omitempty"`
	Material         string          `json:"material,omitempty"`
	Brand            string          `json:"brand,omitempty"`
	Weight           string          `json:"weight,omitempty"`
	Dimensions       string          `json:"dimensions,omitempty"`
	CareInstructions string          `json:"care_instructions,omitempty"`
	DesignerName     string          `json:"designer_name,omitempty"`
	IsPremium        bool            `json:"is_premium,omitempty"`
}

// CartResponse is the public cart snapshot. Total is exact; RoundedTotal is
// what the shopper will be charged.
type CartResponse struct {
	Items        []LineItemResponse `json:"items"`
	ItemCount    int                `json:"item_count"`
	Total        decimal.Decimal    `json:"total"`
	RoundedTotal decimal.Decimal    `json:"rounded_total"`
	State        string             `json:"state"`
}

func newCartResponse(snapshot cart.Snapshot) CartResponse {
	items := make([]LineItemResponse, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		items = append(items, newLineItemResponse(item))
	}
	return CartResponse{
		Items:        items,
		ItemCount:    snapshot.ItemCount,
		Total:        snapshot.Total,
		RoundedTotal: cart.RoundCharge(snapshot.Total),
		State:        snapshot.State.String(),
	}
}

func newLineItemResponse(item cart.LineItem) LineItemResponse {
	resp := LineItemResponse{
		ID:              item.ID,
		Kind:            item.Kind().String(),
		ReferenceID:     item.ReferenceID,
		Title:           item.Title,
		Category:        item.Category,
		Subcategory:     item.Subcategory,
		ProductKind:     item.ProductKind,
		Image:           item.Image,
		Description:     item.Description,
		Tags:            item.Tags,
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPrice,
		DiscountPercent: item.DiscountPercent,
		FinalUnitPrice:  item.FinalUnitPrice(),
		LineTotal:       item.LineTotal(),
	}
	if product, ok := item.Product(); ok {
		resp.Size = product.Size
		resp.Color = product.Color
		resp.StockLimit = product.StockLimit
		resp.Material = product.Material
		resp.Brand = product.Brand
		resp.Weight = product.Weight
		resp.Dimensions = product.Dimensions
		resp.CareInstructions = product.CareInstructions
	}
	if design, ok := item.Design(); ok {
		resp.DesignerName = design.DesignerName
		resp.IsPremium = design.IsPremium
	}
	return resp
}
