package cart

import (
	"encoding/json"
	"fmt"

	"github.com/angelmondragon/storefront-cart/pkg/enums"
	"github.com/shopspring/decimal"
)

// storedItem is the flat wire shape of a line item.
type storedItem struct {
	ID               string             `json:"id"`
	Kind             enums.CartItemKind `json:"kind"`
	ReferenceID      int64              `json:"referenceId"`
	Title            string             `json:"title"`
	Category         string             `json:"category,omitempty"`
	Subcategory      string             `json:"subcategory,omitempty"`
	ProductKind      string             `json:"productKind,omitempty"`
	UnitPrice        decimal.Decimal    `json:"unitPrice"`
	DiscountPercent  *decimal.Decimal   `json:"discountPercent,omitempty"`
	Image            string             `json:"image,omitempty"`
	Quantity         int                `json:"quantity"`
	SelectedSize     string             `json:"selectedSize,omitempty"`
	SelectedColor    string             `json:"selectedColor,omitempty"`
	StockLimit       *int               `json:"stockLimit,omitempty"`
	Tags             []string           `json:"tags,omitempty"`
	Description      string             `json:"description,omitempty"`
	Material         string             `json:"material,omitempty"`
	Brand            string             `json:"brand,omitempty"`
	Weight           string             `json:"weight,omitempty"`
	Dimensions       string             `json:"dimensions,omitempty"`
	CareInstructions string             `json:"careInstructions,omitempty"`
	DesignerName     string             `json:"designerName,omitempty"`
	IsPremium        bool               `json:"isPremium,omitempty"`
}

// Encode serializes the line items for storage.
func Encode(items []LineItem) (string, error) {
	records := make([]storedItem, 0, len(items))
	for _, item := range items {
		records = append(records, toStored(item))
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(raw), nil
}

// Decode parses a stored payload. Any record that breaks an item invariant
// rejects the whole payload.
func Decode(payload string) ([]LineItem, error) {
	var records []storedItem
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	items := make([]LineItem, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, record := range records {
		item, err := fromStored(record)
		if err != nil {
			return nil, fmt.Errorf("decode cart item %d: %w", i, err)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("decode cart item %d: duplicate id %q", i, item.ID)
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}
	return items, nil
}

func toStored(item LineItem) storedItem {
	record := storedItem{
		ID:          item.ID,
		Kind:        item.Kind(),
		ReferenceID: item.ReferenceID,
		Title:       item.Title,
		Category:    item.Category,
		Subcategory: item.Subcategory,
		ProductKind: item.ProductKind,
		UnitPrice:   item.UnitPrice,
		Image:       item.Image,
		Quantity:    item.Quantity,
		Tags:        item.Tags,
		Description: item.Description,
	}
	if item.DiscountPercent.IsPositive() {
		discount := item.DiscountPercent
		record.DiscountPercent = &discount
	}
	if product, ok := item.Product(); ok {
		record.SelectedSize = product.Size
		record.SelectedColor = product.Color
		record.StockLimit = product.StockLimit
		record.Material = product.Material
		record.Brand = product.Brand
		record.Weight = product.Weight
		record.Dimensions = product.Dimensions
		record.CareInstructions = product.CareInstructions
	}
	if design, ok := item.Design(); ok {
		record.DesignerName = design.DesignerName
		record.IsPremium = design.IsPremium
	}
	return record
}

func fromStored(record storedItem) (LineItem, error) {
	if record.ID == "" {
		return LineItem{}, fmt.Errorf("missing id")
	}
	if record.Quantity < 1 {
		return LineItem{}, fmt.Errorf("quantity %d below 1", record.Quantity)
	}

	draft := ItemDraft{
		ReferenceID: record.ReferenceID,
		Title:       record.Title,
		Category:    record.Category,
		Subcategory: record.Subcategory,
		ProductKind: record.ProductKind,
		Image:       record.Image,
		Description: record.Description,
		Tags:        record.Tags,
		UnitPrice:   record.UnitPrice,
	}
	if record.DiscountPercent != nil {
		draft.DiscountPercent = *record.DiscountPercent
	}

	switch record.Kind {
	case enums.CartItemKindDesign:
		if record.SelectedSize != "" || record.SelectedColor != "" || record.StockLimit != nil ||
			record.Material != "" || record.Brand != "" || record.Weight != "" ||
			record.Dimensions != "" || record.CareInstructions != "" {
			return LineItem{}, fmt.Errorf("design %q carries product fields", record.ID)
		}
		draft.Variant = DesignVariant{DesignerName: record.DesignerName, IsPremium: record.IsPremium}
	case enums.CartItemKindProduct:
		if record.DesignerName != "" || record.IsPremium {
			return LineItem{}, fmt.Errorf("product %q carries design fields", record.ID)
		}
		product := ProductVariant{
			Size:             record.SelectedSize,
			Color:            record.SelectedColor,
			StockLimit:       record.StockLimit,
			Material:         record.Material,
			Brand:            record.Brand,
			Weight:           record.Weight,
			Dimensions:       record.Dimensions,
			CareInstructions: record.CareInstructions,
		}
		if product.StockLimit != nil && record.Quantity > *product.StockLimit {
			return LineItem{}, fmt.Errorf("quantity %d above stock limit %d", record.Quantity, *product.StockLimit)
		}
		draft.Variant = product
	default:
		return LineItem{}, fmt.Errorf("unknown kind %q", record.Kind)
	}

	if err := draft.Validate(); err != nil {
		return LineItem{}, err
	}
	return LineItem{ItemDraft: draft, ID: record.ID, Quantity: record.Quantity}, nil
}
