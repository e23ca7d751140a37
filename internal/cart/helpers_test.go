package cart

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func seqIDs(prefix string) IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func intPtr(v int) *int {
	return &v
}

func designDraft(ref int64, title, price string) ItemDraft {
	return ItemDraft{
		ReferenceID: ref,
		Title:       title,
		ProductKind: "DESIGN",
		UnitPrice:   decimal.RequireFromString(price),
		Variant:     DesignVariant{DesignerName: "Ana"},
	}
}

func productDraft(ref int64, title, price, size, color string, limit *int) ItemDraft {
	return ItemDraft{
		ReferenceID: ref,
		Title:       title,
		ProductKind: "CLOTHES",
		UnitPrice:   decimal.RequireFromString(price),
		Variant:     ProductVariant{Size: size, Color: color, StockLimit: limit},
	}
}
