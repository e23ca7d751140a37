package checkout

import (
	"github.com/angelmondragon/storefront-cart/internal/cart"
	"github.com/shopspring/decimal"
)

// QuoteLine is the priced view of one line item.
type QuoteLine struct {
	ItemID          string
	Title           string
	Kind            string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	FinalUnitPrice  decimal.Decimal
	LineTotal       decimal.Decimal
}

// Quote summarises what the owner would be charged.
// Total is exact; Charge is Total after the single rounding step.
type Quote struct {
	Lines     []QuoteLine
	ItemCount int
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
	Charge    decimal.Decimal
}

// BuildQuote prices a cart snapshot.
func BuildQuote(snapshot cart.Snapshot) Quote {
	quote := Quote{
		Lines:     make([]QuoteLine, 0, len(snapshot.Items)),
		ItemCount: snapshot.ItemCount,
		Subtotal:  decimal.Zero,
		Total:     snapshot.Total,
	}
	for _, item := range snapshot.Items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		quote.Subtotal = quote.Subtotal.Add(item.UnitPrice.Mul(qty))
		quote.Lines = append(quote.Lines, QuoteLine{
			ItemID:          item.ID,
			Title:           item.Title,
			Kind:            item.Kind().String(),
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			FinalUnitPrice:  item.FinalUnitPrice(),
			LineTotal:       item.LineTotal(),
		})
	}
	quote.Discount = quote.Subtotal.Sub(quote.Total)
	quote.Charge = cart.RoundCharge(quote.Total)
	return quote
}
