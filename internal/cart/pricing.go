package cart

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// FinalUnitPrice applies the percentage markdown to the unit price.
// No rounding happens here; see RoundCharge.
func (d ItemDraft) FinalUnitPrice() decimal.Decimal {
	if !d.DiscountPercent.IsPositive() {
		return d.UnitPrice
	}
	return d.UnitPrice.Mul(hundred.Sub(d.DiscountPercent)).Shift(-2)
}

// DiscountAmount is the per-unit markdown.
func (d ItemDraft) DiscountAmount() decimal.Decimal {
	return d.UnitPrice.Sub(d.FinalUnitPrice())
}

// LineTotal is the final unit price times the quantity.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.FinalUnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// TotalAmount sums the line totals of items.
func TotalAmount(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// TotalItemCount sums the quantities of items.
func TotalItemCount(items []LineItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// RoundCharge is the one rounding rule applied at display and checkout
// boundaries: ceiling to the whole currency unit.
func RoundCharge(amount decimal.Decimal) decimal.Decimal {
	return amount.Ceil()
}
