package checkout

import (
	"time"

	checkoutsvc "github.com/angelmondragon/storefront-cart/internal/checkout"
	"github.com/shopspring/decimal"
)

// CompleteRequest confirms a payment for the current cart.
type CompleteRequest struct {
	PaymentReference string           `json:"payment_reference" validate:"required,max=255"`
	ExpectedCharge   *decimal.Decimal `json:"expected_charge,omitempty" validate:"-"`
}

type QuoteLineResponse struct {
	ItemID          string          `json:"item_id"`
	Title           string          `json:"title"`
	Kind            string          `json:"kind"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	FinalUnitPrice  decimal.Decimal `json:"final_unit_price"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

type QuoteResponse struct {
	Lines     []QuoteLineResponse `json:"lines"`
	ItemCount int                 `json:"item_count"`
	Subtotal  decimal.Decimal     `json:"subtotal"`
	Discount  decimal.Decimal     `json:"discount"`
	Total     decimal.Decimal     `json:"total"`
	Charge    decimal.Decimal     `json:"charge"`
}

type ReceiptResponse struct {
	Quote            QuoteResponse `json:"quote"`
	PaymentReference string        `json:"payment_reference"`
	CompletedAt      time.Time     `json:"completed_at"`
}

func newQuoteResponse(quote checkoutsvc.Quote) QuoteResponse {
	lines := make([]QuoteLineResponse, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		lines = append(lines, QuoteLineResponse{
			ItemID:          line.ItemID,
			Title:           line.Title,
			Kind:            line.Kind,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
			FinalUnitPrice:  line.FinalUnitPrice,
			LineTotal:       line.LineTotal,
		})
	}
	return QuoteResponse{
		Lines:     lines,
		ItemCount: quote.ItemCount,
		Subtotal:  quote.Subtotal,
		Discount:  quote.Discount,
		Total:     quote.Total,
		Charge:    quote.Charge,
	}
}

func newReceiptResponse(receipt *checkoutsvc.Receipt) ReceiptResponse {
	return ReceiptResponse{
		Quote:            newQuoteResponse(receipt.Quote),
		PaymentReference: receipt.PaymentReference,
		CompletedAt:      receipt.CompletedAt,
	}
}
