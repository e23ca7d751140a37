package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-cart/internal/cart"
	"github.com/angelmondragon/storefront-cart/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-cart/pkg/errors"
	"github.com/angelmondragon/storefront-cart/pkg/logger"
	"github.com/shopspring/decimal"
)

// Service prices carts and finalises them once payment is confirmed.
type Service interface {
	Quote(ctx context.Context, owner string) (Quote, error)
	Complete(ctx context.Context, owner string, input CompleteInput) (*Receipt, error)
}

// CompleteInput carries the confirmation from the payment provider.
type CompleteInput struct {
	PaymentReference string
	// ExpectedCharge, when set, must match the current rounded charge.
	ExpectedCharge *decimal.Decimal
}

// Receipt is returned after a completed checkout.
type Receipt struct {
	Quote            Quote
	PaymentReference string
	CompletedAt      time.Time
}

type service struct {
	carts cart.Service
	logg  *logger.Logger
	now   func() time.Time
}

// NewService builds the checkout service.
func NewService(carts cart.Service, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{carts: carts, logg: logg, now: time.Now}, nil
}

func (s *service) Quote(ctx context.Context, owner string) (Quote, error) {
	snapshot, err := s.carts.Get(ctx, owner)
	if err != nil {
		return Quote{}, err
	}
	if snapshot.State == enums.CartStateEmpty {
		return Quote{}, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}
	return BuildQuote(snapshot), nil
}

func (s *service) Complete(ctx context.Context, owner string, input CompleteInput) (*Receipt, error) {
	reference := strings.TrimSpace(input.PaymentReference)
	if reference == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment reference is required")
	}

	// Quote and clear share one owner lock so nothing added after pricing is
	// cleared unpaid.
	var quote Quote
	_, err := s.carts.ClearIf(ctx, owner, func(snapshot cart.Snapshot) error {
		if snapshot.State == enums.CartStateEmpty {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
		}
		quote = BuildQuote(snapshot)
		if input.ExpectedCharge != nil && !input.ExpectedCharge.Equal(quote.Charge) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cart changed since quote").
				WithDetails(map[string]string{
					"expected_charge": input.ExpectedCharge.String(),
					"current_charge":  quote.Charge.String(),
				})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"payment_reference": reference,
		"charge":            quote.Charge.String(),
		"item_count":        quote.ItemCount,
	})
	s.logg.Info(ctx, "checkout.completed")

	return &Receipt{
		Quote:            quote,
		PaymentReference: reference,
		CompletedAt:      s.now().UTC(),
	}, nil
}
