package checkout

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/storefront-cart/api/middleware"
	"github.com/angelmondragon/storefront-cart/api/responses"
	"github.com/angelmondragon/storefront-cart/api/validators"
	checkoutsvc "github.com/angelmondragon/storefront-cart/internal/checkout"
	pkgerrors "github.com/angelmondragon/storefront-cart/pkg/errors"
	"github.com/angelmondragon/storefront-cart/pkg/logger"
)

// CheckoutQuote prices the caller's cart.
func CheckoutQuote(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		owner := strings.TrimSpace(middleware.UserIDFromContext(r.Context()))
		if owner == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user context"))
			return
		}

		quote, err := svc.Quote(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newQuoteResponse(quote))
	}
}

// CheckoutComplete clears the cart once the payment provider confirmed the charge.
func CheckoutComplete(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		owner := strings.TrimSpace(middleware.UserIDFromContext(r.Context()))
		if owner == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user context"))
			return
		}

		var payload CompleteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.Complete(r.Context(), owner, checkoutsvc.CompleteInput{
			PaymentReference: payload.PaymentReference,
			ExpectedCharge:   payload.ExpectedCharge,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newReceiptResponse(receipt))
	}
}
