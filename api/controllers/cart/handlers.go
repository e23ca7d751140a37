package cart

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-cart/api/middleware"
	"github.com/angelmondragon/storefront-cart/api/responses"
	"github.com/angelmondragon/storefront-cart/api/validators"
	cartsvc "github.com/angelmondragon/storefront-cart/internal/cart"
	pkgerrors "github.com/angelmondragon/storefront-cart/pkg/errors"
	"github.com/angelmondragon/storefront-cart/pkg/logger"
)

// CartFetch returns the caller's cart snapshot.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		owner, err := ownerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.Get(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

// CartAddItem adds a design or product to the caller's cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		owner, err := ownerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := payload.toDraft()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item kind"))
			return
		}

		snapshot, err := svc.AddItem(r.Context(), owner, draft, payload.quantity())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

// CartUpdateItem sets the quantity of a line item. Zero or less removes it.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		owner, err := ownerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := itemIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload UpdateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.UpdateQuantity(r.Context(), owner, itemID, *payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

// CartRemoveItem drops a line item. Unknown ids return the unchanged cart.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		owner, err := ownerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := itemIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.RemoveItem(r.Context(), owner, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

// CartClear empties the caller's cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		owner, err := ownerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.Clear(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

func ownerFromContext(r *http.Request) (string, error) {
	if r == nil {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user context")
	}
	owner := strings.TrimSpace(middleware.UserIDFromContext(r.Context()))
	if owner == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user context")
	}
	return owner, nil
}

func itemIDParam(r *http.Request) (string, error) {
	itemID := strings.TrimSpace(chi.URLParam(r, "itemId"))
	if itemID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	return itemID, nil
}
