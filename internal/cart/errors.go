package cart

import (
	"errors"

	pkgerrors "github.com/angelmondragon/storefront-cart/pkg/errors"
)

var (
	// ErrStockLimitExceeded marks add/update calls rejected by a stock ceiling.
	ErrStockLimitExceeded = errors.New("stock limit exceeded")
	// ErrPersistenceUnavailable marks storage failures.
	ErrPersistenceUnavailable = errors.New("cart persistence unavailable")
	// ErrInvalidItem marks drafts or quantities that break the item invariants.
	ErrInvalidItem = errors.New("invalid cart item")
)

// StockLimitDetails is attached to stock limit errors.
type StockLimitDetails struct {
	ItemID    string `json:"item_id,omitempty"`
	Requested int    `json:"requested"`
	Limit     int    `json:"limit"`
}

func stockLimitError(itemID string, requested, limit int) *pkgerrors.Error {
	return pkgerrors.Wrap(pkgerrors.CodeStockLimit, ErrStockLimitExceeded, "requested quantity exceeds stock limit").
		WithDetails(StockLimitDetails{ItemID: itemID, Requested: requested, Limit: limit})
}

func persistenceError(err error, msg string) *pkgerrors.Error {
	return pkgerrors.Wrap(pkgerrors.CodeDependency, errors.Join(ErrPersistenceUnavailable, err), msg)
}
