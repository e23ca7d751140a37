package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/angelmondragon/storefront-cart/api/responses"
	pkgerrors "github.com/angelmondragon/storefront-cart/pkg/errors"
	"github.com/angelmondragon/storefront-cart/pkg/logger"
)

// Recoverer turns handler panics into INTERNAL_ERROR envelopes. Aborted
// handlers keep panicking so net/http can drop the connection.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				ctx := r.Context()
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{
						"panic":       fmt.Sprint(rec),
						"panic_stack": string(debug.Stack()),
					})
				}
				err := pkgerrors.Wrap(pkgerrors.CodeInternal, fmt.Errorf("panic: %v", rec), "handler panicked")
				responses.WriteError(ctx, logg, w, err)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
