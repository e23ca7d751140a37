package middleware

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/storefront-cart/api/responses"
	pkgAuth "github.com/angelmondragon/storefront-cart/pkg/auth"
	"github.com/angelmondragon/storefront-cart/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-cart/pkg/errors"
	"github.com/angelmondragon/storefront-cart/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the cart owner.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			owner := claims.Owner()
			ctx := WithUserID(r.Context(), owner)
			if logg != nil {
				ctx = logg.WithUserID(ctx, owner)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
