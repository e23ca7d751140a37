package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-cart/api/controllers"
	cartcontrollers "github.com/angelmondragon/storefront-cart/api/controllers/cart"
	checkoutcontrollers "github.com/angelmondragon/storefront-cart/api/controllers/checkout"
	"github.com/angelmondragon/storefront-cart/api/middleware"
	"github.com/angelmondragon/storefront-cart/internal/cart"
	checkoutsvc "github.com/angelmondragon/storefront-cart/internal/checkout"
	"github.com/angelmondragon/storefront-cart/pkg/config"
	"github.com/angelmondragon/storefront-cart/pkg/logger"
)

// Deps are the services and probes the router exposes.
type Deps struct {
	Carts    cart.Service
	Checkout checkoutsvc.Service
	Ready    map[string]controllers.Pinger
	Gatherer prometheus.Gatherer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Ready))
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(deps.Carts, logg))
			r.Delete("/", cartcontrollers.CartClear(deps.Carts, logg))
			r.Post("/items", cartcontrollers.CartAddItem(deps.Carts, logg))
			r.Patch("/items/{itemId}", cartcontrollers.CartUpdateItem(deps.Carts, logg))
			r.Delete("/items/{itemId}", cartcontrollers.CartRemoveItem(deps.Carts, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/quote", checkoutcontrollers.CheckoutQuote(deps.Checkout, logg))
			r.Post("/complete", checkoutcontrollers.CheckoutComplete(deps.Checkout, logg))
		})
	})

	return r
}
