package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angelmondragon/storefront-cart/api/controllers"
	"github.com/angelmondragon/storefront-cart/api/routes"
	"github.com/angelmondragon/storefront-cart/internal/cart"
	"github.com/angelmondragon/storefront-cart/internal/cart/storage"
	"github.com/angelmondragon/storefront-cart/internal/checkout"
	"github.com/angelmondragon/storefront-cart/pkg/config"
	"github.com/angelmondragon/storefront-cart/pkg/logger"
	"github.com/angelmondragon/storefront-cart/pkg/metrics"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":          cfg.App.Env,
		"cart_backend": cfg.Cart.NormalizedBackend(),
	})

	backend, closers, err := openBackend(ctx, cfg, logg)
	defer closeAll(logg, closers)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap cart storage", err)
		closeAll(logg, closers)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	cartMetrics := metrics.NewCartMetrics(registry)
	instrumented := storage.Instrument(backend, cfg.Cart.NormalizedBackend(), cartMetrics)

	cartService, checkoutService, err := newServices(cfg, logg, instrumented, cartMetrics)
	if err != nil {
		logg.Error(ctx, "failed to create services", err)
		closeAll(logg, closers)
		os.Exit(1)
	}

	addr := ":" + cfg.App.Port
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Deps{
			Carts:    cartService,
			Checkout: checkoutService,
			Ready:    map[string]controllers.Pinger{"cart_storage": instrumented},
			Gatherer: registry,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "addr", addr), "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server failed", err)
			closeAll(logg, closers)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "graceful shutdown failed", err)
	}
	logg.Info(shutdownCtx, "api server stopped")
}

func newServices(cfg *config.Config, logg *logger.Logger, backend cart.Storage, cartMetrics *metrics.CartMetrics) (cart.Service, checkout.Service, error) {
	cartService, err := cart.NewService(cart.ServiceParams{
		Storage:  backend,
		BaseKey:  cfg.Cart.Key,
		Notifier: cart.Notifiers{cart.LogNotifier(logg), cart.MetricsNotifier(cartMetrics)},
		Logger:   logg,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("cart service: %w", err)
	}
	checkoutService, err := checkout.NewService(cartService, logg)
	if err != nil {
		return nil, nil, fmt.Errorf("checkout service: %w", err)
	}
	return cartService, checkoutService, nil
}

// closeAll releases connections once; later calls are no-ops.
func closeAll(logg *logger.Logger, closers []io.Closer) {
	var err error
	for i := len(closers) - 1; i >= 0; i-- {
		if closers[i] == nil {
			continue
		}
		err = multierr.Append(err, closers[i].Close())
		closers[i] = nil
	}
	if err != nil {
		logg.Error(context.Background(), "error closing connections", err)
	}
}
