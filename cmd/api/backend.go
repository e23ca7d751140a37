package main

import (
	"context"
	"fmt"
	"io"

	"github.com/angelmondragon/storefront-cart/internal/cart/storage"
	"github.com/angelmondragon/storefront-cart/pkg/config"
	"github.com/angelmondragon/storefront-cart/pkg/db"
	"github.com/angelmondragon/storefront-cart/pkg/logger"
	"github.com/angelmondragon/storefront-cart/pkg/migrate"
	"github.com/angelmondragon/storefront-cart/pkg/redis"
)

// openBackend connects the configured cart storage. The returned closers
// release whatever connections were opened, even on error.
func openBackend(ctx context.Context, cfg *config.Config, logg *logger.Logger) (storage.Backend, []io.Closer, error) {
	var closers []io.Closer

	switch cfg.Cart.NormalizedBackend() {
	case config.CartBackendMemory:
		logg.Warn(ctx, "cart backend is in-memory; carts are lost on restart")
		return storage.NewMemory(), closers, nil

	case config.CartBackendRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, closers, fmt.Errorf("bootstrap redis: %w", err)
		}
		closers = append(closers, client)
		backend, err := storage.NewRedis(client, cfg.Cart.RedisTTL)
		return backend, closers, err

	case config.CartBackendSQL:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, closers, fmt.Errorf("bootstrap database: %w", err)
		}
		closers = append(closers, client)
		if err := migrate.MaybeRunDev(ctx, cfg, logg, client); err != nil {
			return nil, closers, fmt.Errorf("dev migrations: %w", err)
		}
		backend, err := storage.NewSQL(client.DB())
		return backend, closers, err
	}

	return nil, closers, fmt.Errorf("unsupported cart backend %q", cfg.Cart.Backend)
}
