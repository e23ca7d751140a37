package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}
	if cfg.Cart.Key != "cart_v1" {
		t.Fatalf("expected default cart key, got %q", cfg.Cart.Key)
	}
	if got := cfg.Cart.RedisTTL; got != 720*time.Hour {
		t.Fatalf("expected default ttl 720h, got %v", got)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://shop.example.com" {
		t.Fatalf("unexpected cors origins %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_BackendRequirements(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCartBackend, "sql")
	if _, err := Load(); err == nil {
		t.Fatal("expected sql backend without dsn to fail")
	}

	t.Setenv(EnvDBDSN, "file::memory:?cache=shared")
	t.Setenv(EnvDBDriver, "sqlite")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Cart.NormalizedBackend() != CartBackendSQL {
		t.Fatalf("unexpected backend %q", cfg.Cart.Backend)
	}

	t.Setenv(EnvDBDriver, "oracle")
	if _, err := Load(); err == nil {
		t.Fatal("expected unsupported driver to fail")
	}

	t.Setenv(EnvCartBackend, "floppy")
	if _, err := Load(); err == nil {
		t.Fatal("expected unsupported backend to fail")
	}

	t.Setenv(EnvCartBackend, "MEMORY")
	t.Setenv(EnvRedisURL, "")
	if _, err := Load(); err != nil {
		t.Fatalf("memory backend needs no datastore, got %v", err)
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvCartBackend, "redis")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvJWTSecret, "secret")
	t.Setenv(EnvJWTIssuer, "storefront")
	t.Setenv(EnvCORSOrigins, "http://localhost:3000,https://shop.example.com")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}
