package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Cart         CartConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"STOREFRONT_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "production")
}

// CartConfig selects where carts are persisted and under which key.
type CartConfig struct {
	Backend  string        `envconfig:"STOREFRONT_CART_BACKEND" default:"redis"`
	Key      string        `envconfig:"STOREFRONT_CART_KEY" default:"cart_v1"`
	RedisTTL time.Duration `envconfig:"STOREFRONT_CART_REDIS_TTL" default:"720h"`
}

// NormalizedBackend returns the lower-cased backend name.
func (c CartConfig) NormalizedBackend() string {
	return strings.ToLower(strings.TrimSpace(c.Backend))
}

type DBConfig struct {
	DSN    string `envconfig:"STOREFRONT_DB_DSN"`
	Driver string `envconfig:"STOREFRONT_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig describes the identity provider's access tokens.
type JWTConfig struct {
	Secret            string `envconfig:"STOREFRONT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"STOREFRONT_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"STOREFRONT_JWT_EXPIRATION_MINUTES" default:"60"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STOREFRONT_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOREFRONT_AUTO_MIGRATE" default:"false"`
}

func (c *Config) validate() error {
	switch c.Cart.NormalizedBackend() {
	case CartBackendMemory:
	case CartBackendRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("%s or %s is required for the redis cart backend", EnvRedisURL, EnvRedisAddr)
		}
	case CartBackendSQL:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required for the sql cart backend", EnvDBDSN)
		}
		switch strings.ToLower(c.DB.Driver) {
		case DBDriverPostgres, DBDriverSQLite:
		default:
			return fmt.Errorf("unsupported %s %q", EnvDBDriver, c.DB.Driver)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvCartBackend, c.Cart.Backend)
	}
	if strings.TrimSpace(c.Cart.Key) == "" {
		return fmt.Errorf("%s must not be empty", EnvCartKey)
	}
	return nil
}
