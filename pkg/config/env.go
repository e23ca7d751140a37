package config

const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	CartBackendMemory = "memory"
	CartBackendRedis  = "redis"
	CartBackendSQL    = "sql"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv      = "STOREFRONT_APP_ENV"
	EnvPort        = "STOREFRONT_APP_PORT"
	EnvLogLevel    = "STOREFRONT_LOG_LEVEL"
	EnvCartBackend = "STOREFRONT_CART_BACKEND"
	EnvCartKey     = "STOREFRONT_CART_KEY"
	EnvCartTTL     = "STOREFRONT_CART_REDIS_TTL"
	EnvDBDSN       = "STOREFRONT_DB_DSN"
	EnvDBDriver    = "STOREFRONT_DB_DRIVER"
	EnvRedisURL    = "STOREFRONT_REDIS_URL"
	EnvRedisAddr   = "STOREFRONT_REDIS_ADDR"
	EnvJWTSecret   = "STOREFRONT_JWT_SECRET"
	EnvJWTIssuer   = "STOREFRONT_JWT_ISSUER"
	EnvCORSOrigins = "STOREFRONT_CORS_ALLOWED_ORIGINS"
)
