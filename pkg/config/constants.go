package config

const (
	EnvPrefix = "MANTO"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv   = "MANTO_APP_ENV"
	EnvPort     = "MANTO_APP_PORT"
	EnvLogLevel = "MANTO_LOG_LEVEL"

	EnvDBDSN  = "MANTO_DB_DSN"
	EnvDBHost = "MANTO_DB_HOST"
	EnvDBUser = "MANTO_DB_USER"
	EnvDBName = "MANTO_DB_NAME"

	EnvRedisURL = "MANTO_REDIS_URL"

	EnvAuthJWTSecret = "MANTO_AUTH_JWT_SECRET"
	EnvAuthIssuer    = "MANTO_AUTH_ISSUER"
	EnvAuthAudience  = "MANTO_AUTH_AUDIENCE"

	EnvCacheTTL          = "MANTO_CACHE_TTL"
	EnvCartTTL           = "MANTO_CART_TTL"
	EnvCatalogPageSize   = "MANTO_CATALOG_PAGE_SIZE"
	EnvSubscriptionRedir = "MANTO_SUBSCRIPTION_SUCCESS_REDIRECT"
	EnvCORSOrigins       = "MANTO_CORS_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
