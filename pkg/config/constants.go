package config

const (
	EnvPrefix = "BOUTIQUE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv     = "BOUTIQUE_APP_ENV"
	EnvPort       = "BOUTIQUE_APP_PORT"
	EnvDBDSN      = "BOUTIQUE_DB_DSN"
	EnvDBHost     = "BOUTIQUE_DB_HOST"
	EnvDBUser     = "BOUTIQUE_DB_USER"
	EnvDBName     = "BOUTIQUE_DB_NAME"
	EnvRedisURL   = "BOUTIQUE_REDIS_URL"
	EnvJWTSecret  = "BOUTIQUE_JWT_SECRET"
	EnvJWTIssuer  = "BOUTIQUE_JWT_ISSUER"
	EnvJWTExpMins = "BOUTIQUE_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
