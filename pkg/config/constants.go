package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "campusbooks"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "CAMPUSBOOKS_APP_ENV"
	EnvPort       = "CAMPUSBOOKS_APP_PORT"
	EnvDBDSN      = "CAMPUSBOOKS_DB_DSN"
	EnvDBHost     = "CAMPUSBOOKS_DB_HOST"
	EnvDBUser     = "CAMPUSBOOKS_DB_USER"
	EnvDBName     = "CAMPUSBOOKS_DB_NAME"
	EnvRedisURL   = "CAMPUSBOOKS_REDIS_URL"
	EnvJWTSecret  = "CAMPUSBOOKS_JWT_SECRET"
	EnvJWTIssuer  = "CAMPUSBOOKS_JWT_ISSUER"
	EnvJWTExpMins = "CAMPUSBOOKS_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
