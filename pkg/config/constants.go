package config

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "STOCKROUTE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "STOCKROUTE_APP_ENV"
	EnvPort     = "STOCKROUTE_APP_PORT"
	EnvDBDSN    = "STOCKROUTE_DB_DSN"
	EnvDBHost   = "STOCKROUTE_DB_HOST"
	EnvDBUser   = "STOCKROUTE_DB_USER"
	EnvDBName   = "STOCKROUTE_DB_NAME"
	EnvRedisURL = "STOCKROUTE_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
