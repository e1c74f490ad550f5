package config

// EnvPrefix is the envconfig prefix applied on Load.
const EnvPrefix = "QUIKAPP"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "QUIKAPP_APP_ENV"
	EnvPort     = "QUIKAPP_APP_PORT"
	EnvDBDSN    = "QUIKAPP_DB_DSN"
	EnvDBHost   = "QUIKAPP_DB_HOST"
	EnvDBUser   = "QUIKAPP_DB_USER"
	EnvDBName   = "QUIKAPP_DB_NAME"
	EnvRedisURL = "QUIKAPP_REDIS_URL"

	EnvJWTSecret  = "QUIKAPP_JWT_SECRET"
	EnvJWTIssuer  = "QUIKAPP_JWT_ISSUER"
	EnvGCPProject = "QUIKAPP_GCP_PROJECT_ID"

	EnvPubSubUserEventsTopic = "QUIKAPP_PUBSUB_USER_EVENTS_TOPIC"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
