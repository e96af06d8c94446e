package config

// EnvPrefix is passed to envconfig; individual fields carry explicit
// PIZZARIA_-prefixed names so the prefix stays empty here.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvDBDSN  = "PIZZARIA_DB_DSN"
	EnvDBHost = "PIZZARIA_DB_HOST"
	EnvDBUser = "PIZZARIA_DB_USER"
	EnvDBName = "PIZZARIA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
