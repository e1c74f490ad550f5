package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cache        CacheConfig
	JWT          JWTConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Events       EventsConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"QUIKAPP_APP_ENV" required:"true"`
	Port         string `envconfig:"QUIKAPP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"QUIKAPP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QUIKAPP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"QUIKAPP_DB_DSN"`
	Driver string `envconfig:"QUIKAPP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"QUIKAPP_DB_HOST"`
	LegacyPort     int    `envconfig:"QUIKAPP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"QUIKAPP_DB_USER"`
	LegacyPassword string `envconfig:"QUIKAPP_DB_PASSWORD"`
	LegacyName     string `envconfig:"QUIKAPP_DB_NAME"`
	LegacySSLMode  string `envconfig:"QUIKAPP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"QUIKAPP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"QUIKAPP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"QUIKAPP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"QUIKAPP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"QUIKAPP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"QUIKAPP_REDIS_ADDR"`
	Password     string        `envconfig:"QUIKAPP_REDIS_PASSWORD"`
	DB           int           `envconfig:"QUIKAPP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"QUIKAPP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"QUIKAPP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"QUIKAPP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"QUIKAPP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"QUIKAPP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CacheConfig struct {
	UserTTL time.Duration `envconfig:"QUIKAPP_CACHE_USER_TTL" default:"10m"`
}

type JWTConfig struct {
	Secret string `envconfig:"QUIKAPP_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"QUIKAPP_JWT_ISSUER" default:"quikapp-auth-local"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"QUIKAPP_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"QUIKAPP_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"QUIKAPP_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	UserEventsTopic string `envconfig:"QUIKAPP_PUBSUB_USER_EVENTS_TOPIC" default:"quikapp.users.events"`
}

type EventsConfig struct {
	QueueSize      int           `envconfig:"QUIKAPP_EVENTS_QUEUE_SIZE" default:"256"`
	PublishTimeout time.Duration `envconfig:"QUIKAPP_EVENTS_PUBLISH_TIMEOUT" default:"15s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"QUIKAPP_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
