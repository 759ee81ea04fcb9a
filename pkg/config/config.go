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
	Pricing      PricingConfig
	Idempotency  IdempotencyConfig
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
	Env          string `envconfig:"STOCKROUTE_APP_ENV" required:"true"`
	Port         string `envconfig:"STOCKROUTE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOCKROUTE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOCKROUTE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STOCKROUTE_DB_DSN"`
	Driver string `envconfig:"STOCKROUTE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOCKROUTE_DB_HOST"`
	LegacyPort     int    `envconfig:"STOCKROUTE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOCKROUTE_DB_USER"`
	LegacyPassword string `envconfig:"STOCKROUTE_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOCKROUTE_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOCKROUTE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOCKROUTE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOCKROUTE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOCKROUTE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOCKROUTE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOCKROUTE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STOCKROUTE_REDIS_ADDR"`
	Password     string        `envconfig:"STOCKROUTE_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOCKROUTE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOCKROUTE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOCKROUTE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOCKROUTE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOCKROUTE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOCKROUTE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PricingConfig tunes the shipping formula. Defaults match the documented
// rate of $0.01 per kg-km and the 15% shipping cap.
type PricingConfig struct {
	ShippingRateCentsPerKgKm int `envconfig:"STOCKROUTE_SHIPPING_RATE_CENTS_PER_KG_KM" default:"1"`
	ShippingCapPercent       int `envconfig:"STOCKROUTE_SHIPPING_CAP_PERCENT" default:"15"`
}

type IdempotencyConfig struct {
	CommitTTL time.Duration `envconfig:"STOCKROUTE_IDEMPOTENCY_COMMIT_TTL" default:"168h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOCKROUTE_AUTO_MIGRATE" default:"false"`
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
