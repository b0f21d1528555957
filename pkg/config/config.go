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
	Auth         AuthConfig
	Cache        CacheConfig
	Cart         CartConfig
	Catalog      CatalogConfig
	Checkout     CheckoutConfig
	HTTP         HTTPConfig
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
	if err := cfg.Catalog.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MANTO_APP_ENV" required:"true"`
	Port         string `envconfig:"MANTO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MANTO_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"MANTO_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"MANTO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"MANTO_DB_DSN"`

	LegacyHost     string `envconfig:"MANTO_DB_HOST"`
	LegacyPort     int    `envconfig:"MANTO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MANTO_DB_USER"`
	LegacyPassword string `envconfig:"MANTO_DB_PASSWORD"`
	LegacyName     string `envconfig:"MANTO_DB_NAME"`
	LegacySSLMode  string `envconfig:"MANTO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MANTO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MANTO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MANTO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MANTO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MANTO_REDIS_URL"`
	Address      string        `envconfig:"MANTO_REDIS_ADDR"`
	Password     string        `envconfig:"MANTO_REDIS_PASSWORD"`
	DB           int           `envconfig:"MANTO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MANTO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MANTO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MANTO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MANTO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MANTO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AuthConfig describes how tokens minted by the external identity provider
// are verified.
type AuthConfig struct {
	JWTSecret string        `envconfig:"MANTO_AUTH_JWT_SECRET" required:"true"`
	Issuer    string        `envconfig:"MANTO_AUTH_ISSUER"`
	Audience  string        `envconfig:"MANTO_AUTH_AUDIENCE" default:"authenticated"`
	Leeway    time.Duration `envconfig:"MANTO_AUTH_LEEWAY" default:"30s"`
}

type CacheConfig struct {
	Enabled bool          `envconfig:"MANTO_CACHE_ENABLED" default:"true"`
	TTL     time.Duration `envconfig:"MANTO_CACHE_TTL" default:"5m"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"MANTO_CART_TTL" default:"720h"`
}

type CatalogConfig struct {
	PageSize    int `envconfig:"MANTO_CATALOG_PAGE_SIZE" default:"12"`
	MaxPageSize int `envconfig:"MANTO_CATALOG_MAX_PAGE_SIZE" default:"100"`
}

func (c CatalogConfig) validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("%s must be positive", EnvCatalogPageSize)
	}
	if c.MaxPageSize < c.PageSize {
		return fmt.Errorf("catalog max page size (%d) must be >= page size (%d)", c.MaxPageSize, c.PageSize)
	}
	return nil
}

type CheckoutConfig struct {
	SubscriptionSuccessRedirect string `envconfig:"MANTO_SUBSCRIPTION_SUCCESS_REDIRECT" default:"/club/mi-suscripcion?success=true"`
}

type HTTPConfig struct {
	CORSOrigins     []string      `envconfig:"MANTO_CORS_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `envconfig:"MANTO_HTTP_SHUTDOWN_TIMEOUT" default:"15s"`
	MetricsEnabled  bool          `envconfig:"MANTO_METRICS_ENABLED" default:"true"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MANTO_AUTO_MIGRATE" default:"false"`
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
