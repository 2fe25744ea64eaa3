package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the envconfig namespace for all CraftVine settings.
const EnvPrefix = "craftvine"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Cart          CartConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"CRAFTVINE_APP_ENV" required:"true"`
	Port         string `envconfig:"CRAFTVINE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CRAFTVINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CRAFTVINE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CRAFTVINE_DB_DSN"`
	Driver string `envconfig:"CRAFTVINE_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"CRAFTVINE_DB_HOST"`
	Port     int    `envconfig:"CRAFTVINE_DB_PORT" default:"5432"`
	User     string `envconfig:"CRAFTVINE_DB_USER"`
	Password string `envconfig:"CRAFTVINE_DB_PASSWORD"`
	Name     string `envconfig:"CRAFTVINE_DB_NAME"`
	SSLMode  string `envconfig:"CRAFTVINE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CRAFTVINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CRAFTVINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CRAFTVINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CRAFTVINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CRAFTVINE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CRAFTVINE_REDIS_ADDR"`
	Password     string        `envconfig:"CRAFTVINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"CRAFTVINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CRAFTVINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CRAFTVINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CRAFTVINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CRAFTVINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CRAFTVINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CRAFTVINE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CRAFTVINE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CRAFTVINE_JWT_EXPIRATION_MINUTES" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CRAFTVINE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CRAFTVINE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CRAFTVINE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CRAFTVINE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CRAFTVINE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"CRAFTVINE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"CRAFTVINE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"CRAFTVINE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"CRAFTVINE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"CRAFTVINE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"CRAFTVINE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CartConfig struct {
	AbandonAfter  time.Duration `envconfig:"CRAFTVINE_CART_ABANDON_AFTER" default:"720h"`
	SweepInterval time.Duration `envconfig:"CRAFTVINE_CART_SWEEP_INTERVAL" default:"1h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CRAFTVINE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CRAFTVINE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	parts := map[string]string{
		"CRAFTVINE_DB_HOST": db.Host,
		"CRAFTVINE_DB_USER": db.User,
		"CRAFTVINE_DB_NAME": db.Name,
	}
	for _, key := range []string{"CRAFTVINE_DB_HOST", "CRAFTVINE_DB_USER", "CRAFTVINE_DB_NAME"} {
		if parts[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either CRAFTVINE_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
