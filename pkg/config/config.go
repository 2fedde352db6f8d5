package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Password      PasswordConfig
	Session       SessionConfig
	AuthRateLimit AuthRateLimitConfig
	Retention     RetentionConfig
	Cron          CronConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"HEADSHOT_APP_ENV" default:"dev"`
	Port         string `envconfig:"HEADSHOT_APP_PORT" default:"4173"`
	LogLevel     string `envconfig:"HEADSHOT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HEADSHOT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"HEADSHOT_DB_DSN"`
	Driver string `envconfig:"HEADSHOT_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"HEADSHOT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HEADSHOT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HEADSHOT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HEADSHOT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) validate() error {
	switch db.Driver {
	case "postgres":
		if db.DSN == "" {
			return fmt.Errorf("HEADSHOT_DB_DSN is required for the postgres driver")
		}
	case "sqlite":
		// empty DSN falls back to an on-disk default in pkg/db
	default:
		return fmt.Errorf("unsupported db driver %q", db.Driver)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"HEADSHOT_REDIS_URL"`
	Address      string        `envconfig:"HEADSHOT_REDIS_ADDR"`
	Password     string        `envconfig:"HEADSHOT_REDIS_PASSWORD"`
	DB           int           `envconfig:"HEADSHOT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HEADSHOT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HEADSHOT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HEADSHOT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HEADSHOT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HEADSHOT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type PasswordConfig struct {
	MinLength        int `envconfig:"HEADSHOT_PASSWORD_MIN_LENGTH" default:"6"`
	ArgonMemoryKB    int `envconfig:"HEADSHOT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"HEADSHOT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"HEADSHOT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"HEADSHOT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"HEADSHOT_ARGON_KEY_LEN" default:"32"`
}

type SessionConfig struct {
	// Zero means tokens live until logout; the retention sweeper still prunes
	// sessions idle past the cutoff when one is configured.
	IdleTTL time.Duration `envconfig:"HEADSHOT_SESSION_IDLE_TTL" default:"0"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"HEADSHOT_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"HEADSHOT_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"HEADSHOT_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"HEADSHOT_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"HEADSHOT_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"HEADSHOT_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type RetentionConfig struct {
	InputDays  int `envconfig:"HEADSHOT_RETENTION_INPUT_DAYS" default:"7"`
	OutputDays int `envconfig:"HEADSHOT_RETENTION_OUTPUT_DAYS" default:"30"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"HEADSHOT_CRON_INTERVAL" default:"1h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"HEADSHOT_AUTO_MIGRATE" default:"false"`
}
