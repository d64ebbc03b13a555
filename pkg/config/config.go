package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "bhumi"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv = "BHUMI_APP_ENV"
	EnvDBDSN  = "BHUMI_DB_DSN"
	EnvDBHost = "BHUMI_DB_HOST"
	EnvDBUser = "BHUMI_DB_USER"
	EnvDBName = "BHUMI_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Cart         CartConfig
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
	Env          string `envconfig:"BHUMI_APP_ENV" required:"true"`
	Port         string `envconfig:"BHUMI_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BHUMI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BHUMI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BHUMI_DB_DSN"`
	Driver string `envconfig:"BHUMI_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BHUMI_DB_HOST"`
	LegacyPort     int    `envconfig:"BHUMI_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BHUMI_DB_USER"`
	LegacyPassword string `envconfig:"BHUMI_DB_PASSWORD"`
	LegacyName     string `envconfig:"BHUMI_DB_NAME"`
	LegacySSLMode  string `envconfig:"BHUMI_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BHUMI_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BHUMI_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BHUMI_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BHUMI_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BHUMI_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BHUMI_REDIS_ADDR"`
	Password     string        `envconfig:"BHUMI_REDIS_PASSWORD"`
	DB           int           `envconfig:"BHUMI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BHUMI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BHUMI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BHUMI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BHUMI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BHUMI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"BHUMI_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"BHUMI_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"BHUMI_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"BHUMI_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BHUMI_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BHUMI_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BHUMI_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BHUMI_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BHUMI_ARGON_KEY_LEN" default:"32"`
}

// CartConfig controls how long an idle session cart survives in Redis.
type CartConfig struct {
	SessionTTL time.Duration `envconfig:"BHUMI_CART_SESSION_TTL" default:"720h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BHUMI_AUTO_MIGRATE" default:"false"`
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
