package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port         string `env:"PORT,          default=8080"`
	Env          string `env:"ENV,           default=development"`
	LogLevel     string `env:"LOG_LEVEL,     default=info"`
	AuditWorkers int    `env:"AUDIT_WORKERS, default=4"`
	PhoneRegion  string `env:"PHONE_REGION,  default=US"`

	Postgres  PostgresConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

type PostgresConfig struct {
	URL             string        `env:"DATABASE_URL,       required"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,  default=25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,  default=10"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE,   default=5m"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFE,   default=30m"`
	AutoMigrate     bool          `env:"MIGRATIONS_AUTO,    default=true"`
}

// MongoConfig is optional. An empty URI disables the audit event store.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=marketplace"`
}

// RedisConfig is optional. An empty address selects the in-process limiter
// and disables audit deduplication.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET,  required"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=168h"`
	BcryptCost int           `env:"BCRYPT_COST, default=12"`
}

type RateLimitConfig struct {
	Limit  int           `env:"LOGIN_RATE_LIMIT,  default=10"`
	Window time.Duration `env:"LOGIN_RATE_WINDOW, default=1m"`
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.RateLimit.Limit <= 0 {
		return nil, fmt.Errorf("config: LOGIN_RATE_LIMIT must be positive")
	}
	return &cfg, nil
}
