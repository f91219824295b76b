package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,        default=3000"`
	Env       string        `env:"ENV,         default=development"`
	LogLevel  string        `env:"LOG_LEVEL,   default=info"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,   default=24h"`

	// BcryptCost tunes the password hashing work factor. The default
	// matches the cost the system has always used; raise it over time.
	BcryptCost int `env:"BCRYPT_COST, default=10"`

	// StoreDriver selects the Account Store backend: postgres or mongo.
	StoreDriver string `env:"STORE_DRIVER, default=postgres"`

	// CORSOrigin restricts browser access to the frontend origin.
	CORSOrigin string `env:"FRONTEND_URL, default=http://localhost:3000"`
	StaticDir  string `env:"STATIC_DIR,   default=public"`

	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type PostgresConfig struct {
	DSN string `env:"DATABASE_URL, default=postgres://localhost:5432/accounts?sslmode=disable"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=accounts"`
}

type RedisConfig struct {
	// Addr may be empty, in which case the user cache is disabled and
	// reads always hit the store.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return &cfg, nil
}
