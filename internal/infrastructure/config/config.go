package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config is the single explicit configuration struct for the service. It is
// loaded once at startup and passed into constructors; there is no
// process-wide mutable configuration state.
type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	// TokenTTLMinutes bounds the lifetime of issued access tokens.
	TokenTTLMinutes int    `env:"TOKEN_TTL_MINUTES, default=60"`
	LogLevel        string `env:"LOG_LEVEL,  default=info"`
	// AccountTypes is the deployment's open set of account roles.
	AccountTypes []string `env:"ACCOUNT_TYPES, default=ADMIN,AGENT,CLIENT"`

	Database DatabaseConfig
	Redis    RedisConfig
}

type DatabaseConfig struct {
	URL      string `env:"DATABASE_URL, default=postgres://localhost:5432/dealership?sslmode=disable"`
	MaxConns int    `env:"DATABASE_MAX_CONNS, default=10"`
}

type RedisConfig struct {
	// Addr may be empty: the token denylist is then disabled.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
