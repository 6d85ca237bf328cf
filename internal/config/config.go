package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel  int       `env:"LOG_LEVEL" envDefault:"0"`
	HTTP      HTTP      `envPrefix:"HTTP_"`
	Database  Database  `envPrefix:"DATABASE_"`
	JWT       JWT       `envPrefix:"JWT_"`
	RateLimit RateLimit `envPrefix:"RATE_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Port               string `env:"PORT" envDefault:"3000"`
	EnableHTTPS        bool   `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
}

// Database contains database connection parameters. An empty DSN selects
// the in-memory account store.
type Database struct {
	DSN          string        `env:"DSN"`
	QueryTimeout time.Duration `env:"QUERY_TIMEOUT" envDefault:"5s"`
}

// JWT contains session token parameters. TTL of zero issues tokens
// without an expiry claim.
type JWT struct {
	Secret string        `env:"SECRET" envDefault:"devsecret"`
	TTL    time.Duration `env:"TTL" envDefault:"0"`
}

// RateLimit contains throttle parameters. A non-empty RedisAddr moves the
// counters to redis so the budget holds across processes.
type RateLimit struct {
	Threshold     int           `env:"THRESHOLD" envDefault:"5"`
	Window        time.Duration `env:"WINDOW" envDefault:"1s"`
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
