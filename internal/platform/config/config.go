// Package config loads service configuration from environment variables so
// main stays lean.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains all server configuration parameters.
type Config struct {
	Addr     string `env:"VETFORM_ADDR" envDefault:":8080"`
	LogLevel int    `env:"LOG_LEVEL" envDefault:"0"`
	Redis    Redis  `envPrefix:"REDIS_"`
	Draft    Draft  `envPrefix:"DRAFT_"`
	Upload   Upload `envPrefix:"UPLOAD_"`
}

// Redis contains connection parameters for the draft store backend.
// An empty URL means drafts are kept in process memory.
type Redis struct {
	URL          string        `env:"URL"`
	PoolSize     int           `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`
}

// Draft controls persisted draft retention.
type Draft struct {
	TTL time.Duration `env:"TTL" envDefault:"168h"`
}

// Upload bounds multipart request handling at the transport layer. The file
// policy itself (accepted types, 5 MiB cap) is fixed in the files package.
type Upload struct {
	MaxRequestBytes int64 `env:"MAX_REQUEST_BYTES" envDefault:"8388608"`
}

// New loads configuration from environment variables.
func New() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
