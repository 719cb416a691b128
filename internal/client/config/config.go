// Package config holds runtime settings for the nutrilog client and the
// layered loading order: defaults, then environment, then command-line flags.
// Later sources take precedence over earlier ones.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage backend names accepted in StorageBackend.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds the client's runtime settings.
//
// RequestTimeout bounds each token-validation/profile-fetch call; a timed-out
// fetch is treated as a fetch failure. DeviceSecret, when set, enables
// sealing of cached tokens at rest.
type Config struct {
	APIBaseURL     string        `env:"NUTRILOG_API_URL"`
	StorageBackend string        `env:"NUTRILOG_STORAGE_BACKEND"`
	StorageDSN     string        `env:"NUTRILOG_STORAGE_DSN"`
	RedisAddr      string        `env:"NUTRILOG_REDIS_ADDR"`
	RedisDB        int           `env:"NUTRILOG_REDIS_DB"`
	RequestTimeout time.Duration `env:"NUTRILOG_REQUEST_TIMEOUT"`
	DeviceSecret   string        `env:"NUTRILOG_DEVICE_SECRET"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.StorageBackend = BackendSQLite
	c.StorageDSN = "nutrilog.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisDB = 0
	c.RequestTimeout = 10 * time.Second
}

// Validate rejects unusable combinations before any I/O happens.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("api base url must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment and command-line flags.
func LoadConfig(ctx context.Context, args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
