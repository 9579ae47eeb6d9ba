package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store driver names accepted by TASK_STORE.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds the environment-provided configuration surface.
type Config struct {
	Port       int           `env:"PORT" envDefault:"3000"`
	Env        string        `env:"APP_ENV" envDefault:"development"`
	JWTSecret  string        `env:"JWT_SECRET" envDefault:"secret_dev_only"`
	TokenTTL   time.Duration `env:"JWT_TTL" envDefault:"168h"`
	TaskStore  string        `env:"TASK_STORE" envDefault:"memory"`
	TaskDBPath string        `env:"TASK_DB_PATH" envDefault:"tasks.db"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.TaskStore != StoreMemory && cfg.TaskStore != StoreSQLite {
		return nil, fmt.Errorf("unknown task store driver: %s", cfg.TaskStore)
	}
	return cfg, nil
}

// Development reports whether the app runs in development mode.
// Stack traces in error responses are only exposed in this mode.
func (c *Config) Development() bool {
	return c.Env == "development"
}
