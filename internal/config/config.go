// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config is read from an optional JSON or YAML file and overridden by the
// environment. Every field has a default except DatabaseURL.
type Config struct {
	DatabaseURL   string        `mapstructure:"database_url"`   // PostgreSQL connection URL
	Port          string        `mapstructure:"port"`           // HTTP listen port
	StoreDriver   string        `mapstructure:"store_driver"`   // postgres | sqlite | memory
	SQLitePath    string        `mapstructure:"sqlite_path"`    // database file for the sqlite driver
	AutosaveDelay time.Duration `mapstructure:"autosave_delay"` // debounce window after the last edit
	HistoryDepth  int           `mapstructure:"history_depth"`  // undo steps kept per session
	ChromePath    string        `mapstructure:"chrome_path"`    // browser used for PDF export
	Verbose       bool          `mapstructure:"verbose"`        // print detailed debug information
}

var defaults = map[string]any{
	"database_url":   "",
	"port":           "8080",
	"store_driver":   DriverPostgres,
	"sqlite_path":    "folio.db",
	"autosave_delay": "2s",
	"history_depth":  100,
	"chrome_path":    "",
	"verbose":        false,
}

// Load reads path (which may be empty) and the environment. Environment keys
// are the upper-cased field keys, e.g. DATABASE_URL or AUTOSAVE_DELAY.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres driver")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("config error: 'sqlite_path' is required for the sqlite driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config error: unknown store driver %q", c.StoreDriver)
	}

	if c.AutosaveDelay <= 0 {
		return fmt.Errorf("config error: 'autosave_delay' must be positive")
	}
	if c.HistoryDepth < 1 {
		return fmt.Errorf("config error: 'history_depth' must be at least 1")
	}
	if c.Port == "" {
		return fmt.Errorf("config error: 'port' must not be empty")
	}
	return nil
}
