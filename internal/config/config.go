package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/model"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Database   DatabaseConfig `mapstructure:"database"`
	Defaults   DefaultsConfig `mapstructure:"defaults"`
	Server     ServerConfig   `mapstructure:"server"`
	Events     EventsConfig   `mapstructure:"events"`
	Log        LogConfig      `mapstructure:"log"`
	ConfigPath string         `mapstructure:"-"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	// Path is the SQLite file. Empty means ledger.db in the app data dir.
	Path        string        `mapstructure:"path"`
	URL         string        `mapstructure:"url"`
	LockTimeout time.Duration `mapstructure:"lock_timeout"`
	MaxConns    int           `mapstructure:"max_conns"`
}

type DefaultsConfig struct {
	Currency  string `mapstructure:"currency"`
	ListLimit int    `mapstructure:"list_limit"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type EventsConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:      DriverSQLite,
			Path:        "",
			LockTimeout: 5 * time.Second,
			MaxConns:    10,
		},
		Defaults: DefaultsConfig{Currency: "USD", ListLimit: 20},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Events: EventsConfig{Topic: "transaction_completed"},
		Log:    LogConfig{Level: "info", Format: "pretty"},
	}
}

// Validate rejects settings the application can't start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("database.url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown database driver %q (use sqlite, postgres or memory)", c.Database.Driver)
	}

	if c.Database.LockTimeout <= 0 {
		return fmt.Errorf("database.lock_timeout must be positive")
	}
	if _, err := model.ParseCurrency(c.Defaults.Currency); err != nil {
		return fmt.Errorf("defaults.currency: %w", err)
	}
	if c.Defaults.ListLimit < 0 {
		return fmt.Errorf("defaults.list_limit can't be negative")
	}
	if c.Events.Enabled && len(c.Events.Brokers) == 0 {
		return fmt.Errorf("events.brokers is required when events are enabled")
	}
	if !slices.Contains([]string{"pretty", "json", "text"}, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("unknown log format %q (use pretty, json or text)", c.Log.Format)
	}
	return nil
}

// DefaultCurrency returns the configured default, assuming Validate passed.
func (c *Config) DefaultCurrency() model.Currency {
	cur, _ := model.ParseCurrency(c.Defaults.Currency)
	return cur
}

// DatabasePath resolves the SQLite file location.
func (c *Config) DatabasePath() (string, error) {
	if c.Database.Path != "" {
		return ExpandPath(c.Database.Path)
	}
	dir, err := AppDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.AppName+".db"), nil
}

func AppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, "."+constants.AppName), nil
	}

	return filepath.Join(configDir, constants.AppName), nil
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}
