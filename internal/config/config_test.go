package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewDefaultIsValid(t *testing.T) {
	if err := NewDefault().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"memory driver", func(c *Config) { c.Database.Driver = DriverMemory }, ""},
		{"postgres with url", func(c *Config) {
			c.Database.Driver = DriverPostgres
			c.Database.URL = "postgres://localhost/ledger"
		}, ""},
		{"postgres without url", func(c *Config) { c.Database.Driver = DriverPostgres }, "database.url"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "unknown database driver"},
		{"zero lock timeout", func(c *Config) { c.Database.LockTimeout = 0 }, "lock_timeout"},
		{"bad currency", func(c *Config) { c.Defaults.Currency = "XXX" }, "defaults.currency"},
		{"lowercase currency", func(c *Config) { c.Defaults.Currency = "eur" }, ""},
		{"events without brokers", func(c *Config) { c.Events.Enabled = true }, "events.brokers"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := NewDefault()
	cfg.Database.Path = filepath.Join(t.TempDir(), "custom.db")

	got, err := cfg.DatabasePath()
	if err != nil {
		t.Fatalf("DatabasePath failed: %v", err)
	}
	if got != cfg.Database.Path {
		t.Errorf("got %q, want %q", got, cfg.Database.Path)
	}

	cfg.Database.Path = ""
	got, err = cfg.DatabasePath()
	if err != nil {
		t.Fatalf("DatabasePath failed: %v", err)
	}
	if filepath.Base(got) != "ledger.db" {
		t.Errorf("default path %q should end in ledger.db", got)
	}
}

func TestDefaults(t *testing.T) {
	cfg := NewDefault()
	if cfg.Database.LockTimeout != 5*time.Second {
		t.Errorf("lock timeout = %v", cfg.Database.LockTimeout)
	}
	if cfg.DefaultCurrency() != "USD" {
		t.Errorf("default currency = %s", cfg.DefaultCurrency())
	}
}
