// Package config loads readme-history settings from YAML files, a .env file
// and the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Mayur-Pagote/README-Design-Kit-sub001/storage"
)

// Config is the full readme-history configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	History HistoryConfig `yaml:"history" mapstructure:"history"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	// Backend is one of "memory", "file" or "sqlite".
	Backend string `yaml:"backend" mapstructure:"backend"`
	// Path is a directory for the file backend and a database file for
	// sqlite. A leading "~/" is expanded.
	Path string `yaml:"path" mapstructure:"path"`
}

type HistoryConfig struct {
	Key        string `yaml:"key" mapstructure:"key"`
	MaxHistory int    `yaml:"max_history" mapstructure:"max_history"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: storage.BackendFile,
			Path:    "~/.readme-history/data",
		},
		History: HistoryConfig{
			Key:        "readme-editor",
			MaxHistory: 50,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case storage.BackendMemory, storage.BackendFile, storage.BackendSQLite:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend != storage.BackendMemory && c.Storage.Path == "" {
		return fmt.Errorf("storage.path: required for the %s backend", c.Storage.Backend)
	}
	if c.History.Key == "" {
		return fmt.Errorf("history.key: must not be empty")
	}
	if c.History.MaxHistory < 0 {
		return fmt.Errorf("history.max_history: must not be negative, got %d", c.History.MaxHistory)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: want text or json, got %q", c.Log.Format)
	}
	return nil
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.Level))
	return l, err
}

// ExpandHome replaces a leading "~/" in path with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

const header = "# readme-history configuration\n"

// Save writes cfg to path as YAML, creating parent directories.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(header), data...), 0o644)
}

// WriteDefault writes the default configuration to path.
func WriteDefault(path string) error {
	return Save(path, DefaultConfig())
}
