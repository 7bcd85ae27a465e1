package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. README_HISTORY_STORAGE_BACKEND.
const EnvPrefix = "README_HISTORY"

// Load loads the configuration. With an explicit path only that file is
// read and it must exist. Otherwise the global file and then the project
// file are merged, each optional. A .env file in the working directory is
// loaded first and environment variables override every file.
func Load(path string) (*Config, error) {
	if err := LoadEnvFile(".env"); err != nil {
		return nil, err
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		return LoadFiles(path)
	}
	return LoadFiles(GlobalConfigPath(), ProjectConfigPath())
}

// LoadFiles merges the given YAML files over the defaults, in order, and
// applies environment overrides. Missing files are skipped.
func LoadFiles(paths ...string) (*Config, error) {
	v := newViper()

	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		v.SetConfigFile(p)
		v.SetConfigType("yaml")
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Storage.Path = ExpandHome(cfg.Storage.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFile loads variables from a dotenv file without overriding ones
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

func newViper() *viper.Viper {
	v := viper.New()

	// Every key needs a default for AutomaticEnv to reach it in Unmarshal.
	d := DefaultConfig()
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("history.key", d.History.Key)
	v.SetDefault("history.max_history", d.History.MaxHistory)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// GlobalConfigPath returns the path of the per-user config file.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".readme-history", "config.yaml")
}

// ProjectConfigPath returns the path of the config file in the working
// directory.
func ProjectConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".readme-history.yaml")
}
