// Package config handles loading and parsing application configuration.
// It supports two sources for the file path (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Both console programs can also run with no config file at all, in which
// case every value comes from the environment or its env-default.
package config

import (
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	// StoragePath is the flat file holding AmbiDB records.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"ambidb_records.txt"`

	// SQL is used by the ambidb-sql wrapper only.
	SQL `yaml:"sql"`
}

// SQL holds settings of the embedded SQL engine.
// Nested under sql: in the YAML file.
type SQL struct {
	// DatabasePath is the filesystem path to the SQLite .db file.
	DatabasePath string `yaml:"database_path" env:"SQL_DATABASE_PATH" env-default:"ambidb.sqlite"`
}

// ResolvePath picks the config file path: CONFIG_PATH wins over the flag
// value. An empty result means "no file, environment only".
func ResolvePath(flagValue string) string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return flagValue
}

// Load reads the config file at path, or only the environment when path
// is empty. A path that names a missing file is an error.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read env: %w", err)
		}
		return &cfg, nil
	}

	// Verify the file exists before trying to read it so the message names
	// the path rather than a cryptic "open: no such file" later.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	// cleanenv.ReadConfig reads the YAML file, then applies env:"..."
	// overrides and env-default values.
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load for program start-up: it exits on failure, so callers
// do not need to check an error. If this returns, the config is valid.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}
