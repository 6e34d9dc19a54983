// Package config provides configuration loading for roster.
//
// Configuration is read from an optional YAML file and from ROSTER_*
// environment variables, with defaults for everything.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fyrsmithlabs/roster/internal/person"
)

// EnvPrefix is the prefix of every environment variable read by the loader.
const EnvPrefix = "ROSTER_"

// DefaultStorageFile is the file name used when no storage path is set.
const DefaultStorageFile = "personliste.csv"

// DefaultConfigFile is the config file name looked up in DefaultDir.
const DefaultConfigFile = "config.yaml"

// Config holds the complete roster configuration.
type Config struct {
	Storage  StorageConfig  `koanf:"storage"`
	Enriched EnrichedConfig `koanf:"enriched"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// StorageConfig locates the registry file.
type StorageConfig struct {
	Path string `koanf:"path"` // default: ~/.config/roster/personliste.csv
}

// EnrichedConfig names the two EnrichedPerson attributes in listings and
// prompts, e.g. school/grade or income/rent.
type EnrichedConfig struct {
	Label1 string `koanf:"label1"`
	Label2 string `koanf:"label2"`
}

// Labels converts the configured names into display labels.
func (c EnrichedConfig) Labels() person.Labels {
	return person.Labels{Extra1: c.Label1, Extra2: c.Label2}
}

// MetricsConfig controls the optional Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `koanf:"textfile"` // empty disables the export
}

// LoggingConfig controls the stderr logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // console or json
}

// Load loads configuration from environment variables with defaults.
//
// Environment variables:
//   - ROSTER_STORAGE_PATH: registry file (default: ~/.config/roster/personliste.csv)
//   - ROSTER_ENRICHED_LABEL1: first enriched label (default: income)
//   - ROSTER_ENRICHED_LABEL2: second enriched label (default: rent)
//   - ROSTER_METRICS_TEXTFILE: Prometheus textfile path (default: disabled)
//   - ROSTER_LOGGING_LEVEL: log level (default: warn)
//   - ROSTER_LOGGING_FORMAT: console or json (default: console)
//
// Example:
//
//	cfg := config.Load()
//	fmt.Println("Storage:", cfg.Storage.Path)
func Load() *Config {
	cfg := &Config{
		Storage: StorageConfig{
			Path: getEnvString(EnvPrefix+"STORAGE_PATH", ""),
		},
		Enriched: EnrichedConfig{
			Label1: getEnvString(EnvPrefix+"ENRICHED_LABEL1", ""),
			Label2: getEnvString(EnvPrefix+"ENRICHED_LABEL2", ""),
		},
		Metrics: MetricsConfig{
			Textfile: getEnvString(EnvPrefix+"METRICS_TEXTFILE", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnvString(EnvPrefix+"LOGGING_LEVEL", ""),
			Format: getEnvString(EnvPrefix+"LOGGING_FORMAT", ""),
		},
	}
	applyDefaults(cfg)
	return cfg
}

// Validate validates the configuration.
//
// Returns an error if:
//   - Storage path is empty or names a directory
//   - Logging format is neither console nor json
//   - Logging level is unknown
func (c *Config) Validate() error {
	if c.Storage.Path == "" {
		return errors.New("storage path is required")
	}
	if info, err := os.Stat(c.Storage.Path); err == nil && info.IsDir() {
		return fmt.Errorf("storage path %s is a directory", c.Storage.Path)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid logging format: %q (must be console or json)", c.Logging.Format)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging level: %q", c.Logging.Level)
	}

	return nil
}

// DefaultDir returns ~/.config/roster.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "roster"), nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Helper functions for environment variable parsing

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
