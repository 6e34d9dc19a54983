package logging

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"go.uber.org/zap/zapcore"
)

// DefaultRedactedFields are field names whose values are never written.
var DefaultRedactedFields = []string{"email", "phone"}

// DefaultRedactionPatterns match email addresses and eight digit phone
// numbers in values and messages.
var DefaultRedactionPatterns = []string{
	`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
	`\b\d{2}[ -]?\d{2}[ -]?\d{2}[ -]?\d{2}\b`,
}

// Config holds logging configuration.
type Config struct {
	Level     zapcore.Level
	Format    string            // json or console
	Output    io.Writer         // defaults to os.Stderr
	Caller    bool              // add caller information
	Fields    map[string]string // constant fields on every entry
	Redaction RedactionConfig
}

// RedactionConfig controls personal data redaction.
type RedactionConfig struct {
	Enabled  bool
	Fields   []string
	Patterns []string
}

// NewDefaultConfig returns config suited to an interactive terminal.
func NewDefaultConfig() *Config {
	return &Config{
		Level:  zapcore.WarnLevel,
		Format: "console",
		Output: os.Stderr,
		Fields: map[string]string{
			"service": "roster",
		},
		Redaction: RedactionConfig{
			Enabled:  true,
			Fields:   DefaultRedactedFields,
			Patterns: DefaultRedactionPatterns,
		},
	}
}

// FromSettings builds a default config with the given level and format, as
// read from the logging section of the roster configuration.
func FromSettings(level, format string) (*Config, error) {
	cfg := NewDefaultConfig()
	if level != "" {
		l, err := LevelFromString(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = l
	}
	if format != "" {
		cfg.Format = format
	}
	return cfg, cfg.Validate()
}

// Validate checks config for errors.
func (c *Config) Validate() error {
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("format must be 'json' or 'console', got %q", c.Format)
	}

	if c.Redaction.Enabled {
		for _, pattern := range c.Redaction.Patterns {
			if len(pattern) > 200 {
				return fmt.Errorf("redaction pattern too long (max 200 chars): %q", pattern)
			}
			if _, err := regexp.Compile(pattern); err != nil {
				return fmt.Errorf("invalid redaction pattern %q: %w", pattern, err)
			}
		}
	}

	for k, v := range c.Fields {
		if k == "" {
			return fmt.Errorf("field key cannot be empty")
		}
		if v == "" {
			return fmt.Errorf("field %q has empty value", k)
		}
	}

	return nil
}
