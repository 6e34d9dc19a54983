package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"STORAGE_PATH", "ENRICHED_LABEL1", "ENRICHED_LABEL2", "METRICS_TEXTFILE", "LOGGING_LEVEL", "LOGGING_FORMAT"} {
		t.Setenv(EnvPrefix+key, "")
	}

	cfg := Load()

	wantPath := filepath.Join(home, ".config", "roster", "personliste.csv")
	if cfg.Storage.Path != wantPath {
		t.Errorf("Storage.Path = %q, want %q", cfg.Storage.Path, wantPath)
	}
	if cfg.Enriched.Label1 != "income" || cfg.Enriched.Label2 != "rent" {
		t.Errorf("Enriched labels = %q/%q, want income/rent", cfg.Enriched.Label1, cfg.Enriched.Label2)
	}
	if cfg.Metrics.Textfile != "" {
		t.Errorf("Metrics.Textfile = %q, want empty", cfg.Metrics.Textfile)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ROSTER_STORAGE_PATH", "~/data/people.csv")
	t.Setenv("ROSTER_ENRICHED_LABEL1", "school")
	t.Setenv("ROSTER_ENRICHED_LABEL2", "grade")
	t.Setenv("ROSTER_LOGGING_LEVEL", "debug")
	t.Setenv("ROSTER_LOGGING_FORMAT", "json")

	cfg := Load()

	if want := filepath.Join(home, "data", "people.csv"); cfg.Storage.Path != want {
		t.Errorf("Storage.Path = %q, want %q", cfg.Storage.Path, want)
	}
	labels := cfg.Enriched.Labels()
	if labels.Extra1 != "school" || labels.Extra2 != "grade" {
		t.Errorf("Labels() = %+v, want school/grade", labels)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want debug/json", cfg.Logging)
	}
}

func TestConfig_Validate(t *testing.T) {
	dir := t.TempDir()
	valid := func() *Config {
		return &Config{
			Storage: StorageConfig{Path: filepath.Join(dir, "people.csv")},
			Logging: LoggingConfig{Level: "info", Format: "console"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"trace level", func(c *Config) { c.Logging.Level = "TRACE" }, ""},
		{"empty storage path", func(c *Config) { c.Storage.Path = "" }, "storage path is required"},
		{"storage path is directory", func(c *Config) { c.Storage.Path = dir }, "is a directory"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "invalid logging format"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "invalid logging level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/a/b.csv", filepath.Join(home, "a", "b.csv")},
		{"/abs/b.csv", "/abs/b.csv"},
		{"rel/b.csv", "rel/b.csv"},
		{"~other/b.csv", "~other/b.csv"},
	}
	for _, tt := range tests {
		if got := expandHome(tt.in); got != tt.want {
			t.Errorf("expandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
