// Package main implements the roster CLI, a registry of people kept in a
// flat CSV file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/roster/internal/config"
	"github.com/fyrsmithlabs/roster/internal/flatfile"
	"github.com/fyrsmithlabs/roster/internal/logging"
	"github.com/fyrsmithlabs/roster/internal/registry"
)

// version information
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs. It is filled in by the root
// command's PersistentPreRunE.
type app struct {
	configPath string
	filePath   string
	logLevel   string

	cfg    *config.Config
	logger *logging.Logger
	store  *flatfile.Store
	ctx    context.Context
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "Keep a registry of people in a flat CSV file",
		Long: `roster records people, people with two extra attributes (e.g. income and
rent, or school and grade) and staff members with contact details and
subjects. Records are stored in a single CSV file that older files without
a type column can still be read from.

Examples:
  # Add a staff member
  roster add staff --name Kim --age 45 --email kim@school.dk --phone "12 34 56 78" --subject Math

  # List everything
  roster list

  # Use the interactive menu
  roster menu`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/roster/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.filePath, "file", "", "storage file (overrides storage.path)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newUpgradeCmd(a),
		newSubjectCmd(a),
		newImportCmd(a),
		newStatsCmd(a),
		newMenuCmd(a),
	)
	return rootCmd
}

// setup loads configuration, builds the logger and opens the store.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if a.filePath != "" {
		cfg.Storage.Path = a.filePath
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}

	logCfg, err := logging.FromSettings(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	logCfg.Output = cmd.ErrOrStderr()
	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithSessionID(ctx, logging.NewSessionID())
	ctx = logging.WithCommand(ctx, cmd.CommandPath())
	ctx = logging.WithLogger(ctx, logger)

	codec := flatfile.NewCodec()
	codec.Labels = cfg.Enriched.Labels()
	store, err := flatfile.NewStore(cfg.Storage.Path,
		flatfile.WithCodec(codec),
		flatfile.WithLogger(logger.WithContext(ctx).Named("flatfile").Underlying()),
	)
	if err != nil {
		return err
	}

	a.cfg, a.logger, a.store, a.ctx = cfg, logger, store, ctx
	logger.Debug(ctx, "configuration loaded",
		zap.String("storage", cfg.Storage.Path),
		zap.String("config", a.configPath))
	return nil
}

// loadConfig reads the --config file, or the default config file when it
// exists. Without either, configuration comes from the environment alone.
func (a *app) loadConfig() (*config.Config, error) {
	if a.configPath != "" {
		return config.LoadWithFile(a.configPath)
	}
	dir, err := config.DefaultDir()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(dir, config.DefaultConfigFile)); errors.Is(err, fs.ErrNotExist) {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
		return cfg, nil
	}
	return config.LoadWithFile("")
}

// teardown exports metrics when configured and flushes the logger.
func (a *app) teardown() error {
	if a.logger == nil {
		return nil
	}
	defer a.logger.Sync()

	if path := a.cfg.Metrics.Textfile; path != "" {
		if err := flatfile.WriteMetricsTextfile(path); err != nil {
			a.logger.Warn(a.ctx, "failed to write metrics textfile", zap.String("path", path), zap.Error(err))
		}
	}
	return nil
}

// load reads the registry. A file that fails to parse is reported, never
// replaced by an empty registry.
func (a *app) load() (*registry.Registry, error) {
	reg, err := a.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", a.store.Path(), err)
	}
	return reg, nil
}

// save writes the registry back.
func (a *app) save(reg *registry.Registry) error {
	if dir, err := config.DefaultDir(); err == nil && filepath.Dir(a.store.Path()) == dir {
		if err := config.EnsureConfigDir(); err != nil {
			return err
		}
	}
	if err := a.store.SaveAll(reg); err != nil {
		return fmt.Errorf("cannot save %s: %w", a.store.Path(), err)
	}
	return nil
}

// update loads the registry, applies fn and saves on success.
func (a *app) update(fn func(reg *registry.Registry) error) error {
	reg, err := a.load()
	if err != nil {
		return err
	}
	if err := fn(reg); err != nil {
		return err
	}
	return a.save(reg)
}
