package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitcorpus/config"
	"github.com/masmgr/gitcorpus/internal/git"
)

// loadConfig loads configuration from file or defaults and applies CLI overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if c.IsSet("output") {
		cfg.Output.Path = c.String("output")
	}
	if c.IsSet("batch-size") {
		cfg.Output.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("workers") {
		cfg.Extract.Workers = c.Int("workers")
	}
	if c.IsSet("queue-size") {
		cfg.Extract.QueueSize = c.Int("queue-size")
	}

	// Apply filter overrides from CLI
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger returns a text logger on w; verbose enables debug records.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newPathFilter builds the file filter from configuration.
func newPathFilter(cfg *config.Config) (*git.PathFilter, error) {
	filter, err := git.NewPathFilter(cfg.Filters.Include, cfg.Filters.Exclude)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	return filter, nil
}
