// Package cli implements the plotplan command-line interface.
//
// This package provides commands for computing plot metrics, rendering the
// plot form diagram, editing inputs interactively, and serving a live HTML
// preview. The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - metrics: Print the derived planning metrics for a plot
//   - render: Generate SVG, PNG, PDF, or JSON diagram outputs
//   - form: Edit plot dimensions interactively with a live preview
//   - preview: Serve the diagram and metrics over HTTP
//   - cache: Manage the layout and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/plotplan/plotplan/pkg/buildinfo"
	"github.com/plotplan/plotplan/pkg/cache"
	"github.com/plotplan/plotplan/pkg/config"
	plotio "github.com/plotplan/plotplan/pkg/io"
	"github.com/plotplan/plotplan/pkg/pipeline"
	"github.com/plotplan/plotplan/pkg/plot"
)

// =============================================================================
// Constants
// =============================================================================

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// New creates a new CLI instance with a default logger and the on-disk
// configuration (defaults when no config file exists).
func New(w io.Writer, level log.Level) *CLI {
	cfg := config.Default()
	if path, err := config.Path(); err == nil {
		if loaded, err := config.Load(path); err == nil {
			cfg = loaded
		}
	}
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: cfg,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "plotplan",
		Short:        "Plotplan computes plot metrics and draws setback diagrams",
		Long:         `Plotplan is a CLI tool for residential plot planning: it derives buildable area, ground coverage, and floor-area ratio from plot dimensions and draws a scaled setback diagram with road, parking, and staircase placement.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.metricsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.formCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache selects the cache backend from configuration.
// Backend failures degrade to a NullCache rather than aborting the command;
// caching is an optimization, not a requirement.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if c.Config.Cache.Backend == "redis" {
		store, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Cache.Redis.Addr,
			Password: c.Config.Cache.Redis.Password,
			DB:       c.Config.Cache.Redis.DB,
		})
		if err != nil {
			printWarning("redis cache unavailable, caching disabled (%s)", c.Config.Cache.Redis.Addr)
			c.Logger.Debug("redis connect failed", "addr", c.Config.Cache.Redis.Addr, "err", err)
			return cache.NewNullCache(), nil
		}
		return store, nil
	}
	dir, err := config.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions builds pipeline options from configuration defaults.
// Command flags override individual values afterwards.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		MaxSize:  c.Config.Render.MaxSize,
		Padding:  c.Config.Render.Padding,
		Formats:  c.Config.Render.Formats,
		Style:    c.Config.Render.Style,
		PNGScale: c.Config.Render.PNGScale,
		TTL:      time.Duration(c.Config.Cache.TTLHours) * time.Hour,
		Logger:   c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			formats = append(formats, p)
		}
	}
	return formats
}

// =============================================================================
// Plot Loading
// =============================================================================

// loadPlot reads a plot from path (or the defaults when path is empty) and
// applies --set overrides on top.
func loadPlot(path string, sets []string) (plot.Plot, error) {
	p := plot.Default()
	if path != "" {
		loaded, err := plotio.ImportJSON(path)
		if err != nil {
			return plot.Plot{}, err
		}
		p = loaded
	}
	return applySets(p, sets)
}

// applySets applies "field=value" overrides to a plot. Numeric fields go
// through Plot.Set (clamping negatives to zero); the two visibility toggles
// accept boolean values.
func applySets(p plot.Plot, sets []string) (plot.Plot, error) {
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok {
			return plot.Plot{}, fmt.Errorf("invalid --set %q (expected field=value)", s)
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)

		switch normalizeFieldName(name) {
		case "show_parking":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return plot.Plot{}, fmt.Errorf("invalid value for %s: %q", name, value)
			}
			p.ShowParking = b
			continue
		case "show_staircase":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return plot.Plot{}, fmt.Errorf("invalid value for %s: %q", name, value)
			}
			p.ShowStaircase = b
			continue
		}

		f, err := plot.ParseField(name)
		if err != nil {
			return plot.Plot{}, err
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return plot.Plot{}, fmt.Errorf("invalid value for %s: %q", name, value)
		}
		p = p.Set(f, v)
	}
	return p, nil
}

// normalizeFieldName lowercases a field name and folds dashes to underscores,
// matching plot.ParseField's tolerance.
func normalizeFieldName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}
