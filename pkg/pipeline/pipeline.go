// Package pipeline provides the core diagram pipeline for plotplan.
//
// This package implements the complete compute → layout → render pipeline
// that is shared by the CLI, the interactive form, and the preview server.
// By centralizing this logic, we ensure consistent behavior across all entry
// points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Compute: Derive planning metrics from the dimensional inputs
//  2. Layout: Scale the inputs into positioned drawing primitives
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Compute and layout are pure functions; the render stage may shell out for
// PDF conversion. Layout and render results are cached under content-derived
// keys.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Formats: []string{"svg"}}
//	result, err := runner.Execute(ctx, plot.Default(), opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/plotplan/plotplan/pkg/cache"
	"github.com/plotplan/plotplan/pkg/diagram"
	"github.com/plotplan/plotplan/pkg/errors"
	"github.com/plotplan/plotplan/pkg/plot"
	"github.com/plotplan/plotplan/pkg/render/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, TUI, and Preview Server
// =============================================================================

const (
	// DefaultMaxSize is the fit-to-box extent in pixels.
	DefaultMaxSize = diagram.DefaultMaxSize

	// DefaultPadding is the uniform viewport margin in pixels.
	DefaultPadding = diagram.DefaultPadding

	// DefaultPNGScale renders PNGs at 2x resolution.
	DefaultPNGScale = 2.0

	// DefaultTTL is how long cached layouts and artifacts stay valid.
	DefaultTTL = 24 * time.Hour
)

// DefaultStyle is the default visual style.
const DefaultStyle = styles.NameSimple

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the diagram pipeline.
// This struct supports JSON serialization for preview-server requests.
type Options struct {
	// Layout options
	MaxSize float64 `json:"max_size,omitempty"`
	Padding float64 `json:"padding,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`

	// Refresh bypasses cached results and overwrites them.
	Refresh bool `json:"refresh,omitempty"`

	// TTL controls cache entry lifetime; zero means DefaultTTL.
	TTL time.Duration `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline execution in logs.
	RunID string

	// Plot is the (normalized) input set the run was computed from.
	Plot plot.Plot

	// PlotHash is the content hash of the plot.
	PlotHash string

	// Metrics are the derived planning quantities.
	Metrics plot.Metrics

	// Diagram contains the positioned drawing primitives.
	Diagram diagram.Diagram

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the diagram came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if _, ok := styles.ByName(style); !ok {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: simple, blueprint)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	o.SetLayoutDefaults()
	o.SetRenderDefaults()

	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.MaxSize == 0 {
		o.MaxSize = DefaultMaxSize
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
}

// layoutOptions converts to the diagram engine's option type.
func (o Options) layoutOptions() diagram.Options {
	return diagram.Options{MaxSize: o.MaxSize, Padding: o.Padding}
}

// layoutKeyOpts converts to the cache keyer's layout options.
func (o Options) layoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{MaxSize: o.MaxSize, Padding: o.Padding}
}

// artifactKeyOpts converts to the cache keyer's artifact options for format.
func (o Options) artifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Style: o.Style}
	if format == FormatPNG {
		opts.Scale = o.PNGScale
	}
	return opts
}

// HashPlot computes the content hash of a plot for cache keys.
func HashPlot(p plot.Plot) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal plot: %w", err)
	}
	return cache.Hash(data), nil
}
