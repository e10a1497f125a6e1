package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/plotplan/plotplan/pkg/cache"
	"github.com/plotplan/plotplan/pkg/diagram"
	"github.com/plotplan/plotplan/pkg/observability"
	"github.com/plotplan/plotplan/pkg/plot"
	"github.com/plotplan/plotplan/pkg/render"
	"github.com/plotplan/plotplan/pkg/render/styles"
)

// Runner encapsulates pipeline execution with caching.
// The CLI, TUI, and preview server all use this to avoid duplicating caching
// logic.
//
// The Runner is stateless except for the cache and logger - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different plots and options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Close releases the runner's cache resources.
func (r *Runner) Close() {
	_ = r.Cache.Close()
}

// Execute runs the complete compute → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, p plot.Plot, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	p = p.Normalize()
	plotHash, err := HashPlot(p)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:    uuid.NewString(),
		Plot:     p,
		PlotHash: plotHash,
		Metrics:  plot.Compute(p),
	}
	logger = logger.With("run", result.RunID)

	// Stage 2: Layout (stage 1, compute, is inlined above - it is a single
	// pure function call and needs no caching).
	layoutStart := time.Now()
	d, layoutHit, err := r.buildWithCacheInfo(ctx, p, plotHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Diagram = d
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("computed layout",
		"rects", len(d.Rects),
		"scale", fmt.Sprintf("%.3f", d.Scale),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.renderWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build computes the diagram for a plot with caching.
func (r *Runner) Build(ctx context.Context, p plot.Plot, opts Options) (diagram.Diagram, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return diagram.Diagram{}, fmt.Errorf("invalid options: %w", err)
	}
	p = p.Normalize()
	plotHash, err := HashPlot(p)
	if err != nil {
		return diagram.Diagram{}, err
	}
	d, _, err := r.buildWithCacheInfo(ctx, p, plotHash, opts)
	return d, err
}

// buildWithCacheInfo runs the layout stage, consulting the cache first.
func (r *Runner) buildWithCacheInfo(ctx context.Context, p plot.Plot, plotHash string, opts Options) (diagram.Diagram, bool, error) {
	key := r.Keyer.LayoutKey(plotHash, opts.layoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var d diagram.Diagram
			if err := json.Unmarshal(data, &d); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return d, true, nil
			}
			// Corrupt entry: fall through and recompute.
			_ = r.Cache.Delete(ctx, key)
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	observability.Pipeline().OnLayoutStart(ctx, plotHash)
	start := time.Now()
	d, err := diagram.Build(p, opts.layoutOptions())
	observability.Pipeline().OnLayoutComplete(ctx, plotHash, time.Since(start), err)
	if err != nil {
		return diagram.Diagram{}, false, err
	}

	if data, err := json.Marshal(d); err == nil {
		if err := r.Cache.Set(ctx, key, data, opts.TTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return d, false, nil
}

// RenderArtifacts renders a diagram to the requested formats with caching.
func (r *Runner) RenderArtifacts(ctx context.Context, d diagram.Diagram, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	artifacts, _, err := r.renderWithCacheInfo(ctx, d, opts)
	return artifacts, err
}

// renderWithCacheInfo runs the render stage for every requested format.
// The reported hit flag is true only when all artifacts came from cache.
func (r *Runner) renderWithCacheInfo(ctx context.Context, d diagram.Diagram, opts Options) (map[string][]byte, bool, error) {
	diagramData, err := json.Marshal(d)
	if err != nil {
		return nil, false, fmt.Errorf("marshal diagram: %w", err)
	}
	layoutHash := cache.Hash(diagramData)

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true

	var renderErr error
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.artifactKeyOpts(format))

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		allHit = false

		data, err := r.renderFormat(d, format, opts)
		if err != nil {
			renderErr = fmt.Errorf("render %s: %w", format, err)
			break
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, opts.TTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), renderErr)
	if renderErr != nil {
		return nil, false, renderErr
	}
	return artifacts, allHit, nil
}

// renderFormat produces one artifact.
func (r *Runner) renderFormat(d diagram.Diagram, format string, opts Options) ([]byte, error) {
	style, ok := styles.ByName(opts.Style)
	if !ok {
		style = styles.Simple{}
	}

	switch format {
	case FormatSVG:
		return render.RenderSVG(d, render.WithStyle(style)), nil
	case FormatPNG:
		pngOpts := []render.PNGOption{render.WithPNGScale(opts.PNGScale)}
		if opts.Style == styles.NameBlueprint {
			pngOpts = append(pngOpts, render.WithPNGBlueprint())
		}
		return render.RenderPNG(d, pngOpts...)
	case FormatPDF:
		svg := render.RenderSVG(d, render.WithStyle(style))
		return render.ToPDF(svg)
	case FormatJSON:
		return render.RenderJSON(d)
	}
	return nil, ValidateFormat(format)
}

// logger returns the option logger if set, else the runner's.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
