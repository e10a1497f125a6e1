package cli

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/plotplan/plotplan/pkg/errors"
	plotio "github.com/plotplan/plotplan/pkg/io"
	"github.com/plotplan/plotplan/pkg/pipeline"
	"github.com/plotplan/plotplan/pkg/plot"
)

// previewCommand creates the preview command, which serves the diagram and
// metrics over HTTP for browser viewing.
func (c *CLI) previewCommand() *cobra.Command {
	var addr string
	var sets []string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Serve a live HTML preview of the plot diagram",
		Long: `Start a local HTTP server with an HTML preview page. Any plot
field can be overridden per request via query parameters, e.g.
/diagram.svg?plot_width=45&floors=3.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			p, err := loadPlot(path, sets)
			if err != nil {
				return err
			}
			return c.runPreview(cmd.Context(), p, addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8420", "listen address")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "override a plot field (field=value, repeatable)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout and artifact cache")

	return cmd
}

// runPreview starts the HTTP server and blocks until ctx is cancelled.
func (c *CLI) runPreview(ctx context.Context, p plot.Plot, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := &previewServer{
		base:   p,
		runner: runner,
		opts:   c.pipelineOptions(),
		logger: c.Logger,
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- httpSrv.ListenAndServe() }()

	printSuccess("Preview running")
	printNextStep("Open", "http://"+addr)
	c.Logger.Info("preview server listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errc:
		return err
	}
}

// =============================================================================
// Server
// =============================================================================

// previewServer holds the preview HTTP handlers. Each request applies query
// parameter overrides to the base plot and runs the shared pipeline.
type previewServer struct {
	base   plot.Plot
	runner *pipeline.Runner
	opts   pipeline.Options
	logger *charmlog.Logger
}

// routes builds the chi router with request logging.
func (s *previewServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(s.logger))
	r.Get("/", s.handleIndex)
	r.Get("/diagram.svg", s.handleDiagramSVG)
	r.Get("/metrics.json", s.handleMetricsJSON)
	r.Get("/export.png", s.handleExportPNG)
	return r
}

// requestLogger logs each request with method, path, status, and duration.
func requestLogger(logger *charmlog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(withLogger(r.Context(), logger)))
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).Round(time.Microsecond))
		})
	}
}

// plotFromRequest applies ?field=value overrides to the base plot.
// The two visibility toggles accept boolean values; everything else goes
// through the numeric field path. Unknown parameters are ignored so style
// and format options can share the query string.
func (s *previewServer) plotFromRequest(r *http.Request) plot.Plot {
	p := s.base
	for name, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		value := values[0]

		switch normalizeFieldName(name) {
		case "show_parking":
			if b, err := strconv.ParseBool(value); err == nil {
				p.ShowParking = b
			}
			continue
		case "show_staircase":
			if b, err := strconv.ParseBool(value); err == nil {
				p.ShowStaircase = b
			}
			continue
		}

		f, err := plot.ParseField(name)
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			v = 0
		}
		p = p.Set(f, v)
	}
	return p
}

// execute runs the pipeline for the request's plot in the given formats.
func (s *previewServer) execute(r *http.Request, formats ...string) (*pipeline.Result, error) {
	opts := s.opts
	opts.Formats = formats
	if style := r.URL.Query().Get("style"); style != "" {
		opts.Style = style
	}
	return s.runner.Execute(r.Context(), s.plotFromRequest(r), opts)
}

// =============================================================================
// Handlers
// =============================================================================

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>plotplan preview</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; color: #222; }
main { display: flex; gap: 2rem; flex-wrap: wrap; align-items: flex-start; }
table { border-collapse: collapse; }
td { padding: 0.25rem 0.75rem; border-bottom: 1px solid #ddd; }
td:last-child { text-align: right; font-variant-numeric: tabular-nums; }
.placeholder { color: #888; padding: 3rem; border: 1px dashed #bbb; }
a { color: #1565c0; }
</style>
</head>
<body>
<h1>plotplan</h1>
<main>
{{if .Placeholder}}
<div class="placeholder">{{.Placeholder}}</div>
{{else}}
<div>{{.SVG}}</div>
{{end}}
<div>
<table>
<tr><td>Plot area</td><td>{{printf "%.2f" .Metrics.PlotArea}} m²</td></tr>
<tr><td>Buildable width</td><td>{{printf "%.2f" .Metrics.BuildableWidth}} m</td></tr>
<tr><td>Buildable length</td><td>{{printf "%.2f" .Metrics.BuildableLength}} m</td></tr>
<tr><td>Ground floor area</td><td>{{printf "%.2f" .Metrics.GroundFloorArea}} m²</td></tr>
<tr><td>Total built-up area</td><td>{{printf "%.2f" .Metrics.TotalBuiltUpArea}} m²</td></tr>
<tr><td>Ground coverage</td><td>{{printf "%.2f" .Metrics.GroundCoverage}} %</td></tr>
<tr><td>Floor area ratio</td><td>{{printf "%.2f" .Metrics.FloorAreaRatio}}</td></tr>
</table>
<p><a href="/export.png">Export PNG</a> · <a href="/metrics.json">Metrics JSON</a></p>
</div>
</main>
</body>
</html>
`))

// placeholderMessage is shown when the layout engine cannot produce a
// diagram (plot and road dimensions all zero).
const placeholderMessage = "no diagram producible: enter non-zero plot or road dimensions"

type indexData struct {
	SVG         template.HTML
	Metrics     plot.Metrics
	Placeholder string
}

func (s *previewServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	p := s.plotFromRequest(r)
	data := indexData{Metrics: plot.Compute(p)}

	result, err := s.execute(r, pipeline.FormatSVG)
	switch {
	case errors.Is(err, errors.ErrCodeInvalidDimensions):
		data.Placeholder = placeholderMessage
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	default:
		data.SVG = template.HTML(result.Artifacts[pipeline.FormatSVG])
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		loggerFromContext(r.Context()).Error("render index", "err", err)
	}
}

func (s *previewServer) handleDiagramSVG(w http.ResponseWriter, r *http.Request) {
	result, err := s.execute(r, pipeline.FormatSVG)
	if errors.Is(err, errors.ErrCodeInvalidDimensions) {
		w.Header().Set("Content-Type", "image/svg+xml")
		fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="60"><text x="10" y="35" font-size="13" fill="#888">%s</text></svg>`, placeholderMessage)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(result.Artifacts[pipeline.FormatSVG])
}

func (s *previewServer) handleMetricsJSON(w http.ResponseWriter, r *http.Request) {
	p := s.plotFromRequest(r)
	w.Header().Set("Content-Type", "application/json")
	if err := plotio.WriteMetricsJSON(plot.Compute(p), w); err != nil {
		loggerFromContext(r.Context()).Error("write metrics", "err", err)
	}
}

func (s *previewServer) handleExportPNG(w http.ResponseWriter, r *http.Request) {
	result, err := s.execute(r, pipeline.FormatPNG)
	if errors.Is(err, errors.ErrCodeInvalidDimensions) {
		http.Error(w, placeholderMessage, http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="plot-diagram.png"`)
	_, _ = w.Write(result.Artifacts[pipeline.FormatPNG])
}
