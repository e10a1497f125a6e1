package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/plotplan/plotplan/pkg/pipeline"
	"github.com/plotplan/plotplan/pkg/plot"
)

func newTestPreviewServer() *previewServer {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return &previewServer{
		base:   plot.Default(),
		runner: pipeline.NewRunner(nil, nil, logger),
		opts:   pipeline.Options{Logger: logger},
		logger: logger,
	}
}

func TestPreviewIndex(t *testing.T) {
	srv := httptest.NewServer(newTestPreviewServer().routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	html := string(body)
	if !strings.Contains(html, "<svg") {
		t.Error("index missing inline SVG")
	}
	if !strings.Contains(html, "900.00") {
		t.Error("index missing plot area metric")
	}
}

func TestPreviewDiagramSVG(t *testing.T) {
	srv := httptest.NewServer(newTestPreviewServer().routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/diagram.svg")
	if err != nil {
		t.Fatalf("GET /diagram.svg: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "<svg") {
		t.Error("response is not an SVG document")
	}
}

func TestPreviewDiagramSVGPlaceholder(t *testing.T) {
	srv := httptest.NewServer(newTestPreviewServer().routes())
	defer srv.Close()

	// Zeroing width collapses the horizontal extent; the layout engine
	// cannot produce a diagram and the handler serves the placeholder.
	resp, err := http.Get(srv.URL + "/diagram.svg?plot_width=0")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "no diagram producible") {
		t.Error("placeholder message missing for zero extent")
	}
}

func TestPreviewMetricsJSON(t *testing.T) {
	srv := httptest.NewServer(newTestPreviewServer().routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics.json?plot_width=20&plot_length=45&setback_left=0&setback_right=0&setback_front=0&setback_back=0&floors=1")
	if err != nil {
		t.Fatalf("GET /metrics.json: %v", err)
	}
	defer resp.Body.Close()

	var m plot.Metrics
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	if m.PlotArea != 900 {
		t.Errorf("PlotArea = %v, want 900", m.PlotArea)
	}
	if m.GroundCoverage != 100 {
		t.Errorf("GroundCoverage = %v, want 100 (no setbacks)", m.GroundCoverage)
	}
}

func TestPreviewQueryOverridesToggles(t *testing.T) {
	s := newTestPreviewServer()
	req := httptest.NewRequest(http.MethodGet, "/?show_staircase=true&show_parking=false", nil)

	p := s.plotFromRequest(req)
	if !p.ShowStaircase {
		t.Error("ShowStaircase = false, want true")
	}
	if p.ShowParking {
		t.Error("ShowParking = true, want false")
	}
}

func TestPreviewQueryIgnoresUnknownParams(t *testing.T) {
	s := newTestPreviewServer()
	req := httptest.NewRequest(http.MethodGet, "/?style=blueprint&bogus=1&plot_width=25", nil)

	p := s.plotFromRequest(req)
	if p.PlotWidth != 25 {
		t.Errorf("PlotWidth = %v, want 25", p.PlotWidth)
	}
	if p.PlotLength != plot.Default().PlotLength {
		t.Errorf("PlotLength = %v, want unchanged", p.PlotLength)
	}
}

func TestPreviewExportPNG(t *testing.T) {
	srv := httptest.NewServer(newTestPreviewServer().routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/export.png")
	if err != nil {
		t.Fatalf("GET /export.png: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	magic := make([]byte, 8)
	if _, err := io.ReadFull(resp.Body, magic); err != nil {
		t.Fatalf("read magic: %v", err)
	}
	if string(magic) != "\x89PNG\r\n\x1a\n" {
		t.Error("response is not a PNG")
	}
}
