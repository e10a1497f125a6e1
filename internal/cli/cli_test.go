package cli

import (
	"path/filepath"
	"reflect"
	"testing"

	plotio "github.com/plotplan/plotplan/pkg/io"
	"github.com/plotplan/plotplan/pkg/plot"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"svg,png", []string{"svg", "png"}},
		{"svg, png ,json", []string{"svg", "png", "json"}},
		{"svg,,png", []string{"svg", "png"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestApplySets(t *testing.T) {
	p, err := applySets(plot.Default(), []string{"plot_width=45", "floors=3"})
	if err != nil {
		t.Fatalf("applySets error: %v", err)
	}
	if p.PlotWidth != 45 {
		t.Errorf("PlotWidth = %v, want 45", p.PlotWidth)
	}
	if p.Floors != 3 {
		t.Errorf("Floors = %v, want 3", p.Floors)
	}
}

func TestApplySetsToggles(t *testing.T) {
	p, err := applySets(plot.Default(), []string{"show_parking=false", "show-staircase=true"})
	if err != nil {
		t.Fatalf("applySets error: %v", err)
	}
	if p.ShowParking {
		t.Error("ShowParking = true, want false")
	}
	if !p.ShowStaircase {
		t.Error("ShowStaircase = false, want true")
	}
}

func TestApplySetsClampsNegative(t *testing.T) {
	p, err := applySets(plot.Default(), []string{"setback_front=-4"})
	if err != nil {
		t.Fatalf("applySets error: %v", err)
	}
	if p.SetbackFront != 0 {
		t.Errorf("SetbackFront = %v, want 0 (clamped)", p.SetbackFront)
	}
}

func TestApplySetsErrors(t *testing.T) {
	tests := []string{
		"plot_width",        // no value
		"no_such_field=1",   // unknown field
		"plot_width=wide",   // unparseable number
		"show_parking=yep",  // unparseable bool
	}
	for _, s := range tests {
		if _, err := applySets(plot.Default(), []string{s}); err == nil {
			t.Errorf("applySets(%q) should error", s)
		}
	}
}

func TestLoadPlotDefaults(t *testing.T) {
	p, err := loadPlot("", nil)
	if err != nil {
		t.Fatalf("loadPlot error: %v", err)
	}
	if p != plot.Default() {
		t.Errorf("loadPlot(\"\") = %+v, want defaults", p)
	}
}

func TestLoadPlotFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.json")
	saved := plot.Default()
	saved.PlotWidth = 42
	if err := plotio.ExportJSON(saved, path); err != nil {
		t.Fatalf("ExportJSON error: %v", err)
	}

	p, err := loadPlot(path, []string{"floors=2"})
	if err != nil {
		t.Fatalf("loadPlot error: %v", err)
	}
	if p.PlotWidth != 42 {
		t.Errorf("PlotWidth = %v, want 42", p.PlotWidth)
	}
	if p.Floors != 2 {
		t.Errorf("Floors = %v, want 2 (override)", p.Floors)
	}
}

func TestLoadPlotMissingFile(t *testing.T) {
	if _, err := loadPlot(filepath.Join(t.TempDir(), "nope.json"), nil); err == nil {
		t.Error("loadPlot should error for missing file")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	c := New(discardWriter{}, LogInfo)
	root := c.RootCommand()

	want := []string{"metrics", "render", "form", "preview", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
