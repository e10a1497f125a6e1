package io

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/plotplan/plotplan/pkg/errors"
	"github.com/plotplan/plotplan/pkg/plot"
)

func TestReadJSON(t *testing.T) {
	input := `{
  "plot_width": 30,
  "plot_length": 60,
  "road_width": 12,
  "setback_front": 10,
  "floors": 5,
  "show_parking": true
}`
	p, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}
	if p.PlotWidth != 30 || p.PlotLength != 60 || p.RoadWidth != 12 {
		t.Errorf("dimensions = (%v, %v, %v), want (30, 60, 12)", p.PlotWidth, p.PlotLength, p.RoadWidth)
	}
	if !p.ShowParking {
		t.Error("ShowParking = false, want true")
	}
}

func TestReadJSONClampsNegatives(t *testing.T) {
	input := `{"plot_width": -30, "plot_length": 60}`
	p, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}
	if p.PlotWidth != 0 {
		t.Errorf("PlotWidth = %v, want 0 (clamped)", p.PlotWidth)
	}
	if p.PlotLength != 60 {
		t.Errorf("PlotLength = %v, want 60", p.PlotLength)
	}
}

func TestReadJSONRejectsUnknownFields(t *testing.T) {
	input := `{"plot_widht": 30}`
	if _, err := ReadJSON(strings.NewReader(input)); err == nil {
		t.Error("ReadJSON should reject unknown fields")
	}
}

func TestReadJSONMalformed(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("{not json")); err == nil {
		t.Error("ReadJSON should error on malformed input")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.json")

	original := plot.Default()
	original.ShowStaircase = true
	original.StairOffsetX = 2.5

	if err := ExportJSON(original, path); err != nil {
		t.Fatalf("ExportJSON error: %v", err)
	}

	loaded, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON error: %v", err)
	}
	if loaded != original {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, original)
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("ImportJSON should error for missing file")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}
