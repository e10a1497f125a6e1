package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/plotplan/plotplan/pkg/plot"
)

// WriteJSON encodes a plot as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip editing.
func WriteJSON(p plot.Plot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteMetricsJSON encodes derived metrics as indented JSON and writes them
// to w. Metrics are output-only; there is no corresponding reader.
func WriteMetricsJSON(m plot.Metrics, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a plot to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(p plot.Plot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(p, f)
}
