// Package io reads and writes plot files.
//
// A plot file is a JSON object with the dimensional input fields; see
// [plot.Plot] for the field names. Values are normalized on import, so
// hand-edited files with negative numbers load as zeroes instead of failing.
package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/plotplan/plotplan/pkg/errors"
	"github.com/plotplan/plotplan/pkg/plot"
)

// ReadJSON decodes a plot from r.
//
// The input must be a JSON object using the canonical field names:
//
//	{
//	  "plot_width": 30,
//	  "plot_length": 60,
//	  "road_width": 12,
//	  "show_parking": true
//	}
//
// Unknown fields are rejected so typos surface instead of silently loading
// defaults. Negative values are clamped to zero after decoding.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (plot.Plot, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var p plot.Plot
	if err := dec.Decode(&p); err != nil {
		return plot.Plot{}, fmt.Errorf("decode: %w", err)
	}
	return p.Normalize(), nil
}

// ImportJSON reads a plot from a JSON file at path.
func ImportJSON(path string) (plot.Plot, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return plot.Plot{}, errors.New(errors.ErrCodeFileNotFound, "plot file not found: %s", path)
	}
	if err != nil {
		return plot.Plot{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	p, err := ReadJSON(f)
	if err != nil {
		return plot.Plot{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
