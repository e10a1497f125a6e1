// Package plot defines the dimensional input set for a building plot and the
// derived planning metrics computed from it.
//
// A [Plot] holds the raw user-entered dimensions (plot size, road width,
// setbacks, floor count, optional parking and staircase geometry). All
// numeric fields are non-negative by construction: updates go through
// [Plot.Set], which clamps negative and non-numeric values to zero.
//
// [Compute] derives the planning metrics (buildable area, ground coverage,
// floor-area ratio) as a pure function of the plot. Neither type has hidden
// state; feeding the same plot twice yields identical results.
package plot

import (
	"fmt"
	"math"
	"strings"
)

// Field identifies a single numeric dimension of a Plot.
// Using a closed enumeration avoids stringly-typed field access: callers
// parse external names once via [ParseField] and update through [Plot.Set].
type Field int

// Numeric plot fields. All values are in meters except Floors (a count).
const (
	FieldPlotWidth Field = iota
	FieldPlotLength
	FieldRoadWidth
	FieldParkingWidth
	FieldParkingLength
	FieldSetbackFront
	FieldSetbackBack
	FieldSetbackLeft
	FieldSetbackRight
	FieldFloors
	FieldStairWidth
	FieldStairLength
	FieldStairOffsetX
	FieldStairOffsetY
)

// fieldNames maps fields to their canonical external names.
// These names appear in CLI flags, JSON files, and preview URL parameters.
var fieldNames = map[Field]string{
	FieldPlotWidth:     "plot_width",
	FieldPlotLength:    "plot_length",
	FieldRoadWidth:     "road_width",
	FieldParkingWidth:  "parking_width",
	FieldParkingLength: "parking_length",
	FieldSetbackFront:  "setback_front",
	FieldSetbackBack:   "setback_back",
	FieldSetbackLeft:   "setback_left",
	FieldSetbackRight:  "setback_right",
	FieldFloors:        "floors",
	FieldStairWidth:    "stair_width",
	FieldStairLength:   "stair_length",
	FieldStairOffsetX:  "stair_offset_x",
	FieldStairOffsetY:  "stair_offset_y",
}

// String returns the canonical external name of the field.
func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Fields returns all numeric fields in display order.
func Fields() []Field {
	return []Field{
		FieldPlotWidth, FieldPlotLength, FieldRoadWidth,
		FieldSetbackFront, FieldSetbackBack, FieldSetbackLeft, FieldSetbackRight,
		FieldFloors,
		FieldParkingWidth, FieldParkingLength,
		FieldStairWidth, FieldStairLength, FieldStairOffsetX, FieldStairOffsetY,
	}
}

// ParseField resolves an external field name to its Field value.
// Names are case-insensitive; both "plot_width" and "plot-width" are accepted.
func ParseField(name string) (Field, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for f, n := range fieldNames {
		if n == normalized {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown field: %q", name)
}

// Plot is the dimensional input set. All lengths are in meters.
//
// The zero value is a valid (if degenerate) plot; use [Default] for the
// startup defaults. Plot is a plain value type owned by the caller - the
// calculator and layout engine take it as input and never retain it.
type Plot struct {
	PlotWidth  float64 `json:"plot_width"`
	PlotLength float64 `json:"plot_length"`
	RoadWidth  float64 `json:"road_width"`

	SetbackFront float64 `json:"setback_front"`
	SetbackBack  float64 `json:"setback_back"`
	SetbackLeft  float64 `json:"setback_left"`
	SetbackRight float64 `json:"setback_right"`

	Floors float64 `json:"floors"`

	ParkingWidth  float64 `json:"parking_width"`
	ParkingLength float64 `json:"parking_length"`

	// Staircase placement uses explicit offsets from the buildable
	// rectangle's top-left corner, in meters.
	StairWidth   float64 `json:"stair_width"`
	StairLength  float64 `json:"stair_length"`
	StairOffsetX float64 `json:"stair_offset_x"`
	StairOffsetY float64 `json:"stair_offset_y"`

	ShowParking   bool `json:"show_parking"`
	ShowStaircase bool `json:"show_staircase"`
}

// Default returns the plot used at startup before any user edits.
func Default() Plot {
	return Plot{
		PlotWidth:     30,
		PlotLength:    60,
		RoadWidth:     12,
		SetbackFront:  10,
		SetbackBack:   5,
		SetbackLeft:   5,
		SetbackRight:  5,
		Floors:        5,
		ParkingWidth:  10,
		ParkingLength: 15,
		StairWidth:    4,
		StairLength:   6,
		StairOffsetX:  1,
		StairOffsetY:  1,
		ShowParking:   true,
		ShowStaircase: false,
	}
}

// Set updates a single numeric field and returns the validated plot.
// Negative and non-numeric (NaN, Inf) values are clamped to zero; this is
// the only input validation performed, per the clamped-non-negative domain
// contract. Set never fails.
func (p Plot) Set(f Field, v float64) Plot {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	switch f {
	case FieldPlotWidth:
		p.PlotWidth = v
	case FieldPlotLength:
		p.PlotLength = v
	case FieldRoadWidth:
		p.RoadWidth = v
	case FieldParkingWidth:
		p.ParkingWidth = v
	case FieldParkingLength:
		p.ParkingLength = v
	case FieldSetbackFront:
		p.SetbackFront = v
	case FieldSetbackBack:
		p.SetbackBack = v
	case FieldSetbackLeft:
		p.SetbackLeft = v
	case FieldSetbackRight:
		p.SetbackRight = v
	case FieldFloors:
		p.Floors = v
	case FieldStairWidth:
		p.StairWidth = v
	case FieldStairLength:
		p.StairLength = v
	case FieldStairOffsetX:
		p.StairOffsetX = v
	case FieldStairOffsetY:
		p.StairOffsetY = v
	}
	return p
}

// Get returns the current value of a numeric field.
func (p Plot) Get(f Field) float64 {
	switch f {
	case FieldPlotWidth:
		return p.PlotWidth
	case FieldPlotLength:
		return p.PlotLength
	case FieldRoadWidth:
		return p.RoadWidth
	case FieldParkingWidth:
		return p.ParkingWidth
	case FieldParkingLength:
		return p.ParkingLength
	case FieldSetbackFront:
		return p.SetbackFront
	case FieldSetbackBack:
		return p.SetbackBack
	case FieldSetbackLeft:
		return p.SetbackLeft
	case FieldSetbackRight:
		return p.SetbackRight
	case FieldFloors:
		return p.Floors
	case FieldStairWidth:
		return p.StairWidth
	case FieldStairLength:
		return p.StairLength
	case FieldStairOffsetX:
		return p.StairOffsetX
	case FieldStairOffsetY:
		return p.StairOffsetY
	}
	return 0
}

// Normalize clamps every numeric field to be non-negative.
// Plots built through [Plot.Set] are already normalized; this exists for
// plots decoded from external sources (JSON files, URL parameters).
func (p Plot) Normalize() Plot {
	for _, f := range Fields() {
		p = p.Set(f, p.Get(f))
	}
	return p
}
