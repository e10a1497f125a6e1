// Package diagram converts a plot's dimensional inputs into a scaled set of
// drawing primitives ready for rendering.
//
// The layout engine is a pure function: [Build] maps a [plot.Plot] plus two
// layout constants (padding margin, maximum pixel extent) to positioned
// rectangles, dimension annotations, and a compass. The uniform scale factor
// is recomputed on every call so the whole schematic always fits the
// bounding box while preserving aspect ratio (fit-to-box, not fixed-zoom).
//
// Coordinates are in pixels with the origin at the top-left and the y axis
// pointing down, matching SVG conventions.
package diagram

// Layout constants used when [Options] leaves them zero.
const (
	// DefaultMaxSize is the square bounding box the scaled plot+road
	// extent must fit inside, in pixels.
	DefaultMaxSize = 500.0

	// DefaultPadding is the uniform margin added around the drawing so
	// nothing touches the viewport edge.
	DefaultPadding = 40.0
)

// RectKind identifies what a rectangle represents in the schematic.
type RectKind string

const (
	RectPlot      RectKind = "plot"
	RectRoad      RectKind = "road"
	RectBuildable RectKind = "buildable"
	RectParking   RectKind = "parking"
	RectStaircase RectKind = "staircase"
)

// Rect is a positioned rectangle in pixel space.
type Rect struct {
	Kind RectKind `json:"kind"`
	X    float64  `json:"x"`
	Y    float64  `json:"y"`
	W    float64  `json:"w"`
	H    float64  `json:"h"`
}

// LineKind identifies the role of a line primitive.
type LineKind string

const (
	// LineDimension marks measurement lines and their end ticks.
	LineDimension LineKind = "dimension"
)

// Line is a straight segment in pixel space.
type Line struct {
	Kind LineKind `json:"kind"`
	X1   float64  `json:"x1"`
	Y1   float64  `json:"y1"`
	X2   float64  `json:"x2"`
	Y2   float64  `json:"y2"`
}

// LabelKind identifies the role of a text primitive.
type LabelKind string

const (
	LabelDimension LabelKind = "dimension"
	LabelRoad      LabelKind = "road"
	LabelCaption   LabelKind = "caption"
)

// Label is a positioned text annotation. Rotate is in degrees, applied
// around the label's anchor point.
type Label struct {
	Kind   LabelKind `json:"kind"`
	Text   string    `json:"text"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Rotate float64   `json:"rotate,omitempty"`
}

// Compass is the north indicator drawn in the top-right corner.
type Compass struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
}

// Diagram is the complete drawing primitive set for one plot. It has no
// lifecycle beyond the current render; every input change produces a fresh
// Diagram.
type Diagram struct {
	// Scale is the uniform real-unit to pixel factor.
	Scale float64 `json:"scale"`

	// Width and Height are the canvas dimensions including padding.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Rects   []Rect  `json:"rects"`
	Lines   []Line  `json:"lines"`
	Labels  []Label `json:"labels"`
	Compass Compass `json:"compass"`
}

// Rect returns the first rectangle of the given kind, if present.
func (d Diagram) Rect(kind RectKind) (Rect, bool) {
	for _, r := range d.Rects {
		if r.Kind == kind {
			return r, true
		}
	}
	return Rect{}, false
}

// Options configures the layout engine. Zero values fall back to the
// package defaults.
type Options struct {
	// MaxSize is the side of the square bounding box, in pixels.
	MaxSize float64 `json:"max_size,omitempty"`

	// Padding is the uniform margin, in pixels.
	Padding float64 `json:"padding,omitempty"`
}

// withDefaults fills unset option values.
func (o Options) withDefaults() Options {
	if o.MaxSize <= 0 {
		o.MaxSize = DefaultMaxSize
	}
	if o.Padding <= 0 {
		o.Padding = DefaultPadding
	}
	return o
}
