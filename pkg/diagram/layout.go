package diagram

import (
	"fmt"

	"github.com/plotplan/plotplan/pkg/errors"
	"github.com/plotplan/plotplan/pkg/plot"
)

// compassSize is the edge length of the north indicator in pixels.
const compassSize = 26

// Build lays out the schematic for a plot.
//
// The drawing extent in real units is plot width by plot length plus road
// width (the road strip sits below the plot). If either extent is
// non-positive, Build returns an error with code
// [errors.ErrCodeInvalidDimensions]: there is no diagram to produce and the
// caller renders a placeholder instead.
//
// The scale factor is min(maxSize/extentW, maxSize/extentH), so the binding
// dimension reaches exactly the box edge and the other stays inside it.
func Build(p plot.Plot, opts Options) (Diagram, error) {
	opts = opts.withDefaults()

	extentW := p.PlotWidth
	extentH := p.PlotLength + p.RoadWidth
	if extentW <= 0 || extentH <= 0 {
		return Diagram{}, errors.New(errors.ErrCodeInvalidDimensions,
			"plot dimensions must be positive (width %.1f, length+road %.1f)", extentW, extentH)
	}

	scale := min(opts.MaxSize/extentW, opts.MaxSize/extentH)
	pad := opts.Padding

	m := plot.Compute(p)

	d := Diagram{
		Scale:  scale,
		Width:  extentW*scale + 2*pad,
		Height: extentH*scale + 2*pad,
	}

	plotRect := Rect{
		Kind: RectPlot,
		X:    pad,
		Y:    pad,
		W:    p.PlotWidth * scale,
		H:    p.PlotLength * scale,
	}
	d.Rects = append(d.Rects, plotRect)

	roadRect := Rect{
		Kind: RectRoad,
		X:    plotRect.X,
		Y:    plotRect.Y + plotRect.H,
		W:    plotRect.W,
		H:    p.RoadWidth * scale,
	}
	d.Rects = append(d.Rects, roadRect)

	// The buildable rectangle sits between front and back setbacks but is
	// anchored from the back-setback edge in the drawing's frame: the back
	// setback is the top offset.
	buildable := Rect{
		Kind: RectBuildable,
		X:    plotRect.X + p.SetbackLeft*scale,
		Y:    plotRect.Y + p.SetbackBack*scale,
		W:    m.BuildableWidth * scale,
		H:    m.BuildableLength * scale,
	}
	if buildable.W > 0 && buildable.H > 0 {
		d.Rects = append(d.Rects, buildable)
	}

	if p.ShowParking && p.ParkingWidth > 0 && p.ParkingLength > 0 {
		// Centered horizontally in the buildable area, flush against its
		// back (top) edge.
		parking := Rect{
			Kind: RectParking,
			X:    buildable.X + (buildable.W-p.ParkingWidth*scale)/2,
			Y:    buildable.Y,
			W:    p.ParkingWidth * scale,
			H:    p.ParkingLength * scale,
		}
		d.Rects = append(d.Rects, parking)
	}

	if p.ShowStaircase && p.StairWidth > 0 && p.StairLength > 0 {
		stair := Rect{
			Kind: RectStaircase,
			X:    buildable.X + p.StairOffsetX*scale,
			Y:    buildable.Y + p.StairOffsetY*scale,
			W:    p.StairWidth * scale,
			H:    p.StairLength * scale,
		}
		d.Rects = append(d.Rects, stair)
	}

	d.Lines, d.Labels = annotations(p, m, plotRect, roadRect)
	d.Compass = Compass{X: d.Width - pad/2, Y: pad / 2, Size: compassSize}

	return d, nil
}

// annotations builds the dimension lines and labels keyed off the same
// scale factor as the rectangles: plot width along the bottom, plot length
// along the left side, road width centered in the road strip, and a metric
// caption above the drawing.
func annotations(p plot.Plot, m plot.Metrics, plotRect, roadRect Rect) ([]Line, []Label) {
	const tick = 4.0

	widthY := roadRect.Y + roadRect.H + 16
	lengthX := plotRect.X - 16

	lines := []Line{
		// Plot width along the bottom, below the road strip.
		{Kind: LineDimension, X1: plotRect.X, Y1: widthY, X2: plotRect.X + plotRect.W, Y2: widthY},
		{Kind: LineDimension, X1: plotRect.X, Y1: widthY - tick, X2: plotRect.X, Y2: widthY + tick},
		{Kind: LineDimension, X1: plotRect.X + plotRect.W, Y1: widthY - tick, X2: plotRect.X + plotRect.W, Y2: widthY + tick},

		// Plot length along the left side.
		{Kind: LineDimension, X1: lengthX, Y1: plotRect.Y, X2: lengthX, Y2: plotRect.Y + plotRect.H},
		{Kind: LineDimension, X1: lengthX - tick, Y1: plotRect.Y, X2: lengthX + tick, Y2: plotRect.Y},
		{Kind: LineDimension, X1: lengthX - tick, Y1: plotRect.Y + plotRect.H, X2: lengthX + tick, Y2: plotRect.Y + plotRect.H},
	}

	labels := []Label{
		{
			Kind: LabelDimension,
			Text: fmt.Sprintf("%.1f m", p.PlotWidth),
			X:    plotRect.X + plotRect.W/2,
			Y:    widthY + 12,
		},
		{
			Kind:   LabelDimension,
			Text:   fmt.Sprintf("%.1f m", p.PlotLength),
			X:      lengthX - 6,
			Y:      plotRect.Y + plotRect.H/2,
			Rotate: -90,
		},
		{
			Kind: LabelRoad,
			Text: fmt.Sprintf("Road %.1f m", p.RoadWidth),
			X:    roadRect.X + roadRect.W/2,
			Y:    roadRect.Y + roadRect.H/2,
		},
		{
			Kind: LabelCaption,
			Text: fmt.Sprintf("Coverage %.2f%%  FAR %.2f", m.GroundCoverage, m.FloorAreaRatio),
			X:    plotRect.X,
			Y:    plotRect.Y - 12,
		},
	}

	return lines, labels
}
