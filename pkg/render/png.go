package render

import (
	"bytes"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/fogleman/gg"

	"github.com/plotplan/plotplan/pkg/diagram"
	"github.com/plotplan/plotplan/pkg/errors"
)

// DefaultPNGScale renders PNGs at 2x resolution by default.
const DefaultPNGScale = 2.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale     float64
	blueprint bool
}

// WithPNGScale sets the raster scale factor (default 2.0 for 2x resolution).
func WithPNGScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGBlueprint switches the raster palette to the blueprint style.
func WithPNGBlueprint() PNGOption {
	return func(r *pngRenderer) { r.blueprint = true }
}

// pngPalette holds the raster colors for one visual style.
type pngPalette struct {
	background string
	ink        string
	fills      map[diagram.RectKind]string
	strokes    map[diagram.RectKind]string
}

var simplePNGPalette = pngPalette{
	background: "#ffffff",
	ink:        "#333333",
	fills: map[diagram.RectKind]string{
		diagram.RectPlot:      "#ffffff",
		diagram.RectRoad:      "#d9d9d9",
		diagram.RectBuildable: "#e8f5e9",
		diagram.RectParking:   "#fff3e0",
		diagram.RectStaircase: "#ede7f6",
	},
	strokes: map[diagram.RectKind]string{
		diagram.RectPlot:      "#333333",
		diagram.RectRoad:      "#8c8c8c",
		diagram.RectBuildable: "#2e7d32",
		diagram.RectParking:   "#ef6c00",
		diagram.RectStaircase: "#5e35b1",
	},
}

var blueprintPNGPalette = pngPalette{
	background: "#10355f",
	ink:        "#e8f1fb",
	fills:      map[diagram.RectKind]string{},
	strokes: map[diagram.RectKind]string{
		diagram.RectPlot:      "#e8f1fb",
		diagram.RectRoad:      "#e8f1fb",
		diagram.RectBuildable: "#e8f1fb",
		diagram.RectParking:   "#e8f1fb",
		diagram.RectStaircase: "#e8f1fb",
	},
}

// fontPath locates a system font for PNG labels, once. An empty result means
// no usable font was found and gg falls back to its built-in bitmap face.
var fontPath = sync.OnceValue(func() string {
	for _, name := range []string{"DejaVuSans.ttf", "Arial.ttf", "Helvetica.ttf", "LiberationSans-Regular.ttf"} {
		if path, err := findfont.Find(name); err == nil {
			return path
		}
	}
	return ""
})

// RenderPNG rasterizes the diagram natively. This is the export path: the
// returned bytes are a complete PNG payload ready to be written under the
// export filename.
func RenderPNG(d diagram.Diagram, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultPNGScale}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = DefaultPNGScale
	}
	palette := simplePNGPalette
	if r.blueprint {
		palette = blueprintPNGPalette
	}

	dc := gg.NewContext(int(d.Width*r.scale), int(d.Height*r.scale))
	dc.Scale(r.scale, r.scale)

	dc.SetHexColor(palette.background)
	dc.Clear()

	for _, rect := range d.Rects {
		if fill, ok := palette.fills[rect.Kind]; ok {
			dc.SetHexColor(fill)
			dc.DrawRectangle(rect.X, rect.Y, rect.W, rect.H)
			dc.Fill()
		}
		dc.SetHexColor(stroke(palette, rect.Kind))
		dc.SetLineWidth(2)
		dc.DrawRectangle(rect.X, rect.Y, rect.W, rect.H)
		dc.Stroke()
	}

	dc.SetHexColor(palette.ink)
	dc.SetLineWidth(1)
	for _, line := range d.Lines {
		dc.DrawLine(line.X1, line.Y1, line.X2, line.Y2)
		dc.Stroke()
	}

	if path := fontPath(); path != "" {
		// On failure gg keeps its built-in face; labels still render.
		_ = dc.LoadFontFace(path, 12)
	}
	dc.SetHexColor(palette.ink)
	for _, label := range d.Labels {
		if label.Rotate != 0 {
			dc.Push()
			dc.RotateAbout(gg.Radians(label.Rotate), label.X, label.Y)
			dc.DrawStringAnchored(label.Text, label.X, label.Y, 0.5, 0.5)
			dc.Pop()
			continue
		}
		dc.DrawStringAnchored(label.Text, label.X, label.Y, 0.5, 0.5)
	}

	drawCompass(dc, d.Compass, palette.ink)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode png")
	}
	return buf.Bytes(), nil
}

func stroke(p pngPalette, kind diagram.RectKind) string {
	if s, ok := p.strokes[kind]; ok {
		return s
	}
	return p.ink
}

// drawCompass draws the north arrow and N marker.
func drawCompass(dc *gg.Context, c diagram.Compass, ink string) {
	half := c.Size / 2
	dc.SetHexColor(ink)
	dc.MoveTo(c.X, c.Y-half)
	dc.LineTo(c.X-half/2, c.Y+half/2)
	dc.LineTo(c.X+half/2, c.Y+half/2)
	dc.ClosePath()
	dc.Fill()
	dc.DrawStringAnchored("N", c.X, c.Y-half-8, 0.5, 0.5)
}
