package styles

import (
	"bytes"
	"fmt"

	"github.com/plotplan/plotplan/pkg/diagram"
)

// Simple renders the schematic as clean black-on-white line work with muted
// fills per element kind.
type Simple struct{}

// Name implements Style.
func (Simple) Name() string { return NameSimple }

// simplePalette maps rectangle kinds to fill and stroke colors.
var simplePalette = map[diagram.RectKind]struct{ fill, stroke string }{
	diagram.RectPlot:      {fill: "white", stroke: "#333333"},
	diagram.RectRoad:      {fill: "#d9d9d9", stroke: "#8c8c8c"},
	diagram.RectBuildable: {fill: "#e8f5e9", stroke: "#2e7d32"},
	diagram.RectParking:   {fill: "#fff3e0", stroke: "#ef6c00"},
	diagram.RectStaircase: {fill: "#ede7f6", stroke: "#5e35b1"},
}

// RenderDefs implements Style. The simple style paints a plain white
// background and needs no defs.
func (Simple) RenderDefs(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="white"/>`+"\n", width, height)
}

// RenderRect implements Style.
func (Simple) RenderRect(buf *bytes.Buffer, r diagram.Rect) {
	c, ok := simplePalette[r.Kind]
	if !ok {
		c = simplePalette[diagram.RectPlot]
	}
	dash := ""
	if r.Kind == diagram.RectBuildable {
		dash = ` stroke-dasharray="6,4"`
	}
	fmt.Fprintf(buf,
		`  <rect class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="2"%s/>`+"\n",
		r.Kind, r.X, r.Y, r.W, r.H, c.fill, c.stroke, dash)
}

// RenderLine implements Style.
func (Simple) RenderLine(buf *bytes.Buffer, l diagram.Line) {
	fmt.Fprintf(buf,
		`  <line class="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#555555" stroke-width="1"/>`+"\n",
		l.Kind, l.X1, l.Y1, l.X2, l.Y2)
}

// RenderLabel implements Style.
func (Simple) RenderLabel(buf *bytes.Buffer, l diagram.Label) {
	renderLabel(buf, l, "#333333")
}

// RenderCompass implements Style.
func (Simple) RenderCompass(buf *bytes.Buffer, c diagram.Compass) {
	renderCompass(buf, c, "#333333")
}

// renderLabel writes a centered text annotation, optionally rotated around
// its anchor point.
func renderLabel(buf *bytes.Buffer, l diagram.Label, color string) {
	size := 11.0
	if l.Kind == diagram.LabelCaption {
		size = 12.0
	}
	transform := ""
	if l.Rotate != 0 {
		transform = fmt.Sprintf(` transform="rotate(%.0f %.2f %.2f)"`, l.Rotate, l.X, l.Y)
	}
	fmt.Fprintf(buf,
		`  <text class="%s" x="%.2f" y="%.2f" font-size="%.0f" font-family="sans-serif" fill="%s" text-anchor="middle" dominant-baseline="middle"%s>%s</text>`+"\n",
		l.Kind, l.X, l.Y, size, color, transform, escapeXML(l.Text))
}

// renderCompass draws a north arrow with an "N" above it.
func renderCompass(buf *bytes.Buffer, c diagram.Compass, color string) {
	half := c.Size / 2
	fmt.Fprintf(buf,
		`  <polygon class="compass" points="%.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="%s"/>`+"\n",
		c.X, c.Y-half, c.X-half/2, c.Y+half/2, c.X+half/2, c.Y+half/2, color)
	fmt.Fprintf(buf,
		`  <text class="compass" x="%.2f" y="%.2f" font-size="12" font-family="sans-serif" fill="%s" text-anchor="middle">N</text>`+"\n",
		c.X, c.Y-half-4, color)
}
