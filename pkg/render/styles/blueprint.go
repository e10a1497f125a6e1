package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/plotplan/plotplan/pkg/diagram"
)

// Blueprint renders the schematic as white line work on a blueprint-blue
// background with a faint grid, in the manner of traditional drafting prints.
type Blueprint struct{}

// Name implements Style.
func (Blueprint) Name() string { return NameBlueprint }

const (
	blueprintBackground = "#10355f"
	blueprintInk        = "#e8f1fb"
	blueprintGrid       = "#1d4a7d"
)

// blueprintFills maps rectangle kinds to translucent fills; line work stays
// uniformly white as on a real print.
var blueprintFills = map[diagram.RectKind]string{
	diagram.RectPlot:      "none",
	diagram.RectRoad:      "rgba(232,241,251,0.12)",
	diagram.RectBuildable: "rgba(232,241,251,0.08)",
	diagram.RectParking:   "rgba(232,241,251,0.18)",
	diagram.RectStaircase: "rgba(232,241,251,0.25)",
}

// RenderDefs implements Style. Writes the grid pattern and background.
func (Blueprint) RenderDefs(buf *bytes.Buffer, width, height float64) {
	buf.WriteString(`  <defs>
    <pattern id="blueprint-grid" width="20" height="20" patternUnits="userSpaceOnUse">
      <path d="M 20 0 L 0 0 0 20" fill="none" stroke="` + blueprintGrid + `" stroke-width="1"/>
    </pattern>
  </defs>
`)
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n", width, height, blueprintBackground)
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="url(#blueprint-grid)"/>`+"\n", width, height)
}

// RenderRect implements Style.
func (Blueprint) RenderRect(buf *bytes.Buffer, r diagram.Rect) {
	fill, ok := blueprintFills[r.Kind]
	if !ok {
		fill = "none"
	}
	dash := ""
	if r.Kind == diagram.RectBuildable {
		dash = ` stroke-dasharray="6,4"`
	}
	fmt.Fprintf(buf,
		`  <rect class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="1.5"%s/>`+"\n",
		r.Kind, r.X, r.Y, r.W, r.H, fill, blueprintInk, dash)
}

// RenderLine implements Style.
func (Blueprint) RenderLine(buf *bytes.Buffer, l diagram.Line) {
	fmt.Fprintf(buf,
		`  <line class="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`+"\n",
		l.Kind, l.X1, l.Y1, l.X2, l.Y2, blueprintInk)
}

// RenderLabel implements Style.
func (Blueprint) RenderLabel(buf *bytes.Buffer, l diagram.Label) {
	renderLabel(buf, l, blueprintInk)
}

// RenderCompass implements Style.
func (Blueprint) RenderCompass(buf *bytes.Buffer, c diagram.Compass) {
	renderCompass(buf, c, blueprintInk)
}

// escapeXML escapes text content for safe inclusion in SVG markup.
func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
