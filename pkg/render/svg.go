// Package render turns a diagram's primitive set into output artifacts.
//
// The SVG sink assembles markup directly (no templating), delegating the
// appearance of each primitive to a [styles.Style]. The PNG sink rasterizes
// the primitives natively; the PDF sink converts the SVG via rsvg-convert.
package render

import (
	"bytes"
	"fmt"

	"github.com/plotplan/plotplan/pkg/diagram"
	"github.com/plotplan/plotplan/pkg/render/styles"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style styles.Style
}

// WithStyle sets the visual style (default: simple).
func WithStyle(s styles.Style) SVGOption {
	return func(r *svgRenderer) { r.style = s }
}

// RenderSVG renders the diagram as a standalone SVG document.
func RenderSVG(d diagram.Diagram, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Simple{}}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		d.Width, d.Height, d.Width, d.Height)

	r.style.RenderDefs(&buf, d.Width, d.Height)
	for _, rect := range d.Rects {
		r.style.RenderRect(&buf, rect)
	}
	for _, line := range d.Lines {
		r.style.RenderLine(&buf, line)
	}
	for _, label := range d.Labels {
		r.style.RenderLabel(&buf, label)
	}
	r.style.RenderCompass(&buf, d.Compass)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
