// Package styles defines the visual appearance of rendered plot schematics.
//
// A [Style] maps each drawing primitive kind to SVG markup. Two styles ship
// with plotplan: [Simple] (clean black-on-white line work) and [Blueprint]
// (white line work on a blueprint-blue background).
package styles

import (
	"bytes"

	"github.com/plotplan/plotplan/pkg/diagram"
)

// Style defines the visual appearance for schematic rendering.
// Implementations control how rectangles, dimension lines, labels, and the
// compass are drawn.
type Style interface {
	// Name returns the style's registry name.
	Name() string
	// RenderDefs writes SVG <defs> content (patterns, markers) plus any
	// background for the given canvas size.
	RenderDefs(buf *bytes.Buffer, width, height float64)
	// RenderRect writes the SVG for a single schematic rectangle.
	RenderRect(buf *bytes.Buffer, r diagram.Rect)
	// RenderLine writes the SVG for a dimension line.
	RenderLine(buf *bytes.Buffer, l diagram.Line)
	// RenderLabel writes the SVG for a text annotation.
	RenderLabel(buf *bytes.Buffer, l diagram.Label)
	// RenderCompass writes the SVG for the north indicator.
	RenderCompass(buf *bytes.Buffer, c diagram.Compass)
}

// Style registry names.
const (
	NameSimple    = "simple"
	NameBlueprint = "blueprint"
)

// ByName returns the style registered under name, or false if unknown.
func ByName(name string) (Style, bool) {
	switch name {
	case NameSimple:
		return Simple{}, true
	case NameBlueprint:
		return Blueprint{}, true
	}
	return nil, false
}

// Names returns the registered style names in display order.
func Names() []string {
	return []string{NameSimple, NameBlueprint}
}
