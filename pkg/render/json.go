package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/plotplan/plotplan/pkg/diagram"
)

// RenderJSON encodes the diagram's primitive set as indented JSON.
// The output is stable for identical inputs, so it doubles as a comparison
// artifact in tests and cache keys.
func RenderJSON(d diagram.Diagram) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode diagram: %w", err)
	}
	return buf.Bytes(), nil
}
