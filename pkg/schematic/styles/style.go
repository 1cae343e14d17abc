// Package styles defines the visual appearance of schematic primitives.
package styles

import (
	"bytes"

	"github.com/zsketch/zsketch/pkg/notation"
)

// Style defines the visual appearance for schematic rendering.
// Implementations control how junctions, wires, element glyphs and labels are
// drawn. All coordinates are in output pixels; the sink handles the
// schematic-unit to pixel transform.
type Style interface {
	// RenderDefs writes SVG <defs> content (markers, filters).
	RenderDefs(buf *bytes.Buffer)
	// RenderDot writes the SVG for a junction dot.
	RenderDot(buf *bytes.Buffer, d Dot)
	// RenderWire writes the SVG for a connecting wire.
	RenderWire(buf *bytes.Buffer, w Wire)
	// RenderElement writes the SVG for an element glyph, leads included.
	RenderElement(buf *bytes.Buffer, e Element)
	// RenderLabel writes the SVG for an element's label text.
	RenderLabel(buf *bytes.Buffer, e Element)
}

// Dot contains positioning data for a junction dot.
type Dot struct {
	X, Y float64 // Center in pixels
	R    float64 // Radius in pixels
}

// Wire contains positioning data for a connecting wire.
type Wire struct {
	X1, Y1, X2, Y2 float64
}

// Element contains all data needed to render a single element glyph.
type Element struct {
	Kind  notation.Kind // Glyph family
	Label string        // Display text (full token, e.g. "CPE1")
	// Terminal coordinates in pixels. The glyph body sits on the segment
	// between them.
	X1, Y1, X2, Y2 float64
	Scale          float64 // Pixels per schematic unit
}
