package sink

import (
	"bytes"
	"fmt"

	"github.com/zsketch/zsketch/pkg/schematic/layout"
	"github.com/zsketch/zsketch/pkg/schematic/styles"
)

// Default rendering parameters.
const (
	// DefaultScale is the number of output pixels per schematic unit.
	DefaultScale = 40.0

	// DefaultMargin is the whitespace around the drawing, in schematic
	// units. It leaves room for labels above the top row of elements.
	DefaultMargin = 1.5

	dotRadius = 0.08 // junction dot radius in schematic units
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style  styles.Style
	scale  float64
	margin float64
}

// WithStyle sets the rendering style (default styles.Simple).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithScale sets the pixels-per-unit scale factor.
func WithScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }

// WithMargin sets the margin around the drawing in schematic units.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// RenderSVG renders a draw program as an SVG document. Primitive order is
// preserved: earlier primitives are painted first, so later ones stack on
// top.
func RenderSVG(p layout.Program, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Simple{}, scale: DefaultScale, margin: DefaultMargin}
	for _, opt := range opts {
		opt(&r)
	}

	min, max := p.Bounds()
	width := (max.X - min.X + 2*r.margin) * r.scale
	height := (max.Y - min.Y + 2*r.margin) * r.scale

	// Schematic Y grows up; SVG Y grows down.
	toPx := func(pt layout.Point) (float64, float64) {
		return (pt.X - min.X + r.margin) * r.scale, (max.Y - pt.Y + r.margin) * r.scale
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	r.style.RenderDefs(&buf)

	for _, prim := range p.Primitives {
		switch v := prim.(type) {
		case layout.Dot:
			x, y := toPx(v.At)
			r.style.RenderDot(&buf, styles.Dot{X: x, Y: y, R: dotRadius * r.scale})
		case layout.Wire:
			x1, y1 := toPx(v.From)
			x2, y2 := toPx(v.To)
			r.style.RenderWire(&buf, styles.Wire{X1: x1, Y1: y1, X2: x2, Y2: y2})
		case layout.Element:
			x1, y1 := toPx(v.Start)
			x2, y2 := toPx(v.End)
			e := styles.Element{
				Kind: v.Kind, Label: v.Label,
				X1: x1, Y1: y1, X2: x2, Y2: y2,
				Scale: r.scale,
			}
			r.style.RenderElement(&buf, e)
			r.style.RenderLabel(&buf, e)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
