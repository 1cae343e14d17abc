package styles

import (
	"bytes"
	"fmt"
	"math"

	"github.com/zsketch/zsketch/pkg/notation"
)

// Simple renders schematics with plain IEC-style glyphs: boxed resistors,
// parallel-plate capacitors, humped inductors. Distributed elements (Warburg,
// CPE, Gerischer, ...) are drawn as labeled boxes, as is common in
// impedance-spectroscopy papers.
type Simple struct{}

const (
	strokeColor = "#1a1a1a"
	strokeWidth = 2.0
)

// frame is a local coordinate system along an element: t runs from terminal 1
// to terminal 2, s runs across. Units are pixels.
type frame struct {
	x1, y1 float64
	ux, uy float64 // unit vector along the element
	nx, ny float64 // unit normal
	length float64
}

func newFrame(e Element) frame {
	dx, dy := e.X2-e.X1, e.Y2-e.Y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return frame{x1: e.X1, y1: e.Y1, ux: 1, length: 0}
	}
	ux, uy := dx/length, dy/length
	return frame{
		x1: e.X1, y1: e.Y1,
		ux: ux, uy: uy,
		nx: -uy, ny: ux,
		length: length,
	}
}

// at maps local (t, s) to absolute pixel coordinates.
func (f frame) at(t, s float64) (float64, float64) {
	return f.x1 + f.ux*t + f.nx*s, f.y1 + f.uy*t + f.ny*s
}

// RenderDefs writes nothing; the simple style needs no defs.
func (Simple) RenderDefs(buf *bytes.Buffer) {}

// RenderDot draws a filled junction dot.
func (Simple) RenderDot(buf *bytes.Buffer, d Dot) {
	fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
		d.X, d.Y, d.R, strokeColor)
}

// RenderWire draws a straight connecting line.
func (Simple) RenderWire(buf *bytes.Buffer, w Wire) {
	if w.X1 == w.X2 && w.Y1 == w.Y2 {
		return // zero-length connector, nothing to draw
	}
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f" stroke-linecap="round"/>`+"\n",
		w.X1, w.Y1, w.X2, w.Y2, strokeColor, strokeWidth)
}

// RenderElement draws the glyph for an element, leads included.
func (s Simple) RenderElement(buf *bytes.Buffer, e Element) {
	f := newFrame(e)
	switch e.Kind {
	case notation.KindCapacitor:
		s.capacitor(buf, f, e.Scale)
	case notation.KindInductor:
		s.inductor(buf, f, e.Scale)
	case notation.KindDiode:
		s.diode(buf, f, e.Scale, false)
	case notation.KindLED:
		s.diode(buf, f, e.Scale, true)
	case notation.KindBattery:
		s.battery(buf, f, e.Scale)
	case notation.KindSwitch:
		s.switchGlyph(buf, f, e.Scale)
	case notation.KindGround:
		s.ground(buf, f, e.Scale)
	default:
		// Resistors and all distributed elements share the box glyph.
		s.box(buf, f, e.Scale)
	}
}

// RenderLabel draws the element's label above its midpoint.
func (Simple) RenderLabel(buf *bytes.Buffer, e Element) {
	if e.Label == "" {
		return
	}
	f := newFrame(e)
	x, y := f.at(f.length/2, -0.75*e.Scale)
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="%.1f" fill="%s">%s</text>`+"\n",
		x, y, 0.38*e.Scale, strokeColor, escapeText(e.Label))
}

func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

func (Simple) lead(buf *bytes.Buffer, f frame, t1, t2 float64) {
	x1, y1 := f.at(t1, 0)
	x2, y2 := f.at(t2, 0)
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f" stroke-linecap="round"/>`+"\n",
		x1, y1, x2, y2, strokeColor, strokeWidth)
}

func polyline(buf *bytes.Buffer, pts []float64, closed bool) {
	var b bytes.Buffer
	for i := 0; i+1 < len(pts); i += 2 {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.2f,%.2f", pts[i], pts[i+1])
	}
	tag := "polyline"
	if closed {
		tag = "polygon"
	}
	fmt.Fprintf(buf, `  <%s points="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-linejoin="round"/>`+"\n",
		tag, b.String(), strokeColor, strokeWidth)
}

// box draws the IEC rectangular element body centered between the terminals.
func (s Simple) box(buf *bytes.Buffer, f frame, scale float64) {
	body := 1.0 * scale
	h := 0.3 * scale
	t0 := (f.length - body) / 2
	t1 := t0 + body

	s.lead(buf, f, 0, t0)
	s.lead(buf, f, t1, f.length)

	ax, ay := f.at(t0, -h)
	bx, by := f.at(t1, -h)
	cx, cy := f.at(t1, h)
	dx, dy := f.at(t0, h)
	polyline(buf, []float64{ax, ay, bx, by, cx, cy, dx, dy}, true)
}

// capacitor draws two parallel plates with a small gap.
func (s Simple) capacitor(buf *bytes.Buffer, f frame, scale float64) {
	gap := 0.25 * scale
	h := 0.5 * scale
	t0 := (f.length - gap) / 2
	t1 := t0 + gap

	s.lead(buf, f, 0, t0)
	s.lead(buf, f, t1, f.length)

	for _, t := range []float64{t0, t1} {
		x1, y1 := f.at(t, -h)
		x2, y2 := f.at(t, h)
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			x1, y1, x2, y2, strokeColor, strokeWidth)
	}
}

// inductor draws four semicircular humps.
func (s Simple) inductor(buf *bytes.Buffer, f frame, scale float64) {
	const humps = 4
	r := 0.2 * scale
	body := float64(humps) * 2 * r
	t0 := (f.length - body) / 2

	s.lead(buf, f, 0, t0)
	s.lead(buf, f, t0+body, f.length)

	var path bytes.Buffer
	x, y := f.at(t0, 0)
	fmt.Fprintf(&path, "M %.2f %.2f", x, y)
	for i := 0; i < humps; i++ {
		ex, ey := f.at(t0+float64(i+1)*2*r, 0)
		fmt.Fprintf(&path, " A %.2f %.2f 0 0 1 %.2f %.2f", r, r, ex, ey)
	}
	fmt.Fprintf(buf, `  <path d="%s" fill="none" stroke="%s" stroke-width="%.1f"/>`+"\n",
		path.String(), strokeColor, strokeWidth)
}

// diode draws the triangle-and-bar glyph; led adds two emission arrows.
func (s Simple) diode(buf *bytes.Buffer, f frame, scale float64, led bool) {
	body := 0.7 * scale
	h := 0.4 * scale
	t0 := (f.length - body) / 2
	t1 := t0 + body

	s.lead(buf, f, 0, t0)
	s.lead(buf, f, t1, f.length)

	ax, ay := f.at(t0, -h)
	bx, by := f.at(t1, 0)
	cx, cy := f.at(t0, h)
	polyline(buf, []float64{ax, ay, bx, by, cx, cy}, true)

	x1, y1 := f.at(t1, -h)
	x2, y2 := f.at(t1, h)
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
		x1, y1, x2, y2, strokeColor, strokeWidth)

	if led {
		for _, off := range []float64{0.15, 0.4} {
			ax, ay := f.at(t0+off*scale, -h-0.1*scale)
			bx, by := f.at(t0+(off+0.25)*scale, -h-0.35*scale)
			fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
				ax, ay, bx, by, strokeColor, strokeWidth*0.75)
		}
	}
}

// battery draws a long and a short plate pair.
func (s Simple) battery(buf *bytes.Buffer, f frame, scale float64) {
	gap := 0.3 * scale
	long := 0.5 * scale
	short := 0.25 * scale
	t0 := (f.length - gap) / 2
	t1 := t0 + gap

	s.lead(buf, f, 0, t0)
	s.lead(buf, f, t1, f.length)

	for _, p := range []struct{ t, h float64 }{{t0, long}, {t1, short}} {
		x1, y1 := f.at(p.t, -p.h)
		x2, y2 := f.at(p.t, p.h)
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			x1, y1, x2, y2, strokeColor, strokeWidth)
	}
}

// switchGlyph draws an open knife switch between two contact dots.
func (s Simple) switchGlyph(buf *bytes.Buffer, f frame, scale float64) {
	body := 1.0 * scale
	t0 := (f.length - body) / 2
	t1 := t0 + body

	s.lead(buf, f, 0, t0)
	s.lead(buf, f, t1, f.length)

	for _, t := range []float64{t0, t1} {
		x, y := f.at(t, 0)
		fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
			x, y, 0.06*scale, strokeColor)
	}

	ax, ay := f.at(t0, 0)
	bx, by := f.at(t1-0.15*scale, -0.45*scale)
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f" stroke-linecap="round"/>`+"\n",
		ax, ay, bx, by, strokeColor, strokeWidth)
}

// ground draws the three-bar earth symbol at the element's far terminal.
func (s Simple) ground(buf *bytes.Buffer, f frame, scale float64) {
	stem := f.length - 0.5*scale
	s.lead(buf, f, 0, stem)

	widths := []float64{0.5, 0.33, 0.16}
	for i, w := range widths {
		t := stem + float64(i)*0.17*scale
		x1, y1 := f.at(t, -w*scale)
		x2, y2 := f.at(t, w*scale)
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			x1, y1, x2, y2, strokeColor, strokeWidth)
	}
}
