package layout

import (
	"encoding/json"
	"fmt"

	"github.com/zsketch/zsketch/pkg/notation"
)

// Primitive is a single draw instruction in a Program. The concrete types are
// [Dot], [Wire] and [Element]. Rendering order follows slice order; it only
// affects visual stacking.
type Primitive interface {
	isPrimitive()
}

// Dot is a junction point where branches meet.
type Dot struct {
	At Point `json:"at"`
}

// Wire is a plain connecting line between two points.
type Wire struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Element is a placed circuit element with its glyph kind and label. Start
// and End are the element's terminals along the drawing direction.
type Element struct {
	Kind      notation.Kind `json:"kind"`
	Label     string        `json:"label"`
	Start     Point         `json:"start"`
	End       Point         `json:"end"`
	Direction Direction     `json:"direction"`
}

func (Dot) isPrimitive()     {}
func (Wire) isPrimitive()    {}
func (Element) isPrimitive() {}

// Program is an ordered list of draw instructions for one schematic, plus the
// final cursor position after the last segment.
type Program struct {
	Primitives []Primitive
	Start      Point
	Cursor     Point
	Direction  Direction
	Spacing    float64
}

// Elements returns the placed elements in drawing order.
func (p Program) Elements() []Element {
	var out []Element
	for _, prim := range p.Primitives {
		if e, ok := prim.(Element); ok {
			out = append(out, e)
		}
	}
	return out
}

// Bounds returns the bounding box of all primitives. For an empty program it
// returns the start point twice.
func (p Program) Bounds() (min, max Point) {
	min, max = p.Start, p.Start
	grow := func(pt Point) {
		if pt.X < min.X {
			min.X = pt.X
		}
		if pt.Y < min.Y {
			min.Y = pt.Y
		}
		if pt.X > max.X {
			max.X = pt.X
		}
		if pt.Y > max.Y {
			max.Y = pt.Y
		}
	}
	for _, prim := range p.Primitives {
		switch v := prim.(type) {
		case Dot:
			grow(v.At)
		case Wire:
			grow(v.From)
			grow(v.To)
		case Element:
			grow(v.Start)
			grow(v.End)
		}
	}
	return min, max
}

// primitiveJSON is the serialized form of a Primitive with an op
// discriminator: "dot", "wire" or "element".
type primitiveJSON struct {
	Op string `json:"op"`

	// Dot
	At *Point `json:"at,omitempty"`

	// Wire
	From *Point `json:"from,omitempty"`
	To   *Point `json:"to,omitempty"`

	// Element
	Kind      notation.Kind `json:"kind,omitempty"`
	Label     string        `json:"label,omitempty"`
	Start     *Point        `json:"start,omitempty"`
	End       *Point        `json:"end,omitempty"`
	Direction Direction     `json:"direction,omitempty"`
}

// programJSON is the serialized form of a Program.
type programJSON struct {
	Primitives []primitiveJSON `json:"primitives"`
	Start      Point           `json:"start"`
	Cursor     Point           `json:"cursor"`
	Direction  Direction       `json:"direction"`
	Spacing    float64         `json:"spacing"`
}

// MarshalJSON implements json.Marshaler with an op-discriminated primitive
// encoding.
func (p Program) MarshalJSON() ([]byte, error) {
	out := programJSON{
		Primitives: make([]primitiveJSON, 0, len(p.Primitives)),
		Start:      p.Start,
		Cursor:     p.Cursor,
		Direction:  p.Direction,
		Spacing:    p.Spacing,
	}
	for _, prim := range p.Primitives {
		switch v := prim.(type) {
		case Dot:
			at := v.At
			out.Primitives = append(out.Primitives, primitiveJSON{Op: "dot", At: &at})
		case Wire:
			from, to := v.From, v.To
			out.Primitives = append(out.Primitives, primitiveJSON{Op: "wire", From: &from, To: &to})
		case Element:
			start, end := v.Start, v.End
			out.Primitives = append(out.Primitives, primitiveJSON{
				Op: "element", Kind: v.Kind, Label: v.Label,
				Start: &start, End: &end, Direction: v.Direction,
			})
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Program) UnmarshalJSON(data []byte) error {
	var in programJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	p.Start, p.Cursor = in.Start, in.Cursor
	p.Direction, p.Spacing = in.Direction, in.Spacing
	p.Primitives = make([]Primitive, 0, len(in.Primitives))
	for _, prim := range in.Primitives {
		switch prim.Op {
		case "dot":
			if prim.At == nil {
				return fmt.Errorf("dot primitive missing 'at'")
			}
			p.Primitives = append(p.Primitives, Dot{At: *prim.At})
		case "wire":
			if prim.From == nil || prim.To == nil {
				return fmt.Errorf("wire primitive missing endpoints")
			}
			p.Primitives = append(p.Primitives, Wire{From: *prim.From, To: *prim.To})
		case "element":
			if prim.Start == nil || prim.End == nil {
				return fmt.Errorf("element primitive missing terminals")
			}
			p.Primitives = append(p.Primitives, Element{
				Kind: prim.Kind, Label: prim.Label,
				Start: *prim.Start, End: *prim.End, Direction: prim.Direction,
			})
		default:
			return fmt.Errorf("unknown primitive op: %q", prim.Op)
		}
	}
	return nil
}
