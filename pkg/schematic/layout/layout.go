// Package layout converts parsed circuit expressions into 2D draw programs.
//
// The engine folds an immutable placement state (cursor position plus fixed
// facing direction) over the series segments of an expression. Each segment
// emits primitives and yields the next cursor:
//
//   - a series leaf places one element at the cursor and advances it by the
//     element length;
//   - a parallel group places entry and exit junctions three units apart,
//     evenly spaced branches centered on the main axis between them, and
//     advances the cursor by the fixed branch length regardless of how many
//     branches the group has;
//   - a parallel group whose leaves were all dropped during parsing draws
//     nothing and does not advance the cursor.
package layout

import (
	"github.com/zsketch/zsketch/pkg/notation"
)

// Geometry constants, in schematic grid units.
const (
	// BranchLength is the junction-to-junction span of a parallel group.
	BranchLength = 3.0

	// ElementLength is the terminal-to-terminal span of a placed element.
	ElementLength = 3.0

	// DefaultSpacing is the default perpendicular distance between
	// adjacent parallel branches.
	DefaultSpacing = 1.0
)

// Option configures the layout engine.
type Option func(*builder)

// WithStart sets the starting cursor position (default origin).
func WithStart(p Point) Option {
	return func(b *builder) { b.cursor = p; b.start = p }
}

// WithDirection sets the drawing direction (default Right).
func WithDirection(d Direction) Option {
	return func(b *builder) { b.direction = d }
}

// WithSpacing sets the perpendicular spacing between parallel branches
// (default 1 unit).
func WithSpacing(s float64) Option {
	return func(b *builder) { b.spacing = s }
}

type builder struct {
	start     Point
	cursor    Point
	direction Direction
	spacing   float64
	prims     []Primitive
}

// Build computes the draw program for a parsed expression.
func Build(expr notation.Expression, opts ...Option) Program {
	b := builder{direction: Right, spacing: DefaultSpacing}
	for _, opt := range opts {
		opt(&b)
	}

	for _, seg := range expr.Segments {
		if seg.Parallel {
			b.parallel(seg.Leaves)
		} else if len(seg.Leaves) == 1 {
			b.series(seg.Leaves[0])
		}
	}

	return Program{
		Primitives: b.prims,
		Start:      b.start,
		Cursor:     b.cursor,
		Direction:  b.direction,
		Spacing:    b.spacing,
	}
}

// Layout parses an expression and builds its draw program in one step.
// Warnings from the parse (unknown component tags) are returned alongside.
func Layout(expr string, opts ...Option) (Program, []notation.Warning, error) {
	parsed, warnings, err := notation.Parse(expr)
	if err != nil {
		return Program{}, warnings, err
	}
	return Build(parsed, opts...), warnings, nil
}

// series places a single leaf at the cursor and advances past it.
func (b *builder) series(leaf notation.Leaf) {
	end := b.direction.Advance(b.cursor, ElementLength)
	b.prims = append(b.prims, Element{
		Kind:      leaf.Kind,
		Label:     leaf.Token(),
		Start:     b.cursor,
		End:       end,
		Direction: b.direction,
	})
	b.cursor = end
}

// parallel places a bundle of branches between shared entry and exit
// junctions. Branches are evenly spaced and centered on the main axis:
// branch i sits at perpendicular offset -span/2 + i*spacing where
// span = spacing*(N-1).
func (b *builder) parallel(leaves []notation.Leaf) {
	if len(leaves) == 0 {
		// Every leaf was dropped during parsing. Nothing is drawn and
		// the cursor stays put.
		return
	}

	entry := b.cursor
	exit := b.direction.Advance(entry, BranchLength)
	span := b.spacing * float64(len(leaves)-1)

	b.prims = append(b.prims, Dot{At: entry}, Dot{At: exit})

	for i, leaf := range leaves {
		off := -span/2 + float64(i)*b.spacing
		branchStart := b.direction.Offset(entry, off)
		branchEnd := b.direction.Offset(exit, off)
		elemEnd := b.direction.Advance(branchStart, ElementLength)

		b.prims = append(b.prims,
			Wire{From: entry, To: branchStart},
			Element{
				Kind:      leaf.Kind,
				Label:     leaf.Token(),
				Start:     branchStart,
				End:       elemEnd,
				Direction: b.direction,
			},
			Wire{From: elemEnd, To: branchEnd},
			Wire{From: branchEnd, To: exit},
		)
	}

	b.cursor = exit
}
