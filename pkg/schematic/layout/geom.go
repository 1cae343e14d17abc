package layout

import (
	"github.com/zsketch/zsketch/pkg/errors"
)

// Point is a position in schematic coordinates. One unit is one grid step;
// a two-terminal element spans three units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Direction is the facing direction of the drawing. It is fixed for a whole
// schematic; the notation has no way to turn a corner mid-expression.
type Direction string

// Supported drawing directions.
const (
	Right Direction = "right"
	Left  Direction = "left"
	Up    Direction = "up"
	Down  Direction = "down"
)

// ParseDirection converts a direction name to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Right, Left, Up, Down:
		return Direction(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidDirection,
		"invalid direction: %q (must be 'right', 'left', 'up', or 'down')", s)
}

// Horizontal reports whether the direction runs along the X axis.
func (d Direction) Horizontal() bool { return d == Right || d == Left }

// Advance returns p moved dist units along the direction.
func (d Direction) Advance(p Point, dist float64) Point {
	switch d {
	case Right:
		return Point{p.X + dist, p.Y}
	case Left:
		return Point{p.X - dist, p.Y}
	case Up:
		return Point{p.X, p.Y + dist}
	default: // Down
		return Point{p.X, p.Y - dist}
	}
}

// Offset returns p moved off units along the perpendicular spacing axis:
// the Y axis for horizontal drawings, the X axis for vertical ones. Branches
// of a parallel group are placed at offsets -span/2 .. +span/2.
func (d Direction) Offset(p Point, off float64) Point {
	if d.Horizontal() {
		return Point{p.X, p.Y + off}
	}
	return Point{p.X + off, p.Y}
}
