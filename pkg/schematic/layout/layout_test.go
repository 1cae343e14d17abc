package layout

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestLayoutSeries(t *testing.T) {
	prog, warnings, err := Layout("R0-R1")
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	elems := prog.Elements()
	if len(elems) != 2 {
		t.Fatalf("elements = %d, want 2", len(elems))
	}
	if elems[0].Start != (Point{0, 0}) || elems[0].End != (Point{3, 0}) {
		t.Errorf("first element spans %v → %v, want (0,0) → (3,0)", elems[0].Start, elems[0].End)
	}
	if elems[1].Start != (Point{3, 0}) || elems[1].End != (Point{6, 0}) {
		t.Errorf("second element spans %v → %v, want (3,0) → (6,0)", elems[1].Start, elems[1].End)
	}
	if prog.Cursor != (Point{6, 0}) {
		t.Errorf("cursor = %v, want (6,0)", prog.Cursor)
	}
}

func TestLayoutParallelGroup(t *testing.T) {
	prog, _, err := Layout("p(R1,C1)")
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	// Entry and exit junctions sit on the main axis three units apart.
	var dots []Dot
	for _, prim := range prog.Primitives {
		if d, ok := prim.(Dot); ok {
			dots = append(dots, d)
		}
	}
	if len(dots) != 2 {
		t.Fatalf("dots = %d, want 2", len(dots))
	}
	if dots[0].At != (Point{0, 0}) || dots[1].At != (Point{3, 0}) {
		t.Errorf("junctions at %v, %v, want (0,0), (3,0)", dots[0].At, dots[1].At)
	}

	// Two branches centered on the axis: offsets -0.5 and +0.5.
	elems := prog.Elements()
	if len(elems) != 2 {
		t.Fatalf("elements = %d, want 2", len(elems))
	}
	if elems[0].Start != (Point{0, -0.5}) {
		t.Errorf("first branch starts at %v, want (0,-0.5)", elems[0].Start)
	}
	if elems[1].Start != (Point{0, 0.5}) {
		t.Errorf("second branch starts at %v, want (0,0.5)", elems[1].Start)
	}

	if prog.Cursor != (Point{3, 0}) {
		t.Errorf("cursor = %v, want (3,0)", prog.Cursor)
	}
}

func TestLayoutThreeBranchOffsets(t *testing.T) {
	prog, _, err := Layout("p(R1,C1,L1)", WithSpacing(2))
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	elems := prog.Elements()
	if len(elems) != 3 {
		t.Fatalf("elements = %d, want 3", len(elems))
	}
	// span = 2*(3-1) = 4, offsets -2, 0, +2.
	wantY := []float64{-2, 0, 2}
	for i, e := range elems {
		if e.Start.Y != wantY[i] {
			t.Errorf("branch %d at Y=%v, want %v", i, e.Start.Y, wantY[i])
		}
	}
}

func TestLayoutDegenerateGroup(t *testing.T) {
	prog, warnings, err := Layout("R0-p(X1)-R1")
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(warnings))
	}

	// The group drew nothing and R1 starts where R0 ended.
	elems := prog.Elements()
	if len(elems) != 2 {
		t.Fatalf("elements = %d, want 2", len(elems))
	}
	if elems[1].Start != (Point{3, 0}) {
		t.Errorf("element after empty group starts at %v, want (3,0)", elems[1].Start)
	}
	if prog.Cursor != (Point{6, 0}) {
		t.Errorf("cursor = %v, want (6,0)", prog.Cursor)
	}
}

func TestLayoutDirections(t *testing.T) {
	tests := []struct {
		dir    Direction
		cursor Point
	}{
		{Right, Point{3, 0}},
		{Left, Point{-3, 0}},
		{Up, Point{0, 3}},
		{Down, Point{0, -3}},
	}

	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			prog, _, err := Layout("R0", WithDirection(tt.dir))
			if err != nil {
				t.Fatalf("Layout() error = %v", err)
			}
			if prog.Cursor != tt.cursor {
				t.Errorf("cursor = %v, want %v", prog.Cursor, tt.cursor)
			}
		})
	}
}

func TestLayoutVerticalBranchOffsets(t *testing.T) {
	prog, _, err := Layout("p(R1,C1)", WithDirection(Up))
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	elems := prog.Elements()
	// Vertical drawings space branches along X.
	if elems[0].Start != (Point{-0.5, 0}) {
		t.Errorf("first branch starts at %v, want (-0.5,0)", elems[0].Start)
	}
	if elems[1].Start != (Point{0.5, 0}) {
		t.Errorf("second branch starts at %v, want (0.5,0)", elems[1].Start)
	}
}

func TestLayoutWithStart(t *testing.T) {
	prog, _, err := Layout("R0", WithStart(Point{10, 5}))
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if prog.Start != (Point{10, 5}) {
		t.Errorf("start = %v, want (10,5)", prog.Start)
	}
	if prog.Cursor != (Point{13, 5}) {
		t.Errorf("cursor = %v, want (13,5)", prog.Cursor)
	}
}

func TestLayoutDeterministic(t *testing.T) {
	a, _, err := Layout("R0-p(R1,C1)-R2")
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	b, _, err := Layout("R0-p(R1,C1)-R2")
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different programs")
	}
}

func TestProgramBounds(t *testing.T) {
	prog, _, err := Layout("R0-p(R1,C1)")
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	min, max := prog.Bounds()
	if min != (Point{0, -0.5}) {
		t.Errorf("min = %v, want (0,-0.5)", min)
	}
	if max != (Point{6, 0.5}) {
		t.Errorf("max = %v, want (6,0.5)", max)
	}
}

func TestProgramJSONRoundTrip(t *testing.T) {
	prog, _, err := Layout("R0-p(R1,C1)-W1")
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	data, err := json.Marshal(prog)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Program
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(prog, decoded) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, prog)
	}
}

func TestParseDirection(t *testing.T) {
	if _, err := ParseDirection("right"); err != nil {
		t.Errorf("ParseDirection(right) error = %v", err)
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection(sideways) error = nil, want error")
	}
}
