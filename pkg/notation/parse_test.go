package notation

import (
	"strings"
	"testing"

	"github.com/zsketch/zsketch/pkg/errors"
)

func TestParseSeries(t *testing.T) {
	expr, warnings, err := Parse("R0-C1-L2")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Parse() warnings = %v, want none", warnings)
	}
	if len(expr.Segments) != 3 {
		t.Fatalf("Parse() segments = %d, want 3", len(expr.Segments))
	}

	want := []struct {
		tag  string
		id   string
		kind Kind
	}{
		{"R", "0", KindResistor},
		{"C", "1", KindCapacitor},
		{"L", "2", KindInductor},
	}
	for i, w := range want {
		seg := expr.Segments[i]
		if seg.Parallel {
			t.Errorf("segment %d is parallel, want series", i)
		}
		leaf := seg.Leaves[0]
		if leaf.Tag != w.tag || leaf.ID != w.id || leaf.Kind != w.kind {
			t.Errorf("segment %d = %+v, want tag=%s id=%s kind=%s", i, leaf, w.tag, w.id, w.kind)
		}
	}
}

func TestParseParallelGroup(t *testing.T) {
	expr, warnings, err := Parse("R0-p(R1,C1)-R2")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Parse() warnings = %v, want none", warnings)
	}
	if len(expr.Segments) != 3 {
		t.Fatalf("Parse() segments = %d, want 3", len(expr.Segments))
	}

	group := expr.Segments[1]
	if !group.Parallel {
		t.Fatal("middle segment not parallel")
	}
	if len(group.Leaves) != 2 {
		t.Fatalf("group leaves = %d, want 2", len(group.Leaves))
	}
	if got := group.Leaves[0].Token(); got != "R1" {
		t.Errorf("first branch = %q, want R1", got)
	}
	if got := group.Leaves[1].Token(); got != "C1" {
		t.Errorf("second branch = %q, want C1", got)
	}
}

func TestParseLongestPrefixTags(t *testing.T) {
	tests := []struct {
		token    string
		wantTag  string
		wantID   string
		wantKind Kind
	}{
		{"CPE1", "CPE", "1", KindBox},
		{"Wo1", "Wo", "1", KindBox},
		{"Ws2", "Ws", "2", KindBox},
		{"W1", "W", "1", KindBox},
		{"LED3", "LED", "3", KindLED},
		{"La1", "La", "1", KindBox},
		{"L1", "L", "1", KindInductor},
		{"Gs1", "Gs", "1", KindBox},
		{"GND", "GND", "", KindGround},
		{"Zarc1", "Zarc", "1", KindBox},
		{"TLMQ1", "TLMQ", "1", KindBox},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			tag, id, kind, ok := MatchTag(tt.token)
			if !ok {
				t.Fatalf("MatchTag(%q) not ok", tt.token)
			}
			if tag != tt.wantTag || id != tt.wantID || kind != tt.wantKind {
				t.Errorf("MatchTag(%q) = (%s, %s, %s), want (%s, %s, %s)",
					tt.token, tag, id, kind, tt.wantTag, tt.wantID, tt.wantKind)
			}
		})
	}
}

func TestParseUnknownTagWarns(t *testing.T) {
	expr, warnings, err := Parse("R0-X9-C1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("Parse() warnings = %d, want 1", len(warnings))
	}
	if warnings[0].Token != "X9" {
		t.Errorf("warning token = %q, want X9", warnings[0].Token)
	}
	if !strings.Contains(warnings[0].String(), "unknown component") {
		t.Errorf("warning message = %q", warnings[0].String())
	}
	// The unknown leaf is dropped but the rest survives.
	if len(expr.Segments) != 2 {
		t.Errorf("Parse() segments = %d, want 2", len(expr.Segments))
	}
}

func TestParseUnknownTagInGroupWarns(t *testing.T) {
	expr, warnings, err := Parse("p(R1,X2,C1)")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("Parse() warnings = %d, want 1", len(warnings))
	}
	if got := len(expr.Segments[0].Leaves); got != 2 {
		t.Errorf("group leaves = %d, want 2", got)
	}
}

func TestParseStructuralErrors(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		wantCode errors.Code
	}{
		{"empty", "", errors.ErrCodeInvalidExpression},
		{"unbalanced group", "R0-p(R1,C1", errors.ErrCodeMalformedGroup},
		{"nested group", "p(R1,p(R2,C2))", errors.ErrCodeMalformedGroup},
		{"stray paren", "p(R1,C1))", errors.ErrCodeMalformedGroup},
		{"all unknown no segments", "--", errors.ErrCodeInvalidExpression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.expr)
			if err == nil {
				t.Fatalf("Parse(%q) error = nil, want code %s", tt.expr, tt.wantCode)
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Parse(%q) error = %v, want code %s", tt.expr, err, tt.wantCode)
			}
		})
	}
}

func TestParseSkipsStraySeparators(t *testing.T) {
	expr, warnings, err := Parse("R0--R1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if len(expr.Segments) != 2 {
		t.Errorf("segments = %d, want 2", len(expr.Segments))
	}
}

func TestParseEmptyGroupIsDegenerate(t *testing.T) {
	expr, warnings, err := Parse("R0-p()-R1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if len(expr.Segments) != 3 {
		t.Fatalf("segments = %d, want 3", len(expr.Segments))
	}
	group := expr.Segments[1]
	if !group.Parallel || len(group.Leaves) != 0 {
		t.Errorf("middle segment = %+v, want empty parallel group", group)
	}
}

func TestExpressionLeaves(t *testing.T) {
	expr, _, err := Parse("R0-p(R1,C1)-W1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	leaves := expr.Leaves()
	want := []string{"R0", "R1", "C1", "W1"}
	if len(leaves) != len(want) {
		t.Fatalf("Leaves() = %d, want %d", len(leaves), len(want))
	}
	for i, token := range want {
		if leaves[i].Token() != token {
			t.Errorf("leaf %d = %q, want %q", i, leaves[i].Token(), token)
		}
	}
}

func TestTagsOrderedLongestFirst(t *testing.T) {
	tags := Tags()
	for i := 1; i < len(tags); i++ {
		if len(tags[i]) > len(tags[i-1]) {
			t.Fatalf("Tags() not ordered longest-first: %q after %q", tags[i], tags[i-1])
		}
	}
	if _, ok := KindOf("CPE"); !ok {
		t.Error("KindOf(CPE) not registered")
	}
}
