package pipeline

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/zsketch/zsketch/pkg/cache"
	"github.com/zsketch/zsketch/pkg/errors"
)

func testRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	return NewRunner(c, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Expression: "R0-p(R1,C1)"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	if opts.Kind != KindSchematic {
		t.Errorf("Kind = %q, want schematic", opts.Kind)
	}
	if opts.Direction != "right" {
		t.Errorf("Direction = %q, want right", opts.Direction)
	}
	if opts.Spacing != DefaultSpacing {
		t.Errorf("Spacing = %v, want %v", opts.Spacing, DefaultSpacing)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
}

func TestValidateAndSetDefaultsBodeSweep(t *testing.T) {
	opts := Options{Expression: "R0", Kind: KindBode, Parameters: []float64{100}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.FreqStart != DefaultFreqStart || opts.FreqEnd != DefaultFreqEnd || opts.FreqPoints != DefaultFreqPoints {
		t.Errorf("sweep = (%v, %v, %d), want defaults", opts.FreqStart, opts.FreqEnd, opts.FreqPoints)
	}
}

func TestValidateAndSetDefaultsRejects(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"empty expression", Options{}},
		{"bad kind", Options{Expression: "R0", Kind: "poster"}},
		{"bad direction", Options{Expression: "R0", Direction: "sideways"}},
		{"negative spacing", Options{Expression: "R0", Spacing: -1}},
		{"json figure", Options{Expression: "R0", Kind: KindBode, Formats: []string{"json"}}},
		{"dot schematic", Options{Expression: "R0", Formats: []string{"dot"}}},
		{"inverted sweep", Options{Expression: "R0", Kind: KindNyquist, FreqStart: 1e5, FreqEnd: 0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("ValidateAndSetDefaults() error = nil, want error")
			}
		})
	}
}

func TestExecuteSchematic(t *testing.T) {
	r := testRunner(t)
	ctx := context.Background()

	result, err := r.Execute(ctx, Options{
		Expression: "R0-p(R1,C1)-R2",
		Formats:    []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.RunID == "" {
		t.Error("RunID empty")
	}
	if result.Stats.ElementCount != 4 {
		t.Errorf("ElementCount = %d, want 4", result.Stats.ElementCount)
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact missing <svg")
	}
	if !strings.Contains(string(result.Artifacts[FormatJSON]), `"element"`) {
		t.Error("json artifact missing element primitives")
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("first run reported cache hits: %+v", result.CacheInfo)
	}
}

func TestExecuteSchematicCaching(t *testing.T) {
	r := testRunner(t)
	ctx := context.Background()
	opts := Options{Expression: "R0-p(R1,C1)", Formats: []string{FormatSVG}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want hits", second.CacheInfo)
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from fresh render")
	}

	refreshed, err := r.Execute(ctx, Options{Expression: "R0-p(R1,C1)", Formats: []string{FormatSVG}, Refresh: true})
	if err != nil {
		t.Fatalf("Execute(refresh) error = %v", err)
	}
	if refreshed.CacheInfo.LayoutHit || refreshed.CacheInfo.RenderHit {
		t.Errorf("refresh run cache info = %+v, want misses", refreshed.CacheInfo)
	}
}

func TestExecuteSchematicWarningsSurviveCache(t *testing.T) {
	r := testRunner(t)
	ctx := context.Background()
	opts := Options{Expression: "R0-X9-C1", Formats: []string{FormatSVG}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(first.Warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(first.Warnings))
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run missed the layout cache")
	}
	if len(second.Warnings) != 1 || second.Warnings[0].Token != "X9" {
		t.Errorf("cached warnings = %v, want X9 warning", second.Warnings)
	}
}

func TestExecuteGraphDOT(t *testing.T) {
	r := testRunner(t)

	result, err := r.Execute(context.Background(), Options{
		Expression: "R0-p(R1,C1)",
		Kind:       KindGraph,
		Formats:    []string{FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	dot := string(result.Artifacts[FormatDOT])
	if !strings.Contains(dot, "digraph circuit") || !strings.Contains(dot, `label="R1"`) {
		t.Errorf("dot artifact = %q", dot)
	}
}

func TestExecuteBode(t *testing.T) {
	r := testRunner(t)

	result, err := r.Execute(context.Background(), Options{
		Expression: "R0-p(R1,C1)",
		Kind:       KindBode,
		Parameters: []float64{10, 100, 1e-6},
		FreqPoints: 10,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), "<svg") {
		t.Error("bode artifact missing <svg")
	}
}

func TestExecuteFigureRejectsBadModel(t *testing.T) {
	r := testRunner(t)

	_, err := r.Execute(context.Background(), Options{
		Expression: "R0-p(R1,C1)",
		Kind:       KindNyquist,
		Parameters: []float64{10},
	})
	if err == nil {
		t.Fatal("Execute() error = nil, want parameter mismatch")
	}
	if !errors.Is(err, errors.ErrCodeInvalidModel) {
		t.Errorf("Execute() error = %v, want INVALID_MODEL", err)
	}
}

func TestExecuteMalformedExpression(t *testing.T) {
	r := testRunner(t)

	_, err := r.Execute(context.Background(), Options{Expression: "R0-p(R1,C1"})
	if err == nil {
		t.Fatal("Execute() error = nil, want malformed group error")
	}
	if !errors.Is(err, errors.ErrCodeMalformedGroup) {
		t.Errorf("Execute() error = %v, want MALFORMED_GROUP", err)
	}
}
