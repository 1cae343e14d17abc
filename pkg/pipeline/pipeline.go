// Package pipeline provides the core rendering pipeline for zsketch.
//
// This package implements the complete parse → layout → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Turn a circuit expression into its series/parallel structure
//  2. Layout: Compute a draw program (dots, wires, labeled elements)
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Frequency-response outputs (Bode, Nyquist) replace the layout stage with
// an impedance evaluation over a logarithmic sweep.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Expression: "R0-p(R1,C1)",
//	    Kind:       pipeline.KindSchematic,
//	    Formats:    []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/zsketch/zsketch/pkg/cache"
	"github.com/zsketch/zsketch/pkg/errors"
	"github.com/zsketch/zsketch/pkg/notation"
	"github.com/zsketch/zsketch/pkg/schematic/layout"
)

// Default values shared by CLI and API.
const (
	// DefaultSpacing is the default branch spacing in schematic units.
	DefaultSpacing = layout.DefaultSpacing

	// DefaultFreqStart is the default sweep start frequency in Hz.
	DefaultFreqStart = 0.1

	// DefaultFreqEnd is the default sweep end frequency in Hz.
	DefaultFreqEnd = 1e5

	// DefaultFreqPoints is the default number of sweep points.
	DefaultFreqPoints = 50
)

// Kind constants for pipeline output kinds.
const (
	KindSchematic = "schematic"
	KindGraph     = "graph"
	KindBode      = "bode"
	KindNyquist   = "nyquist"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidKinds is the set of supported output kinds.
var ValidKinds = map[string]bool{
	KindSchematic: true,
	KindGraph:     true,
	KindBode:      true,
	KindNyquist:   true,
}

// validFormats maps each kind to its supported formats.
var validFormats = map[string]map[string]bool{
	KindSchematic: {FormatSVG: true, FormatPNG: true, FormatPDF: true, FormatJSON: true},
	KindGraph:     {FormatSVG: true, FormatPNG: true, FormatPDF: true, FormatDOT: true},
	KindBode:      {FormatSVG: true, FormatPNG: true},
	KindNyquist:   {FormatSVG: true, FormatPNG: true},
}

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Expression is the circuit expression, e.g. "R0-p(R1,C1)-R2".
	Expression string `json:"expression"`

	// Kind selects the output: schematic, graph, bode or nyquist.
	Kind string `json:"kind,omitempty"`

	// Layout options (schematic only)
	Direction string  `json:"direction,omitempty"`
	Spacing   float64 `json:"spacing,omitempty"`
	StartX    float64 `json:"start_x,omitempty"`
	StartY    float64 `json:"start_y,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Title   string   `json:"title,omitempty"`

	// Frequency-response options (bode/nyquist only)
	Parameters []float64 `json:"parameters,omitempty"`
	FreqStart  float64   `json:"freq_start,omitempty"`
	FreqEnd    float64   `json:"freq_end,omitempty"`
	FreqPoints int       `json:"freq_points,omitempty"`

	// Refresh bypasses the cache and recomputes everything.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline run.
	RunID string

	// Program is the computed draw program (schematic kind only).
	Program layout.Program

	// Warnings are the unknown-token warnings raised during parsing.
	Warnings []notation.Warning

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ElementCount int
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the draw program came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid for the given kind.
func ValidateFormat(kind, format string) error {
	if !validFormats[kind][format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format for %s: %q", kind, format)
	}
	return nil
}

// ValidateKind checks that an output kind is valid.
func ValidateKind(kind string) error {
	if !ValidKinds[kind] {
		return errors.New(errors.ErrCodeUnsupported,
			"invalid kind: %q (must be one of: schematic, graph, bode, nyquist)", kind)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if err := errors.ValidateExpression(o.Expression); err != nil {
		return err
	}

	if o.Kind == "" {
		o.Kind = KindSchematic
	}
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}

	if o.Direction == "" {
		o.Direction = "right"
	}
	if _, err := layout.ParseDirection(o.Direction); err != nil {
		return err
	}
	if o.Spacing == 0 {
		o.Spacing = DefaultSpacing
	}
	if o.Spacing < 0 {
		return errors.New(errors.ErrCodeInvalidExpression,
			"spacing must be positive, got %g", o.Spacing)
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(o.Kind, f); err != nil {
			return err
		}
	}

	if o.Kind == KindBode || o.Kind == KindNyquist {
		if o.FreqStart == 0 {
			o.FreqStart = DefaultFreqStart
		}
		if o.FreqEnd == 0 {
			o.FreqEnd = DefaultFreqEnd
		}
		if o.FreqPoints == 0 {
			o.FreqPoints = DefaultFreqPoints
		}
		if err := errors.ValidateFrequencyRange(o.FreqStart, o.FreqEnd, o.FreqPoints); err != nil {
			return err
		}
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// LayoutKeyOpts returns cache key options for draw program computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Direction: o.Direction,
		Spacing:   o.Spacing,
		StartX:    o.StartX,
		StartY:    o.StartY,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Kind:   o.Kind,
		Format: format,
		Scale:  o.Scale,
		Title:  o.Title,
	}
}

// sweep returns the frequency sweep as a fixed-size triple for cache keys.
func (o *Options) sweep() [3]float64 {
	return [3]float64{o.FreqStart, o.FreqEnd, float64(o.FreqPoints)}
}

// layoutOptions converts pipeline options to layout options.
func (o *Options) layoutOptions() ([]layout.Option, error) {
	dir, err := layout.ParseDirection(o.Direction)
	if err != nil {
		return nil, fmt.Errorf("parse direction: %w", err)
	}
	return []layout.Option{
		layout.WithStart(layout.Point{X: o.StartX, Y: o.StartY}),
		layout.WithDirection(dir),
		layout.WithSpacing(o.Spacing),
	}, nil
}
