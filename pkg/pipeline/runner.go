package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/zsketch/zsketch/pkg/cache"
	"github.com/zsketch/zsketch/pkg/graphview"
	"github.com/zsketch/zsketch/pkg/model"
	"github.com/zsketch/zsketch/pkg/notation"
	"github.com/zsketch/zsketch/pkg/plot"
	"github.com/zsketch/zsketch/pkg/schematic/layout"
	"github.com/zsketch/zsketch/pkg/schematic/sink"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	switch opts.Kind {
	case KindSchematic:
		if err := r.executeSchematic(ctx, opts, result); err != nil {
			return nil, err
		}
	case KindGraph:
		if err := r.executeGraph(ctx, opts, result); err != nil {
			return nil, err
		}
	case KindBode, KindNyquist:
		if err := r.executeFigure(ctx, opts, result); err != nil {
			return nil, err
		}
	}

	r.Logger.Info("pipeline complete",
		"run_id", result.RunID,
		"kind", opts.Kind,
		"formats", opts.Formats,
		"layout", result.Stats.LayoutTime,
		"render", result.Stats.RenderTime)

	return result, nil
}

// cachedProgram pairs a draw program with its parse warnings so a cache hit
// can reproduce both.
type cachedProgram struct {
	Program  layout.Program     `json:"program"`
	Warnings []notation.Warning `json:"warnings,omitempty"`
}

func (r *Runner) executeSchematic(ctx context.Context, opts Options, result *Result) error {
	layoutStart := time.Now()
	prog, warnings, hit, err := r.ProgramWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	result.Program = prog
	result.Warnings = warnings
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.ElementCount = len(prog.Elements())
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"elements", result.Stats.ElementCount,
		"warnings", len(warnings),
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	renderHit := true
	for _, format := range opts.Formats {
		data, hit, err := r.renderProgramFormat(ctx, prog, opts, format)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
		renderHit = renderHit && hit
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit
	return nil
}

// ProgramWithCacheInfo computes the draw program with caching and reports
// whether the result came from cache.
func (r *Runner) ProgramWithCacheInfo(ctx context.Context, opts Options) (layout.Program, []notation.Warning, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Program{}, nil, false, err
	}

	key := cache.LayoutKey(opts.Expression, opts.LayoutKeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached cachedProgram
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached.Program, cached.Warnings, true, nil
			}
		}
	}

	layoutOpts, err := opts.layoutOptions()
	if err != nil {
		return layout.Program{}, nil, false, err
	}
	prog, warnings, err := layout.Layout(opts.Expression, layoutOpts...)
	if err != nil {
		return layout.Program{}, nil, false, err
	}

	if data, err := json.Marshal(cachedProgram{Program: prog, Warnings: warnings}); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLProgram)
	}

	return prog, warnings, false, nil
}

// Program is a convenience wrapper that discards the cache hit info.
func (r *Runner) Program(ctx context.Context, opts Options) (layout.Program, []notation.Warning, error) {
	prog, warnings, _, err := r.ProgramWithCacheInfo(ctx, opts)
	return prog, warnings, err
}

func (r *Runner) renderProgramFormat(ctx context.Context, prog layout.Program, opts Options, format string) ([]byte, bool, error) {
	key := cache.ArtifactKey(opts.Expression, opts.LayoutKeyOpts(), opts.ArtifactKeyOpts(format))
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			return data, true, nil
		}
	}

	var svgOpts []sink.SVGOption
	if opts.Scale > 0 {
		svgOpts = append(svgOpts, sink.WithScale(opts.Scale))
	}

	var data []byte
	var err error
	switch format {
	case FormatSVG:
		data = sink.RenderSVG(prog, svgOpts...)
	case FormatPNG:
		data, err = sink.RenderPNG(prog, sink.WithPNGSVGOptions(svgOpts...))
	case FormatPDF:
		data, err = sink.RenderPDF(prog, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		data, err = sink.RenderJSON(prog)
	}
	if err != nil {
		return nil, false, err
	}

	_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
	return data, false, nil
}

func (r *Runner) executeGraph(ctx context.Context, opts Options, result *Result) error {
	layoutStart := time.Now()
	expr, warnings, err := notation.Parse(opts.Expression)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	result.Warnings = warnings
	result.Stats.ElementCount = len(expr.Leaves())
	result.Stats.LayoutTime = time.Since(layoutStart)

	dot := graphview.ToDOT(expr)

	renderStart := time.Now()
	renderHit := true
	for _, format := range opts.Formats {
		key := cache.ArtifactKey(opts.Expression, cache.LayoutKeyOpts{}, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				result.Artifacts[format] = data
				continue
			}
		}
		renderHit = false

		var data []byte
		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = graphview.RenderSVG(dot)
		case FormatPNG:
			scale := opts.Scale
			if scale == 0 {
				scale = 2.0
			}
			data, err = graphview.RenderPNG(dot, scale)
		case FormatPDF:
			data, err = graphview.RenderPDF(dot)
		}
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit
	return nil
}

func (r *Runner) executeFigure(ctx context.Context, opts Options, result *Result) error {
	layoutStart := time.Now()
	circuit, err := model.New(opts.Expression, opts.Parameters)
	if err != nil {
		return fmt.Errorf("model: %w", err)
	}
	freqs := model.LogSpace(opts.FreqStart, opts.FreqEnd, opts.FreqPoints)
	z := circuit.Predict(freqs)
	result.Stats.ElementCount = len(circuit.ParamNames())
	result.Stats.LayoutTime = time.Since(layoutStart)

	var figOpts []plot.Option
	if opts.Title != "" {
		figOpts = append(figOpts, plot.WithTitle(opts.Title))
	}

	renderStart := time.Now()
	renderHit := true
	for _, format := range opts.Formats {
		key := cache.FigureKey(opts.Expression, opts.Parameters, opts.sweep(), opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				result.Artifacts[format] = data
				continue
			}
		}
		renderHit = false

		var fig *plot.Figure
		if opts.Kind == KindBode {
			fig, err = plot.Bode(freqs, z, figOpts...)
		} else {
			fig, err = plot.Nyquist(freqs, z, figOpts...)
		}
		if err != nil {
			return fmt.Errorf("build figure: %w", err)
		}

		data, err := fig.Render(format)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
		_ = r.Cache.Set(ctx, key, data, cache.TTLFigure)
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
