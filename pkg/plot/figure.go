// Package plot builds Bode and Nyquist figures for circuit frequency
// responses using gonum/plot.
//
// Both figure constructors take a frequency grid (Hz) and the matching
// complex impedance samples, typically produced by model.Circuit.Predict.
// Figures render to SVG or PNG.
package plot

import (
	"bytes"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/zsketch/zsketch/pkg/errors"
)

// Line colors follow the conventional Bode/Nyquist palette: blue magnitude,
// red phase, green locus.
var (
	colorMagnitude = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	colorPhase     = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	colorLocus     = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	colorAxisLine  = color.RGBA{R: 120, G: 120, B: 120, A: 255}
)

// Figure is a grid of aligned plot panels ready for rendering.
type Figure struct {
	panels [][]*plot.Plot
	width  vg.Length
	height vg.Length
}

// Option configures figure construction.
type Option func(*config)

type config struct {
	title  string
	width  vg.Length
	height vg.Length
}

// WithTitle sets the figure title prefix (default "Circuit").
func WithTitle(title string) Option {
	return func(c *config) { c.title = title }
}

// WithSize sets the figure canvas size.
func WithSize(w, h vg.Length) Option {
	return func(c *config) { c.width = w; c.height = h }
}

func newConfig(w, h vg.Length, opts []Option) config {
	c := config{title: "Circuit", width: w, height: h}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WriteSVG renders the figure as SVG.
func (f *Figure) WriteSVG(buf *bytes.Buffer) error {
	canvas := vgsvg.New(f.width, f.height)
	f.draw(draw.New(canvas))
	if _, err := canvas.WriteTo(buf); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write SVG figure")
	}
	return nil
}

// WritePNG renders the figure as PNG.
func (f *Figure) WritePNG(buf *bytes.Buffer) error {
	canvas := vgimg.PngCanvas{Canvas: vgimg.New(f.width, f.height)}
	f.draw(draw.New(canvas))
	if _, err := canvas.WriteTo(buf); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write PNG figure")
	}
	return nil
}

// Render renders the figure in the requested format ("svg" or "png").
func (f *Figure) Render(format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "svg":
		if err := f.WriteSVG(&buf); err != nil {
			return nil, err
		}
	case "png":
		if err := f.WritePNG(&buf); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"invalid figure format: %q (must be 'svg' or 'png')", format)
	}
	return buf.Bytes(), nil
}

// Panels exposes the underlying plot panels, row-major. Tests use this to
// assert on axis configuration.
func (f *Figure) Panels() [][]*plot.Plot { return f.panels }

func (f *Figure) draw(dc draw.Canvas) {
	tiles := draw.Tiles{
		Rows: len(f.panels),
		Cols: len(f.panels[0]),
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}
	canvases := plot.Align(f.panels, tiles, dc)
	for r, row := range f.panels {
		for c, p := range row {
			if p != nil {
				p.Draw(canvases[r][c])
			}
		}
	}
}
