package plot

import (
	"image/color"
	"math"
	"math/cmplx"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/zsketch/zsketch/pkg/errors"
)

// Default Bode canvas size.
const (
	BodeWidth  = 6 * vg.Inch
	BodeHeight = 8 * vg.Inch
)

// Phase display bounds in degrees. The axis is clamped to this window; the
// underlying data is not modified.
const (
	phaseMin = -90
	phaseMax = 90
)

// Bode builds the two-panel Bode figure: log-log impedance magnitude on top,
// log-linear phase below with the Y axis clamped to [-90, 90] degrees.
func Bode(freqs []float64, z []complex128, opts ...Option) (*Figure, error) {
	if len(freqs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFrequency, "no frequency samples to plot")
	}
	if len(freqs) != len(z) {
		return nil, errors.New(errors.ErrCodeInvalidFrequency,
			"frequency and impedance sample counts differ (%d vs %d)", len(freqs), len(z))
	}
	cfg := newConfig(BodeWidth, BodeHeight, opts)

	mag := make(plotter.XYs, len(freqs))
	phase := make(plotter.XYs, len(freqs))
	for i, f := range freqs {
		mag[i].X = f
		mag[i].Y = cmplx.Abs(z[i])
		phase[i].X = f
		phase[i].Y = cmplx.Phase(z[i]) * 180 / math.Pi
	}

	magPanel, err := bodePanel(cfg.title+" - Bode Plot", "", "|Z| (Ω)", mag, colorMagnitude)
	if err != nil {
		return nil, err
	}
	magPanel.Y.Scale = plot.LogScale{}
	magPanel.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	phasePanel, err := bodePanel("", "Frequency (Hz)", "Phase (degrees)", phase, colorPhase)
	if err != nil {
		return nil, err
	}
	// Display clamp only; the phase samples themselves stay untouched.
	phasePanel.Y.Min = phaseMin
	phasePanel.Y.Max = phaseMax

	return &Figure{
		panels: [][]*plot.Plot{{magPanel}, {phasePanel}},
		width:  cfg.width,
		height: cfg.height,
	}, nil
}

// bodePanel builds one log-frequency panel with a grid and a single line.
func bodePanel(title, xLabel, yLabel string, xys plotter.XYs, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build bode line")
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = c
	p.Add(line)

	return p, nil
}
