package plot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/zsketch/zsketch/pkg/errors"
)

// Default Nyquist canvas size. The canvas is square so that equalized axis
// ranges give a 1:1 data aspect ratio.
const (
	NyquistWidth  = 6 * vg.Inch
	NyquistHeight = 6 * vg.Inch
)

// nyquistPadding is the whitespace around the data bounding box, as a
// fraction of the span.
const nyquistPadding = 0.05

// annotationCount is the number of frequency markers placed along the locus,
// at evenly spaced sample indices.
const annotationCount = 5

// Nyquist builds the Nyquist figure: Re(Z) against -Im(Z) with equal-aspect
// axes centered on the padded data bounding box, and frequency annotations at
// five evenly-index-spaced samples.
func Nyquist(freqs []float64, z []complex128, opts ...Option) (*Figure, error) {
	if len(freqs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFrequency, "no frequency samples to plot")
	}
	if len(freqs) != len(z) {
		return nil, errors.New(errors.ErrCodeInvalidFrequency,
			"frequency and impedance sample counts differ (%d vs %d)", len(freqs), len(z))
	}
	cfg := newConfig(NyquistWidth, NyquistHeight, opts)

	xys := make(plotter.XYs, len(z))
	for i := range z {
		xys[i].X = real(z[i])
		xys[i].Y = -imag(z[i])
	}

	p := plot.New()
	p.Title.Text = cfg.title + " - Nyquist Plot"
	p.X.Label.Text = "Z_real (Ω)"
	p.Y.Label.Text = "-Z_imag (Ω)"
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build nyquist locus")
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = colorLocus
	points.GlyphStyle.Color = colorLocus
	points.GlyphStyle.Radius = vg.Points(2)

	xMin, xMax, yMin, yMax := equalAspectRanges(xys)
	p.X.Min, p.X.Max = xMin, xMax
	p.Y.Min, p.Y.Max = yMin, yMax

	// Dashed origin lines, drawn under the locus.
	for _, axis := range originLines(xMin, xMax, yMin, yMax) {
		p.Add(axis)
	}
	p.Add(line, points)

	labels, err := frequencyLabels(freqs, xys, xMax-xMin, yMax-yMin)
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	return &Figure{
		panels: [][]*plot.Plot{{p}},
		width:  cfg.width,
		height: cfg.height,
	}, nil
}

// equalAspectRanges returns axis ranges centered on the data bounding box
// with 5% padding, widened so both axes span the same distance. On a square
// canvas this yields an exact 1:1 data aspect ratio.
func equalAspectRanges(xys plotter.XYs) (xMin, xMax, yMin, yMax float64) {
	xMin, xMax = xys[0].X, xys[0].X
	yMin, yMax = xys[0].Y, xys[0].Y
	for _, xy := range xys {
		if xy.X < xMin {
			xMin = xy.X
		}
		if xy.X > xMax {
			xMax = xy.X
		}
		if xy.Y < yMin {
			yMin = xy.Y
		}
		if xy.Y > yMax {
			yMax = xy.Y
		}
	}

	span := xMax - xMin
	if yMax-yMin > span {
		span = yMax - yMin
	}
	if span == 0 {
		span = 1 // degenerate single-point dataset
	}
	span *= 1 + 2*nyquistPadding

	cx := (xMin + xMax) / 2
	cy := (yMin + yMax) / 2
	return cx - span/2, cx + span/2, cy - span/2, cy + span/2
}

// originLines returns dashed X=0 and Y=0 lines where they cross the visible
// range.
func originLines(xMin, xMax, yMin, yMax float64) []plot.Plotter {
	var out []plot.Plotter
	dashes := []vg.Length{vg.Points(4), vg.Points(4)}

	if yMin < 0 && yMax > 0 {
		l, err := plotter.NewLine(plotter.XYs{{X: xMin, Y: 0}, {X: xMax, Y: 0}})
		if err == nil {
			l.LineStyle.Color = colorAxisLine
			l.LineStyle.Dashes = dashes
			out = append(out, l)
		}
	}
	if xMin < 0 && xMax > 0 {
		l, err := plotter.NewLine(plotter.XYs{{X: 0, Y: yMin}, {X: 0, Y: yMax}})
		if err == nil {
			l.LineStyle.Color = colorAxisLine
			l.LineStyle.Dashes = dashes
			out = append(out, l)
		}
	}
	return out
}

// frequencyLabels annotates evenly-index-spaced samples with their frequency.
// Labels are nudged by 1% of the axis span so they clear the glyphs.
func frequencyLabels(freqs []float64, xys plotter.XYs, xSpan, ySpan float64) (*plotter.Labels, error) {
	n := len(freqs)
	count := annotationCount
	if n < count {
		count = n
	}

	var data plotter.XYLabels
	for i := 0; i < count; i++ {
		idx := 0
		if count > 1 {
			idx = i * (n - 1) / (count - 1)
		}
		data.XYs = append(data.XYs, plotter.XY{
			X: xys[idx].X + 0.01*xSpan,
			Y: xys[idx].Y + 0.01*ySpan,
		})
		data.Labels = append(data.Labels, fmt.Sprintf("%.1e Hz", freqs[idx]))
	}

	labels, err := plotter.NewLabels(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build frequency labels")
	}
	return labels, nil
}
