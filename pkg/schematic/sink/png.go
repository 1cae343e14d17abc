package sink

import (
	"github.com/zsketch/zsketch/pkg/render"
	"github.com/zsketch/zsketch/pkg/schematic/layout"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	zoom    float64
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithZoom sets the PNG zoom factor (default 2.0 for 2x resolution).
func WithZoom(z float64) PNGOption {
	return func(r *pngRenderer) { r.zoom = z }
}

// RenderPNG renders the draw program as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(p layout.Program, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{zoom: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	svg := RenderSVG(p, r.svgOpts...)
	return render.ToPNG(svg, r.zoom)
}
