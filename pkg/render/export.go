// Package render provides shared SVG conversion helpers.
//
// PDF and PNG conversion are delegated to the external rsvg-convert tool
// (from librsvg). These are used by both the schematic sinks and the
// topology-graph renderer.
package render

import (
	"bytes"
	"fmt"
	"os/exec"
)

// rsvgConvert is the conversion binary. Overridable in tests.
var rsvgConvert = "rsvg-convert"

// ToPNG converts SVG bytes to PNG at the given zoom factor.
// A zoom of 2.0 produces a 2x resolution image suitable for high-DPI
// displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(svg []byte, zoom float64) ([]byte, error) {
	return convert(svg, "--format=png", fmt.Sprintf("--zoom=%g", zoom))
}

// ToPDF converts SVG bytes to PDF.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "--format=pdf")
}

func convert(svg []byte, args ...string) ([]byte, error) {
	cmd := exec.Command(rsvgConvert, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if _, lookErr := exec.LookPath(rsvgConvert); lookErr != nil {
			return nil, fmt.Errorf("%s not found; install librsvg (brew install librsvg / apt install librsvg2-bin)", rsvgConvert)
		}
		return nil, fmt.Errorf("%s: %w: %s", rsvgConvert, err, stderr.String())
	}
	return out.Bytes(), nil
}
