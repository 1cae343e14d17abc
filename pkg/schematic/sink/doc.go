// Package sink renders schematic draw programs to output formats.
//
// Supported formats:
//   - SVG: Primary vector output, written directly
//   - PDF: Print-ready output (requires rsvg-convert)
//   - PNG: Raster image output (requires rsvg-convert)
//   - JSON: Draw-program export for tooling
//
// PDF and PNG conversion go through the SVG renderer and require librsvg to
// be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
package sink
