// Package pkg provides the core libraries for zsketch circuit drawing.
//
// # Overview
//
// zsketch turns compact circuit expressions like "R0-p(R1,C1)-R2" into
// schematics, structural graphs, and impedance plots. The pkg directory is
// organized into these areas:
//
//  1. [notation] - Expression parsing (series segments, parallel groups)
//  2. [schematic] - 2D layout and rendering of draw programs
//  3. [model] - Complex impedance evaluation over frequency sweeps
//  4. [plot] - Bode and Nyquist figures built on gonum/plot
//  5. [graphview] - Graphviz node-link views of the circuit structure
//  6. [pipeline] - Orchestration (parse → layout → render) with caching
//  7. [server] - HTTP API exposing the pipeline and saved circuits
//
// # Architecture
//
// The typical data flow through zsketch:
//
//	"R0-p(R1,C1)" expression
//	         ↓
//	    [notation] package (parse into segments)
//	         ↓
//	    [schematic/layout] package (fold into a draw program)
//	         ↓
//	    [schematic/sink] package (SVG/PNG/PDF/JSON output)
//
// and for frequency responses:
//
//	    [model] package (complex impedance per sweep point)
//	         ↓
//	    [plot] package (Bode magnitude/phase, Nyquist locus)
//
// # Quick Start
//
// Draw a schematic:
//
//	import (
//	    "github.com/zsketch/zsketch/pkg/schematic/layout"
//	    "github.com/zsketch/zsketch/pkg/schematic/sink"
//	)
//
//	prog, warnings, err := layout.Layout("R0-p(R1,C1)-R2")
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(prog)
//
// Plot an impedance spectrum:
//
//	import (
//	    "github.com/zsketch/zsketch/pkg/model"
//	    "github.com/zsketch/zsketch/pkg/plot"
//	)
//
//	circuit, _ := model.New("R0-p(R1,C1)", []float64{100, 250, 1e-6})
//	freqs := model.LogSpace(0.1, 1e5, 50)
//	fig, _ := plot.Bode(freqs, circuit.Predict(freqs))
//	data, _ := fig.Render("svg")
//
// # Infrastructure
//
// [pipeline] - Complete rendering pipeline used by CLI and API, with
// content-addressed caching of draw programs and rendered artifacts.
//
// [cache] - Cache backends: file (CLI), redis (server), null (disabled).
//
// [store] - Saved circuit persistence: memory (development) and MongoDB.
//
// [errors] - Structured error codes shared by CLI and HTTP API.
//
// [notation]: https://pkg.go.dev/github.com/zsketch/zsketch/pkg/notation
// [schematic]: https://pkg.go.dev/github.com/zsketch/zsketch/pkg/schematic
// [schematic/layout]: https://pkg.go.dev/github.com/zsketch/zsketch/pkg/schematic/layout
// [schematic/sink]: https://pkg.go.dev/github.com/zsketch/zsketch/pkg/schematic/sink
// [model]: https://pkg.go.dev/github.com/zsketch/zsketch/pkg/model
// [plot]: https://pkg.go.dev/github.com/zsketch/zsketch/pkg/plot
// [graphview]: https://pkg.go.dev/github.com/zsketch/zsketch/pkg/graphview
// [pipeline]: https://pkg.go.dev/github.com/zsketch/zsketch/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/zsketch/zsketch/pkg/server
// [cache]: https://pkg.go.dev/github.com/zsketch/zsketch/pkg/cache
// [store]: https://pkg.go.dev/github.com/zsketch/zsketch/pkg/store
// [errors]: https://pkg.go.dev/github.com/zsketch/zsketch/pkg/errors
package pkg
