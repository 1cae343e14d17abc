// Package graphview renders circuit topology as node-link diagrams.
//
// Where the schematic renderer reproduces the conventional drawing of a
// circuit, graphview shows its electrical topology: elements as boxes,
// junctions as points, series composition as a left-to-right chain and
// parallel groups as branch fan-outs between shared junctions. Rendering
// goes through Graphviz DOT.
package graphview

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/zsketch/zsketch/pkg/notation"
	"github.com/zsketch/zsketch/pkg/render"
)

// ToDOT converts a parsed circuit expression to Graphviz DOT. The chain runs
// left to right between two terminal points; parallel groups get entry and
// exit junction points.
func ToDOT(expr notation.Expression) string {
	var buf bytes.Buffer
	buf.WriteString("digraph circuit {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("\n")

	g := dotBuilder{buf: &buf}
	g.terminal("in")
	frontier := []string{"in"}

	for _, seg := range expr.Segments {
		if !seg.Parallel {
			if len(seg.Leaves) != 1 {
				continue
			}
			id := g.element(seg.Leaves[0])
			g.connect(frontier, id)
			frontier = []string{id}
			continue
		}

		if len(seg.Leaves) == 0 {
			continue // degenerate group, nothing to show
		}
		entry := g.junction()
		g.connect(frontier, entry)
		exit := g.junction()
		for _, leaf := range seg.Leaves {
			id := g.element(leaf)
			g.connect([]string{entry}, id)
			g.connect([]string{id}, exit)
		}
		frontier = []string{exit}
	}

	g.terminal("out")
	g.connect(frontier, "out")

	buf.WriteString("}\n")
	return buf.String()
}

type dotBuilder struct {
	buf       *bytes.Buffer
	elems     int
	junctions int
}

func (g *dotBuilder) terminal(id string) {
	fmt.Fprintf(g.buf, "  %q [shape=point, width=0.08, fillcolor=black];\n", id)
}

func (g *dotBuilder) junction() string {
	g.junctions++
	id := fmt.Sprintf("j%d", g.junctions)
	fmt.Fprintf(g.buf, "  %q [shape=point, width=0.12, fillcolor=black];\n", id)
	return id
}

func (g *dotBuilder) element(leaf notation.Leaf) string {
	g.elems++
	id := fmt.Sprintf("e%d", g.elems)
	fmt.Fprintf(g.buf, "  %q [label=%q];\n", id, leaf.Token())
	return id
}

func (g *dotBuilder) connect(from []string, to string) {
	for _, f := range from {
		fmt.Fprintf(g.buf, "  %q -> %q;\n", f, to)
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz SVG header to an origin-based
// viewBox so downstream conversion tools agree on the frame.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI
// displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}
