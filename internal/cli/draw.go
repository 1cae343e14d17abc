package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zsketch/zsketch/pkg/pipeline"
)

// drawOpts holds the command-line flags for the draw command.
type drawOpts struct {
	output    string   // output file path (or base path for multiple formats)
	formats   []string // output formats: "svg", "png", "pdf", "json"
	direction string   // layout direction: right, left, up, down
	spacing   float64  // parallel branch spacing in schematic units
	scale     float64  // pixels per schematic unit
	noCache   bool     // disable the artifact cache
	refresh   bool     // bypass the cache and recompute
}

// drawCommand creates the draw command for rendering schematics.
//
// Default settings:
//   - direction: right
//   - spacing: 1.0 schematic units between parallel branches
//   - format: svg
func (c *CLI) drawCommand() *cobra.Command {
	var formatsStr string
	opts := drawOpts{
		direction: "right",
		spacing:   pipeline.DefaultSpacing,
	}

	cmd := &cobra.Command{
		Use:   "draw [expression]",
		Short: "Render a circuit expression as a schematic",
		Long: `Render a circuit expression as a schematic drawing.

Expressions list elements in series separated by dashes, with parallel
groups written as p(...):

  zsketch draw "R0-p(R1,C1)-R2" -o circuit.svg
  zsketch draw "R0-C1" -f svg,png -o out/circuit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runDraw(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", opts.direction, "layout direction: right, left, up, down")
	cmd.Flags().Float64Var(&opts.spacing, "spacing", opts.spacing, "spacing between parallel branches")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "pixels per schematic unit (default 40)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache and recompute")

	return cmd
}

func (c *CLI) runDraw(cmd *cobra.Command, expression string, opts *drawOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	p := newProgress(c.Logger)
	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		Expression: expression,
		Kind:       pipeline.KindSchematic,
		Direction:  opts.direction,
		Spacing:    opts.spacing,
		Scale:      opts.scale,
		Formats:    opts.formats,
		Refresh:    opts.refresh,
		Logger:     c.Logger,
	})
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		printWarning("%s", w.String())
	}

	if err := writeArtifacts(result, opts.formats, opts.output, expression); err != nil {
		return err
	}

	p.done(fmt.Sprintf("Rendered %d format(s)", len(opts.formats)))
	printStats(result.Stats.ElementCount, len(result.Warnings), result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each rendered format to disk (or stdout for a single
// format with no output path).
func writeArtifacts(result *pipeline.Result, formats []string, output, expression string) error {
	if len(formats) == 1 {
		out, err := openOutput(output)
		if err != nil {
			return err
		}
		defer out.Close()
		if _, err := out.Write(result.Artifacts[formats[0]]); err != nil {
			return err
		}
		if output != "" {
			printFile(output)
		}
		return nil
	}

	base := output
	if base == "" {
		base = "circuit"
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))

	for _, format := range formats {
		path := base + "." + format
		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(result.Artifacts[format]); err != nil {
			out.Close()
			return err
		}
		out.Close()
		printFile(path)
	}
	return nil
}
