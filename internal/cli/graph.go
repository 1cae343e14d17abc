package cli

import (
	"github.com/spf13/cobra"

	"github.com/zsketch/zsketch/pkg/pipeline"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output  string
	format  string
	scale   float64
	noCache bool
	refresh bool
}

// graphCommand creates the graph command for rendering the series/parallel
// structure of an expression as a Graphviz node-link diagram.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph [expression]",
		Short: "Render the circuit structure as a Graphviz diagram",
		Long: `Render the series/parallel structure of a circuit expression as a
left-to-right Graphviz diagram. Use --format dot to emit the raw DOT source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.FormatSVG, "output format: svg (default), png, pdf, dot")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG zoom factor (default 2.0)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache and recompute")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, expression string, opts *graphOpts) error {
	logger := loggerFromContext(cmd.Context())
	logger.Debugf("Rendering %s graph for %q", opts.format, expression)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		Expression: expression,
		Kind:       pipeline.KindGraph,
		Formats:    []string{opts.format},
		Scale:      opts.scale,
		Refresh:    opts.refresh,
		Logger:     c.Logger,
	})
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		printWarning("%s", w.String())
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(result.Artifacts[opts.format]); err != nil {
		return err
	}

	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}
