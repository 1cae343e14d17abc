package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zsketch/zsketch/pkg/model"
	"github.com/zsketch/zsketch/pkg/pipeline"
)

// plotOpts holds the command-line flags shared by the plot subcommands.
type plotOpts struct {
	output     string  // output file path
	format     string  // output format: "svg" or "png"
	modelFile  string  // TOML model file with circuit, parameters and sweep
	paramsStr  string  // comma-separated element parameter values
	title      string  // figure title
	freqStart  float64 // sweep start frequency in Hz
	freqEnd    float64 // sweep end frequency in Hz
	freqPoints int     // number of sweep points
	noCache    bool    // disable the artifact cache
	refresh    bool    // bypass the cache and recompute
}

// plotCommand creates the plot command with bode and nyquist subcommands.
func (c *CLI) plotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Plot the frequency response of a circuit",
	}

	cmd.AddCommand(c.plotSubcommand(pipeline.KindBode,
		"Plot impedance magnitude and phase against frequency"))
	cmd.AddCommand(c.plotSubcommand(pipeline.KindNyquist,
		"Plot the impedance locus in the complex plane"))

	return cmd
}

// plotSubcommand builds one of the "plot bode" / "plot nyquist" subcommands.
func (c *CLI) plotSubcommand(kind, short string) *cobra.Command {
	var opts plotOpts

	cmd := &cobra.Command{
		Use:   kind + " [expression]",
		Short: short,
		Long: short + `.

Element parameters are given in expression order with --params, or loaded
from a TOML model file with --model:

  zsketch plot ` + kind + ` "R0-p(R1,C1)" --params 100,250,1e-6
  zsketch plot ` + kind + ` --model randles.toml -o plot.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expression := ""
			if len(args) > 0 {
				expression = args[0]
			}
			return c.runPlot(cmd, kind, expression, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.FormatSVG, "output format: svg (default), png")
	cmd.Flags().StringVarP(&opts.modelFile, "model", "m", "", "TOML model file with circuit, parameters and sweep")
	cmd.Flags().StringVarP(&opts.paramsStr, "params", "p", "", "comma-separated element parameter values")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "figure title")
	cmd.Flags().Float64Var(&opts.freqStart, "freq-start", 0, "sweep start frequency in Hz (default 0.1)")
	cmd.Flags().Float64Var(&opts.freqEnd, "freq-end", 0, "sweep end frequency in Hz (default 1e5)")
	cmd.Flags().IntVar(&opts.freqPoints, "freq-points", 0, "number of sweep points (default 50)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache and recompute")

	return cmd
}

func (c *CLI) runPlot(cmd *cobra.Command, kind, expression string, opts *plotOpts) error {
	pipeOpts := pipeline.Options{
		Expression: expression,
		Kind:       kind,
		Formats:    []string{opts.format},
		Title:      opts.title,
		FreqStart:  opts.freqStart,
		FreqEnd:    opts.freqEnd,
		FreqPoints: opts.freqPoints,
		Refresh:    opts.refresh,
		Logger:     c.Logger,
	}

	if opts.modelFile != "" {
		mf, err := model.LoadModelFile(opts.modelFile)
		if err != nil {
			return err
		}
		if pipeOpts.Expression == "" {
			pipeOpts.Expression = mf.Expression
		}
		pipeOpts.Parameters = mf.Parameters
		if pipeOpts.FreqStart == 0 {
			pipeOpts.FreqStart = mf.Frequency.Start
		}
		if pipeOpts.FreqEnd == 0 {
			pipeOpts.FreqEnd = mf.Frequency.End
		}
		if pipeOpts.FreqPoints == 0 {
			pipeOpts.FreqPoints = mf.Frequency.Points
		}
		if pipeOpts.Title == "" && mf.Title != "" {
			pipeOpts.Title = mf.Title
		}
	}

	if opts.paramsStr != "" {
		params, err := parseParams(opts.paramsStr)
		if err != nil {
			return err
		}
		pipeOpts.Parameters = params
	}

	if pipeOpts.Expression == "" {
		return fmt.Errorf("an expression argument or --model file is required")
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	p := newProgress(c.Logger)
	spin := startSpinner(cmd.Context(), "Evaluating impedance sweep")
	result, err := runner.Execute(cmd.Context(), pipeOpts)
	spin.Stop()
	if err != nil {
		return err
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(result.Artifacts[opts.format]); err != nil {
		return err
	}

	p.done(fmt.Sprintf("Rendered %s plot", kind))
	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}

// parseParams parses a comma-separated list of floats.
func parseParams(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	params := make([]float64, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid parameter value %q", part)
		}
		params = append(params, f)
	}
	return params, nil
}
