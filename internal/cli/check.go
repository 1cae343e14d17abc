package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zsketch/zsketch/pkg/model"
	"github.com/zsketch/zsketch/pkg/notation"
)

// checkCommand creates the check command for validating expressions.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [expression]",
		Short: "Parse an expression and report its structure",
		Long: `Parse a circuit expression and report its series/parallel structure,
unknown tokens, and the parameter names an impedance model would need.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0])
		},
	}
}

func runCheck(expression string) error {
	expr, warnings, err := notation.Parse(expression)
	if err != nil {
		return err
	}

	printKeyValue("expression", expr.Source)
	printKeyValue("segments", fmt.Sprintf("%d", len(expr.Segments)))
	printKeyValue("elements", fmt.Sprintf("%d", len(expr.Leaves())))
	printNewline()

	for i, seg := range expr.Segments {
		if seg.Parallel {
			tokens := make([]string, len(seg.Leaves))
			for j, leaf := range seg.Leaves {
				tokens[j] = leaf.Token()
			}
			printInfo("segment %d: parallel group of %d", i, len(seg.Leaves))
			printDetail("%s", strings.Join(tokens, " ∥ "))
		} else {
			leaf := seg.Leaves[0]
			printInfo("segment %d: %s (%s)", i, leaf.Token(), leaf.Kind)
		}
	}

	for _, w := range warnings {
		printWarning("%s", w.String())
	}

	// Report the model parameter vector if every element has an impedance.
	modelable := true
	for _, leaf := range expr.Leaves() {
		if !model.Modelable(leaf.Tag) {
			modelable = false
			break
		}
	}
	printNewline()
	if !modelable || len(warnings) > 0 {
		printDetail("not modelable: plot commands will reject this expression")
		return nil
	}

	names, err := modelParamNames(expr)
	if err != nil {
		return err
	}
	printKeyValue("parameters", strings.Join(names, ", "))
	printNextStep("Plot it", fmt.Sprintf("zsketch plot bode %q --params %s",
		expr.Source, strings.TrimSuffix(strings.Repeat("1,", len(names)), ",")))
	return nil
}

// modelParamNames builds a zero-valued model just to read its parameter names.
func modelParamNames(expr notation.Expression) ([]string, error) {
	count := 0
	for _, leaf := range expr.Leaves() {
		n, err := model.NumParams(leaf.Tag)
		if err != nil {
			return nil, err
		}
		count += n
	}
	circuit, err := model.FromExpression(expr, make([]float64, count))
	if err != nil {
		return nil, err
	}
	return circuit.ParamNames(), nil
}
