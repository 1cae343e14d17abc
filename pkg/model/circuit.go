// Package model evaluates the frequency response of equivalent-circuit
// models.
//
// A Circuit is built from the same series/parallel notation the schematic
// renderer uses, plus a flat parameter vector in notation order. Predict
// evaluates the complex impedance over a frequency grid: series segments add,
// parallel branches combine by reciprocal sum.
//
// Parameter naming follows the usual convention for multi-parameter
// elements: single-parameter elements are named by their token ("R0"),
// multi-parameter ones get an index suffix ("CPE1_0", "CPE1_1").
package model

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/zsketch/zsketch/pkg/errors"
	"github.com/zsketch/zsketch/pkg/notation"
)

// Circuit is an evaluatable equivalent-circuit model.
type Circuit struct {
	expr   notation.Expression
	leaves []notation.Leaf
	params []float64
	names  []string

	// offsets[i] is the index into params where leaf i's parameters
	// start, in notation order.
	offsets []int
	counts  []int
}

// New builds a circuit model from a notation expression and its parameter
// vector. Every component in the expression must have an impedance model and
// the parameter count must match exactly.
func New(expression string, params []float64) (*Circuit, error) {
	parsed, warnings, err := notation.Parse(expression)
	if err != nil {
		return nil, err
	}
	// A drawing can skip unknown components; a model cannot evaluate
	// around them.
	if len(warnings) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidModel,
			"expression %q contains unmodelable components: %v", expression, warnings[0])
	}
	return FromExpression(parsed, params)
}

// FromExpression builds a circuit model from an already-parsed expression.
func FromExpression(expr notation.Expression, params []float64) (*Circuit, error) {
	// A schematic can draw around an empty parallel group; a model cannot:
	// zero branches means zero admittance and an infinite impedance.
	for _, seg := range expr.Segments {
		if seg.Parallel && len(seg.Leaves) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidModel,
				"circuit %q contains an empty parallel group", expr.Source)
		}
	}

	c := &Circuit{expr: expr, leaves: expr.Leaves(), params: params}

	total := 0
	for _, leaf := range c.leaves {
		n, err := NumParams(leaf.Tag)
		if err != nil {
			return nil, err
		}
		c.offsets = append(c.offsets, total)
		c.counts = append(c.counts, n)
		c.names = append(c.names, paramNames(leaf, n)...)
		total += n
	}

	if total != len(params) {
		return nil, errors.New(errors.ErrCodeInvalidModel,
			"circuit %q needs %d parameters, got %d", expr.Source, total, len(params))
	}
	return c, nil
}

func paramNames(leaf notation.Leaf, n int) []string {
	if n == 1 {
		return []string{leaf.Token()}
	}
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s_%d", leaf.Token(), i)
	}
	return names
}

// Circuit returns the notation string this model was built from.
func (c *Circuit) Circuit() string { return c.expr.Source }

// Expression returns the parsed expression.
func (c *Circuit) Expression() notation.Expression { return c.expr }

// ParamNames returns the flat parameter names in notation order.
func (c *Circuit) ParamNames() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Parameters returns the flat parameter values in notation order.
func (c *Circuit) Parameters() []float64 {
	out := make([]float64, len(c.params))
	copy(out, c.params)
	return out
}

// Predict evaluates the circuit impedance at each frequency (Hz).
func (c *Circuit) Predict(freqs []float64) []complex128 {
	out := make([]complex128, len(freqs))
	for i, f := range freqs {
		out[i] = c.at(2 * math.Pi * f)
	}
	return out
}

// at evaluates the total impedance at angular frequency w.
func (c *Circuit) at(w float64) complex128 {
	var total complex128
	leaf := 0
	for _, seg := range c.expr.Segments {
		if !seg.Parallel {
			total += c.leafAt(w, leaf)
			leaf++
			continue
		}
		var admittance complex128
		for range seg.Leaves {
			admittance += 1 / c.leafAt(w, leaf)
			leaf++
		}
		total += 1 / admittance
	}
	return total
}

func (c *Circuit) leafAt(w float64, i int) complex128 {
	leaf := c.leaves[i]
	def := elementTable[leaf.Tag]
	return def.Eval(w, c.params[c.offsets[i]:c.offsets[i]+c.counts[i]])
}

// ChiSquared returns the normalized squared residual between predicted and
// measured impedance: sum |pred-meas|^2 / |meas|^2.
func ChiSquared(pred, meas []complex128) (float64, error) {
	if len(pred) != len(meas) {
		return 0, errors.New(errors.ErrCodeInvalidModel,
			"prediction and measurement lengths differ (%d vs %d)", len(pred), len(meas))
	}
	var chi float64
	for i := range pred {
		d := pred[i] - meas[i]
		m := cmplx.Abs(meas[i])
		if m == 0 {
			continue
		}
		chi += (real(d)*real(d) + imag(d)*imag(d)) / (m * m)
	}
	return chi, nil
}
