package model

import (
	"math"
	"math/cmplx"

	"github.com/zsketch/zsketch/pkg/errors"
)

// ImpedanceFunc computes the complex impedance of one element at angular
// frequency w (rad/s) for the given parameter slice.
type ImpedanceFunc func(w float64, p []float64) complex128

// elementDef describes one modelable element: how many parameters it takes
// and how to evaluate it.
type elementDef struct {
	NumParams int
	Eval      ImpedanceFunc
}

// elementTable maps component tags to their impedance models. Drawable-only
// tags (diodes, batteries, switches, ground) have no linear small-signal
// impedance and are deliberately absent; using them in a model is an error.
var elementTable = map[string]elementDef{
	// Ideal elements.
	"R": {1, func(w float64, p []float64) complex128 {
		return complex(p[0], 0)
	}},
	"C": {1, func(w float64, p []float64) complex128 {
		return 1 / complex(0, w*p[0])
	}},
	"L": {1, func(w float64, p []float64) complex128 {
		return complex(0, w*p[0])
	}},

	// Modified inductor: Z = L*(jw)^a.
	"La": {2, func(w float64, p []float64) complex128 {
		return complex(p[0], 0) * cmplx.Pow(complex(0, w), complex(p[1], 0))
	}},

	// Semi-infinite Warburg: Z = Aw/sqrt(w) * (1 - j).
	"W": {1, func(w float64, p []float64) complex128 {
		a := p[0] / math.Sqrt(w)
		return complex(a, -a)
	}},

	// Open-boundary (reflective) finite Warburg:
	// Z = Z0/sqrt(jw*tau) * coth(sqrt(jw*tau)).
	"Wo": {2, func(w float64, p []float64) complex128 {
		s := cmplx.Sqrt(complex(0, w*p[1]))
		return complex(p[0], 0) / s / cmplx.Tanh(s)
	}},

	// Short-boundary (transmissive) finite Warburg:
	// Z = Z0/sqrt(jw*tau) * tanh(sqrt(jw*tau)).
	"Ws": {2, func(w float64, p []float64) complex128 {
		s := cmplx.Sqrt(complex(0, w*p[1]))
		return complex(p[0], 0) * cmplx.Tanh(s) / s
	}},

	// Constant phase element: Z = 1/(Q*(jw)^a). Q is the CPE alias tag.
	"CPE": {2, cpe},
	"Q":   {2, cpe},

	// Gerischer: Z = Z0/sqrt(1 + jw*tau).
	"G": {2, func(w float64, p []float64) complex128 {
		return complex(p[0], 0) / cmplx.Sqrt(1+complex(0, w*p[1]))
	}},

	// Modified Gerischer: Z = Z0/sqrt(1 + (jw*tau)^phi).
	"Gs": {3, func(w float64, p []float64) complex128 {
		return complex(p[0], 0) / cmplx.Sqrt(1+cmplx.Pow(complex(0, w*p[1]), complex(p[2], 0)))
	}},

	// Single-relaxation RC arc: Z = R/(1 + jw*tau).
	"K": {2, func(w float64, p []float64) complex128 {
		return complex(p[0], 0) / (1 + complex(0, w*p[1]))
	}},

	// Depressed semicircle: Z = R/(1 + (jw*tau)^phi).
	"Zarc": {3, func(w float64, p []float64) complex128 {
		return complex(p[0], 0) / (1 + cmplx.Pow(complex(0, w*p[1]), complex(p[2], 0)))
	}},

	// Transmission line with CPE interface:
	// Z = sqrt(R/(Q*(jw)^a)) * coth(sqrt(R*Q*(jw)^a)).
	"TLMQ": {3, func(w float64, p []float64) complex128 {
		q := complex(p[1], 0) * cmplx.Pow(complex(0, w), complex(p[2], 0))
		r := complex(p[0], 0)
		return cmplx.Sqrt(r/q) / cmplx.Tanh(cmplx.Sqrt(r*q))
	}},

	// Bounded Warburg (blocked boundary), same form as Wo.
	"T": {2, func(w float64, p []float64) complex128 {
		s := cmplx.Sqrt(complex(0, w*p[1]))
		return complex(p[0], 0) / s / cmplx.Tanh(s)
	}},
}

func cpe(w float64, p []float64) complex128 {
	return 1 / (complex(p[0], 0) * cmplx.Pow(complex(0, w), complex(p[1], 0)))
}

// NumParams returns the parameter count for a component tag, or an error if
// the tag has no impedance model.
func NumParams(tag string) (int, error) {
	def, ok := elementTable[tag]
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidModel,
			"component type %q has no impedance model", tag)
	}
	return def.NumParams, nil
}

// Modelable reports whether a component tag has an impedance model.
func Modelable(tag string) bool {
	_, ok := elementTable[tag]
	return ok
}
