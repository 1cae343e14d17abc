package notation

import (
	"fmt"
	"strings"

	"github.com/zsketch/zsketch/pkg/errors"
)

// Leaf is a single circuit element: a registered component tag plus a
// free-form identifier suffix.
type Leaf struct {
	Tag  string `json:"tag"`
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`
}

// Token returns the original leaf token (tag + identifier).
func (l Leaf) Token() string { return l.Tag + l.ID }

// Segment is one series element of an expression: either a single leaf or a
// parallel bundle of leaves.
type Segment struct {
	Parallel bool   `json:"parallel"`
	Leaves   []Leaf `json:"leaves"`
}

// Expression is a parsed circuit expression.
type Expression struct {
	Source   string    `json:"source"`
	Segments []Segment `json:"segments"`
}

// Leaves returns every recognized leaf in series order, parallel branches
// included.
func (e Expression) Leaves() []Leaf {
	var out []Leaf
	for _, seg := range e.Segments {
		out = append(out, seg.Leaves...)
	}
	return out
}

// Warning records a non-fatal diagnostic produced during parsing, typically
// an unrecognized component tag. The offending leaf is dropped from the
// expression; the rest still parses.
type Warning struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// String implements fmt.Stringer.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Token, w.Message)
}

// Parse parses a circuit expression into its series segments.
//
// Unknown component tags produce warnings and are dropped. Structural errors
// (empty expression, unbalanced or nested parallel groups) are hard errors
// with MALFORMED_GROUP or INVALID_EXPRESSION codes.
func Parse(expr string) (Expression, []Warning, error) {
	if err := errors.ValidateExpression(expr); err != nil {
		return Expression{}, nil, err
	}

	result := Expression{Source: expr}
	var warnings []Warning

	for _, part := range strings.Split(expr, "-") {
		part = strings.TrimSpace(part)

		switch {
		case strings.HasPrefix(part, "p("):
			seg, w, err := parseGroup(part)
			if err != nil {
				return Expression{}, nil, err
			}
			warnings = append(warnings, w...)
			result.Segments = append(result.Segments, seg)

		case part == "":
			// Stray separator ("R0--R1"); skip like the empty-leaf case
			// inside groups.

		default:
			leaf, ok := parseLeaf(part)
			if !ok {
				warnings = append(warnings, unknownTag(part))
				continue
			}
			result.Segments = append(result.Segments, Segment{Leaves: []Leaf{leaf}})
		}
	}

	if len(result.Segments) == 0 && len(warnings) == 0 {
		return Expression{}, nil, errors.New(errors.ErrCodeInvalidExpression,
			"expression %q contains no components", expr)
	}

	return result, warnings, nil
}

// parseGroup parses a parallel group "p(a,b,...)". The wrapper must close and
// the interior cannot contain another group.
func parseGroup(part string) (Segment, []Warning, error) {
	if !strings.HasSuffix(part, ")") {
		return Segment{}, nil, errors.New(errors.ErrCodeMalformedGroup,
			"unbalanced parallel group: %q has no matching ')'", part)
	}

	inner := part[len("p(") : len(part)-1]
	if strings.Contains(inner, "p(") {
		return Segment{}, nil, errors.New(errors.ErrCodeMalformedGroup,
			"nested parallel groups are not supported: %q", part)
	}
	if strings.ContainsAny(inner, "()") {
		return Segment{}, nil, errors.New(errors.ErrCodeMalformedGroup,
			"unbalanced parentheses inside parallel group: %q", part)
	}

	seg := Segment{Parallel: true}
	var warnings []Warning

	for _, token := range strings.Split(inner, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		leaf, ok := parseLeaf(token)
		if !ok {
			warnings = append(warnings, unknownTag(token))
			continue
		}
		seg.Leaves = append(seg.Leaves, leaf)
	}

	return seg, warnings, nil
}

// parseLeaf splits a leaf token into tag and identifier by longest-prefix
// matching.
func parseLeaf(token string) (Leaf, bool) {
	tag, id, kind, ok := MatchTag(token)
	if !ok {
		return Leaf{}, false
	}
	return Leaf{Tag: tag, ID: id, Kind: kind}, true
}

func unknownTag(token string) Warning {
	return Warning{
		Token:   token,
		Message: fmt.Sprintf("unknown component type in %q; element skipped", token),
	}
}
