// Package notation parses the compact textual notation for equivalent-circuit
// models used in impedance spectroscopy.
//
// A circuit expression is a sequence of segments separated by '-' (series
// composition). Each segment is either a single leaf component such as "R0" or
// "CPE1", or a parallel group "p(R1,C1)" of leaf components. Parallel groups
// cannot be nested.
//
// Component tags are matched against an ordered table of registered tags by
// longest prefix, so multi-letter tags like "CPE", "Wo" and "LED" resolve
// correctly ("CPE1" is the CPE element with identifier "1", not a capacitor
// named "PE1").
//
// Unknown component tags are not fatal: the offending leaf is dropped and a
// Warning is recorded, so a drawing can still be produced from the recognized
// remainder of the expression.
package notation

import (
	"sort"
	"strings"
)

// Kind identifies the glyph family a component renders as.
type Kind string

// Glyph kinds for renderable components.
const (
	KindResistor  Kind = "resistor"
	KindCapacitor Kind = "capacitor"
	KindInductor  Kind = "inductor"
	KindDiode     Kind = "diode"
	KindLED       Kind = "led"
	KindBattery   Kind = "battery"
	KindSwitch    Kind = "switch"
	KindGround    Kind = "ground"

	// KindBox is the generic labeled box used for distributed and
	// frequency-dispersion elements (Warburg, CPE, Gerischer, ...).
	KindBox Kind = "box"
)

// tagTable maps registered component tags to glyph kinds. The distributed
// elements all render as labeled boxes, matching common practice in
// impedance-spectroscopy schematics.
var tagTable = map[string]Kind{
	"R":    KindResistor,
	"C":    KindCapacitor,
	"L":    KindInductor,
	"D":    KindDiode,
	"LED":  KindLED,
	"BAT":  KindBattery,
	"SW":   KindSwitch,
	"GND":  KindGround,
	"W":    KindBox, // semi-infinite Warburg
	"Wo":   KindBox, // open-boundary Warburg
	"Ws":   KindBox, // short-boundary Warburg
	"CPE":  KindBox, // constant phase element
	"Q":    KindBox, // CPE alias
	"La":   KindBox, // modified inductor
	"G":    KindBox, // Gerischer
	"Gs":   KindBox, // modified Gerischer
	"K":    KindBox,
	"Zarc": KindBox,
	"TLMQ": KindBox, // transmission line with CPE
	"T":    KindBox,

	// Structural tags. They only appear as leaves in hand-written
	// expressions; rendered as plain boxes when they do.
	"s": KindBox,
	"p": KindBox,
}

// tagsByLength holds all registered tags ordered longest-first so that prefix
// matching is unambiguous ("CPE1" matches CPE before C, "Wo1" matches Wo
// before W). Ties are broken alphabetically for determinism.
var tagsByLength = func() []string {
	tags := make([]string, 0, len(tagTable))
	for tag := range tagTable {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if len(tags[i]) != len(tags[j]) {
			return len(tags[i]) > len(tags[j])
		}
		return tags[i] < tags[j]
	})
	return tags
}()

// Tags returns all registered component tags, longest first.
func Tags() []string {
	out := make([]string, len(tagsByLength))
	copy(out, tagsByLength)
	return out
}

// KindOf returns the glyph kind for a registered tag.
func KindOf(tag string) (Kind, bool) {
	k, ok := tagTable[tag]
	return k, ok
}

// MatchTag splits a leaf token into its component tag and identifier suffix
// using longest-prefix matching over the registered tag table.
// It reports false if no registered tag prefixes the token.
func MatchTag(token string) (tag, id string, kind Kind, ok bool) {
	for _, t := range tagsByLength {
		if strings.HasPrefix(token, t) {
			return t, token[len(t):], tagTable[t], true
		}
	}
	return "", "", "", false
}
