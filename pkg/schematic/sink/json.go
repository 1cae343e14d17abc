package sink

import (
	"encoding/json"
	"fmt"

	"github.com/zsketch/zsketch/pkg/schematic/layout"
)

// RenderJSON serializes the draw program to pretty-printed JSON. Primitives
// carry an "op" discriminator ("dot", "wire", "element") so downstream
// tooling can replay the drawing without this package.
func RenderJSON(p layout.Program) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal draw program: %w", err)
	}
	return append(data, '\n'), nil
}
