// Package cache provides artifact caching for rendered schematics and plots.
//
// Rendering is deterministic, so artifacts are cached under a content hash of
// the expression plus every option that affects the output. Backends:
//   - FileCache: XDG cache directory, for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: disables caching
package cache

import (
	"context"
	"time"
)

// TTLs per cached item class. Draw programs are tiny and cheap to recompute,
// rendered artifacts are what we actually want to keep around.
const (
	TTLProgram  = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLFigure   = 7 * 24 * time.Hour
)

// Cache is the interface for cache storage backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (0 means no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the options that distinguish one draw program from
// another for the same expression.
type LayoutKeyOpts struct {
	Direction string  `json:"direction"`
	Spacing   float64 `json:"spacing"`
	StartX    float64 `json:"start_x"`
	StartY    float64 `json:"start_y"`
}

// ArtifactKeyOpts are the options that distinguish one rendered artifact
// from another for the same draw program.
type ArtifactKeyOpts struct {
	Kind   string  `json:"kind"` // "schematic", "graph", "bode", "nyquist"
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Title  string  `json:"title,omitempty"`
}

// LayoutKey generates a cache key for a computed draw program.
func LayoutKey(expression string, opts LayoutKeyOpts) string {
	return hashKey("layout", expression, opts)
}

// ArtifactKey generates a cache key for a rendered artifact.
func ArtifactKey(expression string, layout LayoutKeyOpts, opts ArtifactKeyOpts) string {
	return hashKey("artifact", expression, layout, opts)
}

// FigureKey generates a cache key for a rendered Bode/Nyquist figure.
func FigureKey(expression string, params []float64, sweep [3]float64, opts ArtifactKeyOpts) string {
	return hashKey("figure", expression, params, sweep, opts)
}
