package cache

import (
	"context"
	"time"
)

// NullCache discards everything. It backs the --no-cache flag, forcing every
// draw program, artifact, and figure to be recomputed on each run.
type NullCache struct{}

// NewNullCache returns a cache that never stores.
func NewNullCache() Cache { return NullCache{} }

// Get reports a miss for every key.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards the value.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete is a no-op.
func (NullCache) Delete(context.Context, string) error { return nil }

// Close is a no-op.
func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
