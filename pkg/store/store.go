// Package store provides persistence for saved circuit definitions.
//
// A saved circuit is an expression plus the metadata needed to reproduce
// its plots: element parameter values and the frequency sweep. Backends:
//   - memory: in-memory storage for development/testing
//   - mongo: MongoDB-backed storage for server deployments
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a circuit does not exist.
	ErrNotFound = errors.New("circuit not found")
)

// Circuit is a saved circuit definition.
type Circuit struct {
	ID         string    `json:"id" bson:"_id"`
	Title      string    `json:"title,omitempty" bson:"title,omitempty"`
	Expression string    `json:"expression" bson:"expression"`
	Parameters []float64 `json:"parameters,omitempty" bson:"parameters,omitempty"`
	Sweep      Sweep     `json:"sweep" bson:"sweep"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// Sweep describes a logarithmic frequency sweep in Hz.
type Sweep struct {
	Start  float64 `json:"start" bson:"start"`
	End    float64 `json:"end" bson:"end"`
	Points int     `json:"points" bson:"points"`
}

// DefaultSweep matches the CLI defaults: 0.1 Hz to 100 kHz, 50 points.
var DefaultSweep = Sweep{Start: 0.1, End: 1e5, Points: 50}

// Store is the interface for circuit storage backends.
type Store interface {
	// Get retrieves a circuit by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Circuit, error)

	// List returns all circuits, newest first.
	List(ctx context.Context) ([]*Circuit, error)

	// Put stores a circuit, replacing any existing one with the same ID.
	Put(ctx context.Context, circuit *Circuit) error

	// Delete removes a circuit. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// New creates a circuit with a fresh ID and timestamps.
func New(title, expression string, params []float64, sweep Sweep) *Circuit {
	if sweep.Points == 0 {
		sweep = DefaultSweep
	}
	now := time.Now().UTC()
	return &Circuit{
		ID:         uuid.NewString(),
		Title:      title,
		Expression: expression,
		Parameters: params,
		Sweep:      sweep,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
