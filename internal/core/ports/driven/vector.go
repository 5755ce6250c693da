package driven

import (
	"context"

	"github.com/finlit-labs/finrag-cli/internal/core/domain"
)

// VectorIndex provides nearest-neighbour search over chunk vectors
// by squared Euclidean distance.
//
// Vectors are append-only: Add assigns each vector the next ordinal
// position, and ordinals are stable for the life of the index. The
// retriever keeps its chunk and metadata sequences parallel to these
// ordinals.
type VectorIndex interface {
	// Add appends vectors to the index, assigning consecutive ordinals.
	// Every vector must match the index dimension.
	Add(ctx context.Context, vectors [][]float32) error

	// Search returns up to k hits sorted ascending by distance.
	// Searching an empty index returns an empty slice, not an error.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Count returns the number of stored vectors.
	Count() int

	// Dimension returns the vector dimension fixed at construction.
	Dimension() int

	// Backend names the implementation ("flat" or "hnsw").
	Backend() string

	// Serialize returns an opaque snapshot of the index. Deserialising
	// the snapshot must reproduce search results bit-for-bit.
	Serialize() ([]byte, error)

	// Close releases resources.
	Close() error
}

// IndexFactory places vector indexes on a backend for a device.
// Implementations fall back to an exact CPU backend when the requested
// accelerator is not compiled in; placement never fails for that reason.
type IndexFactory interface {
	// New constructs an empty index of the given dimension.
	New(device domain.Device, dimension int) (VectorIndex, error)

	// Load reconstructs an index from a Serialize snapshot.
	Load(ctx context.Context, device domain.Device, data []byte) (VectorIndex, error)
}

// VectorHit is a single nearest-neighbour match.
type VectorHit struct {
	// Ordinal is the vector's position in the index.
	Ordinal int

	// Distance is the squared Euclidean distance to the query.
	Distance float32
}
