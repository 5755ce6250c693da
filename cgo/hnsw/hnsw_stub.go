//go:build !cgo

package hnsw

import (
	"context"

	"github.com/finlit-labs/finrag-cli/internal/core/domain"
	"github.com/finlit-labs/finrag-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// BackendName identifies this implementation in stats and logs.
const BackendName = "hnsw"

// Available reports whether the accelerated backend is compiled in.
// This is the stub for builds without CGO.
func Available() bool { return false }

// Index is a stub for builds without CGO. The index selector never
// constructs it when Available reports false; every operation returns
// domain.ErrAcceleratorUnavailable.
type Index struct {
	dim int
}

// New reports the backend as unavailable.
func New(dimension int) (*Index, error) {
	return nil, domain.ErrAcceleratorUnavailable
}

// Add inserts vectors into the index.
func (idx *Index) Add(_ context.Context, _ [][]float32) error {
	return domain.ErrAcceleratorUnavailable
}

// Search finds the k nearest neighbours to the query vector.
func (idx *Index) Search(_ context.Context, _ []float32, _ int) ([]driven.VectorHit, error) {
	return nil, domain.ErrAcceleratorUnavailable
}

// Count returns the number of stored vectors.
func (idx *Index) Count() int { return 0 }

// Dimension returns the vector dimension fixed at construction.
func (idx *Index) Dimension() int { return idx.dim }

// Backend names the implementation.
func (idx *Index) Backend() string { return BackendName }

// Serialize returns an opaque snapshot of the index.
func (idx *Index) Serialize() ([]byte, error) {
	return nil, domain.ErrAcceleratorUnavailable
}

// Close releases resources.
func (idx *Index) Close() error { return nil }
