//go:build cgo

package hnsw

/*
#cgo CXXFLAGS: -std=c++17 -O3 -I${SRCDIR}/../../clib/build/_deps/hnswlib-src
#cgo LDFLAGS: -lstdc++

#include "hnsw_wrapper.h"
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"fmt"
	"sync"
	"unsafe"

	"github.com/finlit-labs/finrag-cli/internal/adapters/driven/index/flat"
	"github.com/finlit-labs/finrag-cli/internal/core/domain"
	"github.com/finlit-labs/finrag-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// BackendName identifies this implementation in stats and logs.
const BackendName = "hnsw"

// DefaultMaxElements is the initial index capacity.
const DefaultMaxElements = 100000

// Available reports whether the accelerated backend is compiled in.
func Available() bool { return true }

// Index provides approximate nearest-neighbour search using HNSWlib
// with a squared-L2 space. Ordinals are the HNSW labels, assigned in
// Add order. A shadow copy of the raw vectors is kept so Serialize can
// produce the backend-independent flat snapshot.
type Index struct {
	mu     sync.RWMutex
	idx    *C.HnswIndex
	dim    int
	count  int
	shadow []float32
}

// New creates an empty accelerated index with a fixed dimension.
func New(dimension int) (*Index, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("%w: dimension %d", domain.ErrInvalidInput, dimension)
	}

	idx := C.hnsw_create(C.int(dimension), C.int(DefaultMaxElements))
	if idx == nil {
		return nil, fmt.Errorf("%w: hnsw_create failed", domain.ErrAcceleratorUnavailable)
	}

	return &Index{idx: idx, dim: dimension}, nil
}

// Add appends vectors, assigning consecutive ordinal labels.
func (idx *Index) Add(_ context.Context, vectors [][]float32) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.idx == nil {
		return domain.ErrIndexClosed
	}

	for i, v := range vectors {
		if len(v) != idx.dim {
			return fmt.Errorf("%w: vector %d has %d dimensions, want %d",
				domain.ErrDimensionMismatch, i, len(v), idx.dim)
		}
	}

	for _, v := range vectors {
		result := C.hnsw_add(
			idx.idx,
			(*C.float)(unsafe.Pointer(&v[0])),
			C.int(idx.dim),
			C.int(idx.count),
		)
		if result != 0 {
			return fmt.Errorf("hnsw: failed to add vector %d", idx.count)
		}
		idx.shadow = append(idx.shadow, v...)
		idx.count++
	}

	return nil
}

// Search finds the k nearest neighbours to the query vector.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.idx == nil {
		return nil, domain.ErrIndexClosed
	}
	if len(query) != idx.dim {
		return nil, fmt.Errorf("%w: query has %d dimensions, want %d",
			domain.ErrDimensionMismatch, len(query), idx.dim)
	}
	if idx.count == 0 || k <= 0 {
		return []driven.VectorHit{}, nil
	}
	if k > idx.count {
		k = idx.count
	}

	labels := make([]C.int, k)
	distances := make([]C.float, k)

	found := C.hnsw_search(
		idx.idx,
		(*C.float)(unsafe.Pointer(&query[0])),
		C.int(idx.dim),
		C.int(k),
		&labels[0],
		&distances[0],
	)
	if found < 0 {
		return nil, fmt.Errorf("hnsw: search failed")
	}

	hits := make([]driven.VectorHit, int(found))
	for i := range hits {
		hits[i] = driven.VectorHit{
			Ordinal:  int(labels[i]),
			Distance: float32(distances[i]),
		}
	}

	return hits, nil
}

// Count returns the number of stored vectors.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.count
}

// Dimension returns the vector dimension fixed at construction.
func (idx *Index) Dimension() int {
	return idx.dim
}

// Backend names the implementation.
func (idx *Index) Backend() string {
	return BackendName
}

// Serialize returns the backend-independent flat snapshot of the raw
// vectors, so a cache record written by this backend loads on hosts
// without the bindings.
func (idx *Index) Serialize() ([]byte, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.idx == nil {
		return nil, domain.ErrIndexClosed
	}

	return flat.EncodeRaw(idx.dim, idx.count, idx.shadow), nil
}

// Close releases the native index.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.idx != nil {
		C.hnsw_close(idx.idx)
		idx.idx = nil
	}
	idx.shadow = nil

	return nil
}
