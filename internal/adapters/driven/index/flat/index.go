// Package flat provides an exact in-memory vector index.
// It is the non-accelerated backend: brute-force squared Euclidean
// distance over a contiguous float32 buffer, always available.
package flat

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/finlit-labs/finrag-cli/internal/core/domain"
	"github.com/finlit-labs/finrag-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// BackendName identifies this implementation in stats and logs.
const BackendName = "flat"

// serialisation header magic, guards against decoding foreign files.
const magic = uint32(0x464c4154) // "FLAT"

// Index is an exact nearest-neighbour index under squared L2 distance.
// Vectors are stored in one contiguous buffer; ordinal i occupies
// data[i*dim : (i+1)*dim].
type Index struct {
	mu     sync.RWMutex
	dim    int
	data   []float32
	closed bool
}

// New creates an empty index with a fixed dimension.
func New(dimension int) (*Index, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("%w: dimension %d", domain.ErrInvalidInput, dimension)
	}
	return &Index{dim: dimension}, nil
}

// Add appends vectors, assigning consecutive ordinals.
func (idx *Index) Add(_ context.Context, vectors [][]float32) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.closed {
		return domain.ErrIndexClosed
	}

	for i, v := range vectors {
		if len(v) != idx.dim {
			return fmt.Errorf("%w: vector %d has %d dimensions, want %d",
				domain.ErrDimensionMismatch, i, len(v), idx.dim)
		}
	}

	for _, v := range vectors {
		idx.data = append(idx.data, v...)
	}

	return nil
}

// Search returns the k nearest vectors sorted ascending by distance.
// Ties break on ordinal so results are fully deterministic.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.closed {
		return nil, domain.ErrIndexClosed
	}
	if len(query) != idx.dim {
		return nil, fmt.Errorf("%w: query has %d dimensions, want %d",
			domain.ErrDimensionMismatch, len(query), idx.dim)
	}

	count := len(idx.data) / idx.dim
	if count == 0 || k <= 0 {
		return []driven.VectorHit{}, nil
	}
	if k > count {
		k = count
	}

	hits := make([]driven.VectorHit, count)
	for i := 0; i < count; i++ {
		row := idx.data[i*idx.dim : (i+1)*idx.dim]
		var dist float32
		for j, q := range query {
			d := row[j] - q
			dist += d * d
		}
		hits[i] = driven.VectorHit{Ordinal: i, Distance: dist}
	}

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Distance != hits[b].Distance {
			return hits[a].Distance < hits[b].Distance
		}
		return hits[a].Ordinal < hits[b].Ordinal
	})

	return hits[:k], nil
}

// Count returns the number of stored vectors.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.data) / idx.dim
}

// Dimension returns the vector dimension fixed at construction.
func (idx *Index) Dimension() int {
	return idx.dim
}

// Backend names the implementation.
func (idx *Index) Backend() string {
	return BackendName
}

// Serialize writes the index as a little-endian binary snapshot:
// magic, dimension, count, then count*dimension raw float32 values.
// The layout preserves vector bits exactly, so a round-trip reproduces
// identical search distances.
func (idx *Index) Serialize() ([]byte, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.closed {
		return nil, domain.ErrIndexClosed
	}

	return EncodeRaw(idx.dim, len(idx.data)/idx.dim, idx.data), nil
}

// EncodeRaw writes the snapshot layout from a contiguous vector buffer.
// Shared with the accelerated backend so cache records stay portable
// between backends.
func EncodeRaw(dim, count int, data []float32) []byte {
	out := make([]byte, 12+len(data)*4)
	binary.LittleEndian.PutUint32(out[0:4], magic)
	binary.LittleEndian.PutUint32(out[4:8], uint32(dim))
	binary.LittleEndian.PutUint32(out[8:12], uint32(count))
	for i, f := range data {
		binary.LittleEndian.PutUint32(out[12+i*4:], math.Float32bits(f))
	}
	return out
}

// Close releases resources.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.data = nil
	idx.closed = true
	return nil
}

// Deserialize reconstructs an index from a Serialize snapshot.
func Deserialize(data []byte) (*Index, error) {
	if len(data) < 12 {
		return nil, fmt.Errorf("%w: snapshot too short", domain.ErrCacheCorrupt)
	}

	if got := binary.LittleEndian.Uint32(data[0:4]); got != magic {
		return nil, fmt.Errorf("%w: bad magic %#x", domain.ErrCacheCorrupt, got)
	}

	dim := int(binary.LittleEndian.Uint32(data[4:8]))
	count := int(binary.LittleEndian.Uint32(data[8:12]))
	if dim <= 0 {
		return nil, fmt.Errorf("%w: dimension %d", domain.ErrCacheCorrupt, dim)
	}

	payload := data[12:]
	if len(payload) != count*dim*4 {
		return nil, fmt.Errorf("%w: payload is %d bytes, want %d",
			domain.ErrCacheCorrupt, len(payload), count*dim*4)
	}

	vecs := make([]float32, count*dim)
	for i := range vecs {
		vecs[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[i*4:]))
	}

	return &Index{dim: dim, data: vecs}, nil
}

// Vectors returns a copy of the stored vectors in ordinal order.
// Used when migrating the index to another backend.
func (idx *Index) Vectors() [][]float32 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	count := len(idx.data) / idx.dim
	out := make([][]float32, count)
	for i := 0; i < count; i++ {
		row := make([]float32, idx.dim)
		copy(row, idx.data[i*idx.dim:(i+1)*idx.dim])
		out[i] = row
	}
	return out
}
