package flat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlit-labs/finrag-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	idx, err := New(4)
	require.NoError(t, err)
	assert.Equal(t, 4, idx.Dimension())
	assert.Equal(t, 0, idx.Count())
	assert.Equal(t, BackendName, idx.Backend())
}

func TestNew_InvalidDimension(t *testing.T) {
	_, err := New(0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = New(-3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddAndCount(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)

	require.NoError(t, idx.Add(ctx, [][]float32{{0, 0}, {1, 0}}))
	assert.Equal(t, 2, idx.Count())

	require.NoError(t, idx.Add(ctx, [][]float32{{0, 1}}))
	assert.Equal(t, 3, idx.Count())
}

func TestAdd_DimensionMismatch(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)

	err = idx.Add(ctx, [][]float32{{1, 2, 3}})
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	assert.Equal(t, 0, idx.Count(), "failed batch must not be partially applied")
}

func TestSearch_OrderedByDistance(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)

	// Distances from origin: 4, 0.25, 1, 9.
	require.NoError(t, idx.Add(ctx, [][]float32{
		{2, 0},
		{0.5, 0},
		{0, 1},
		{3, 0},
	}))

	hits, err := idx.Search(ctx, []float32{0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, 1, hits[0].Ordinal)
	assert.InDelta(t, 0.25, hits[0].Distance, 1e-6)
	assert.Equal(t, 2, hits[1].Ordinal)
	assert.InDelta(t, 1.0, hits[1].Distance, 1e-6)
	assert.Equal(t, 0, hits[2].Ordinal)
	assert.InDelta(t, 4.0, hits[2].Distance, 1e-6)
}

func TestSearch_KExceedsCount(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)
	require.NoError(t, idx.Add(ctx, [][]float32{{1, 1}}))

	hits, err := idx.Search(ctx, []float32{0, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestSearch_EmptyIndex(t *testing.T) {
	ctx := context.Background()
	idx, err := New(3)
	require.NoError(t, err)

	hits, err := idx.Search(ctx, []float32{0, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearch_QueryDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)

	_, err = idx.Search(ctx, []float32{1, 2, 3}, 1)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestSearch_Deterministic(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)
	require.NoError(t, idx.Add(ctx, [][]float32{{1, 0}, {0, 1}, {1, 1}, {2, 2}}))

	first, err := idx.Search(ctx, []float32{0.3, 0.7}, 4)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := idx.Search(ctx, []float32{0.3, 0.7}, 4)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	ctx := context.Background()
	idx, err := New(3)
	require.NoError(t, err)
	require.NoError(t, idx.Add(ctx, [][]float32{
		{0.1, 0.2, 0.3},
		{-1.5, 2.25, 0},
		{3.14159, -2.71828, 1.41421},
	}))

	data, err := idx.Serialize()
	require.NoError(t, err)

	restored, err := Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, idx.Dimension(), restored.Dimension())
	assert.Equal(t, idx.Count(), restored.Count())

	query := []float32{0.5, -0.5, 1.0}
	want, err := idx.Search(ctx, query, 3)
	require.NoError(t, err)
	got, err := restored.Search(ctx, query, 3)
	require.NoError(t, err)

	// Bit-for-bit identical ordinals and distances.
	assert.Equal(t, want, got)
}

func TestSerializeRoundTrip_Empty(t *testing.T) {
	ctx := context.Background()
	idx, err := New(384)
	require.NoError(t, err)

	data, err := idx.Serialize()
	require.NoError(t, err)

	restored, err := Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, 384, restored.Dimension())
	assert.Equal(t, 0, restored.Count())

	hits, err := restored.Search(ctx, make([]float32, 384), 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestDeserialize_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "short", data: []byte{1, 2, 3}},
		{name: "bad magic", data: make([]byte, 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deserialize(tt.data)
			assert.ErrorIs(t, err, domain.ErrCacheCorrupt)
		})
	}
}

func TestDeserialize_TruncatedPayload(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)
	require.NoError(t, idx.Add(ctx, [][]float32{{1, 2}, {3, 4}}))

	data, err := idx.Serialize()
	require.NoError(t, err)

	_, err = Deserialize(data[:len(data)-4])
	assert.ErrorIs(t, err, domain.ErrCacheCorrupt)
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)
	require.NoError(t, idx.Close())

	err = idx.Add(ctx, [][]float32{{1, 2}})
	assert.ErrorIs(t, err, domain.ErrIndexClosed)

	_, err = idx.Search(ctx, []float32{1, 2}, 1)
	assert.ErrorIs(t, err, domain.ErrIndexClosed)
}

func TestVectors(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)
	require.NoError(t, idx.Add(ctx, [][]float32{{1, 2}, {3, 4}}))

	vecs := idx.Vectors()
	require.Len(t, vecs, 2)
	assert.Equal(t, []float32{1, 2}, vecs[0])
	assert.Equal(t, []float32{3, 4}, vecs[1])

	// Mutating the copy must not affect the index.
	vecs[0][0] = 99
	hits, err := idx.Search(ctx, []float32{1, 2}, 1)
	require.NoError(t, err)
	assert.Equal(t, float32(0), hits[0].Distance)
}
