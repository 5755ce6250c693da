package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlit-labs/finrag-cli/internal/core/domain"
	"github.com/finlit-labs/finrag-cli/internal/core/ports/driven"
)

func testRecord() *driven.CacheRecord {
	return &driven.CacheRecord{
		IndexBytes: []byte{0x54, 0x41, 0x4c, 0x46, 1, 0, 0, 0, 0, 0, 0, 0},
		Dimension:  384,
		Chunks: []domain.Chunk{
			{ID: "c1", DocumentID: "d1", Content: "compound interest grows savings", Position: 0},
			{ID: "c2", DocumentID: "d1", Content: "diversification reduces risk", Position: 1},
		},
		Meta: []domain.ChunkMeta{
			{Source: "savings.pdf", Path: "/corpus/savings.pdf"},
			{Source: "savings.pdf", Path: "/corpus/savings.pdf"},
		},
	}
}

func TestNewCacheStore_RequiresPath(t *testing.T) {
	_, err := NewCacheStore("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "index.cache")

	store, err := NewCacheStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())

	rec := testRecord()
	require.NoError(t, store.Save(ctx, rec))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, rec, loaded)
}

func TestSave_CreatesParentDirectory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "deeper", "index.cache")

	store, err := NewCacheStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, testRecord()))

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestSave_NilRecord(t *testing.T) {
	store, err := NewCacheStore(filepath.Join(t.TempDir(), "index.cache"))
	require.NoError(t, err)

	err = store.Save(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoad_Miss(t *testing.T) {
	store, err := NewCacheStore(filepath.Join(t.TempDir(), "absent.cache"))
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestLoad_Corrupt(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "index.cache")
	require.NoError(t, os.WriteFile(path, []byte("scrambled bytes"), 0o600))

	store, err := NewCacheStore(path)
	require.NoError(t, err)

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrCacheCorrupt)
}

func TestLoad_CorruptedAfterSave(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "index.cache")

	store, err := NewCacheStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, testRecord()))

	// Truncate the record so decoding hits an unexpected EOF.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)/2], 0o600))

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrCacheCorrupt)
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "index.cache")

	store, err := NewCacheStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, testRecord()))

	require.NoError(t, store.Invalidate())
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	// Invalidating an absent record is not an error.
	require.NoError(t, store.Invalidate())
}
