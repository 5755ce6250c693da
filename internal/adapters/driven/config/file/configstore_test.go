package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_EmptyDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())

	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestSetGet_RoundTrip(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("retriever.corpus_dir", "/data/corpus"))
	require.NoError(t, store.Set("retriever.top_k", 5))
	require.NoError(t, store.Set("retriever.verbose", true))

	assert.Equal(t, "/data/corpus", store.GetString("retriever.corpus_dir"))
	assert.Equal(t, 5, store.GetInt("retriever.top_k"))
	assert.True(t, store.GetBool("retriever.verbose"))
}

func TestLoad_NestedKeysFlattened(t *testing.T) {
	dir := t.TempDir()
	content := `
[retriever]
corpus_dir = "/data/corpus"
top_k = 3
score_threshold = 1.5

[retriever.tiers]
high = 0.8
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "/data/corpus", store.GetString("retriever.corpus_dir"))
	assert.Equal(t, 3, store.GetInt("retriever.top_k"))
	assert.InDelta(t, 1.5, store.GetFloat("retriever.score_threshold"), 1e-9)
	assert.InDelta(t, 0.8, store.GetFloat("retriever.tiers.high"), 1e-9)
}

func TestGetFloat_WholeNumber(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("score_threshold = 2\n"), 0o600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, store.GetFloat("score_threshold"), 1e-9)
}

func TestGet_TypeMismatches(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("key", "a string"))

	assert.Equal(t, 0, store.GetInt("key"))
	assert.InDelta(t, 0.0, store.GetFloat("key"), 1e-9)
	assert.False(t, store.GetBool("key"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestSet_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("device", "cuda"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "cuda", reopened.GetString("device"))
}
