package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlit-labs/finrag-cli/internal/core/domain"
)

func TestDocumentStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()

	doc := &domain.Document{ID: "d1", Name: "savings.pdf", Content: "body"}
	require.NoError(t, store.SaveDocument(ctx, doc))

	got, err := store.GetDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "savings.pdf", got.Name)

	_, err = store.GetDocument(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_ChunksPositionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()

	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "c2", DocumentID: "d1", Content: "second", Position: 1},
		{ID: "c1", DocumentID: "d1", Content: "first", Position: 0},
	}))

	chunks, err := store.GetChunks(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "first", chunks[0].Content)
}

func TestDocumentStore_SaveChunksReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()

	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "c1", DocumentID: "d1", Content: "old", Position: 0},
		{ID: "c2", DocumentID: "d1", Content: "old too", Position: 1},
	}))
	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "c3", DocumentID: "d1", Content: "new", Position: 0},
	}))

	chunks, err := store.GetChunks(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "new", chunks[0].Content)
}

func TestDocumentStore_ListNameOrder(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "d2", Name: "b.txt"}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "d1", Name: "a.txt"}))

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.txt", docs[0].Name)
}

func TestDocumentStore_DeleteAll(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "d1", Name: "a.txt"}))
	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "c1", DocumentID: "d1", Content: "window", Position: 0},
	}))

	require.NoError(t, store.DeleteAll(ctx))

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
