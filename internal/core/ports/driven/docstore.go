package driven

import (
	"context"

	"github.com/finlit-labs/finrag-cli/internal/core/domain"
)

// DocumentStore persists corpus documents and their chunks.
// Backed by SQLite for metadata storage. The store serves browsing
// commands; it is not consulted on the search path, which works from
// the in-memory sequences restored by the retriever.
type DocumentStore interface {
	// SaveDocument stores or updates a document. Content is persisted
	// so chunks can be inspected without re-extracting the source file.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// SaveChunks stores chunks for a document, replacing any previous set.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunks retrieves all chunks for a document in position order.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// ListDocuments returns all documents in name order.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteAll clears the store. Called before a rebuild repopulates it.
	DeleteAll(ctx context.Context) error

	// Close releases resources.
	Close() error
}
