package driven

import (
	"context"

	"github.com/finlit-labs/finrag-cli/internal/core/domain"
)

// CacheRecord is the persisted snapshot of a built index. The three
// sequences are parallel: chunk i, metadata i and index ordinal i all
// describe the same text span.
type CacheRecord struct {
	// IndexBytes is the serialized vector index.
	IndexBytes []byte

	// Dimension is the index dimension, kept for validation on load.
	Dimension int

	// Chunks is the ordered chunk sequence.
	Chunks []domain.Chunk

	// Meta is the ordered metadata sequence.
	Meta []domain.ChunkMeta
}

// CacheStore persists a CacheRecord to a single file between runs.
//
// Load distinguishes a missing record (domain.ErrCacheMiss) from a
// record that exists but cannot be decoded (domain.ErrCacheCorrupt);
// the retriever recovers from both by rebuilding.
type CacheStore interface {
	// Save atomically writes the record.
	Save(ctx context.Context, rec *CacheRecord) error

	// Load reads and decodes the record.
	Load(ctx context.Context) (*CacheRecord, error)

	// Invalidate removes the record. Removing an absent record is not
	// an error.
	Invalidate() error

	// Path returns the cache file location.
	Path() string
}
