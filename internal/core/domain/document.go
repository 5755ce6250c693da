package domain

import "time"

// Document represents a corpus document after text extraction.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Name is the file name, used for source attribution.
	Name string

	// Path is the absolute location on disk.
	Path string

	// Content is the full extracted text before chunking.
	Content string

	// Pages is the number of pages text was extracted from.
	// Zero for formats without page structure.
	Pages int

	// CreatedAt is when the document was first indexed.
	CreatedAt time.Time

	// UpdatedAt is when the document was last re-indexed.
	UpdatedAt time.Time
}

// Chunk is an embeddable text window cut from a document.
// Chunks are immutable once created. Within the vector index a chunk
// is identified by its ordinal position, assigned in build order:
// all chunks of document i precede all chunks of document i+1.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int
}

// ChunkMeta carries source attribution for one index ordinal.
// The retriever maintains the invariant that the chunk sequence, the
// metadata sequence and the index vector count are always equal in length.
type ChunkMeta struct {
	// Source is the document file name.
	Source string

	// Path is the document's location on disk.
	Path string
}
