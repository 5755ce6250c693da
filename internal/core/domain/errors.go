package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidChunking indicates a degenerate chunking window.
	// A chunk size less than or equal to the overlap would make the
	// window advance non-positive, so it is rejected at construction.
	ErrInvalidChunking = errors.New("chunk size must be greater than overlap")

	// ErrDimensionMismatch indicates a vector does not match the index dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrIndexClosed indicates an operation on a closed vector index.
	ErrIndexClosed = errors.New("vector index closed")

	// ErrCacheMiss indicates no cache record exists at the configured path.
	// The retriever treats this as a signal to build, never as a failure.
	ErrCacheMiss = errors.New("cache record not found")

	// ErrCacheCorrupt indicates a cache record could not be decoded.
	// The retriever recovers by rebuilding the index from the corpus.
	ErrCacheCorrupt = errors.New("cache record corrupt")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrAcceleratorUnavailable indicates the accelerated index backend was
	// requested but its bindings are not compiled in or no device is present.
	// Callers fall back to the exact in-memory backend instead of surfacing this.
	ErrAcceleratorUnavailable = errors.New("accelerated index backend unavailable")

	// ErrRetrieverClosed indicates the retriever has been shut down.
	ErrRetrieverClosed = errors.New("retriever closed")
)
