package driving

import (
	"context"

	"github.com/finlit-labs/finrag-cli/internal/core/domain"
)

// RetrieverService exposes semantic retrieval to external actors.
// The index is built lazily on first use and reused for the life of
// the process; searches may run concurrently, rebuilds are exclusive.
type RetrieverService interface {
	// Search embeds the query and returns the nearest passages within
	// the score threshold, ordered ascending by distance. An empty or
	// absent corpus yields an empty slice, never an error.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// SearchBlock runs Search with defaults and formats the passages as
	// a single attributed text block for tool consumers. When nothing
	// relevant is found it returns the fixed no-information sentinel.
	SearchBlock(ctx context.Context, query string) (string, error)

	// Rebuild discards the cache record and rebuilds the index from the
	// corpus. It blocks until in-flight searches complete.
	Rebuild(ctx context.Context) error

	// Stats reports the current index state.
	Stats(ctx context.Context) (domain.IndexStats, error)

	// Close releases the index and all held resources.
	Close() error
}
