package driven

import (
	"context"

	"github.com/finlit-labs/finrag-cli/internal/core/domain"
)

// CorpusLoader enumerates documents in a corpus directory and extracts
// their plain text.
//
// An absent directory or one without eligible files yields an empty
// slice and a nil error: an empty corpus is a valid state, not a
// failure. Extraction failures on a single document are recovered
// locally (the document is skipped with a warning) and never abort
// the scan.
type CorpusLoader interface {
	// Load scans dir and returns one Document per successfully
	// extracted file, in lexical file-name order.
	Load(ctx context.Context, dir string) ([]domain.Document, error)
}

// TextExtractor extracts plain text from a single file. Implementations
// are format-specific (PDF, plain text, markdown).
type TextExtractor interface {
	// Extract returns the document text and the number of pages it was
	// read from. Page-level failures are skipped, not surfaced; a whole
	// file that cannot be read returns an error.
	Extract(ctx context.Context, path string) (text string, pages int, err error)

	// Extensions returns the lower-case file extensions this extractor
	// handles, including the leading dot.
	Extensions() []string
}
