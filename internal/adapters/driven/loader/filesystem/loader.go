// Package filesystem scans a corpus directory and extracts document text.
package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/finlit-labs/finrag-cli/internal/core/domain"
	"github.com/finlit-labs/finrag-cli/internal/core/ports/driven"
	"github.com/finlit-labs/finrag-cli/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.CorpusLoader = (*Loader)(nil)

// Loader enumerates eligible files in a directory and delegates text
// extraction to format-specific extractors.
type Loader struct {
	extractors map[string]driven.TextExtractor
}

// New creates a loader dispatching to the given extractors by file
// extension. Later extractors win on extension clashes.
func New(extractors ...driven.TextExtractor) *Loader {
	byExt := make(map[string]driven.TextExtractor)
	for _, ex := range extractors {
		for _, ext := range ex.Extensions() {
			byExt[strings.ToLower(ext)] = ex
		}
	}
	return &Loader{extractors: byExt}
}

// Load scans dir and returns one Document per successfully extracted
// file, in lexical file-name order.
//
// An absent directory or one with no eligible files yields an empty
// slice: an empty corpus is valid. A document whose extraction fails or
// produces no text is skipped with a warning and does not abort the scan.
func (l *Loader) Load(ctx context.Context, dir string) ([]domain.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("corpus directory does not exist: %s", dir)
			return []domain.Document{}, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := l.extractors[ext]; ok {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		logger.Warn("no eligible documents found in %s", dir)
		return []domain.Document{}, nil
	}

	logger.Info("found %d documents in %s", len(names), dir)

	docs := make([]domain.Document, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(dir, name)
		ext := strings.ToLower(filepath.Ext(name))

		text, pages, err := l.extractors[ext].Extract(ctx, path)
		if err != nil {
			logger.Warn("skipping %s: %v", name, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			logger.Warn("no text extracted from %s", name)
			continue
		}

		now := time.Now()
		docs = append(docs, domain.Document{
			ID:        documentID(path),
			Name:      name,
			Path:      path,
			Content:   text,
			Pages:     pages,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return docs, nil
}

// documentID derives a stable identifier from the document path.
func documentID(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:8])
}
