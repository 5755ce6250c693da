// Package pdf extracts plain text from PDF files.
package pdf

import (
	"context"
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/finlit-labs/finrag-cli/internal/core/ports/driven"
	"github.com/finlit-labs/finrag-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor reads PDFs page by page. A page that cannot be decoded is
// skipped with a warning; only a file that cannot be opened at all is
// an error.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".pdf"}
}

// Extract returns the concatenated page texts, one newline between
// pages, and the number of pages that contributed text.
func (e *Extractor) Extract(ctx context.Context, path string) (string, int, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var sb strings.Builder
	extracted := 0

	total := reader.NumPage()
	for num := 1; num <= total; num++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}

		text, err := extractPage(reader, num)
		if err != nil {
			logger.Warn("skipping page %d of %s: %v", num, path, err)
			continue
		}
		if text == "" {
			continue
		}

		sb.WriteString(text)
		sb.WriteString("\n")
		extracted++
	}

	return sb.String(), extracted, nil
}

// extractPage decodes a single page. The underlying library panics on
// some malformed content streams, so the panic is converted to an error
// and handled like any other bad page.
func extractPage(reader *pdflib.Reader, num int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page decode panic: %v", r)
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return "", nil
	}

	return page.GetPlainText(nil)
}
