// Package chunker provides a fixed-size word-window chunking processor.
package chunker

import (
	"strings"

	"github.com/google/uuid"

	"github.com/finlit-labs/finrag-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of words per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultOverlap is the default number of overlapping words.
const DefaultOverlap = domain.DefaultChunkOverlap

// MinChunkChars is the minimum joined length for a window to be kept.
// Shorter windows are near-empty trailing fragments and are discarded.
const MinChunkChars = 50

// Processor splits document text into overlapping word windows.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the window length in words.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.chunkSize = size
	}
}

// WithOverlap sets the overlap between windows in words.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.overlap = overlap
	}
}

// New creates a chunker processor with the given options.
// A window no larger than its overlap would never advance, so such
// configurations are rejected rather than silently adjusted.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.chunkSize <= 0 || p.overlap < 0 || p.chunkSize <= p.overlap {
		return nil, domain.ErrInvalidChunking
	}

	return p, nil
}

// ChunkSize returns the configured window length in words.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the configured overlap in words.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Split cuts text into overlapping word windows. A window starts every
// chunkSize-overlap words, so consecutive windows share overlap words.
// Windows whose joined text is MinChunkChars or shorter are dropped.
func (p *Processor) Split(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := p.chunkSize - p.overlap
	chunks := make([]string, 0, len(words)/step+1)

	for i := 0; i < len(words); i += step {
		end := i + p.chunkSize
		if end > len(words) {
			end = len(words)
		}

		chunk := strings.Join(words[i:end], " ")
		if len(strings.TrimSpace(chunk)) > MinChunkChars {
			chunks = append(chunks, chunk)
		}
	}

	return chunks
}

// Process cuts a document into domain chunks with positions assigned
// in window order.
func (p *Processor) Process(doc *domain.Document) []domain.Chunk {
	if doc == nil || doc.Content == "" {
		return nil
	}

	parts := p.Split(doc.Content)
	chunks := make([]domain.Chunk, len(parts))
	for i, part := range parts {
		chunks[i] = domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Content:    part,
			Position:   i,
		}
	}

	return chunks
}
