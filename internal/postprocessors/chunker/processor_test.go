package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlit-labs/finrag-cli/internal/core/domain"
)

// nWords builds a text of n distinct words, each 8 characters.
func nWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%04d", i)
	}
	return strings.Join(words, " ")
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p, err := New()
		require.NoError(t, err)
		assert.Equal(t, DefaultChunkSize, p.ChunkSize())
		assert.Equal(t, DefaultOverlap, p.Overlap())
	})

	t.Run("custom options", func(t *testing.T) {
		p, err := New(WithChunkSize(100), WithOverlap(10))
		require.NoError(t, err)
		assert.Equal(t, 100, p.ChunkSize())
		assert.Equal(t, 10, p.Overlap())
	})
}

func TestNew_RejectsDegenerateWindow(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
	}{
		{name: "overlap equals size", opts: []Option{WithChunkSize(50), WithOverlap(50)}},
		{name: "overlap exceeds size", opts: []Option{WithChunkSize(50), WithOverlap(60)}},
		{name: "zero size", opts: []Option{WithChunkSize(0)}},
		{name: "negative overlap", opts: []Option{WithOverlap(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidChunking)
			assert.Nil(t, p)
		})
	}
}

func TestSplit_ExactWindow(t *testing.T) {
	// Exactly one window's worth of words yields exactly one chunk.
	p, err := New()
	require.NoError(t, err)

	chunks := p.Split(nWords(500))
	require.Len(t, chunks, 1)
	assert.Equal(t, 500, len(strings.Fields(chunks[0])))
}

func TestSplit_OverlappingWindows(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	text := nWords(1000)
	words := strings.Fields(text)

	chunks := p.Split(text)
	require.Len(t, chunks, 3) // offsets 0, 450, 900

	first := strings.Fields(chunks[0])
	second := strings.Fields(chunks[1])
	third := strings.Fields(chunks[2])

	assert.Equal(t, words[0], first[0])
	assert.Equal(t, words[450], second[0])
	assert.Equal(t, words[900], third[0])

	// Consecutive windows share the configured overlap.
	assert.Equal(t, first[450:], second[:50])
	assert.Equal(t, second[450:], third[:50])
}

func TestSplit_DiscardsShortTrailingWindows(t *testing.T) {
	p, err := New(WithChunkSize(10), WithOverlap(2))
	require.NoError(t, err)

	// 12 words of 1 char each: the trailing window at offset 8 joins to
	// well under the minimum length and is dropped.
	text := strings.Repeat("a ", 12)
	chunks := p.Split(text)
	require.Len(t, chunks, 0)
}

func TestSplit_Empty(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	assert.Nil(t, p.Split(""))
	assert.Nil(t, p.Split("   \n\t  "))
}

func TestProcess(t *testing.T) {
	p, err := New(WithChunkSize(100), WithOverlap(10))
	require.NoError(t, err)

	doc := &domain.Document{ID: "doc-1", Name: "guide.pdf", Content: nWords(250)}

	chunks := p.Process(doc)
	require.Len(t, chunks, 3) // offsets 0, 90, 180

	for i, c := range chunks {
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, "doc-1", c.DocumentID)
		assert.Equal(t, i, c.Position)
		assert.NotEmpty(t, c.Content)
	}
}

func TestProcess_NilAndEmpty(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	assert.Nil(t, p.Process(nil))
	assert.Nil(t, p.Process(&domain.Document{ID: "d", Content: ""}))
}
