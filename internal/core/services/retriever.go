package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/finlit-labs/finrag-cli/internal/core/domain"
	"github.com/finlit-labs/finrag-cli/internal/core/ports/driven"
	"github.com/finlit-labs/finrag-cli/internal/core/ports/driving"
	"github.com/finlit-labs/finrag-cli/internal/logger"
	"github.com/finlit-labs/finrag-cli/internal/postprocessors/chunker"
)

// Ensure RetrieverService implements the interface.
var _ driving.RetrieverService = (*RetrieverService)(nil)

// NoInformationSentinel is returned by SearchBlock when nothing in the
// knowledge base clears the score threshold.
const NoInformationSentinel = "I don't have that information in my knowledge base."

// RetrieverService builds and queries the semantic index over the
// corpus.
//
// The index is built lazily: the first Search, SearchBlock or Stats
// call loads the cache record or builds from scratch. After that the
// in-memory state is reused for the life of the process. State changes
// (build, rebuild, close) take the write lock; searches share the read
// lock, so concurrent queries never block each other.
type RetrieverService struct {
	settings domain.Settings
	loader   driven.CorpusLoader
	chunker  *chunker.Processor
	embedder driven.EmbeddingService
	indexes  driven.IndexFactory
	cache    driven.CacheStore
	docStore driven.DocumentStore

	mu        sync.RWMutex
	index     driven.VectorIndex
	chunks    []domain.Chunk
	meta      []domain.ChunkMeta
	docCount  int
	fromCache bool
	ready     bool
	closed    bool
}

// RetrieverOption configures optional collaborators.
type RetrieverOption func(*RetrieverService)

// WithDocumentStore attaches a document store that is synchronised on
// every build so browsing commands can inspect the corpus.
func WithDocumentStore(store driven.DocumentStore) RetrieverOption {
	return func(s *RetrieverService) {
		s.docStore = store
	}
}

// NewRetrieverService creates the retriever. Settings are validated
// here; a chunk window no larger than its overlap is refused outright
// rather than spinning forever during a build.
func NewRetrieverService(
	settings domain.Settings,
	loader driven.CorpusLoader,
	embedder driven.EmbeddingService,
	indexes driven.IndexFactory,
	cache driven.CacheStore,
	opts ...RetrieverOption,
) (*RetrieverService, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	proc, err := chunker.New(
		chunker.WithChunkSize(settings.ChunkSize),
		chunker.WithOverlap(settings.ChunkOverlap),
	)
	if err != nil {
		return nil, err
	}

	s := &RetrieverService{
		settings: settings,
		loader:   loader,
		chunker:  proc,
		embedder: embedder,
		indexes:  indexes,
		cache:    cache,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Search embeds the query and returns the nearest passages within the
// score threshold, ordered ascending by distance.
func (s *RetrieverService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	if err := s.ensureReady(ctx); err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}
	opts = opts.Normalise()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, domain.ErrRetrieverClosed
	}
	if s.index.Count() == 0 {
		logger.Warn("index is empty, no results to return")
		return []domain.SearchResult{}, nil
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	k := opts.TopK
	if count := s.index.Count(); k > count {
		k = count
	}

	hits, err := s.index.Search(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("index search: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		dist := float64(hit.Distance)
		if hit.Ordinal >= len(s.chunks) || dist > opts.ScoreThreshold {
			continue
		}
		results = append(results, domain.SearchResult{
			Text:      s.chunks[hit.Ordinal].Content,
			Source:    s.meta[hit.Ordinal].Source,
			Score:     dist,
			Relevance: s.settings.Tiers.For(dist),
		})
	}

	logger.Info("found %d results for query: %s", len(results), query)
	return results, nil
}

// SearchBlock runs Search with the configured defaults and formats the
// passages as one attributed text block.
func (s *RetrieverService) SearchBlock(ctx context.Context, query string) (string, error) {
	results, err := s.Search(ctx, query, domain.SearchOptions{
		TopK:           s.settings.TopK,
		ScoreThreshold: s.settings.ScoreThreshold,
	})
	if err != nil {
		return "", err
	}

	if len(results) == 0 {
		return NoInformationSentinel, nil
	}

	parts := make([]string, 0, 2*len(results)+1)
	parts = append(parts, "Based on the knowledge base content:\n")
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("\n[Source %d: %s]", i+1, result.Source))
		parts = append(parts, result.Text+"\n")
	}

	return strings.Join(parts, "\n"), nil
}

// Rebuild discards the cache record and rebuilds from the corpus.
func (s *RetrieverService) Rebuild(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrRetrieverClosed
	}

	logger.Section("Index Rebuild")
	if err := s.cache.Invalidate(); err != nil {
		return fmt.Errorf("invalidate cache: %w", err)
	}

	return s.build(ctx)
}

// Stats reports the current index state, building it first if needed.
func (s *RetrieverService) Stats(ctx context.Context) (domain.IndexStats, error) {
	if err := s.ensureReady(ctx); err != nil {
		return domain.IndexStats{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return domain.IndexStats{}, domain.ErrRetrieverClosed
	}

	return domain.IndexStats{
		Documents:       s.docCount,
		Chunks:          s.index.Count(),
		Dimension:       s.index.Dimension(),
		Backend:         s.index.Backend(),
		LoadedFromCache: s.fromCache,
	}, nil
}

// Close releases the index. Further calls fail with ErrRetrieverClosed.
func (s *RetrieverService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.index != nil {
		return s.index.Close()
	}
	return nil
}

// ensureReady makes sure the index is in memory, preferring the cache
// record and falling back to a fresh build.
func (s *RetrieverService) ensureReady(ctx context.Context) error {
	s.mu.RLock()
	ready, closed := s.ready, s.closed
	s.mu.RUnlock()

	if closed {
		return domain.ErrRetrieverClosed
	}
	if ready {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have initialised while we waited for the lock.
	if s.closed {
		return domain.ErrRetrieverClosed
	}
	if s.ready {
		return nil
	}

	if s.loadFromCache(ctx) {
		return nil
	}
	return s.build(ctx)
}

// loadFromCache restores state from the cache record. Any failure is
// reported and answered with a rebuild, never surfaced to the caller:
// a bad cache file must heal itself.
func (s *RetrieverService) loadFromCache(ctx context.Context) bool {
	rec, err := s.cache.Load(ctx)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCacheMiss):
			logger.Debug("no cache record at %s", s.cache.Path())
		case errors.Is(err, domain.ErrCacheCorrupt):
			logger.Warn("cache record is corrupt, rebuilding: %v", err)
		default:
			logger.Warn("cache load failed, rebuilding: %v", err)
		}
		return false
	}

	if len(rec.Chunks) != len(rec.Meta) {
		logger.Warn("cache record sequences disagree (%d chunks, %d meta), rebuilding",
			len(rec.Chunks), len(rec.Meta))
		return false
	}
	if rec.Dimension != s.embedder.Dimensions() {
		logger.Warn("cache record dimension %d does not match embedder dimension %d, rebuilding",
			rec.Dimension, s.embedder.Dimensions())
		return false
	}

	idx, err := s.indexes.Load(ctx, s.settings.Device, rec.IndexBytes)
	if err != nil {
		logger.Warn("cached index unusable, rebuilding: %v", err)
		return false
	}
	if idx.Count() != len(rec.Chunks) || idx.Dimension() != rec.Dimension {
		logger.Warn("cached index disagrees with record, rebuilding")
		idx.Close()
		return false
	}

	s.index = idx
	s.chunks = rec.Chunks
	s.meta = rec.Meta
	s.docCount = countDocuments(rec.Chunks)
	s.fromCache = true
	s.ready = true

	logger.Info("loaded index from cache: %d chunks, dimension %d, backend %s",
		idx.Count(), idx.Dimension(), idx.Backend())
	return true
}

// build runs the full pipeline: load, chunk, embed, index, persist.
// Caller must hold the write lock.
func (s *RetrieverService) build(ctx context.Context) error {
	logger.Section("Index Build")

	docs, err := s.loader.Load(ctx, s.settings.CorpusDir)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	var (
		chunks []domain.Chunk
		meta   []domain.ChunkMeta
	)
	docCount := 0
	for i := range docs {
		docChunks := s.chunker.Process(&docs[i])
		if len(docChunks) == 0 {
			continue
		}
		docCount++
		for _, chunk := range docChunks {
			chunks = append(chunks, chunk)
			meta = append(meta, domain.ChunkMeta{
				Source: docs[i].Name,
				Path:   docs[i].Path,
			})
		}
	}
	logger.Info("chunked %d documents into %d chunks", docCount, len(chunks))

	idx, err := s.indexes.New(s.settings.Device, s.embedder.Dimensions())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i, chunk := range chunks {
			texts[i] = chunk.Content
		}

		logger.Info("embedding %d chunks with %s", len(texts), s.embedder.ModelName())
		embeddings, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			idx.Close()
			return fmt.Errorf("embed chunks: %w", err)
		}

		if err := idx.Add(ctx, embeddings); err != nil {
			idx.Close()
			return fmt.Errorf("index chunks: %w", err)
		}
	} else {
		logger.Warn("corpus produced no chunks, index is empty")
	}

	if s.index != nil {
		s.index.Close()
	}
	s.index = idx
	s.chunks = chunks
	s.meta = meta
	s.docCount = docCount
	s.fromCache = false
	s.ready = true

	s.persist(ctx, docs)

	logger.Info("index built: %d chunks, dimension %d, backend %s",
		idx.Count(), idx.Dimension(), idx.Backend())
	return nil
}

// persist writes the cache record and synchronises the document store.
// Neither is allowed to fail the build: the in-memory index is already
// serving, so persistence problems only cost the next start-up.
//
// An empty index is never cached. A corpus that was empty at start-up
// must be scanned again on the next start so late-arriving documents
// are picked up without an explicit rebuild.
func (s *RetrieverService) persist(ctx context.Context, docs []domain.Document) {
	if len(s.chunks) == 0 {
		logger.Debug("empty index, cache record not written")
	} else if indexBytes, err := s.index.Serialize(); err != nil {
		logger.Warn("serialising index failed, cache not written: %v", err)
	} else {
		rec := &driven.CacheRecord{
			IndexBytes: indexBytes,
			Dimension:  s.index.Dimension(),
			Chunks:     s.chunks,
			Meta:       s.meta,
		}
		if err := s.cache.Save(ctx, rec); err != nil {
			logger.Warn("saving cache record failed: %v", err)
		} else {
			logger.Debug("cache record written to %s", s.cache.Path())
		}
	}

	if s.docStore == nil {
		return
	}

	if err := s.docStore.DeleteAll(ctx); err != nil {
		logger.Warn("clearing document store failed: %v", err)
		return
	}
	for i := range docs {
		if err := s.docStore.SaveDocument(ctx, &docs[i]); err != nil {
			logger.Warn("saving document %s failed: %v", docs[i].Name, err)
			return
		}
	}
	if len(s.chunks) > 0 {
		if err := s.docStore.SaveChunks(ctx, s.chunks); err != nil {
			logger.Warn("saving chunks failed: %v", err)
		}
	}
}

// countDocuments counts distinct document IDs in a chunk sequence.
func countDocuments(chunks []domain.Chunk) int {
	seen := make(map[string]bool)
	for _, chunk := range chunks {
		seen[chunk.DocumentID] = true
	}
	return len(seen)
}
