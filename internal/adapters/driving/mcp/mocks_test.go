package mcp

import (
	"context"

	"github.com/finlit-labs/finrag-cli/internal/core/domain"
)

// mockRetrieverService is a mock implementation of driving.RetrieverService.
type mockRetrieverService struct {
	results  []domain.SearchResult
	block    string
	stats    domain.IndexStats
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockRetrieverService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockRetrieverService) SearchBlock(_ context.Context, _ string) (string, error) {
	return m.block, m.err
}

func (m *mockRetrieverService) Rebuild(_ context.Context) error {
	return m.err
}

func (m *mockRetrieverService) Stats(_ context.Context) (domain.IndexStats, error) {
	return m.stats, m.err
}

func (m *mockRetrieverService) Close() error {
	return nil
}

// mockDocumentStore is a mock implementation of driven.DocumentStore.
type mockDocumentStore struct {
	docs []domain.Document
	doc  *domain.Document
	err  error
}

func (m *mockDocumentStore) SaveDocument(_ context.Context, _ *domain.Document) error {
	return m.err
}

func (m *mockDocumentStore) SaveChunks(_ context.Context, _ []domain.Chunk) error {
	return m.err
}

func (m *mockDocumentStore) GetDocument(_ context.Context, _ string) (*domain.Document, error) {
	return m.doc, m.err
}

func (m *mockDocumentStore) GetChunks(_ context.Context, _ string) ([]domain.Chunk, error) {
	return nil, m.err
}

func (m *mockDocumentStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}

func (m *mockDocumentStore) DeleteAll(_ context.Context) error {
	return m.err
}

func (m *mockDocumentStore) Close() error {
	return nil
}
