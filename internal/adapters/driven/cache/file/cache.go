// Package file provides a single-file cache store for index snapshots.
// The record is gob-encoded: an opaque binary snapshot that round-trips
// the serialized index, the chunk sequence and the metadata sequence
// exactly. Deleting the file invalidates the cache and forces a rebuild.
package file

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/finlit-labs/finrag-cli/internal/core/domain"
	"github.com/finlit-labs/finrag-cli/internal/core/ports/driven"
)

// Ensure CacheStore implements the interface.
var _ driven.CacheStore = (*CacheStore)(nil)

// CacheStore persists one CacheRecord at a fixed path.
type CacheStore struct {
	path string
}

// NewCacheStore creates a cache store writing to the given file path.
func NewCacheStore(path string) (*CacheStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: cache path is required", domain.ErrInvalidInput)
	}
	return &CacheStore{path: path}, nil
}

// Save atomically writes the record: encode to a temp file in the same
// directory, then rename over the destination.
func (s *CacheStore) Save(_ context.Context, rec *driven.CacheRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: nil cache record", domain.ErrInvalidInput)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return fmt.Errorf("encode cache record: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".finrag-cache-*")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write cache record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp cache file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace cache file: %w", err)
	}

	return nil
}

// Load reads and decodes the record.
func (s *CacheStore) Load(_ context.Context) (*driven.CacheRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("read cache file: %w", err)
	}

	var rec driven.CacheRecord
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheCorrupt, err)
	}

	return &rec, nil
}

// Invalidate removes the record. A missing record is not an error.
func (s *CacheStore) Invalidate() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove cache file: %w", err)
	}
	return nil
}

// Path returns the cache file location.
func (s *CacheStore) Path() string {
	return s.path
}
