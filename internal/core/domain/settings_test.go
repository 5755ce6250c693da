package domain

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsValidate(t *testing.T) {
	valid := DefaultSettings()
	valid.CorpusDir = "/corpus"

	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, valid.Validate())
	})

	tests := []struct {
		name     string
		mutate   func(*Settings)
		expected error
	}{
		{
			name:     "missing corpus dir",
			mutate:   func(s *Settings) { s.CorpusDir = "" },
			expected: ErrInvalidInput,
		},
		{
			name:     "zero chunk size",
			mutate:   func(s *Settings) { s.ChunkSize = 0 },
			expected: ErrInvalidChunking,
		},
		{
			name:     "negative overlap",
			mutate:   func(s *Settings) { s.ChunkOverlap = -1 },
			expected: ErrInvalidChunking,
		},
		{
			name:     "overlap equals size",
			mutate:   func(s *Settings) { s.ChunkSize = 50; s.ChunkOverlap = 50 },
			expected: ErrInvalidChunking,
		},
		{
			name:     "overlap exceeds size",
			mutate:   func(s *Settings) { s.ChunkSize = 50; s.ChunkOverlap = 500 },
			expected: ErrInvalidChunking,
		},
		{
			name:     "unknown device",
			mutate:   func(s *Settings) { s.Device = "tpu" },
			expected: ErrInvalidInput,
		},
		{
			name:     "inverted tier cut-offs",
			mutate:   func(s *Settings) { s.Tiers = Tiers{High: 1.2, Medium: 0.8} },
			expected: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestResolvedCachePath(t *testing.T) {
	t.Run("explicit path wins", func(t *testing.T) {
		s := Settings{CorpusDir: "/data/books", CachePath: "/tmp/x.cache"}
		assert.Equal(t, "/tmp/x.cache", s.ResolvedCachePath())
	})

	t.Run("default is sibling of corpus dir", func(t *testing.T) {
		s := Settings{CorpusDir: filepath.Join("/data", "books")}
		assert.Equal(t, filepath.Join("/data", "finrag_index.cache"), s.ResolvedCachePath())
	})
}

func TestDevice(t *testing.T) {
	assert.True(t, DeviceCPU.IsValid())
	assert.True(t, DeviceCUDA.IsValid())
	assert.True(t, DeviceMPS.IsValid())
	assert.False(t, Device("gpu").IsValid())

	assert.False(t, DeviceCPU.Accelerated())
	assert.True(t, DeviceCUDA.Accelerated())
	assert.True(t, DeviceMPS.Accelerated())
}
