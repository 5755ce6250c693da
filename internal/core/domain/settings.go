package domain

import (
	"fmt"
	"path/filepath"
)

// Device selects where embedding and index computation run.
type Device string

// Recognised devices.
const (
	// DeviceCPU runs everything on the CPU. Always available.
	DeviceCPU Device = "cpu"

	// DeviceCUDA requests an NVIDIA accelerator for the index backend.
	DeviceCUDA Device = "cuda"

	// DeviceMPS requests Apple silicon acceleration.
	DeviceMPS Device = "mps"
)

// IsValid returns true if the device is recognised.
func (d Device) IsValid() bool {
	switch d {
	case DeviceCPU, DeviceCUDA, DeviceMPS:
		return true
	default:
		return false
	}
}

// Accelerated returns true if the device requests an accelerated backend.
func (d Device) Accelerated() bool {
	return d == DeviceCUDA || d == DeviceMPS
}

// String returns the string representation.
func (d Device) String() string {
	return string(d)
}

// Default chunking parameters, in whitespace-delimited words.
const (
	// DefaultChunkSize is the window length per chunk.
	DefaultChunkSize = 500

	// DefaultChunkOverlap is the number of words shared between
	// consecutive windows.
	DefaultChunkOverlap = 50
)

// Settings holds the retriever configuration.
type Settings struct {
	// CorpusDir is the directory scanned for documents.
	CorpusDir string

	// CachePath is the cache record file. Empty derives a default
	// alongside the corpus directory.
	CachePath string

	// Device is the resolved compute device.
	Device Device

	// ChunkSize is the chunk window length in words.
	ChunkSize int

	// ChunkOverlap is the number of overlapping words between windows.
	ChunkOverlap int

	// TopK is the default result count for searches.
	TopK int

	// ScoreThreshold is the default maximum distance for results.
	ScoreThreshold float64

	// Tiers are the relevance labelling cut-offs.
	Tiers Tiers
}

// DefaultSettings returns settings with all tunables at their defaults.
// CorpusDir must still be set by the caller.
func DefaultSettings() Settings {
	return Settings{
		Device:         DeviceCPU,
		ChunkSize:      DefaultChunkSize,
		ChunkOverlap:   DefaultChunkOverlap,
		TopK:           DefaultTopK,
		ScoreThreshold: DefaultScoreThreshold,
		Tiers:          DefaultTiers,
	}
}

// Validate rejects configurations that would silently misbehave.
// A chunk window no larger than its overlap never terminates, so it is
// the one construction-time fatal in the retrieval core.
func (s Settings) Validate() error {
	if s.CorpusDir == "" {
		return fmt.Errorf("%w: corpus directory is required", ErrInvalidInput)
	}
	if s.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size %d", ErrInvalidChunking, s.ChunkSize)
	}
	if s.ChunkOverlap < 0 {
		return fmt.Errorf("%w: negative overlap %d", ErrInvalidChunking, s.ChunkOverlap)
	}
	if s.ChunkSize <= s.ChunkOverlap {
		return fmt.Errorf("%w: size %d, overlap %d", ErrInvalidChunking, s.ChunkSize, s.ChunkOverlap)
	}
	if s.Device != "" && !s.Device.IsValid() {
		return fmt.Errorf("%w: unknown device %q", ErrInvalidInput, s.Device)
	}
	if s.Tiers.High > 0 && s.Tiers.Medium > 0 && s.Tiers.High >= s.Tiers.Medium {
		return fmt.Errorf("%w: tier cut-offs must ascend (high %.2f, medium %.2f)",
			ErrInvalidInput, s.Tiers.High, s.Tiers.Medium)
	}
	return nil
}

// ResolvedCachePath returns the cache file location, deriving the
// conventional default next to the corpus directory when unset.
func (s Settings) ResolvedCachePath() string {
	if s.CachePath != "" {
		return s.CachePath
	}
	return filepath.Join(filepath.Dir(s.CorpusDir), "finrag_index.cache")
}
