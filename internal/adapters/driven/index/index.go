// Package index selects the vector index backend for a device.
//
// Backend placement is a capability-checked strategy: an accelerated
// device request is honoured only when the HNSW bindings are compiled
// in; otherwise the exact flat backend is used and the fallback is
// logged, never surfaced as an error.
package index

import (
	"context"
	"fmt"

	"github.com/finlit-labs/finrag-cli/cgo/hnsw"
	"github.com/finlit-labs/finrag-cli/internal/adapters/driven/index/flat"
	"github.com/finlit-labs/finrag-cli/internal/core/domain"
	"github.com/finlit-labs/finrag-cli/internal/core/ports/driven"
	"github.com/finlit-labs/finrag-cli/internal/logger"
)

// Ensure Factory implements the interface.
var _ driven.IndexFactory = Factory{}

// Factory is the driven.IndexFactory implementation backed by New and
// Load.
type Factory struct{}

// New constructs an empty index of the given dimension.
func (Factory) New(device domain.Device, dimension int) (driven.VectorIndex, error) {
	return New(device, dimension)
}

// Load reconstructs an index from a Serialize snapshot.
func (Factory) Load(ctx context.Context, device domain.Device, data []byte) (driven.VectorIndex, error) {
	return Load(ctx, device, data)
}

// New constructs an empty index for the given device and dimension.
func New(device domain.Device, dimension int) (driven.VectorIndex, error) {
	if !device.Accelerated() {
		return flat.New(dimension)
	}

	if !hnsw.Available() {
		logger.Warn("accelerated index requested for device %s but bindings are not compiled in, using flat backend", device)
		return flat.New(dimension)
	}

	idx, err := hnsw.New(dimension)
	if err != nil {
		logger.Warn("accelerated index construction failed: %v, using flat backend", err)
		return flat.New(dimension)
	}

	logger.Info("vector index placed on accelerated backend (device %s)", device)
	return idx, nil
}

// Load reconstructs an index from a Serialize snapshot, honouring the
// device request the same way New does. Snapshots are always written in
// the backend-independent flat layout, so a record built on an
// accelerated host loads anywhere.
func Load(ctx context.Context, device domain.Device, data []byte) (driven.VectorIndex, error) {
	restored, err := flat.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("decode index snapshot: %w", err)
	}

	if !device.Accelerated() {
		return restored, nil
	}

	if !hnsw.Available() {
		logger.Warn("cached index requested device %s but bindings are not compiled in, using flat backend", device)
		return restored, nil
	}

	accel, err := hnsw.New(restored.Dimension())
	if err != nil {
		logger.Warn("accelerated index construction failed on load: %v, using flat backend", err)
		return restored, nil
	}

	if err := accel.Add(ctx, restored.Vectors()); err != nil {
		logger.Warn("migrating cached vectors to accelerated backend failed: %v, using flat backend", err)
		accel.Close()
		return restored, nil
	}

	restored.Close()
	logger.Info("cached index migrated to accelerated backend (device %s)", device)
	return accel, nil
}
