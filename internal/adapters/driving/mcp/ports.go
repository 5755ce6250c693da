package mcp

import (
	"github.com/finlit-labs/finrag-cli/internal/core/ports/driven"
	"github.com/finlit-labs/finrag-cli/internal/core/ports/driving"
)

// Ports aggregates the interfaces the MCP server exposes.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retriever answers semantic queries.
	Retriever driving.RetrieverService

	// Documents serves corpus browsing resources. Optional.
	Documents driven.DocumentStore
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retriever == nil {
		return ErrMissingRetrieverService
	}
	// Documents is optional
	return nil
}
