// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants query the financial knowledge base as a tool.
package mcp

import "errors"

// ErrMissingRetrieverService is returned when the retriever service is not provided.
var ErrMissingRetrieverService = errors.New("mcp: retriever service is required")
