// Package hnsw provides CGO bindings for HNSWlib.
// It implements the driven.VectorIndex interface as the accelerated
// backend; when the bindings are not compiled in, Available reports
// false and the index selector falls back to the flat backend.
//
// Build requires:
//   - HNSWlib header (fetched via CMake FetchContent)
//   - C++17 compiler
package hnsw
