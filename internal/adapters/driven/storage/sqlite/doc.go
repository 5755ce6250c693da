// Package sqlite provides SQLite-backed persistence for corpus
// documents and their chunks, serving the browsing commands.
package sqlite
