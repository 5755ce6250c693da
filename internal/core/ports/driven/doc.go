// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the retriever to function:
//
//   - CorpusLoader: Enumerates and extracts text from corpus documents
//   - EmbeddingService: Maps text to fixed-dimension vectors
//   - VectorIndex: Nearest-neighbour search over chunk vectors
//   - CacheStore: Persistence of the index snapshot between runs
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - DocumentStore: Corpus metadata persistence for browsing commands
//   - ConfigStore: Application configuration
//   - CorpusWatcher: Change notification for automatic rebuilds
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
