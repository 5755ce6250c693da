package driven

import "context"

// CorpusWatcher reports changes to the corpus directory so the
// retriever can be rebuilt without restarting the process.
type CorpusWatcher interface {
	// Watch starts monitoring dir. Each value on the returned channel
	// is the path of a created, modified or removed corpus file. The
	// channel closes when the context is cancelled or Stop is called.
	Watch(ctx context.Context, dir string) (<-chan string, error)

	// Stop stops the watcher and releases resources.
	Stop() error
}
