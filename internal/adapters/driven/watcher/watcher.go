// Package watcher observes a corpus directory for changes so the index
// can be rebuilt when documents are added or edited.
package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/finlit-labs/finrag-cli/internal/core/ports/driven"
	"github.com/finlit-labs/finrag-cli/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.CorpusWatcher = (*Watcher)(nil)

// defaultDebounce coalesces the burst of events an editor or copy
// emits for a single logical change.
const defaultDebounce = 2 * time.Second

// Watcher reports corpus directory changes over a channel.
type Watcher struct {
	debounce time.Duration

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	stopped bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the event coalescing window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New creates a corpus watcher.
func New(opts ...Option) *Watcher {
	w := &Watcher{debounce: defaultDebounce}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch starts observing dir. The returned channel carries the path of
// a changed file once per quiet period; it is closed when the context
// is cancelled or Stop is called.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsw != nil {
		return nil, fmt.Errorf("watcher already running")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w.fsw = fsw
	w.stopped = false

	changes := make(chan string, 1)
	go w.run(ctx, fsw, changes)

	logger.Info("watching %s for changes", dir)
	return changes, nil
}

// run forwards debounced write/create/remove/rename events.
func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, changes chan<- string) {
	defer close(changes)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending string
	)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
				continue
			}

			pending = event.Name
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			select {
			case changes <- pending:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// Stop closes the underlying watcher; the change channel closes shortly
// after. Safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsw == nil || w.stopped {
		return nil
	}
	w.stopped = true
	return w.fsw.Close()
}
