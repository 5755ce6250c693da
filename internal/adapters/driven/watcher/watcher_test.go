package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_ReportsWrite(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := New(WithDebounce(50 * time.Millisecond))
	changes, err := w.Watch(ctx, dir)
	require.NoError(t, err)
	defer w.Stop()

	path := filepath.Join(dir, "new.txt")
	require.NoError(t, os.WriteFile(path, []byte("document body"), 0o600))

	select {
	case got := <-changes:
		assert.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatch_CoalescesBurst(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := New(WithDebounce(100 * time.Millisecond))
	changes, err := w.Watch(ctx, dir)
	require.NoError(t, err)
	defer w.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.txt"),
			[]byte("revision"), 0o600))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	// The burst lands as one notification.
	select {
	case path, ok := <-changes:
		if ok {
			t.Fatalf("unexpected second notification for %s", path)
		}
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatch_StopClosesChannel(t *testing.T) {
	dir := t.TempDir()

	w := New(WithDebounce(50 * time.Millisecond))
	changes, err := w.Watch(context.Background(), dir)
	require.NoError(t, err)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop(), "stop is idempotent")

	select {
	case _, ok := <-changes:
		assert.False(t, ok, "channel closes after stop")
	case <-time.After(5 * time.Second):
		t.Fatal("channel did not close")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	w := New()
	_, err := w.Watch(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
