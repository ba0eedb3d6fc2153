package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCallsBackOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "app.db")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0o644))

	calls := make(chan struct{}, 8)
	w, err := NewWatcher(file, func(ctx context.Context) error {
		calls <- struct{}{}
		return nil
	})
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	waitCall(t, calls)

	require.NoError(t, os.WriteFile(file, []byte("b"), 0o644))
	waitCall(t, calls)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "app.db")

	w := &Watcher{file: file}
	assert.True(t, w.relevant(fsnotify.Event{Name: file, Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: file + "-wal", Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: file + "-journal", Op: fsnotify.Create}))
	assert.False(t, w.relevant(fsnotify.Event{Name: file, Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: filepath.Join(dir, "other.db"), Op: fsnotify.Write}))
}

func TestInitialCallbackError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.db")
	w, err := NewWatcher(file, func(ctx context.Context) error {
		return assert.AnError
	})
	require.NoError(t, err)

	err = w.Run(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func waitCall(t *testing.T, calls <-chan struct{}) {
	t.Helper()
	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("callback was not called")
	}
}
