// Package watch re-runs a callback when a SQLite database file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/satishbabariya/mysqlite-go/internal/debug"
)

// DefaultDebounce is the quiet period after the last change before the
// callback runs.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a database file and its journal files for writes.
type Watcher struct {
	file     string
	callback func(ctx context.Context) error
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher creates a watcher for file. The directory is watched rather than
// the file so that the rollback journal and WAL files are seen too.
func NewWatcher(file string, callback func(ctx context.Context) error) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	absPath, err := filepath.Abs(file)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	return &Watcher{
		file:     absPath,
		callback: callback,
		watcher:  watcher,
		debounce: DefaultDebounce,
	}, nil
}

// SetDebounce changes the quiet period.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run calls the callback once, then again after every burst of changes, until
// ctx is done. Callback errors are logged and do not stop the watch.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.callback(ctx); err != nil {
		return fmt.Errorf("initial callback failed: %w", err)
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	var pending <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				timer.Reset(w.debounce)
				pending = timer.C
			}

		case <-pending:
			pending = nil
			if err := w.callback(ctx); err != nil {
				debug.Warn("watch callback failed", "file", w.file, "error", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			debug.Warn("watch error", "file", w.file, "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	path, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return path == w.file || strings.HasPrefix(path, w.file+"-")
}
