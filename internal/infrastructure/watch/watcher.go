// Package watch notifies callers when a project's configuration document
// changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DocumentWatcher watches one file. The parent directory is watched rather
// than the file itself so editors that save by rename are still seen.
type DocumentWatcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
}

// NewDocumentWatcher creates a watcher for path. Bursts of events within
// debounce collapse into one notification.
func NewDocumentWatcher(path string, debounce time.Duration, logger *slog.Logger) *DocumentWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentWatcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		logger:   logger,
	}
}

// Run blocks until ctx is done, calling onChange after each debounced
// burst of changes. onChange runs on the watcher goroutine; events that
// arrive meanwhile are coalesced into the next call.
func (w *DocumentWatcher) Run(ctx context.Context, onChange func(context.Context)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close() // Best-effort cleanup
	}()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.logger.Info("watching build profile configuration", "path", w.path)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}

			w.logger.Debug("configuration changed", "file", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)

		case <-timer.C:
			onChange(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *DocumentWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}
