// Package watcher detects external changes to a resource pack on disk, so
// the editor can flag its loaded state as stale and offer a reload.
package watcher

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/aredhel/polytone-edit/internal/logger"
)

// debounceDelay is the quiet period after the last file event before the
// change callback fires. Pack edits from other tools arrive in bursts.
const debounceDelay = 500 * time.Millisecond

// Watch watches the pack rooted at root recursively and calls onChange after
// file activity settles. It blocks until the context is cancelled.
func Watch(ctx context.Context, root string, onChange func()) error {
	return watch(ctx, root, debounceDelay, onChange)
}

func watch(ctx context.Context, root string, delay time.Duration, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addRecursive(w, root); err != nil {
		return err
	}

	deb := newDebouncer(delay, onChange)
	defer deb.stop()

	logger.Info("watching pack for changes", zap.String("root", root))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			// New directories need their own watch before anything inside
			// them can be seen.
			if event.Op.Has(fsnotify.Create) {
				if err := addRecursive(w, event.Name); err == nil {
					logger.Debug("watching new path", zap.String("path", event.Name))
				}
			}
			deb.trigger()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		}
	}
}

// addRecursive registers path and every directory below it. Non-directory
// paths are ignored; fsnotify already reports files through their parent.
func addRecursive(w *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.Add(p)
	})
}
