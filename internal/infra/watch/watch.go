// Package watch re-runs work when a file changes on disk.
package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// File monitors path and calls onChange each time it is written or
// replaced. It runs until ctx is cancelled.
//
// The parent directory is watched rather than the file itself: an atomic
// save renames a new inode over path, which would end a watch held on the
// old one.
//
// onChange runs on the watcher goroutine; a slow callback delays the next
// event but never drops the watch.
func File(ctx context.Context, path string, log *slog.Logger, onChange func()) error {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(target); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	log.Info("watch.started", "path", target)

	for {
		select {
		case <-ctx.Done():
			log.Info("watch.stopped", "path", target)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isChange(event, target) {
				continue
			}

			log.Debug("watch.changed", "path", target, "op", event.Op.String())
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watch.error", "path", target, "err", err)
		}
	}
}

// isChange reports whether event rewrote target. A rename over target shows
// up as Create on target; renames away from it and removals are ignored.
func isChange(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
