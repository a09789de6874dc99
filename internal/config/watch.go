package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchFile monitors path and calls onWrite after the file has been
// written and debounce has elapsed without further writes. Bursts of
// appends from a busy health checker collapse into a single callback.
// WatchFile runs until ctx is cancelled.
func WatchFile(ctx context.Context, path string, debounce time.Duration, onWrite func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	slog.Info("config: watching file", "path", path, "debounce", debounce)

	timer := time.NewTimer(debounce)
	stopTimer(timer)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Only react to write or create events. Log shippers often
			// rotate via rename (atomic replace), so also catch Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			stopTimer(timer)
			timer.Reset(debounce)

			// Re-add the file in case a rotation replaced the inode.
			_ = watcher.Add(path)

		case <-timer.C:
			onWrite()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "err", err)
		}
	}
}

// stopTimer stops t and drains its channel if it already fired.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
