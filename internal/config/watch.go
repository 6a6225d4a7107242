package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchMenuConfig watches the mode-table file and sends on the returned
// channel whenever it changes, so the UI can re-resolve the composer state
// against the new allow-lists. Events are debounced: editors typically fire
// several writes per save. The watcher shuts down when ctx is cancelled.
func WatchMenuConfig(ctx context.Context, path string) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory rather than the file itself: rename-based saves
	// replace the inode and would silently drop a file-level watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	target := filepath.Clean(path)
	changes := make(chan struct{}, 1)

	go func() {
		defer watcher.Close()
		defer close(changes)
		var pending *time.Timer
		var pendingC <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != target {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if pending == nil {
					pending = time.NewTimer(100 * time.Millisecond)
					pendingC = pending.C
				} else {
					pending.Reset(100 * time.Millisecond)
				}
			case <-pendingC:
				pending = nil
				pendingC = nil
				select {
				case changes <- struct{}{}:
				default:
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changes, nil
}
