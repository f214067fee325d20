// Package watch repackages automatically while asset trees are being edited.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/retrofe/packager/internal/logfields"
)

// Watcher monitors asset source trees and triggers repackaging on changes.
type Watcher struct {
	roots        []string
	repackage    func(ctx context.Context) error
	watcher      *fsnotify.Watcher
	mu           sync.RWMutex
	stopChan     chan struct{}
	triggerChan  chan struct{}
	debounceTime time.Duration
}

// New creates a watcher over the given root directories. repackage is
// invoked after changes settle.
func New(roots []string, repackage func(ctx context.Context) error) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		roots:        roots,
		repackage:    repackage,
		watcher:      watcher,
		stopChan:     make(chan struct{}),
		triggerChan:  make(chan struct{}, 1),
		debounceTime: 2 * time.Second, // Debounce rapid file changes
	}, nil
}

// Start begins monitoring. Every directory under each root is watched;
// fsnotify does not recurse on its own. Missing roots are skipped, matching
// the packager's treatment of optional source trees.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	watched := 0
	for _, root := range w.roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			watched++
			return nil
		})
		if err != nil {
			slog.Warn("Skipping unwatchable source tree", logfields.Path(root), logfields.Error(err))
		}
	}
	if watched == 0 {
		return fmt.Errorf("no watchable directories under %v", w.roots)
	}

	slog.Info("Watching asset trees", slog.Int("directories", watched))

	go w.watchLoop(ctx)
	go w.repackageLoop(ctx)

	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	slog.Info("Stopping asset watcher")
	close(w.stopChan)
	return w.watcher.Close()
}

// watchLoop monitors file system events.
func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				slog.Debug("Asset change detected", logfields.Path(event.Name))
				// New directories need their own watch to keep recursion alive.
				if event.Op&fsnotify.Create != 0 {
					if err := w.watcher.Add(event.Name); err == nil {
						slog.Debug("Watching new path", logfields.Path(event.Name))
					}
				}
				w.trigger()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Asset watcher error", logfields.Error(err))
		}
	}
}

// trigger signals a pending repackage without blocking.
func (w *Watcher) trigger() {
	select {
	case w.triggerChan <- struct{}{}:
	default: // already pending
	}
}

// repackageLoop debounces triggers and runs the repackage callback.
func (w *Watcher) repackageLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case <-w.triggerChan:
			timer := time.NewTimer(w.debounceTime)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-w.stopChan:
				timer.Stop()
				return
			case <-timer.C:
			}

			// Drain triggers that arrived during the debounce window.
			select {
			case <-w.triggerChan:
			default:
			}

			slog.Info("Asset changes settled, repackaging")
			if err := w.repackage(ctx); err != nil {
				slog.Error("Repackage failed", logfields.Error(err))
			}
		}
	}
}
