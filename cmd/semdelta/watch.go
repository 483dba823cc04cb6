package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// fileWatcher reports changes to files matching a set of doublestar
// patterns. Changes are collected and flushed once per debounce interval.
type fileWatcher struct {
	watcher  *fsnotify.Watcher
	patterns []string
	debounce time.Duration
	logger   *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op
}

func newFileWatcher(patterns []string, debounce time.Duration, logger *slog.Logger) (*fileWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w := &fileWatcher{
		watcher:  fsw,
		patterns: patterns,
		debounce: debounce,
		logger:   logger,
		pending:  make(map[string]fsnotify.Op),
	}
	for _, pattern := range patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		if err := w.addWatchesRecursive(filepath.FromSlash(base)); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// addWatchesRecursive watches root and every directory below it, skipping
// hidden ones.
func (w *fileWatcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if path != root && strings.HasPrefix(base, ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}
		return nil
	})
}

// Run calls onChange with the sorted paths of changed files until ctx is
// done or the watcher is closed.
func (w *fileWatcher) Run(ctx context.Context, onChange func(paths []string)) {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			if paths := w.flushPending(); len(paths) > 0 {
				onChange(paths)
			}
		}
	}
}

func (w *fileWatcher) handleEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addWatchesRecursive(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}
	if !w.matches(event.Name) {
		return
	}

	w.pendingMu.Lock()
	w.pending[event.Name] |= event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Resource file change detected", "path", event.Name, "op", event.Op.String())
}

func (w *fileWatcher) matches(path string) bool {
	for _, pattern := range w.patterns {
		if ok, _ := doublestar.PathMatch(pattern, path); ok {
			return true
		}
	}
	return false
}

func (w *fileWatcher) flushPending() []string {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	clear(w.pending)
	slices.Sort(paths)
	return paths
}

// Close stops the watcher.
func (w *fileWatcher) Close() error {
	return w.watcher.Close()
}
