package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcherMatches(t *testing.T) {
	dir := t.TempDir()
	w, err := newFileWatcher([]string{filepath.Join(dir, "**", "*.yaml")}, 0, nil)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, defaultDebounce, w.debounce)
	assert.True(t, w.matches(filepath.Join(dir, "book.yaml")))
	assert.True(t, w.matches(filepath.Join(dir, "a", "b", "book.yaml")))
	assert.False(t, w.matches(filepath.Join(dir, "notes.txt")))
	assert.False(t, w.matches(filepath.Join(t.TempDir(), "book.yaml")))
}

func TestFileWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sub", "old.yaml"), newBook)

	w, err := newFileWatcher([]string{filepath.Join(dir, "**", "*.yaml")}, 20*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []string, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx, func(paths []string) { batches <- paths })
	}()

	target := filepath.Join(dir, "sub", "new.yaml")
	writeFile(t, filepath.Join(dir, "sub", "notes.txt"), "ignored")
	writeFile(t, target, newBook)

	seen := map[string]bool{}
	deadline := time.After(5 * time.Second)
	for !seen[target] {
		select {
		case paths := <-batches:
			for _, p := range paths {
				seen[p] = true
			}
		case <-deadline:
			t.Fatalf("no change reported for %s, saw %v", target, seen)
		}
	}
	assert.False(t, seen[filepath.Join(dir, "sub", "notes.txt")])

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestFileWatcherMissingBase(t *testing.T) {
	_, err := newFileWatcher([]string{filepath.Join(t.TempDir(), "missing", "*.yaml")}, 0, nil)
	assert.Error(t, err)
}
