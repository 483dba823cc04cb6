package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semdelta/model"
	"github.com/c360studio/semdelta/resource"
	"github.com/c360studio/semdelta/storage"
)

const testNamespace resource.Namespace = "http://localhost:8983/fedora/rest/test"

func loadTestSchemas(t *testing.T) *model.Registry {
	t.Helper()
	reg, err := model.ParseSchemas([]byte(testSchemas))
	require.NoError(t, err)
	return reg
}

func TestLoadResourceFile(t *testing.T) {
	dir := t.TempDir()

	f, err := LoadResourceFile(writeFile(t, filepath.Join(dir, "existing.yaml"), existingBook))
	require.NoError(t, err)
	assert.Equal(t, "Book", f.Class)
	assert.Equal(t, "book1", f.ID)
	assert.True(t, f.Persisted)
	require.Len(t, f.Changes, 1)
	assert.True(t, f.Changes[0].Clear)

	tests := map[string]string{
		"missing class":        "changes: []\n",
		"persisted without id": "class: Book\npersisted: true\n",
		"invalid yaml":         "class: [",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadResourceFile(writeFile(t, filepath.Join(t.TempDir(), "r.yaml"), content))
			assert.Error(t, err)
		})
	}

	_, err = LoadResourceFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestResourceFileExisting(t *testing.T) {
	ctx := context.Background()
	f, err := LoadResourceFile(writeFile(t, filepath.Join(t.TempDir(), "existing.yaml"), existingBook))
	require.NoError(t, err)

	store := storage.NewMemoryStore()
	require.NoError(t, f.Seed(ctx, store))

	r, err := f.Resource(ctx, loadTestSchemas(t), testNamespace, store)
	require.NoError(t, err)
	assert.Equal(t, []any{"Old"}, r.Get("title"))
	assert.Nil(t, r.First("description"))
	assert.Equal(t, []string{"description"}, r.Changed())
}

func TestResourceFileSeedKeepsStoredContent(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "book1", []byte("stored")))

	f := &ResourceFile{Class: "Book", ID: "book1", Content: "fixture"}
	require.NoError(t, f.Seed(ctx, store))

	got, err := store.Get(ctx, "book1")
	require.NoError(t, err)
	assert.Equal(t, "stored", string(got))
}

type unreachableStore struct {
	storage.ContentStore
	puts int
}

func (s *unreachableStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("nats: timeout")
}

func (s *unreachableStore) Put(context.Context, string, []byte) error {
	s.puts++
	return nil
}

func TestResourceFileSeedReturnsLookupErrors(t *testing.T) {
	store := &unreachableStore{}
	f := &ResourceFile{Class: "Book", ID: "book1", Content: "fixture"}

	err := f.Seed(context.Background(), store)
	assert.ErrorContains(t, err, "nats: timeout")
	assert.Zero(t, store.puts)
}

func TestResourceFileSeedsMissingContent(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	f := &ResourceFile{Class: "Book", ID: "book1", Content: "fixture"}
	require.NoError(t, f.Seed(ctx, store))

	got, err := store.Get(ctx, "book1")
	require.NoError(t, err)
	assert.Equal(t, "fixture", string(got))
}

func TestResourceFileUnknownClass(t *testing.T) {
	f := &ResourceFile{Class: "Journal"}
	_, err := f.Resource(context.Background(), loadTestSchemas(t), testNamespace, nil)
	assert.ErrorContains(t, err, "Journal")
}

func TestExpandPatterns(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a", "one.yaml"), newBook)
	b := writeFile(t, filepath.Join(dir, "b", "c", "two.yaml"), newBook)
	writeFile(t, filepath.Join(dir, "b", "notes.txt"), "ignored")

	files, err := expandPatterns([]string{
		filepath.Join(dir, "**", "*.yaml"),
		filepath.Join(dir, "a", "*.yaml"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
}
