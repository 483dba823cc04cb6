package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEntry only implements Value; the other methods are never called.
type fakeEntry struct {
	jetstream.KeyValueEntry
	value []byte
}

func (e fakeEntry) Value() []byte { return e.value }

type fakeBucket struct {
	data    map[string][]byte
	failPut error
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{data: make(map[string][]byte)}
}

func (b *fakeBucket) Get(_ context.Context, key string) (jetstream.KeyValueEntry, error) {
	v, ok := b.data[key]
	if !ok {
		return nil, jetstream.ErrKeyNotFound
	}
	return fakeEntry{value: v}, nil
}

func (b *fakeBucket) Put(_ context.Context, key string, value []byte) (uint64, error) {
	if b.failPut != nil {
		return 0, b.failPut
	}
	b.data[key] = value
	return uint64(len(b.data)), nil
}

func (b *fakeBucket) Delete(_ context.Context, key string, _ ...jetstream.KVDeleteOpt) error {
	if _, ok := b.data[key]; !ok {
		return jetstream.ErrKeyNotFound
	}
	delete(b.data, key)
	return nil
}

func (b *fakeBucket) Keys(_ context.Context, _ ...jetstream.WatchOpt) ([]string, error) {
	if len(b.data) == 0 {
		return nil, jetstream.ErrNoKeysFound
	}
	keys := make([]string, 0, len(b.data))
	for k := range b.data {
		keys = append(keys, k)
	}
	return keys, nil
}

func TestKeyEncoding(t *testing.T) {
	ids := []string{"test:1", "info:fedora/scholarsphere:qv33rx50r", "a b/c"}
	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			key, err := EncodeKey(id)
			require.NoError(t, err)
			assert.NotContains(t, key, ":")
			assert.NotContains(t, key, " ")

			back, err := DecodeKey(key)
			require.NoError(t, err)
			assert.Equal(t, id, back)
		})
	}

	_, err := EncodeKey("")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = DecodeKey("!!!")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestKVStore(t *testing.T) {
	ctx := context.Background()
	bucket := newFakeBucket()
	store := NewKVStoreFromBucket(bucket)

	_, err := store.Get(ctx, "test:1")
	assert.ErrorIs(t, err, ErrNotFound)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	content := []byte("<> <http://purl.org/dc/terms/title> \"bar\" .\n")
	require.NoError(t, store.Put(ctx, "test:2", content))
	require.NoError(t, store.Put(ctx, "test:1", content))

	got, err := store.Get(ctx, "test:1")
	require.NoError(t, err)
	assert.Equal(t, content, got)

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"test:1", "test:2"}, ids)

	require.NoError(t, store.Delete(ctx, "test:1"))
	require.NoError(t, store.Delete(ctx, "test:1"))
	_, err = store.Get(ctx, "test:1")
	assert.ErrorIs(t, err, ErrNotFound)

	bucket.failPut = errors.New("stream unavailable")
	err = store.Put(ctx, "test:3", content)
	assert.ErrorContains(t, err, "stream unavailable")

	assert.ErrorIs(t, store.Put(ctx, "", content), ErrInvalidID)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	var store ContentStore = NewMemoryStore()

	_, err := store.Get(ctx, "test:1")
	assert.ErrorIs(t, err, ErrNotFound)

	content := []byte("abc")
	require.NoError(t, store.Put(ctx, "test:1", content))
	content[0] = 'x'

	got, err := store.Get(ctx, "test:1")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[0] = 'y'
	again, _ := store.Get(ctx, "test:1")
	assert.Equal(t, []byte("abc"), again)

	require.NoError(t, store.Delete(ctx, "test:1"))
	_, err = store.Get(ctx, "test:1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Put(ctx, "", nil), ErrInvalidID)
}
