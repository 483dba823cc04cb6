// Package storage persists the serialized graph content of resources.
// Content is stored as raw N-Triples bytes and handed back unchanged, so
// decoding leniency stays with the reader.
package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/nats-io/nats.go/jetstream"
)

// DefaultBucket is the KV bucket used for resource content.
const DefaultBucket = "SEMDELTA_CONTENT"

// ContentStore reads and writes the persisted content of resources.
type ContentStore interface {
	Get(ctx context.Context, id string) ([]byte, error)
	Put(ctx context.Context, id string, content []byte) error
	Delete(ctx context.Context, id string) error
}

// Bucket is the part of a JetStream KV bucket the KVStore uses.
type Bucket interface {
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
	Put(ctx context.Context, key string, value []byte) (uint64, error)
	Delete(ctx context.Context, key string, opts ...jetstream.KVDeleteOpt) error
	Keys(ctx context.Context, opts ...jetstream.WatchOpt) ([]string, error)
}

// KVStore stores content in a NATS JetStream KV bucket. Resource
// identifiers are encoded into valid KV keys.
type KVStore struct {
	bucket Bucket
}

// NewKVStore opens the named bucket, creating it if it does not exist.
func NewKVStore(ctx context.Context, js jetstream.JetStream, bucket string) (*KVStore, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}
	kv, err := getOrCreateBucket(ctx, js, bucket)
	if err != nil {
		return nil, fmt.Errorf("open content bucket %s: %w", bucket, err)
	}
	return &KVStore{bucket: kv}, nil
}

// NewKVStoreFromBucket wraps an already opened bucket.
func NewKVStoreFromBucket(b Bucket) *KVStore {
	return &KVStore{bucket: b}
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: fmt.Sprintf("Semdelta %s storage", strings.ToLower(name)),
		History:     5, // Keep last 5 revisions
	})
}

// Get returns the stored content or ErrNotFound.
func (s *KVStore) Get(ctx context.Context, id string) ([]byte, error) {
	key, err := EncodeKey(id)
	if err != nil {
		return nil, err
	}
	entry, err := s.bucket.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get content %s: %w", id, err)
	}
	return entry.Value(), nil
}

// Put stores content, replacing any previous revision.
func (s *KVStore) Put(ctx context.Context, id string, content []byte) error {
	key, err := EncodeKey(id)
	if err != nil {
		return err
	}
	if _, err := s.bucket.Put(ctx, key, content); err != nil {
		return fmt.Errorf("put content %s: %w", id, err)
	}
	return nil
}

// Delete removes stored content. Deleting missing content is not an error.
func (s *KVStore) Delete(ctx context.Context, id string) error {
	key, err := EncodeKey(id)
	if err != nil {
		return err
	}
	if err := s.bucket.Delete(ctx, key); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("delete content %s: %w", id, err)
	}
	return nil
}

// List returns the identifiers with stored content, sorted.
func (s *KVStore) List(ctx context.Context) ([]string, error) {
	keys, err := s.bucket.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list content keys: %w", err)
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		id, err := DecodeKey(key)
		if err != nil {
			continue // Skip keys written by other tools
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// EncodeKey turns a resource identifier into a KV key.
func EncodeKey(id string) (string, error) {
	if id == "" {
		return "", ErrInvalidID
	}
	return base64.RawURLEncoding.EncodeToString([]byte(id)), nil
}

// DecodeKey reverses EncodeKey.
func DecodeKey(key string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return string(b), nil
}

// MemoryStore is an in-process ContentStore.
type MemoryStore struct {
	mu      sync.RWMutex
	content map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{content: make(map[string][]byte)}
}

// Get returns a copy of the stored content or ErrNotFound.
func (m *MemoryStore) Get(_ context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.content[id]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), c...), nil
}

// Put stores a copy of content.
func (m *MemoryStore) Put(_ context.Context, id string, content []byte) error {
	if id == "" {
		return ErrInvalidID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.content[id] = append([]byte(nil), content...)
	return nil
}

// Delete removes stored content.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.content, id)
	return nil
}
