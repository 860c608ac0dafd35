package query

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"
	"time"
)

// Entry is one cached query result. Value is the JSON encoding of the
// payload so entries can live outside the process.
type Entry struct {
	Value     []byte    `json:"value"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Store keeps entries for a bounded time. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, bool, error)
	Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error
	// DeletePrefix removes key and every key below it, i.e. key + "/...".
	DeletePrefix(ctx context.Context, key string) error
}

const defaultShards = 16

// MemoryStore is an in-process Store sharded by key hash.
type MemoryStore struct {
	shards []*memoryShard
}

type memoryShard struct {
	mu    sync.RWMutex
	store map[string]memoryEntry
}

type memoryEntry struct {
	entry     Entry
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	shards := make([]*memoryShard, defaultShards)
	for i := range shards {
		shards[i] = &memoryShard{store: make(map[string]memoryEntry)}
	}
	return &MemoryStore{shards: shards}
}

func (s *MemoryStore) getShard(key string) *memoryShard {
	hash := fnv.New32a()
	hash.Write([]byte(key))
	return s.shards[hash.Sum32()%uint32(len(s.shards))]
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Entry, bool, error) {
	shard := s.getShard(key)
	shard.mu.RLock()
	e, exists := shard.store[key]
	shard.mu.RUnlock()
	if !exists {
		return nil, false, nil
	}

	if time.Now().After(e.expiresAt) {
		shard.mu.Lock()
		if cur, ok := shard.store[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(shard.store, key)
		}
		shard.mu.Unlock()
		return nil, false, nil
	}

	entry := e.entry
	return &entry, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, entry *Entry, ttl time.Duration) error {
	shard := s.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	shard.store[key] = memoryEntry{entry: *entry, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) DeletePrefix(_ context.Context, key string) error {
	for _, shard := range s.shards {
		shard.mu.Lock()
		for k := range shard.store {
			if matchesPrefix(k, key) {
				delete(shard.store, k)
			}
		}
		shard.mu.Unlock()
	}
	return nil
}

// Len reports the number of stored entries, expired or not.
func (s *MemoryStore) Len() int {
	n := 0
	for _, shard := range s.shards {
		shard.mu.RLock()
		n += len(shard.store)
		shard.mu.RUnlock()
	}
	return n
}

func (s *MemoryStore) Clear() {
	for _, shard := range s.shards {
		shard.mu.Lock()
		shard.store = make(map[string]memoryEntry)
		shard.mu.Unlock()
	}
}

func matchesPrefix(key, prefix string) bool {
	return key == prefix || strings.HasPrefix(key, prefix+keySeparator)
}
