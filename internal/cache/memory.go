package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps entries in a bounded LRU. The LRU ttl caps every entry; shorter
// per-entry ttls are enforced on read.
type MemoryStore struct {
	lru        *expirable.LRU[string, memoryEntry]
	defaultTTL time.Duration
}

func NewMemoryStore(size int, defaultTTL time.Duration) *MemoryStore {
	if size <= 0 {
		size = 1024
	}
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &MemoryStore{
		lru:        expirable.NewLRU[string, memoryEntry](size, nil, 24*time.Hour),
		defaultTTL: defaultTTL,
	}
}

func (m *MemoryStore) Get(_ context.Context, key string, dest any) (bool, error) {
	entry, ok := m.lru.Get(key)
	if !ok {
		return false, nil
	}
	if time.Now().After(entry.expiresAt) {
		m.lru.Remove(key)
		return false, nil
	}
	if dest == nil {
		return true, nil
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	m.lru.Add(key, memoryEntry{data: data, expiresAt: time.Now().Add(ttl)})
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		m.lru.Remove(key)
	}
	return nil
}
