package auth

import (
	"academy/internal/cache"
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// NewRevocationList picks where signed-out token ids live. The in-process cache evicts
// under size pressure, so a memory backend gets a dedicated unbounded list instead.
func NewRevocationList(store cache.Store, sessionTTL time.Duration) RevocationList {
	if _, ok := store.(*cache.MemoryStore); ok || store == nil {
		return NewMemoryRevocationList(sessionTTL)
	}
	return NewCacheRevocationList(store)
}

// CacheRevocationList stores revoked token ids in the shared cache.
type CacheRevocationList struct {
	store cache.Store
}

func NewCacheRevocationList(store cache.Store) *CacheRevocationList {
	return &CacheRevocationList{store: store}
}

func (l *CacheRevocationList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return l.store.Set(ctx, cache.KeyRevoked+tokenID, true, ttl)
}

func (l *CacheRevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return l.store.Get(ctx, cache.KeyRevoked+tokenID, nil)
}

// MemoryRevocationList never evicts by size. Entries age out once every token they
// could match has expired.
type MemoryRevocationList struct {
	revoked *expirable.LRU[string, time.Time]
}

func NewMemoryRevocationList(sessionTTL time.Duration) *MemoryRevocationList {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &MemoryRevocationList{revoked: expirable.NewLRU[string, time.Time](0, nil, sessionTTL)}
}

func (l *MemoryRevocationList) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if !time.Now().Before(until) {
		return nil
	}
	l.revoked.Add(tokenID, until)
	return nil
}

func (l *MemoryRevocationList) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	until, ok := l.revoked.Get(tokenID)
	return ok && time.Now().Before(until), nil
}
