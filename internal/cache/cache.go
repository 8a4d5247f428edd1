package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	TypeMemory = "memory"
	TypeRedis  = "redis"
)

// Well-known view keys.
const (
	KeyEnquiries  = "enquiries"
	KeyAdminUsers = "admin-users"
	KeyRevoked    = "revoked:"
	KeyContent    = "content:"
)

// ErrUnavailable is returned when the backend cannot be reached.
var ErrUnavailable = errors.New("cache backend unavailable")

// Store is a small TTL key/value cache. Values are JSON encoded so both backends behave alike.
type Store interface {
	// Get decodes the cached value into dest. It reports false on a miss.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Options configures New.
type Options struct {
	Type       string
	Size       int
	DefaultTTL time.Duration
	RedisAddr  string
	RedisPass  string
	RedisDB    int
	Prefix     string
}

// New builds the configured backend.
func New(opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Type)) {
	case "", TypeMemory:
		return NewMemoryStore(opts.Size, opts.DefaultTTL), nil
	case TypeRedis:
		return NewRedisStore(opts)
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", opts.Type)
	}
}
