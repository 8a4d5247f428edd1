package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore shares cached views between replicas.
type RedisStore struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
}

func NewRedisStore(opts Options) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.RedisAddr,
		Password: opts.RedisPass,
		DB:       opts.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return NewRedisStoreWithClient(client, opts.Prefix, opts.DefaultTTL), nil
}

func NewRedisStoreWithClient(client *redis.Client, prefix string, defaultTTL time.Duration) *RedisStore {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &RedisStore{client: client, prefix: prefix, defaultTTL: defaultTTL}
}

func (r *RedisStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if dest == nil {
		return true, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	return r.client.Set(ctx, r.prefix+key, data, ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = r.prefix + key
	}
	return r.client.Del(ctx, prefixed...).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
