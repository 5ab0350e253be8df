package snapshot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// cacheTTL keeps reads cheap without serving a stale feed for long; a new
// Put invalidates the affected keys immediately anyway.
const cacheTTL = 5 * time.Minute

// CachedStore wraps a Store with a Redis read-through cache. Snapshot
// payloads are immutable once written, so caching Get is safe; only the
// "latest" pointer and the key list change, and Put drops those entries.
type CachedStore struct {
	inner Store
	rdb   *redis.Client
}

func NewCachedStore(inner Store, rdb *redis.Client) *CachedStore {
	return &CachedStore{inner: inner, rdb: rdb}
}

func cacheKey(key string) string {
	return "feeds:snap:" + key
}

const datesCacheKey = "feeds:snap:dates"

func (c *CachedStore) Put(ctx context.Context, key string, payload []byte) error {
	if err := c.inner.Put(ctx, key, payload); err != nil {
		return err
	}
	_ = c.rdb.Del(ctx, cacheKey(key), cacheKey(KeyLatest), datesCacheKey).Err()
	return nil
}

func (c *CachedStore) Get(ctx context.Context, key string) ([]byte, error) {
	if bs, err := c.rdb.Get(ctx, cacheKey(key)).Bytes(); err == nil {
		return bs, nil
	}

	data, err := c.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	_ = c.rdb.Set(ctx, cacheKey(key), data, cacheTTL).Err()
	return data, nil
}

func (c *CachedStore) ListKeys(ctx context.Context) ([]string, error) {
	if bs, err := c.rdb.Get(ctx, datesCacheKey).Bytes(); err == nil {
		var cached []string
		if err := json.Unmarshal(bs, &cached); err == nil {
			return cached, nil
		}
	}

	keys, err := c.inner.ListKeys(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) > 0 {
		if bs, err := json.Marshal(keys); err == nil {
			_ = c.rdb.Set(ctx, datesCacheKey, bs, cacheTTL).Err()
		}
	}
	return keys, nil
}
