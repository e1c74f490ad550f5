package users

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/quikapp/user-service/pkg/logger"
	"github.com/quikapp/user-service/pkg/redis"
)

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	UserCacheKey(userID string) string
}

// Cache is the read-through cache for the by-id lookup path. Every failure
// degrades to a store read; callers never see a cache error.
type Cache struct {
	store cacheStore
	ttl   time.Duration
	logg  *logger.Logger
}

// NewCache wraps the redis store with the configured TTL. A nil store yields
// a disabled cache where every read misses and writes are no-ops.
func NewCache(store cacheStore, ttl time.Duration, logg *logger.Logger) *Cache {
	return &Cache{store: store, ttl: ttl, logg: logg}
}

// GetUser returns the cached user and true on a hit.
func (c *Cache) GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, bool) {
	if c == nil || c.store == nil {
		return nil, false
	}

	raw, err := c.store.Get(ctx, c.store.UserCacheKey(id.String()))
	if err != nil {
		if !redis.IsMiss(err) {
			c.warn(ctx, "user cache read failed", err)
		}
		return nil, false
	}

	var dto UserDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		c.warn(ctx, "user cache entry corrupt", err)
		c.Evict(ctx, id)
		return nil, false
	}
	return &dto, true
}

// PutUser stores the user under its id key with the configured TTL. Nil users
// are never cached.
func (c *Cache) PutUser(ctx context.Context, user *UserDTO) {
	if c == nil || c.store == nil || user == nil {
		return
	}

	raw, err := json.Marshal(user)
	if err != nil {
		c.warn(ctx, "user cache encode failed", err)
		return
	}
	if err := c.store.Set(ctx, c.store.UserCacheKey(user.ID.String()), string(raw), c.ttl); err != nil {
		c.warn(ctx, "user cache write failed", err)
	}
}

// Evict removes the id's cache entry.
func (c *Cache) Evict(ctx context.Context, id uuid.UUID) {
	if c == nil || c.store == nil {
		return
	}
	if err := c.store.Del(ctx, c.store.UserCacheKey(id.String())); err != nil {
		c.warn(ctx, "user cache evict failed", err)
	}
}

func (c *Cache) warn(ctx context.Context, msg string, err error) {
	if c.logg == nil {
		return
	}
	c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), msg)
}
