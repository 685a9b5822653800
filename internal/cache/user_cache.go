// Package cache keeps user lookups in Redis using the cache-aside pattern.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tasktracker/internal/model"
)

// UserStore is the store being cached.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// cachedUser is what goes into Redis. The password hash never does.
type cachedUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Errors uint64 `json:"errors"`
}

// UserCache serves GetByID from Redis and falls back to the wrapped store
// on a miss or when Redis is unavailable. Other calls pass straight through.
type UserCache struct {
	next   UserStore
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
	stats  Stats
}

func NewUserCache(next UserStore, client *redis.Client, ttl time.Duration, logger *slog.Logger) *UserCache {
	return &UserCache{
		next:   next,
		client: client,
		prefix: "tasktracker:user:",
		ttl:    ttl,
		logger: logger,
	}
}

func (c *UserCache) Create(ctx context.Context, user *model.User) error {
	return c.next.Create(ctx, user)
}

func (c *UserCache) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return c.next.FindByEmail(ctx, email)
}

// GetByID returns nil, nil for unknown users, like the wrapped store.
// Misses are not cached.
func (c *UserCache) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	key := c.prefix + id.String()

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cu cachedUser
		if err := json.Unmarshal(data, &cu); err == nil {
			atomic.AddUint64(&c.stats.Hits, 1)
			return &model.User{ID: cu.ID, Name: cu.Name, Email: cu.Email, CreatedAt: cu.CreatedAt}, nil
		}
		atomic.AddUint64(&c.stats.Errors, 1)
	case errors.Is(err, redis.Nil):
		atomic.AddUint64(&c.stats.Misses, 1)
	default:
		atomic.AddUint64(&c.stats.Errors, 1)
		c.logger.WarnContext(ctx, "user cache read failed", "key", key, "error", err)
	}

	user, err := c.next.GetByID(ctx, id)
	if err != nil || user == nil {
		return user, err
	}

	if err := c.set(ctx, key, user); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		c.logger.WarnContext(ctx, "user cache write failed", "key", key, "error", err)
	}
	return user, nil
}

func (c *UserCache) set(ctx context.Context, key string, user *model.User) error {
	data, err := json.Marshal(cachedUser{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

// Invalidate drops the cached entry for id.
func (c *UserCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, c.prefix+id.String()).Err()
}

func (c *UserCache) Stats() Stats {
	return Stats{
		Hits:   atomic.LoadUint64(&c.stats.Hits),
		Misses: atomic.LoadUint64(&c.stats.Misses),
		Errors: atomic.LoadUint64(&c.stats.Errors),
	}
}

func (c *UserCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
