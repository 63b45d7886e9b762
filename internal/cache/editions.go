package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ainewsdaily/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "editions:"
	DefaultTTL = time.Hour
)

// EditionCache keeps rendered edition windows in Redis. A nil cache, or one
// without a client, is a no-op so the API runs without Redis.
type EditionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewEditionCache(rdb *redis.Client, ttl time.Duration) *EditionCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &EditionCache{rdb: rdb, ttl: ttl}
}

func (c *EditionCache) enabled() bool {
	return c != nil && c.rdb != nil
}

func Key(view string) string {
	return keyPrefix + view
}

// Get reports a miss on any Redis or decode error.
func (c *EditionCache) Get(ctx context.Context, view string) ([]model.Edition, bool) {
	if !c.enabled() {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, Key(view)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("edition cache read failed", "view", view, "error", err)
		}
		return nil, false
	}

	var editions []model.Edition
	if err := json.Unmarshal(raw, &editions); err != nil {
		slog.Warn("edition cache decode failed", "view", view, "error", err)
		return nil, false
	}

	return editions, true
}

func (c *EditionCache) Set(ctx context.Context, view string, editions []model.Edition) {
	if !c.enabled() {
		return
	}

	raw, err := json.Marshal(editions)
	if err != nil {
		slog.Warn("edition cache encode failed", "view", view, "error", err)
		return
	}

	if err := c.rdb.Set(ctx, Key(view), raw, c.ttl).Err(); err != nil {
		slog.Warn("edition cache write failed", "view", view, "error", err)
	}
}

// Invalidate drops every cached view and returns how many keys were removed.
func (c *EditionCache) Invalidate(ctx context.Context) (int, error) {
	if !c.enabled() {
		return 0, nil
	}

	var removed int
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, fmt.Errorf("failed to delete %s: %w", iter.Val(), err)
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("failed to scan edition keys: %w", err)
	}

	return removed, nil
}
