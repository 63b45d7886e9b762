package cache

import (
	"context"
	"testing"
	"time"

	"ainewsdaily/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/assert/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*EditionCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewEditionCache(rdb, time.Hour), mr
}

func sampleEditions() []model.Edition {
	return []model.Edition{
		{
			Date: "2026-03-01",
			News: []model.NewsItem{
				{ID: "a", Title: "Nuevo modelo", RelevanceScore: 9, CreatedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)},
			},
		},
	}
}

func TestSetGet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "today", sampleEditions())
	got, ok := c.Get(ctx, "today")

	assert.Equal(t, true, ok)
	assert.Equal(t, sampleEditions(), got)
	assert.Equal(t, time.Hour, mr.TTL(Key("today")))
}

func TestGet_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	got, ok := c.Get(context.Background(), "archive")

	assert.Equal(t, false, ok)
	assert.Equal(t, 0, len(got))
}

func TestGet_CorruptValue(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Set(Key("today"), "not-json")

	_, ok := c.Get(context.Background(), "today")

	assert.Equal(t, false, ok)
}

func TestExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "recent", sampleEditions())
	mr.FastForward(61 * time.Minute)

	_, ok := c.Get(ctx, "recent")
	assert.Equal(t, false, ok)
}

func TestInvalidate(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	mr.Set("unrelated", "keep")

	c.Set(ctx, "today", sampleEditions())
	c.Set(ctx, "recent", sampleEditions())
	c.Set(ctx, "archive", sampleEditions())

	removed, err := c.Invalidate(ctx)

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, removed)
	assert.Equal(t, false, mr.Exists(Key("today")))
	assert.Equal(t, true, mr.Exists("unrelated"))
}

func TestNilCache(t *testing.T) {
	var c *EditionCache
	ctx := context.Background()

	c.Set(ctx, "today", sampleEditions())
	_, ok := c.Get(ctx, "today")
	removed, err := c.Invalidate(ctx)

	assert.Equal(t, false, ok)
	assert.Equal(t, 0, removed)
	assert.Equal(t, nil, err)

	_, ok = NewEditionCache(nil, 0).Get(ctx, "today")
	assert.Equal(t, false, ok)
}

func TestRedisDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	_, ok := c.Get(context.Background(), "today")
	assert.Equal(t, false, ok)

	_, err := c.Invalidate(context.Background())
	assert.NotEqual(t, nil, err)
}
