package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_LoadsOnceWhileFresh(t *testing.T) {
	var loads atomic.Int32
	c := New(time.Minute, func(_ context.Context, page int) (string, error) {
		loads.Add(1)
		return "page", nil
	})
	ctx := context.Background()

	for range 3 {
		v, err := c.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "page", v)
	}
	assert.EqualValues(t, 1, loads.Load())

	_, err := c.Get(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 2, loads.Load())
	assert.Equal(t, 2, c.Len())
}

func TestCache_ReloadsAfterTTL(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var loads int
	c := New(time.Minute, func(context.Context, string) (int, error) {
		loads++
		return loads, nil
	})
	c.now = func() time.Time { return now }
	ctx := context.Background()

	v, _ := c.Get(ctx, "k")
	assert.Equal(t, 1, v)
	now = now.Add(30 * time.Second)
	v, _ = c.Get(ctx, "k")
	assert.Equal(t, 1, v)
	now = now.Add(time.Minute)
	v, _ = c.Get(ctx, "k")
	assert.Equal(t, 2, v)
}

func TestCache_StoreDropsExpiredEntries(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(time.Minute, func(_ context.Context, page int) (int, error) {
		return page, nil
	})
	c.now = func() time.Time { return now }
	ctx := context.Background()

	for page := range 50 {
		_, err := c.Get(ctx, page)
		require.NoError(t, err)
	}
	assert.Equal(t, 50, c.Len())

	now = now.Add(2 * time.Minute)
	_, err := c.Get(ctx, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestCache_InvalidateForcesReload(t *testing.T) {
	var loads int
	c := New(time.Hour, func(context.Context, string) (int, error) {
		loads++
		return loads, nil
	})
	ctx := context.Background()

	_, _ = c.Get(ctx, "k")
	c.Invalidate()
	assert.Equal(t, 0, c.Len())
	v, _ := c.Get(ctx, "k")
	assert.Equal(t, 2, v)
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	fail := true
	c := New(time.Hour, func(context.Context, string) (string, error) {
		if fail {
			return "", errors.New("db down")
		}
		return "ok", nil
	})
	ctx := context.Background()

	_, err := c.Get(ctx, "k")
	assert.Error(t, err)
	fail = false
	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestCache_ConcurrentGet(t *testing.T) {
	var loads atomic.Int32
	c := New(time.Hour, func(context.Context, int) (int, error) {
		loads.Add(1)
		time.Sleep(5 * time.Millisecond)
		return 7, nil
	})
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Get(context.Background(), 1)
			assert.NoError(t, err)
			assert.Equal(t, 7, v)
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, loads.Load())
}

func TestRegistry_InvalidatesOnlyMatchingPath(t *testing.T) {
	reg := NewRegistry(slog.Default())
	posts := New(time.Hour, func(context.Context, int) (int, error) { return 1, nil })
	invoices := New(time.Hour, func(context.Context, int) (int, error) { return 1, nil })
	reg.Register("/dashboard/posts", posts)
	reg.Register("/dashboard/invoices", invoices)
	ctx := context.Background()

	_, _ = posts.Get(ctx, 1)
	_, _ = invoices.Get(ctx, 1)
	reg.Invalidate(ctx, "/dashboard/posts")

	assert.Equal(t, 0, posts.Len())
	assert.Equal(t, 1, invoices.Len())

	reg.Invalidate(ctx, "/unknown")
}
