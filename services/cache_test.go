package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", map[string]int{"n": 7}, time.Minute))
	require.NoError(t, c.Set(ctx, "forever", "x", 0))

	var got map[string]int
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 7, got["n"])

	now = now.Add(time.Minute)
	found, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	var s string
	found, _ = c.Get(ctx, "forever", &s)
	assert.True(t, found)
	assert.Equal(t, "x", s)
}

func TestMemoryCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	require.NoError(t, c.Set(ctx, "a", 1, 0))
	require.NoError(t, c.Set(ctx, "b", 2, 0))
	require.NoError(t, c.Delete(ctx, "a", "b", "missing"))

	var n int
	found, _ := c.Get(ctx, "a", &n)
	assert.False(t, found)
}

func TestNewCacheWithoutRedisIsInProcess(t *testing.T) {
	_, ok := NewCache(nil).(*MemoryCache)
	assert.True(t, ok)
}
