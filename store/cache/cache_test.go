package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_BasicOperations(t *testing.T) {
	ctx := context.Background()
	c := New(Config{DefaultTTL: time.Minute, CleanupInterval: time.Minute, MaxItems: 100})
	defer c.Close()

	t.Run("SetAndGet", func(t *testing.T) {
		c.Set(ctx, "key1", "value1")

		val, ok := c.Get(ctx, "key1")
		assert.True(t, ok)
		assert.Equal(t, "value1", val)
	})

	t.Run("GetNonExistent", func(t *testing.T) {
		val, ok := c.Get(ctx, "nonexistent")
		assert.False(t, ok)
		assert.Nil(t, val)
	})

	t.Run("UpdateExisting", func(t *testing.T) {
		c.Set(ctx, "key2", "original")
		c.Set(ctx, "key2", "updated")

		val, ok := c.Get(ctx, "key2")
		assert.True(t, ok)
		assert.Equal(t, "updated", val)
	})

	t.Run("Delete", func(t *testing.T) {
		c.Set(ctx, "key3", "value3")
		c.Delete(ctx, "key3")

		_, ok := c.Get(ctx, "key3")
		assert.False(t, ok)
	})
}

func TestCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c := New(Config{DefaultTTL: time.Minute, CleanupInterval: time.Minute, MaxItems: 100})
	defer c.Close()

	c.SetWithTTL(ctx, "expiring", "value", 50*time.Millisecond)

	val, ok := c.Get(ctx, "expiring")
	assert.True(t, ok)
	assert.Equal(t, "value", val)

	time.Sleep(60 * time.Millisecond)

	val, ok = c.Get(ctx, "expiring")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestCache_MaxItemsEviction(t *testing.T) {
	ctx := context.Background()
	c := New(Config{DefaultTTL: time.Minute, CleanupInterval: time.Minute, MaxItems: 3})
	defer c.Close()

	c.Set(ctx, "a", 1)
	c.Set(ctx, "b", 2)
	c.Set(ctx, "c", 3)
	c.Set(ctx, "d", 4)

	assert.Equal(t, 3, c.Len())
	_, ok := c.Get(ctx, "d")
	assert.True(t, ok)
}

func TestCache_OnEviction(t *testing.T) {
	ctx := context.Background()
	var evictedKeys []string
	c := New(Config{
		DefaultTTL:      time.Minute,
		CleanupInterval: time.Minute,
		MaxItems:        100,
		OnEviction: func(key string, _ any) {
			evictedKeys = append(evictedKeys, key)
		},
	})
	defer c.Close()

	c.Set(ctx, "gone", "v")
	c.Delete(ctx, "gone")

	assert.Equal(t, []string{"gone"}, evictedKeys)
}

func TestTieredCache_L1Only(t *testing.T) {
	ctx := context.Background()
	tc := NewTieredCache(Config{DefaultTTL: time.Minute, CleanupInterval: time.Minute, MaxItems: 100}, nil)
	defer tc.Close()

	tc.Set(ctx, "key", "value")

	val, ok := tc.Get(ctx, "key")
	assert.True(t, ok)
	assert.Equal(t, "value", val)

	tc.Delete(ctx, "key")
	_, ok = tc.Get(ctx, "key")
	assert.False(t, ok)
}
