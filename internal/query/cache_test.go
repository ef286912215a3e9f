package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetMissing(t *testing.T) {
	cache := NewCache()

	value, ok, fresh := cache.Get("accounts")
	assert.Nil(t, value)
	assert.False(t, ok)
	assert.False(t, fresh)
}

func TestCache_FreshnessWindow(t *testing.T) {
	cache := NewCache()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set("accounts", []string{"a1"}, 5*time.Minute)

	// Inside the window the cached value is fresh.
	now = now.Add(4 * time.Minute)
	value, ok, fresh := cache.Get("accounts")
	require.True(t, ok)
	assert.True(t, fresh)
	assert.Equal(t, []string{"a1"}, value)

	// After the window elapses the value survives but is stale.
	now = now.Add(2 * time.Minute)
	value, ok, fresh = cache.Get("accounts")
	require.True(t, ok)
	assert.False(t, fresh)
	assert.Equal(t, []string{"a1"}, value)
}

func TestCache_ZeroWindowAlwaysStale(t *testing.T) {
	cache := NewCache()
	cache.Set("notifications", []string{"n1"}, 0)

	value, ok, fresh := cache.Get("notifications")
	require.True(t, ok)
	assert.False(t, fresh, "zero-window entries are always stale")
	assert.Equal(t, []string{"n1"}, value)
}

func TestCache_Invalidate(t *testing.T) {
	cache := NewCache()
	cache.Set("budgets", "b", time.Hour)

	cache.Invalidate("budgets")

	value, ok, fresh := cache.Get("budgets")
	require.True(t, ok, "invalidation keeps the stale value for display")
	assert.False(t, fresh)
	assert.Equal(t, "b", value)
}

func TestCache_Subscribe(t *testing.T) {
	cache := NewCache()

	var notified int
	unsubscribe := cache.Subscribe("notifications", func() { notified++ })

	cache.Set("notifications", "n", 0)
	assert.Equal(t, 1, notified)

	cache.Invalidate("notifications")
	assert.Equal(t, 2, notified)

	// Other keys do not notify this subscriber.
	cache.Set("accounts", "a", time.Minute)
	assert.Equal(t, 2, notified)

	unsubscribe()
	cache.Set("notifications", "n2", 0)
	assert.Equal(t, 2, notified)
}

func TestCache_InvalidateAbsentKeyStillNotifies(t *testing.T) {
	cache := NewCache()

	var notified int
	cache.Subscribe("budgets:a1", func() { notified++ })

	cache.Invalidate("budgets:a1")
	assert.Equal(t, 1, notified)
}

func TestCache_InvalidateAll(t *testing.T) {
	cache := NewCache()
	cache.Set("accounts", "a", time.Hour)
	cache.Set("categories", "c", time.Hour)

	cache.InvalidateAll()

	_, _, fresh := cache.Get("accounts")
	assert.False(t, fresh)
	_, _, fresh = cache.Get("categories")
	assert.False(t, fresh)
}

func TestCache_SubscriberMayTouchCache(t *testing.T) {
	cache := NewCache()

	// A refetch triggered from a subscriber writes back into the cache;
	// this must not deadlock.
	cache.Subscribe("notifications", func() {
		_, _, _ = cache.Get("notifications")
	})
	cache.Invalidate("notifications")
}
