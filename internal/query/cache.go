// Package query implements the client-side cache that keeps server state
// consistent across views.
//
// Each resource lives under an explicit string key with the time it was
// fetched and a freshness window. Readers get the cached value while it is
// fresh; mutations invalidate the keys they affect, and subscribers are told
// whenever a key changes so open views can refetch. This replaces the hidden
// coupling of an ambient query cache with an injected, observable service.
package query

import (
	"sync"
	"time"
)

// Entry is a cached value with its freshness metadata.
type Entry struct {
	FetchedAt time.Time
	Value     any
	Window    time.Duration
}

// Fresh reports whether the entry is still inside its freshness window at
// time now. A zero window means the entry is always stale.
func (e Entry) Fresh(now time.Time) bool {
	if e.Window <= 0 {
		return false
	}
	return now.Sub(e.FetchedAt) < e.Window
}

// Cache maps resource keys to entries. Safe for concurrent use; the
// dashboard and the live notification channel touch it from different
// goroutines.
type Cache struct {
	entries     map[string]Entry
	subscribers map[string]map[int]func()
	now         func() time.Time
	nextSubID   int
	mu          sync.Mutex
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries:     make(map[string]Entry),
		subscribers: make(map[string]map[int]func()),
		now:         time.Now,
	}
}

// Get returns the cached value under key. ok reports whether a value exists
// at all; fresh whether it is still inside its freshness window.
func (c *Cache) Get(key string) (value any, ok, fresh bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false, false
	}
	return entry.Value, true, entry.Fresh(c.now())
}

// Set stores value under key with the given freshness window and notifies
// the key's subscribers.
func (c *Cache) Set(key string, value any, window time.Duration) {
	c.mu.Lock()
	c.entries[key] = Entry{
		Value:     value,
		FetchedAt: c.now(),
		Window:    window,
	}
	callbacks := c.callbacksLocked(key)
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

// Invalidate marks the entry under key stale, forcing the next read to
// refetch, and notifies the key's subscribers. Invalidating an absent key
// still notifies, so views keyed on data not yet fetched refresh too.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	if entry, ok := c.entries[key]; ok {
		entry.FetchedAt = time.Time{}
		entry.Window = 0
		c.entries[key] = entry
	}
	callbacks := c.callbacksLocked(key)
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

// InvalidateAll marks every entry stale. Used on logout so nothing from the
// previous session survives into the next.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	c.mu.Unlock()

	for _, key := range keys {
		c.Invalidate(key)
	}
}

// Subscribe registers fn to run whenever key is set or invalidated. The
// returned function removes the subscription; views call it on teardown.
func (c *Cache) Subscribe(key string, fn func()) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.subscribers[key] == nil {
		c.subscribers[key] = make(map[int]func())
	}
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[key][id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers[key], id)
	}
}

// callbacksLocked snapshots key's subscriber callbacks; callers invoke them
// after releasing the lock so a callback may touch the cache again.
func (c *Cache) callbacksLocked(key string) []func() {
	subs := c.subscribers[key]
	if len(subs) == 0 {
		return nil
	}
	callbacks := make([]func(), 0, len(subs))
	for _, fn := range subs {
		callbacks = append(callbacks, fn)
	}
	return callbacks
}
