// Package cache holds the tiny in-process cache behind the public listings.
// Write paths invalidate the keys they touch instead of clearing everything.
package cache

import "sync"

const (
	KeyGameList   = "games:list"
	KeyPlayerList = "players:list"
)

type Cache struct {
	mu      sync.RWMutex
	entries map[string]interface{}
}

func New() *Cache {
	return &Cache{entries: make(map[string]interface{})}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.entries[key]
	return val, ok
}

func (c *Cache) Set(key string, val interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = val
}

func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
}
