// Package langcache provides domain → language cache backends behind the
// langdetect.Cache interface. Three implementations: Memory for tests and
// one-shot runs, File for a small JSON cache on disk, SQLite for large
// datasets where rewriting a JSON blob per channel would hurt.
package langcache

import (
	"sync"

	"github.com/channellang/channel-lang/internal/langdetect"
)

// Memory is an in-process cache. Safe for concurrent use.
type Memory struct {
	mu sync.RWMutex
	m  map[string]langdetect.CacheEntry
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string]langdetect.CacheEntry)}
}

func (c *Memory) Get(domain string) (langdetect.CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.m[domain]
	return e, ok
}

func (c *Memory) Set(domain string, e langdetect.CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[domain] = e
}

// Len reports the number of cached domains.
func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
