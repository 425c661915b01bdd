// Package cache holds rendered API responses between collection
// changes. It wraps patrickmn/go-cache; the server flushes it whenever
// the collection or the catalog changes.
package cache

import (
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is a TTL cache of response payloads. Every Clear starts a new
// generation; values computed during an older generation are refused.
type Cache struct {
	store *gocache.Cache

	mu         sync.Mutex
	generation uint64
}

// New creates a cache whose entries live for ttl.
func New(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{store: gocache.New(ttl, cleanupInterval)}
}

// Key builds a cache key from a route name and its query parameters.
// Parameter order does not matter.
func Key(route string, query url.Values) string {
	if len(query) == 0 {
		return route
	}
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(route)
	b.WriteByte('?')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		vals := append([]string(nil), query[k]...)
		sort.Strings(vals)
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(strings.Join(vals, ",")))
	}
	return b.String()
}

// Get returns the cached value for key.
func (c *Cache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// Generation returns the current generation. Take it before computing a
// value and hand it to SetAt.
func (c *Cache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// SetAt stores value under key only if no Clear happened since gen was
// taken. It reports whether the value was stored.
func (c *Cache) SetAt(key string, value any, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	c.store.Set(key, value, gocache.DefaultExpiration)
	return true
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Clear drops every entry and starts a new generation.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.store.Flush()
}

// ItemCount returns the number of entries, expired ones included until
// the next cleanup.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}
