package texture

import (
	"log"
	"sync"
)

// Resolver resolves a texture name to a decoded texture, or nil.
type Resolver interface {
	Resolve(name string) *Texture
}

// Cache is a concurrency-safe texture cache.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

// cacheEntry records a load attempt; tex is nil when it failed.
type cacheEntry struct {
	tex *Texture
}

// NewCache creates a new texture cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches a texture by name. Returns nil if not found or
// undecodable; failures are logged once and cached.
func (c *Cache) Resolve(name string) *Texture {
	if c == nil || c.index == nil {
		return nil
	}
	path, ok := c.index.ResolvePath(name)
	if !ok {
		return nil
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.tex
	}
	c.mu.RUnlock()

	tex, err := Load(path)
	if err != nil {
		log.Printf("texture %q: %v", name, err)
	}

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.tex
	}
	c.items[path] = &cacheEntry{tex: tex}
	return tex
}
