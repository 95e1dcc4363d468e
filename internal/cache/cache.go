// Package cache provides the tag-indexed render cache the standalone server
// uses in place of an external ISR/CDN layer. Entries are stored by route and
// indexed by cache tag; the rest of the pipeline only reaches it through the
// revalidate.Invalidator surface.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/driftwood-studio/marquee/internal/revalidate"
)

// Entry is one cached rendered response.
type Entry struct {
	Body        []byte
	ContentType string
	Tags        []revalidate.CacheTag
	StoredAt    time.Time
}

// RenderCache is an in-memory tag-indexed route cache. Safe for concurrent
// use. Purging a tag or path that holds nothing is a no-op, which makes
// invalidation idempotent under concurrent webhook delivery.
type RenderCache struct {
	mutex   sync.RWMutex
	entries map[string]*Entry
	byTag   map[revalidate.CacheTag]map[string]struct{}
}

// NewRenderCache creates an empty render cache.
func NewRenderCache() *RenderCache {
	return &RenderCache{
		entries: make(map[string]*Entry),
		byTag:   make(map[revalidate.CacheTag]map[string]struct{}),
	}
}

// Get returns the cached entry for a route, if present.
func (c *RenderCache) Get(path string) (*Entry, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, ok := c.entries[path]
	return entry, ok
}

// Put stores a rendered response under path, indexed by its tags. A
// re-render of the same path replaces the previous entry and its tag index.
func (c *RenderCache) Put(path string, body []byte, contentType string, tags []revalidate.CacheTag) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.dropLocked(path)

	c.entries[path] = &Entry{
		Body:        body,
		ContentType: contentType,
		Tags:        append([]revalidate.CacheTag(nil), tags...),
		StoredAt:    time.Now(),
	}
	for _, tag := range tags {
		paths, ok := c.byTag[tag]
		if !ok {
			paths = make(map[string]struct{})
			c.byTag[tag] = paths
		}
		paths[path] = struct{}{}
	}
}

// PurgeTags removes every entry carrying any of the given tags. Implements
// revalidate.Invalidator.
func (c *RenderCache) PurgeTags(_ context.Context, tags []revalidate.CacheTag) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, tag := range tags {
		for path := range c.byTag[tag] {
			c.dropLocked(path)
		}
	}
	return nil
}

// PurgePath removes exactly one route. Implements revalidate.Invalidator.
func (c *RenderCache) PurgePath(_ context.Context, path string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.dropLocked(path)
	return nil
}

// Len returns the number of cached routes.
func (c *RenderCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}

// dropLocked removes path from the store and the tag index. Caller holds the
// write lock.
func (c *RenderCache) dropLocked(path string) {
	entry, ok := c.entries[path]
	if !ok {
		return
	}
	delete(c.entries, path)
	for _, tag := range entry.Tags {
		delete(c.byTag[tag], path)
		if len(c.byTag[tag]) == 0 {
			delete(c.byTag, tag)
		}
	}
}
