package cache

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwood-studio/marquee/internal/revalidate"
)

func TestRenderCache_PutGet(t *testing.T) {
	c := NewRenderCache()

	c.Put("/about", []byte("<html>"), "text/html", []revalidate.CacheTag{"sanity", "pages"})

	entry, ok := c.Get("/about")
	require.True(t, ok)
	assert.Equal(t, []byte("<html>"), entry.Body)
	assert.Equal(t, "text/html", entry.ContentType)

	_, ok = c.Get("/missing")
	assert.False(t, ok)
}

func TestRenderCache_PurgeTags(t *testing.T) {
	c := NewRenderCache()
	ctx := context.Background()

	c.Put("/", nil, "text/html", []revalidate.CacheTag{"sanity", "pages", "home"})
	c.Put("/blog/a", nil, "text/html", []revalidate.CacheTag{"sanity", "posts"})
	c.Put("/pricing", nil, "text/html", []revalidate.CacheTag{"sanity", "pages"})

	require.NoError(t, c.PurgeTags(ctx, []revalidate.CacheTag{"pages"}))

	_, ok := c.Get("/")
	assert.False(t, ok)
	_, ok = c.Get("/pricing")
	assert.False(t, ok)
	_, ok = c.Get("/blog/a")
	assert.True(t, ok, "untagged entry survives")
}

func TestRenderCache_PurgePathExact(t *testing.T) {
	c := NewRenderCache()
	ctx := context.Background()

	c.Put("/blog/a", nil, "text/html", []revalidate.CacheTag{"posts"})
	c.Put("/blog/b", nil, "text/html", []revalidate.CacheTag{"posts"})

	require.NoError(t, c.PurgePath(ctx, "/blog/a"))

	_, ok := c.Get("/blog/a")
	assert.False(t, ok)
	_, ok = c.Get("/blog/b")
	assert.True(t, ok, "path purge touches exactly one route")
}

func TestRenderCache_PurgeIsIdempotent(t *testing.T) {
	c := NewRenderCache()
	ctx := context.Background()

	c.Put("/about", nil, "text/html", []revalidate.CacheTag{"pages"})

	require.NoError(t, c.PurgeTags(ctx, []revalidate.CacheTag{"pages"}))
	require.NoError(t, c.PurgeTags(ctx, []revalidate.CacheTag{"pages"}))
	require.NoError(t, c.PurgePath(ctx, "/about"))

	assert.Equal(t, 0, c.Len())
}

func TestRenderCache_ReplaceReindexesTags(t *testing.T) {
	c := NewRenderCache()
	ctx := context.Background()

	c.Put("/about", nil, "text/html", []revalidate.CacheTag{"pages"})
	c.Put("/about", nil, "text/html", []revalidate.CacheTag{"settings"})

	// The old tag no longer reaches the entry.
	require.NoError(t, c.PurgeTags(ctx, []revalidate.CacheTag{"pages"}))
	_, ok := c.Get("/about")
	assert.True(t, ok)

	require.NoError(t, c.PurgeTags(ctx, []revalidate.CacheTag{"settings"}))
	_, ok = c.Get("/about")
	assert.False(t, ok)
}

func TestRenderCache_ConcurrentPurges(t *testing.T) {
	c := NewRenderCache()
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		c.Put("/p", nil, "text/html", []revalidate.CacheTag{"pages"})
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.PurgeTags(ctx, []revalidate.CacheTag{"pages"})
			_ = c.PurgePath(ctx, "/p")
		}()
	}
	wg.Wait()

	_, ok := c.Get("/p")
	assert.False(t, ok)
}
