package revalidate

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwood-studio/marquee/internal/logging"
)

// recordingInvalidator captures purge calls for assertions.
type recordingInvalidator struct {
	mutex sync.Mutex
	tags  [][]CacheTag
	paths []string
}

func (r *recordingInvalidator) PurgeTags(_ context.Context, tags []CacheTag) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.tags = append(r.tags, tags)
	return nil
}

func (r *recordingInvalidator) PurgePath(_ context.Context, path string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.paths = append(r.paths, path)
	return nil
}

func newTestDispatcher(rec *recordingInvalidator) *Dispatcher {
	return NewDispatcher(nil, rec, logging.NewNopLogger())
}

func TestTagsFor_Post(t *testing.T) {
	d := newTestDispatcher(&recordingInvalidator{})

	tags := d.TagsFor("post")
	assert.ElementsMatch(t, []CacheTag{"sanity", "posts", "blog"}, tags)
}

func TestTagsFor_GlobalGroup(t *testing.T) {
	d := newTestDispatcher(&recordingInvalidator{})

	want := []CacheTag{"sanity", "global", "navigation", "footer", "settings"}
	for _, docType := range []string{"header", "footer", "navigation", "siteSettings"} {
		assert.ElementsMatch(t, want, d.TagsFor(docType), docType)
	}
}

func TestTagsFor_UnknownTypeFallback(t *testing.T) {
	d := newTestDispatcher(&recordingInvalidator{})

	tags := d.TagsFor("totally-unknown-type")
	assert.NotEmpty(t, tags)
	assert.Contains(t, tags, TagBaseline)
	assert.ElementsMatch(t, []CacheTag{"sanity", "pages", "posts"}, tags)
}

func TestTagsFor_Deterministic(t *testing.T) {
	d := newTestDispatcher(&recordingInvalidator{})

	for _, docType := range []string{"post", "page", "header", "nope"} {
		first := d.TagsFor(docType)
		second := d.TagsFor(docType)
		assert.Equal(t, first, second, docType)
	}
}

func TestTagsFor_AlwaysIncludesBaseline(t *testing.T) {
	table := Table{"odd": {TagPages}}
	d := NewDispatcher(table, &recordingInvalidator{}, logging.NewNopLogger())

	tags := d.TagsFor("odd")
	assert.Contains(t, tags, TagBaseline)
}

func TestTagsFor_DoesNotAliasTable(t *testing.T) {
	d := newTestDispatcher(&recordingInvalidator{})

	tags := d.TagsFor("post")
	tags[0] = "mutated"
	assert.NotContains(t, d.TagsFor("post"), CacheTag("mutated"))
}

func TestDispatch_PurgesComputedTags(t *testing.T) {
	rec := &recordingInvalidator{}
	d := newTestDispatcher(rec)

	tags, err := d.Dispatch(context.Background(), "post")
	require.NoError(t, err)
	require.Len(t, rec.tags, 1)
	assert.Equal(t, tags, rec.tags[0])
}

func TestDispatchPath_NormalizesBeforePurge(t *testing.T) {
	rec := &recordingInvalidator{}
	d := newTestDispatcher(rec)

	path, err := d.DispatchPath(context.Background(), "blog/my-post/")
	require.NoError(t, err)
	assert.Equal(t, "/blog/my-post", path)
	require.Len(t, rec.paths, 1)
	assert.Equal(t, "/blog/my-post", rec.paths[0])
}
