// Package revalidate maps content-change notifications to the cache tags
// that must be purged, and carries the narrower exact-path purge used by
// pages with long cache lifetimes. The dispatcher performs no authentication;
// webhook handlers verify secrets and signatures before calling in.
package revalidate

import (
	"context"
	"sort"

	"github.com/driftwood-studio/marquee/internal/logging"
)

// CacheTag is an opaque label attached to cached render output, used for
// selective invalidation.
type CacheTag string

// Well-known tags. TagBaseline is the umbrella tag present in every mapped
// set, so no document-type invalidation is ever a no-op.
const (
	TagBaseline   CacheTag = "sanity"
	TagPages      CacheTag = "pages"
	TagHome       CacheTag = "home"
	TagPosts      CacheTag = "posts"
	TagBlog       CacheTag = "blog"
	TagCategories CacheTag = "categories"
	TagGlobal     CacheTag = "global"
	TagNavigation CacheTag = "navigation"
	TagFooter     CacheTag = "footer"
	TagSettings   CacheTag = "settings"
)

// Table maps a document type to the tags purged when that type changes.
type Table map[string][]CacheTag

// globalTags is the shared set for the grouped "global" document types:
// a header, footer or site-settings change touches navigation and footer
// scoped output everywhere.
var globalTags = []CacheTag{TagBaseline, TagGlobal, TagNavigation, TagFooter, TagSettings}

// DefaultTable returns the built-in document-type dispatch table.
func DefaultTable() Table {
	return Table{
		"page":         {TagBaseline, TagPages},
		"homePage":     {TagBaseline, TagPages, TagHome},
		"landingPage":  {TagBaseline, TagPages},
		"post":         {TagBaseline, TagPosts, TagBlog},
		"category":     {TagBaseline, TagCategories, TagPosts, TagBlog},
		"header":       globalTags,
		"footer":       globalTags,
		"navigation":   globalTags,
		"siteSettings": globalTags,
	}
}

// fallbackTags is the pessimistic set for unrecognized document types: all
// page-like and post-like output. Favors correctness over cache retention.
var fallbackTags = []CacheTag{TagBaseline, TagPages, TagPosts}

// Invalidator is the surface of the externally managed render cache. The
// pipeline never touches cached entries directly; it only purges through
// this interface. Purging is idempotent.
type Invalidator interface {
	PurgeTags(ctx context.Context, tags []CacheTag) error
	PurgePath(ctx context.Context, path string) error
}

// Dispatcher resolves document types to tag sets and drives the purge. The
// table is process-wide immutable configuration injected at construction.
type Dispatcher struct {
	table  Table
	cache  Invalidator
	logger logging.Logger
}

// NewDispatcher creates a dispatcher over the given table and cache surface.
// A nil table uses the built-in default.
func NewDispatcher(table Table, cache Invalidator, logger logging.Logger) *Dispatcher {
	if table == nil {
		table = DefaultTable()
	}
	return &Dispatcher{
		table:  table,
		cache:  cache,
		logger: logger.WithComponent("revalidate"),
	}
}

// TagsFor returns the tags to purge when a document of the given type
// changes. The result always includes the baseline tag, is sorted for
// determinism, and never aliases the table's backing slices.
func (d *Dispatcher) TagsFor(documentType string) []CacheTag {
	mapped, ok := d.table[documentType]
	if !ok {
		mapped = fallbackTags
	}

	seen := make(map[CacheTag]bool, len(mapped)+1)
	tags := make([]CacheTag, 0, len(mapped)+1)
	for _, t := range mapped {
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}
	if !seen[TagBaseline] {
		tags = append(tags, TagBaseline)
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Dispatch computes the tag set for documentType and purges it. Unknown
// types are not an error: they resolve to the pessimistic fallback and are
// logged.
func (d *Dispatcher) Dispatch(ctx context.Context, documentType string) ([]CacheTag, error) {
	if _, ok := d.table[documentType]; !ok {
		d.logger.Info(ctx, "unknown document type, using fallback tag set",
			"document_type", documentType)
	}

	tags := d.TagsFor(documentType)
	if err := d.cache.PurgeTags(ctx, tags); err != nil {
		return nil, err
	}

	d.logger.Info(ctx, "invalidated tags",
		"document_type", documentType, "tags", tags)
	return tags, nil
}

// DispatchPath invalidates exactly one route, bypassing the type-to-tags
// table. The path is normalized (see NormalizePath) before the purge.
func (d *Dispatcher) DispatchPath(ctx context.Context, path string) (string, error) {
	normalized := NormalizePath(path)
	if err := d.cache.PurgePath(ctx, normalized); err != nil {
		return "", err
	}

	d.logger.Info(ctx, "invalidated path", "path", normalized)
	return normalized, nil
}
