// Package content provides the read client for the CMS content store and the
// draft/published cache-mode switch. The client is the only part of the
// pipeline that performs network I/O; failures propagate to the caller
// untouched, there is no retry policy here.
package content

import (
	"context"
	"encoding/json"

	"github.com/driftwood-studio/marquee/internal/section"
)

// CacheMode selects how a content read interacts with the rendering cache.
// The mode is decided once per incoming request and threaded through every
// read that request performs; it is never re-evaluated mid-request.
type CacheMode int

const (
	// ModePublished reads published content. Responses are cacheable and
	// the rendered output is tagged for selective invalidation.
	ModePublished CacheMode = iota
	// ModeDraft bypasses every cache and reads the most recent revision,
	// including unpublished drafts. Requires an API token.
	ModeDraft
)

// String returns the mode name used in logs and the store's perspective
// parameter.
func (m CacheMode) String() string {
	if m == ModeDraft {
		return "draft"
	}
	return "published"
}

// Store is the read surface the composer and render layer depend on. The
// HTTP client implements it against the hosted CMS; the devcontent package
// implements it over local files.
type Store interface {
	// PageBySlug returns the page document for a route slug with its
	// section references resolved in declared order. A missing page
	// returns ErrNotFound.
	PageBySlug(ctx context.Context, slug string, mode CacheMode) (section.RawRecord, error)
	// Document returns a single document by id.
	Document(ctx context.Context, id string, mode CacheMode) (section.RawRecord, error)
}

// Fetcher is the raw query surface exposed for callers that need more than
// the typed helpers, parameterized by cache mode.
type Fetcher interface {
	Fetch(ctx context.Context, query string, params map[string]string, mode CacheMode) (json.RawMessage, error)
}
