// Package composer resolves a page's ordered section references and runs
// each through the section transformers. Composition has a deliberate
// partial-failure policy: one malformed section is skipped and logged, it
// never takes down the page. This is distinct from the transformers' own
// strictness: they reject, the composer recovers.
package composer

import (
	"context"
	"fmt"

	"github.com/driftwood-studio/marquee/internal/content"
	"github.com/driftwood-studio/marquee/internal/logging"
	"github.com/driftwood-studio/marquee/internal/section"
)

// RenderableSection pairs a normalized section with the stable render key
// the front end uses for reconciliation. Key uniqueness across a page is the
// caller's responsibility; the composer only applies the fallback chain.
type RenderableSection struct {
	Key     string
	Section section.Section
}

// Page is a composed, rendering-ready page.
type Page struct {
	ID       string
	Slug     string
	Title    string
	Sections []RenderableSection
}

// Composer turns page documents into renderable pages.
type Composer struct {
	store    content.Store
	registry *section.Registry
	logger   logging.Logger
}

// New creates a composer over the given store and variant registry.
func New(store content.Store, registry *section.Registry, logger logging.Logger) *Composer {
	return &Composer{
		store:    store,
		registry: registry,
		logger:   logger.WithComponent("composer"),
	}
}

// Compose fetches the page for slug and transforms its sections in declared
// order. Store failures propagate; section failures do not.
func (c *Composer) Compose(ctx context.Context, slug string, mode content.CacheMode) (*Page, error) {
	record, err := c.store.PageBySlug(ctx, slug, mode)
	if err != nil {
		return nil, err
	}

	page := &Page{
		ID:    str(record, "_id"),
		Slug:  slug,
		Title: str(record, "title"),
	}

	raws, _ := record["sections"].([]interface{})
	page.Sections = c.composeSections(ctx, raws)
	return page, nil
}

// composeSections transforms each raw section record, collecting the ones
// that validate and skipping the rest. Output preserves the input's relative
// order. Duplicate references to one section simply render twice.
func (c *Composer) composeSections(ctx context.Context, raws []interface{}) []RenderableSection {
	sections := make([]RenderableSection, 0, len(raws))

	for i, item := range raws {
		raw, ok := item.(map[string]interface{})
		if !ok {
			c.logger.Warn(ctx, nil, "skipping non-object section entry", "index", i)
			continue
		}

		record := section.RawRecord(raw)
		transformed, err := c.registry.Transform(record)
		if err != nil {
			c.logger.Warn(ctx, err, "skipping invalid section",
				"index", i,
				"key", str(record, "_key"),
				"type", str(record, "_type"))
			continue
		}

		sections = append(sections, RenderableSection{
			Key:     renderKey(record, i),
			Section: transformed,
		})
	}

	return sections
}

// renderKey picks the stable key for a section: its own _key, then _id,
// then _type, then the position index.
func renderKey(record section.RawRecord, index int) string {
	if k := str(record, "_key"); k != "" {
		return k
	}
	if id := str(record, "_id"); id != "" {
		return id
	}
	if t := str(record, "_type"); t != "" {
		return t
	}
	return fmt.Sprintf("section-%d", index)
}

func str(record section.RawRecord, key string) string {
	s, _ := record[key].(string)
	return s
}
