package server

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/driftwood-studio/marquee/internal/content"
	"github.com/driftwood-studio/marquee/internal/render"
	"github.com/driftwood-studio/marquee/internal/revalidate"
)

// handlePage serves a composed page. Published requests are served from and
// stored into the render cache under the page's tag set; draft requests
// bypass the cache in both directions.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	mode := s.modeFromRequest(r)
	path := revalidate.NormalizePath(r.URL.Path)

	if mode == content.ModePublished {
		if entry, ok := s.cache.Get(path); ok {
			w.Header().Set("Content-Type", entry.ContentType)
			w.Header().Set("X-Marquee-Cache", "hit")
			w.Write(entry.Body)
			return
		}
	}

	page, err := s.composer.Compose(r.Context(), slug, mode)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		// Upstream failures are not retried here; the rendering layer
		// shows its error page.
		s.logger.Error(r.Context(), err, "compose failed", "slug", slug, "mode", mode.String())
		http.Error(w, "upstream error", http.StatusBadGateway)
		return
	}

	var buf bytes.Buffer
	if err := render.Page(page).Render(r.Context(), &buf); err != nil {
		s.logger.Error(r.Context(), err, "render failed", "slug", slug)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	const contentType = "text/html; charset=utf-8"
	if mode == content.ModePublished {
		s.cache.Put(path, buf.Bytes(), contentType, s.dispatcher.TagsFor("page"))
		w.Header().Set("X-Marquee-Cache", "miss")
	} else {
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("X-Marquee-Cache", "bypass")
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(buf.Bytes())
}
