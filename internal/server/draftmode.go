package server

import (
	"net/http"

	"github.com/driftwood-studio/marquee/internal/content"
)

// DraftCookie is the session cookie holding the draft flag. Its value is an
// HMAC under the preview secret so a client cannot forge draft mode.
const DraftCookie = "marquee_draft"

// draftCookieValue derives the expected cookie value for the configured
// preview secret.
func (s *Server) draftCookieValue() string {
	return Sign([]byte("draft"), s.config.Secrets.Preview)
}

// handleDraftEnable flips the draft flag for the session after checking the
// shared preview secret.
func (s *Server) handleDraftEnable(w http.ResponseWriter, r *http.Request) {
	if !secretsEqual(r.URL.Query().Get("secret"), s.config.Secrets.Preview) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     DraftCookie,
		Value:    s.draftCookieValue(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"draft":true}`))
}

// handleDraftDisable clears the draft flag after checking the same shared
// preview secret as enable.
func (s *Server) handleDraftDisable(w http.ResponseWriter, r *http.Request) {
	if !secretsEqual(r.URL.Query().Get("secret"), s.config.Secrets.Preview) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     DraftCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"draft":false}`))
}

// modeFromRequest decides the cache mode once per request from the draft
// cookie. A cookie with a stale or forged value reads as published.
func (s *Server) modeFromRequest(r *http.Request) content.CacheMode {
	cookie, err := r.Cookie(DraftCookie)
	if err != nil || !secretsEqual(cookie.Value, s.draftCookieValue()) {
		return content.ModePublished
	}
	return content.ModeDraft
}
