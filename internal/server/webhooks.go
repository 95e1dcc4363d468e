package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
)

// SignatureHeader carries the hex HMAC-SHA256 of the path-webhook body.
const SignatureHeader = "X-Marquee-Signature"

// maxWebhookBody caps webhook payload reads.
const maxWebhookBody = 1 << 20

// tagPayload is the content-change notification. The hosted store sends the
// document type as _type; documentType is accepted for manual calls.
type tagPayload struct {
	Type         string `json:"_type"`
	DocumentType string `json:"documentType"`
}

func (p tagPayload) documentType() string {
	if p.DocumentType != "" {
		return p.DocumentType
	}
	return p.Type
}

// handleRevalidateTags is the tag-based invalidation webhook. The shared
// secret arrives as a query parameter; on mismatch nothing is invalidated.
func (s *Server) handleRevalidateTags(w http.ResponseWriter, r *http.Request) {
	if !secretsEqual(r.URL.Query().Get("secret"), s.config.Secrets.Revalidate) {
		s.logger.Warn(r.Context(), nil, "revalidate webhook secret mismatch",
			"remote", r.RemoteAddr)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	var payload tagPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	docType := payload.documentType()
	if docType == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	tags, err := s.dispatcher.Dispatch(r.Context(), docType)
	if err != nil {
		s.logger.Error(r.Context(), err, "tag invalidation failed", "document_type", docType)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.hub.NotifyInvalidated(tags)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"revalidated":  true,
		"tags":         tags,
		"documentType": docType,
	})
}

// pathPayload is the exact-path invalidation request.
type pathPayload struct {
	Path string `json:"path"`
}

// handleRevalidatePath is the path-based invalidation webhook. The payload
// is authenticated by an HMAC-SHA256 signature over the raw body; an invalid
// signature leaves the path cached.
func (s *Server) handleRevalidatePath(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if !verifySignature(body, r.Header.Get(SignatureHeader), s.config.Secrets.Revalidate) {
		s.logger.Warn(r.Context(), nil, "path webhook signature mismatch",
			"remote", r.RemoteAddr)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var payload pathPayload
	if err := json.Unmarshal(body, &payload); err != nil || payload.Path == "" {
		http.Error(w, "missing path", http.StatusBadRequest)
		return
	}

	path, err := s.dispatcher.DispatchPath(r.Context(), payload.Path)
	if err != nil {
		s.logger.Error(r.Context(), err, "path invalidation failed", "path", payload.Path)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.hub.NotifyInvalidated(nil)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"revalidated": true,
		"path":        path,
	})
}

// Sign computes the hex HMAC-SHA256 signature of body under secret. Shared
// with tests and the dev-mode notifier.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func verifySignature(body []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	expected, err := hex.DecodeString(Sign(body, secret))
	if err != nil {
		return false
	}
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, got)
}

// secretsEqual compares shared secrets in constant time. An unconfigured
// secret never matches.
func secretsEqual(got, want string) bool {
	if want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
