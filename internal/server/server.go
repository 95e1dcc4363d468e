// Package server exposes the pipeline over HTTP: the page rendering route,
// both invalidation webhooks, the draft-mode toggles, and the websocket that
// tells draft-preview clients to reload after an invalidation.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/driftwood-studio/marquee/internal/cache"
	"github.com/driftwood-studio/marquee/internal/composer"
	"github.com/driftwood-studio/marquee/internal/config"
	"github.com/driftwood-studio/marquee/internal/logging"
	"github.com/driftwood-studio/marquee/internal/revalidate"
)

// Server wires the composer, dispatcher and render cache behind HTTP
// endpoints. Each request is handled statelessly; the render cache is the
// only shared resource and is only reached through its own surface.
type Server struct {
	config     *config.Config
	logger     logging.Logger
	composer   *composer.Composer
	dispatcher *revalidate.Dispatcher
	cache      *cache.RenderCache
	hub        *Hub

	httpServer *http.Server
}

// New creates a server over the given collaborators.
func New(cfg *config.Config, comp *composer.Composer, dispatcher *revalidate.Dispatcher, renderCache *cache.RenderCache, logger logging.Logger) *Server {
	return &Server{
		config:     cfg,
		logger:     logger.WithComponent("server"),
		composer:   comp,
		dispatcher: dispatcher,
		cache:      renderCache,
		hub:        NewHub(logger),
	}
}

// Routes builds the handler mux. Exposed separately so tests can drive the
// handlers through httptest without binding a port.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /pages/{slug}", s.handlePage)
	mux.HandleFunc("POST /api/revalidate", s.handleRevalidateTags)
	mux.HandleFunc("POST /api/revalidate-path", s.handleRevalidatePath)
	mux.HandleFunc("GET /api/draft/enable", s.handleDraftEnable)
	mux.HandleFunc("GET /api/draft/disable", s.handleDraftDisable)
	mux.HandleFunc("GET /ws", s.hub.handleWebSocket)
	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "listening", "addr", addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// InvalidateDocumentType runs the tag dispatch for a locally observed
// content change, the same path the production webhook takes after
// authentication.
func (s *Server) InvalidateDocumentType(ctx context.Context, documentType string) {
	tags, err := s.dispatcher.Dispatch(ctx, documentType)
	if err != nil {
		s.logger.Error(ctx, err, "local invalidation failed", "document_type", documentType)
		return
	}
	s.hub.NotifyInvalidated(tags)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","cached_pages":%d}`, s.cache.Len())
}
