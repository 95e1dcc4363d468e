package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/driftwood-studio/marquee/internal/logging"
	"github.com/driftwood-studio/marquee/internal/revalidate"
)

// Hub tracks websocket clients for draft preview. When an invalidation
// lands, every connected client gets a reload notification so the preview
// follows the content store without polling.
type Hub struct {
	mutex   sync.Mutex
	clients map[*websocket.Conn]struct{}
	logger  logging.Logger
}

// NewHub creates an empty hub.
func NewHub(logger logging.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		logger:  logger.WithComponent("ws"),
	}
}

// invalidationMessage is the reload notification pushed to clients.
type invalidationMessage struct {
	Type string                `json:"type"`
	Tags []revalidate.CacheTag `json:"tags,omitempty"`
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.logger.Warn(r.Context(), err, "websocket accept failed")
		return
	}

	h.mutex.Lock()
	h.clients[conn] = struct{}{}
	h.mutex.Unlock()

	// Hold the connection open; clients only listen. Read until the peer
	// closes so we notice disconnects.
	ctx := r.Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			break
		}
	}

	h.mutex.Lock()
	delete(h.clients, conn)
	h.mutex.Unlock()
	conn.CloseNow()
}

// NotifyInvalidated broadcasts an invalidation to every connected client.
// Slow or dead clients are dropped rather than blocking the webhook path.
func (h *Hub) NotifyInvalidated(tags []revalidate.CacheTag) {
	payload, err := json.Marshal(invalidationMessage{Type: "invalidated", Tags: tags})
	if err != nil {
		return
	}

	h.mutex.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mutex.Unlock()

	for _, conn := range conns {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := conn.Write(ctx, websocket.MessageText, payload); err != nil {
			h.mutex.Lock()
			delete(h.clients, conn)
			h.mutex.Unlock()
			conn.CloseNow()
		}
		cancel()
	}
}

// ClientCount returns the number of connected preview clients.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}
