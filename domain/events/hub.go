// Package events pushes change notifications to dashboard clients over
// WebSocket: task mutations made through the API and external writes to
// the database file.
package events

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/taskorch/dashboard/internal/config"
	"github.com/taskorch/dashboard/pkg/logger"
)

// Hub tracks active WebSocket connections and fans messages out to them.
// All methods are safe for concurrent use; per-connection writes are
// serialized through a connection-level mutex because gorilla/websocket
// allows only one concurrent writer.
type Hub struct {
	mu      sync.RWMutex
	conns   map[*connection]struct{}
	enabled bool

	writeTimeout time.Duration
	log          *slog.Logger
}

type connection struct {
	ws *websocket.Conn
	mu sync.Mutex
}

// NewHub creates the connection hub. When the push channel is disabled
// by configuration every broadcast is a no-op.
func NewHub(cfg *config.Config, log *slog.Logger) *Hub {
	return &Hub{
		conns:        make(map[*connection]struct{}),
		enabled:      cfg.WebSocket.Enabled,
		writeTimeout: cfg.WebSocket.WriteTimeout,
		log:          log.With(logger.Scope("events.hub")),
	}
}

// Enabled reports whether the push channel is active.
func (h *Hub) Enabled() bool {
	return h.enabled
}

// ConnectionCount returns the number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) register(ws *websocket.Conn) *connection {
	c := &connection{ws: ws}
	h.mu.Lock()
	h.conns[c] = struct{}{}
	total := len(h.conns)
	h.mu.Unlock()
	h.log.Info("websocket connected", slog.Int("total_connections", total))
	return c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	if _, ok := h.conns[c]; ok {
		delete(h.conns, c)
	}
	total := len(h.conns)
	h.mu.Unlock()
	c.ws.Close()
	h.log.Info("websocket disconnected", slog.Int("total_connections", total))
}

// send writes one message to one connection.
func (h *Hub) send(c *connection, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(h.writeTimeout))
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

// Broadcast sends a message to every connected client. Clients that fail
// the write are dropped. No-op when the channel is disabled.
func (h *Hub) Broadcast(msg Envelope) {
	if !h.enabled {
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("broadcast marshal failed", logger.Error(err))
		return
	}

	h.mu.RLock()
	conns := make([]*connection, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	var failed []*connection
	for _, c := range conns {
		if err := h.send(c, payload); err != nil {
			h.log.Warn("broadcast write failed", logger.Error(err))
			failed = append(failed, c)
		}
	}

	for _, c := range failed {
		h.unregister(c)
	}
}

// Timestamp renders the shared event timestamp format.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
