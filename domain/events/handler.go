package events

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/taskorch/dashboard/pkg/logger"
)

// Handler upgrades /ws requests and runs the per-connection read loop.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewHandler creates a new events handler
func NewHandler(hub *Hub, log *slog.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The dashboard UI may be served from anywhere
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log.With(logger.Scope("events.handler")),
	}
}

// Connect handles GET /ws
func (h *Handler) Connect(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response
		return nil
	}

	conn := h.hub.register(ws)
	defer h.hub.unregister(conn)

	greeting := Envelope{
		Type:      TypeConnectionEstablished,
		Timestamp: Timestamp(),
		Message:   "Connected to Task Orchestrator Dashboard",
	}
	if payload, err := json.Marshal(greeting); err == nil {
		if err := h.hub.send(conn, payload); err != nil {
			return nil
		}
	}

	for {
		msgType, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("websocket read error", logger.Error(err))
			}
			return nil
		}

		// Clients send a literal "ping" as a keepalive probe
		if msgType == websocket.TextMessage && string(data) == "ping" {
			pong := Envelope{Type: TypePong, Timestamp: Timestamp()}
			if payload, err := json.Marshal(pong); err == nil {
				if err := h.hub.send(conn, payload); err != nil {
					return nil
				}
			}
		}
	}
}
