package events

import (
	"github.com/labstack/echo/v4"

	"github.com/taskorch/dashboard/internal/config"
)

// RegisterRoutes registers the push channel endpoint. The route is not
// mounted when the channel is disabled.
func RegisterRoutes(e *echo.Echo, h *Handler, cfg *config.Config) {
	if !cfg.WebSocket.Enabled {
		return
	}
	e.GET("/ws", h.Connect)
}
