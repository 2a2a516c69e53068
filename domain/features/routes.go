package features

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers feature routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/features")

	g.GET("", h.List)
	g.GET("/:id", h.Get)
}
