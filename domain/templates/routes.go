package templates

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers template routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/api/templates", h.List)
}
