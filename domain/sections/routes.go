package sections

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers section routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/api/sections", h.List)
}
