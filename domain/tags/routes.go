package tags

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers tag routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/api/tags", h.List)
}
