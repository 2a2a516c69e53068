package health

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers health check routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/api/health", h.Health)
	e.POST("/api/refresh", h.Refresh)
}
