package tasks

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers task routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/tasks")

	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Patch)
	g.PUT("/:id/status", h.UpdateStatus)
	g.PUT("/:id/priority", h.UpdatePriority)
	g.PUT("/:id/complexity", h.UpdateComplexity)
}
