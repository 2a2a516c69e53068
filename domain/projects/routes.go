package projects

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers project routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/projects")

	g.GET("", h.List)
	g.GET("/summary", h.Summary)
	g.GET("/most-recent", h.MostRecent)
	g.GET("/:id", h.Get)
	g.GET("/:id/overview", h.Overview)
}
