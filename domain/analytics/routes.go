package analytics

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers analytics routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/api/stats", h.Stats)
	e.GET("/api/analytics/overview", h.Overview)
	e.GET("/api/search", h.Search)
	e.GET("/api/recent-activity", h.RecentActivity)
}
