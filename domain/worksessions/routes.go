package worksessions

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers work session routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/api/work-sessions", h.ListSessions)
	e.GET("/api/task-locks", h.ListLocks)
}
