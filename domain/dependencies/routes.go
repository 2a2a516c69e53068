package dependencies

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers dependency routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/api/dependencies", h.List)
	// Param name matches the tasks routes; echo requires one name per
	// position.
	e.GET("/api/tasks/:id/dependencies", h.ListForTask)
	e.GET("/api/dependency-graph", h.Graph)
}
