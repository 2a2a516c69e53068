package ui

import (
	"os"

	"github.com/labstack/echo/v4"

	"github.com/taskorch/dashboard/internal/config"
)

// RegisterRoutes registers the dashboard UI routes. The static mount is
// only added when the directory exists.
func RegisterRoutes(e *echo.Echo, h *Handler, cfg *config.Config) {
	e.GET("/", h.Dashboard)
	e.GET("/dashboard.html", h.Dashboard)
	e.GET("/favicon.ico", h.Favicon)

	if info, err := os.Stat(cfg.UI.StaticDir); err == nil && info.IsDir() {
		e.Static("/static", cfg.UI.StaticDir)
	}
}
