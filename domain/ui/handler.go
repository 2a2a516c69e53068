// Package ui serves the dashboard HTML page and its static assets.
package ui

import (
	_ "embed"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/taskorch/dashboard/internal/config"
	"github.com/taskorch/dashboard/pkg/apperror"
)

// A transparent 1x1 PNG, served so browsers stop asking.
//
//go:embed favicon.png
var faviconPNG []byte

// Handler serves the dashboard page and favicon
type Handler struct {
	cfg *config.UIConfig
}

// NewHandler creates a new UI handler
func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: &cfg.UI}
}

// Dashboard serves the dashboard HTML file.
// GET / and GET /dashboard.html
func (h *Handler) Dashboard(c echo.Context) error {
	if _, err := os.Stat(h.cfg.DashboardFile); err != nil {
		return apperror.ErrNotFound.WithMessage("Dashboard not found")
	}
	return c.File(h.cfg.DashboardFile)
}

// Favicon serves the embedded placeholder icon.
// GET /favicon.ico
func (h *Handler) Favicon(c echo.Context) error {
	return c.Blob(http.StatusOK, "image/png", faviconPNG)
}
