// Package health exposes the service health check and the database
// refresh endpoint.
package health

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskorch/dashboard/domain/events"
	"github.com/taskorch/dashboard/internal/database"
	"github.com/taskorch/dashboard/internal/version"
	"github.com/taskorch/dashboard/pkg/logger"
)

// Handler handles health check and refresh requests
type Handler struct {
	store *database.Store
	hub   *events.Hub
	log   *slog.Logger
}

// NewHandler creates a new health handler
func NewHandler(store *database.Store, hub *events.Hub, log *slog.Logger) *Handler {
	return &Handler{
		store: store,
		hub:   hub,
		log:   log.With(logger.Scope("health")),
	}
}

// HealthResponse is the healthy health-check payload.
type HealthResponse struct {
	Status               string `json:"status"`
	Database             string `json:"database"`
	WebSocketConnections int    `json:"websocket_connections"`
	Version              string `json:"version"`
}

// UnhealthyResponse is returned when the database check fails.
type UnhealthyResponse struct {
	Status               string `json:"status"`
	Error                string `json:"error"`
	WebSocketConnections int    `json:"websocket_connections"`
}

// RefreshResponse is the payload of POST /api/refresh.
type RefreshResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ProjectsCount int    `json:"projects_count,omitempty"`
	Timestamp     string `json:"timestamp,omitempty"`
}

// Health reports whether the database is reachable.
// GET /api/health
func (h *Handler) Health(c echo.Context) error {
	if err := h.check(c); err != nil {
		return c.JSON(http.StatusOK, UnhealthyResponse{
			Status:               "unhealthy",
			Error:                err.Error(),
			WebSocketConnections: h.hub.ConnectionCount(),
		})
	}

	return c.JSON(http.StatusOK, HealthResponse{
		Status:               "healthy",
		Database:             "connected",
		WebSocketConnections: h.hub.ConnectionCount(),
		Version:              version.Version,
	})
}

func (h *Handler) check(c echo.Context) error {
	db, err := h.store.DB()
	if err != nil {
		return err
	}

	var one int
	return db.NewRaw("SELECT 1").Scan(c.Request().Context(), &one)
}

// Refresh drops the pooled connections and re-opens the database file,
// picking up changes written by the orchestrator. The immutable
// read-only mode never sees external writes without this.
// POST /api/refresh
func (h *Handler) Refresh(c echo.Context) error {
	if err := h.store.Refresh(); err != nil {
		h.log.Error("database refresh failed", logger.Error(err))
		return c.JSON(http.StatusOK, RefreshResponse{
			Success: false,
			Message: "Failed to refresh database: " + err.Error(),
		})
	}

	// Verify the fresh handle actually works.
	db, err := h.store.DB()
	if err != nil {
		return c.JSON(http.StatusOK, RefreshResponse{
			Success: false,
			Message: "Failed to refresh database: " + err.Error(),
		})
	}

	var projectsCount int
	if err := db.NewRaw("SELECT COUNT(*) FROM projects").Scan(c.Request().Context(), &projectsCount); err != nil {
		h.log.Error("refresh verification failed", logger.Error(err))
		return c.JSON(http.StatusOK, RefreshResponse{
			Success: false,
			Message: "Failed to refresh database: " + err.Error(),
		})
	}

	h.log.Info("database refreshed", slog.Int("projects_count", projectsCount))

	return c.JSON(http.StatusOK, RefreshResponse{
		Success:       true,
		Message:       "Database connections refreshed successfully",
		ProjectsCount: projectsCount,
		Timestamp:     time.Now().Format(time.RFC3339),
	})
}
