package projects

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for projects
type Handler struct {
	svc *Service
}

// NewHandler creates a new project handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List returns all projects with nested features and tasks
// GET /api/projects
func (h *Handler) List(c echo.Context) error {
	projects, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, projects)
}

// Summary returns lightweight project rows for the selector modal
// GET /api/projects/summary
func (h *Handler) Summary(c echo.Context) error {
	summary, err := h.svc.Summary(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, summary)
}

// MostRecent returns the most recently modified project
// GET /api/projects/most-recent
func (h *Handler) MostRecent(c echo.Context) error {
	project, err := h.svc.MostRecent(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, project)
}

// Get returns a single project with nested features and tasks
// GET /api/projects/:id
func (h *Handler) Get(c echo.Context) error {
	project, err := h.svc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, project)
}

// Overview returns the detailed single-project view
// GET /api/projects/:id/overview?days=N
func (h *Handler) Overview(c echo.Context) error {
	var days *int
	if daysStr := c.QueryParam("days"); daysStr != "" {
		if parsed, err := strconv.Atoi(daysStr); err == nil {
			days = &parsed
		}
	}

	overview, err := h.svc.Overview(c.Request().Context(), c.Param("id"), days)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, overview)
}
