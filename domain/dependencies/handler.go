package dependencies

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for dependencies
type Handler struct {
	svc *Service
}

// NewHandler creates a new dependency handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List returns all dependencies with task titles
// GET /api/dependencies
func (h *Handler) List(c echo.Context) error {
	deps, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deps)
}

// ListForTask returns dependencies touching one task
// GET /api/tasks/:id/dependencies
func (h *Handler) ListForTask(c echo.Context) error {
	deps, err := h.svc.ListForTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deps)
}

// Graph returns the dependency graph visualization payload
// GET /api/dependency-graph?project_id=&feature_id=
func (h *Handler) Graph(c echo.Context) error {
	graph, err := h.svc.Graph(c.Request().Context(), c.QueryParam("project_id"), c.QueryParam("feature_id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, graph)
}
