package features

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for features
type Handler struct {
	svc *Service
}

// NewHandler creates a new feature handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List returns features, optionally filtered by project
// GET /api/features?project_id=
func (h *Handler) List(c echo.Context) error {
	features, err := h.svc.List(c.Request().Context(), c.QueryParam("project_id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, features)
}

// Get returns a single feature with its tasks
// GET /api/features/:id
func (h *Handler) Get(c echo.Context) error {
	feature, err := h.svc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, feature)
}
