package sections

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for sections
type Handler struct {
	svc *Service
}

// NewHandler creates a new section handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List returns sections, optionally filtered to one entity
// GET /api/sections?entity_type=&entity_id=
func (h *Handler) List(c echo.Context) error {
	sections, err := h.svc.List(c.Request().Context(), c.QueryParam("entity_type"), c.QueryParam("entity_id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sections)
}
