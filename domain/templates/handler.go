package templates

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for templates. The domain is read-only
// pass-through, so the handler talks to the repository directly.
type Handler struct {
	repo *Repository
}

// NewHandler creates a new template handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List returns enabled templates
// GET /api/templates
func (h *Handler) List(c echo.Context) error {
	rows, err := h.repo.ListEnabled(c.Request().Context())
	if err != nil {
		return err
	}

	result := make([]TemplateDTO, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDTO()
	}

	return c.JSON(http.StatusOK, result)
}
