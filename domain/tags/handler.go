package tags

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for tags. The domain is read-only
// pass-through, so the handler talks to the repository directly.
type Handler struct {
	repo *Repository
}

// NewHandler creates a new tag handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List returns all tags with usage counts
// GET /api/tags
func (h *Handler) List(c echo.Context) error {
	tagList, err := h.repo.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tagList)
}
