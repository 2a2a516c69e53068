package analytics

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskorch/dashboard/pkg/apperror"
)

// Handler handles HTTP requests for analytics
type Handler struct {
	svc *Service
}

// NewHandler creates a new analytics handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Stats returns global dashboard statistics
// GET /api/stats
func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}

// Overview returns analytics, optionally scoped to one project
// GET /api/analytics/overview?project_id=
func (h *Handler) Overview(c echo.Context) error {
	overview, err := h.svc.Overview(c.Request().Context(), c.QueryParam("project_id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, overview)
}

// Search runs the global search
// GET /api/search?q=&entity_type=
func (h *Handler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return apperror.ErrValidation.WithMessage("Query parameter 'q' is required")
	}

	results, err := h.svc.Search(c.Request().Context(), query, c.QueryParam("entity_type"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, results)
}

// RecentActivity returns the merged activity feed
// GET /api/recent-activity?project_id=&limit=
func (h *Handler) RecentActivity(c echo.Context) error {
	limit := 20
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	feed, err := h.svc.RecentActivity(c.Request().Context(), c.QueryParam("project_id"), limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, feed)
}
