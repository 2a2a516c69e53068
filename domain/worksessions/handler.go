package worksessions

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for work sessions. The domain is
// read-only pass-through, so the handler talks to the repository
// directly.
type Handler struct {
	repo *Repository
}

// NewHandler creates a new work session handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ListSessions returns all work sessions
// GET /api/work-sessions
func (h *Handler) ListSessions(c echo.Context) error {
	sessions, err := h.repo.ListSessions(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessions)
}

// ListLocks returns unexpired task locks
// GET /api/task-locks
func (h *Handler) ListLocks(c echo.Context) error {
	locks, err := h.repo.ListActiveLocks(c.Request().Context())
	if err != nil {
		return err
	}

	result := make([]TaskLockDTO, len(locks))
	for i := range locks {
		result[i] = locks[i].ToDTO()
	}

	return c.JSON(http.StatusOK, result)
}
