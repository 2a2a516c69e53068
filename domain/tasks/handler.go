package tasks

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskorch/dashboard/pkg/apperror"
)

// Handler handles HTTP requests for tasks
type Handler struct {
	svc *Service
}

// NewHandler creates a new task handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List returns tasks with optional filters
// GET /api/tasks?feature_id=&status=&priority=&limit=
func (h *Handler) List(c echo.Context) error {
	params := ListParams{
		FeatureID: c.QueryParam("feature_id"),
		Status:    c.QueryParam("status"),
		Priority:  c.QueryParam("priority"),
	}
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			params.Limit = parsed
		}
	}

	tasks, err := h.svc.List(c.Request().Context(), params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tasks)
}

// Get returns a single task by ID
// GET /api/tasks/:id
func (h *Handler) Get(c echo.Context) error {
	task, err := h.svc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateStatus updates a task's status
// PUT /api/tasks/:id/status
func (h *Handler) UpdateStatus(c echo.Context) error {
	var req StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}

	resp, err := h.svc.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

// UpdatePriority updates a task's priority
// PUT /api/tasks/:id/priority
func (h *Handler) UpdatePriority(c echo.Context) error {
	var req PriorityUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}

	resp, err := h.svc.UpdatePriority(c.Request().Context(), c.Param("id"), req.Priority)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

// UpdateComplexity updates a task's complexity
// PUT /api/tasks/:id/complexity
func (h *Handler) UpdateComplexity(c echo.Context) error {
	var req ComplexityUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}

	resp, err := h.svc.UpdateComplexity(c.Request().Context(), c.Param("id"), req.Complexity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

// Patch partially updates a task
// PATCH /api/tasks/:id
func (h *Handler) Patch(c echo.Context) error {
	var req PatchTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}

	resp, err := h.svc.PatchTask(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

// Create creates a new task
// POST /api/tasks
func (h *Handler) Create(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}
	if req.Title == "" {
		return apperror.NewBadRequest("Title is required")
	}

	resp, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}
