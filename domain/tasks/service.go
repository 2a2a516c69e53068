package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taskorch/dashboard/domain/events"
	"github.com/taskorch/dashboard/internal/database"
	"github.com/taskorch/dashboard/pkg/apperror"
	"github.com/taskorch/dashboard/pkg/logger"
	"github.com/taskorch/dashboard/pkg/uuidcodec"
)

// DefaultLimit is the default number of tasks returned by List.
const DefaultLimit = 1000

// Service handles business logic for tasks
type Service struct {
	repo  *Repository
	store *database.Store
	hub   *events.Hub
	log   *slog.Logger
}

// NewService creates a new task service
func NewService(repo *Repository, store *database.Store, hub *events.Hub, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		store: store,
		hub:   hub,
		log:   log.With(logger.Scope("tasks.svc")),
	}
}

func nowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05")
}

// guardWritable rejects mutations on a read-only database before any
// row is touched.
func (s *Service) guardWritable() error {
	if s.store.ReadOnly() {
		return apperror.ErrReadOnly
	}
	return nil
}

// List returns tasks with optional feature/status/priority filters.
func (s *Service) List(ctx context.Context, params ListParams) ([]TaskDTO, error) {
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}

	tasks, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	result := make([]TaskDTO, len(tasks))
	for i := range tasks {
		result[i] = tasks[i].ToDTO()
	}
	return result, nil
}

// GetByID returns a single task under any identifier encoding.
func (s *Service) GetByID(ctx context.Context, id string) (*TaskDTO, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperror.ErrTaskNotFound
	}
	dto := task.ToDTO()
	return &dto, nil
}

// UpdateStatus validates and applies a status change, then broadcasts it.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*MutationResponse, error) {
	stored, ok := StorageStatus(status)
	if !ok {
		return nil, apperror.NewBadRequest(
			fmt.Sprintf("Invalid status. Must be one of: %s", strings.Join(ValidStatuses, ", ")),
		)
	}

	if err := s.guardWritable(); err != nil {
		return nil, err
	}

	now := nowISO()
	updated, err := s.mutate(ctx, id, func() error {
		return s.repo.UpdateStatus(ctx, id, stored, now)
	})
	if err != nil {
		return nil, err
	}

	uiStatus := NormalizeUIStatus(status)
	s.hub.Broadcast(events.Envelope{
		Type:      events.TypeTaskUpdated,
		TaskID:    id,
		Status:    uiStatus,
		Timestamp: events.Timestamp(),
	})

	return &MutationResponse{
		Success: true,
		Task:    *updated,
		Message: fmt.Sprintf("Task status updated to %s", uiStatus),
	}, nil
}

// UpdatePriority validates and applies a priority change.
func (s *Service) UpdatePriority(ctx context.Context, id, priority string) (*MutationResponse, error) {
	stored, ok := StoragePriority(priority)
	if !ok {
		return nil, apperror.NewBadRequest(
			fmt.Sprintf("Invalid priority. Must be one of: %s", strings.Join(ValidPriorities, ", ")),
		)
	}

	if err := s.guardWritable(); err != nil {
		return nil, err
	}

	now := nowISO()
	updated, err := s.mutate(ctx, id, func() error {
		return s.repo.UpdatePriority(ctx, id, stored, now)
	})
	if err != nil {
		return nil, err
	}

	uiPriority := strings.ToLower(priority)
	s.hub.Broadcast(events.Envelope{
		Type:      events.TypeTaskUpdated,
		TaskID:    id,
		Priority:  uiPriority,
		Timestamp: events.Timestamp(),
	})

	return &MutationResponse{
		Success: true,
		Task:    *updated,
		Message: fmt.Sprintf("Task priority updated to %s", uiPriority),
	}, nil
}

// UpdateComplexity validates and applies a complexity change.
func (s *Service) UpdateComplexity(ctx context.Context, id string, complexity int) (*MutationResponse, error) {
	if complexity < 1 || complexity > 10 {
		return nil, apperror.NewBadRequest("Invalid complexity. Must be between 1 and 10")
	}

	if err := s.guardWritable(); err != nil {
		return nil, err
	}

	now := nowISO()
	updated, err := s.mutate(ctx, id, func() error {
		return s.repo.UpdateComplexity(ctx, id, complexity, now)
	})
	if err != nil {
		return nil, err
	}

	s.hub.Broadcast(events.Envelope{
		Type:       events.TypeTaskUpdated,
		TaskID:     id,
		Complexity: &complexity,
		Timestamp:  events.Timestamp(),
	})

	return &MutationResponse{
		Success: true,
		Task:    *updated,
		Message: fmt.Sprintf("Task complexity updated to %d", complexity),
	}, nil
}

// PatchTask validates and applies a partial update.
func (s *Service) PatchTask(ctx context.Context, id string, req PatchTaskRequest) (*MutationResponse, error) {
	params := PatchParams{
		Title:      req.Title,
		Summary:    req.Summary,
		Complexity: req.Complexity,
	}

	if req.Status != nil {
		stored, ok := StorageStatus(*req.Status)
		if !ok {
			return nil, apperror.NewBadRequest("Invalid status")
		}
		params.Status = &stored
	}

	if req.Priority != nil {
		stored, ok := StoragePriority(*req.Priority)
		if !ok {
			return nil, apperror.NewBadRequest("Invalid priority")
		}
		params.Priority = &stored
	}

	if req.Complexity != nil && (*req.Complexity < 1 || *req.Complexity > 10) {
		return nil, apperror.NewBadRequest("Complexity must be between 1 and 10")
	}

	if req.FeatureID != nil {
		if *req.FeatureID == "" {
			params.ClearFeature = true
		} else {
			fid, err := uuidcodec.ParseID(*req.FeatureID)
			if err != nil {
				return nil, apperror.NewBadRequest("Invalid feature_id format")
			}
			params.FeatureID = fid
		}
	}

	if req.ProjectID != nil {
		if *req.ProjectID == "" {
			params.ClearProject = true
		} else {
			pid, err := uuidcodec.ParseID(*req.ProjectID)
			if err != nil {
				return nil, apperror.NewBadRequest("Invalid project_id format")
			}
			params.ProjectID = pid
		}
	}

	if params.Empty() {
		return nil, apperror.NewBadRequest("No fields to update")
	}

	if err := s.guardWritable(); err != nil {
		return nil, err
	}

	now := nowISO()
	updated, err := s.mutate(ctx, id, func() error {
		return s.repo.Patch(ctx, id, params, now)
	})
	if err != nil {
		return nil, err
	}

	s.hub.Broadcast(events.Envelope{
		Type:      events.TypeTaskUpdated,
		TaskID:    id,
		Timestamp: events.Timestamp(),
	})

	return &MutationResponse{
		Success: true,
		Task:    *updated,
		Message: "Task updated successfully",
	}, nil
}

// Create validates and inserts a new task, then broadcasts its creation.
func (s *Service) Create(ctx context.Context, req CreateTaskRequest) (*MutationResponse, error) {
	if req.Status == "" {
		req.Status = "pending"
	}
	if req.Priority == "" {
		req.Priority = "medium"
	}
	if req.Complexity == 0 {
		req.Complexity = 5
	}

	storedStatus, ok := StorageStatus(req.Status)
	if !ok {
		return nil, apperror.NewBadRequest("Invalid status")
	}
	storedPriority, ok := StoragePriority(req.Priority)
	if !ok {
		return nil, apperror.NewBadRequest("Invalid priority")
	}
	if req.Complexity < 1 || req.Complexity > 10 {
		return nil, apperror.NewBadRequest("Complexity must be between 1 and 10")
	}

	task := Task{
		ID:         uuidcodec.New(),
		Title:      &req.Title,
		Summary:    req.Summary,
		Status:     &storedStatus,
		Priority:   &storedPriority,
		Complexity: &req.Complexity,
	}

	if req.FeatureID != nil && *req.FeatureID != "" {
		fid, err := uuidcodec.ParseID(*req.FeatureID)
		if err != nil {
			return nil, apperror.NewBadRequest("Invalid feature_id format")
		}
		task.FeatureID = fid
	}
	if req.ProjectID != nil && *req.ProjectID != "" {
		pid, err := uuidcodec.ParseID(*req.ProjectID)
		if err != nil {
			return nil, apperror.NewBadRequest("Invalid project_id format")
		}
		task.ProjectID = pid
	}

	if err := s.guardWritable(); err != nil {
		return nil, err
	}

	now := nowISO()
	task.CreatedAt = &now
	task.ModifiedAt = &now

	if err := s.repo.Create(ctx, &task); err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, task.ID.String())
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, apperror.NewInternal("Failed to retrieve created task", nil)
	}

	s.log.Info("created task",
		slog.String("id", task.ID.String()),
		slog.String("title", req.Title),
	)

	s.hub.Broadcast(events.Envelope{
		Type:      events.TypeTaskCreated,
		TaskID:    task.ID.String(),
		Timestamp: events.Timestamp(),
	})

	return &MutationResponse{
		Success: true,
		Task:    created.ToDTO(),
		Message: "Task created successfully",
	}, nil
}

// mutate runs the existence check, the update, and the re-read that
// every task mutation shares. Broadcasting stays with the caller so it
// happens only after a successful commit.
func (s *Service) mutate(ctx context.Context, id string, apply func() error) (*TaskDTO, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.ErrTaskNotFound
	}

	if err := apply(); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NewInternal("Failed to retrieve updated task", nil)
	}

	dto := updated.ToDTO()
	return &dto, nil
}
