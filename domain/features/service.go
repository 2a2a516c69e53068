package features

import (
	"context"
	"log/slog"

	"github.com/taskorch/dashboard/domain/tasks"
	"github.com/taskorch/dashboard/pkg/apperror"
	"github.com/taskorch/dashboard/pkg/logger"
)

// Service handles business logic for features
type Service struct {
	repo     *Repository
	taskRepo *tasks.Repository
	log      *slog.Logger
}

// NewService creates a new feature service
func NewService(repo *Repository, taskRepo *tasks.Repository, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		taskRepo: taskRepo,
		log:      log.With(logger.Scope("features.svc")),
	}
}

// List returns features with their tasks nested, optionally scoped to a
// project.
func (s *Service) List(ctx context.Context, projectID string) ([]FeatureDTO, error) {
	featureRows, err := s.repo.List(ctx, projectID)
	if err != nil {
		return nil, err
	}

	result := make([]FeatureDTO, 0, len(featureRows))
	for i := range featureRows {
		taskList, err := s.tasksFor(ctx, featureRows[i].ID.String())
		if err != nil {
			return nil, err
		}
		result = append(result, featureRows[i].ToDTO(taskList))
	}
	return result, nil
}

// GetByID returns a single feature with its tasks nested.
func (s *Service) GetByID(ctx context.Context, id string) (*FeatureDTO, error) {
	feature, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if feature == nil {
		return nil, apperror.ErrFeatureNotFound
	}

	taskList, err := s.tasksFor(ctx, feature.ID.String())
	if err != nil {
		return nil, err
	}

	dto := feature.ToDTO(taskList)
	return &dto, nil
}

func (s *Service) tasksFor(ctx context.Context, featureID string) ([]tasks.TaskDTO, error) {
	rows, err := s.taskRepo.List(ctx, tasks.ListParams{FeatureID: featureID})
	if err != nil {
		return nil, err
	}
	result := make([]tasks.TaskDTO, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDTO()
	}
	return result, nil
}
