package projects

import (
	"context"
	"log/slog"
	"math"

	"github.com/taskorch/dashboard/domain/features"
	"github.com/taskorch/dashboard/domain/tasks"
	"github.com/taskorch/dashboard/pkg/apperror"
	"github.com/taskorch/dashboard/pkg/logger"
)

// Service handles business logic for projects
type Service struct {
	repo       *Repository
	featureSvc *features.Service
	log        *slog.Logger
}

// NewService creates a new project service
func NewService(repo *Repository, featureSvc *features.Service, log *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		featureSvc: featureSvc,
		log:        log.With(logger.Scope("projects.svc")),
	}
}

// percent is the completion percentage rule used everywhere: rounded to
// the nearest integer, 0 whenever the denominator is 0.
func percent(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(float64(num) / float64(den) * 100))
}

// List returns all projects with their features and tasks nested.
func (s *Service) List(ctx context.Context) ([]ProjectDTO, error) {
	projectRows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ProjectDTO, 0, len(projectRows))
	for i := range projectRows {
		featureList, err := s.featureSvc.List(ctx, projectRows[i].ID.String())
		if err != nil {
			return nil, err
		}
		result = append(result, projectRows[i].ToDTO(featureList))
	}
	return result, nil
}

// GetByID returns a single project with its features and tasks nested.
func (s *Service) GetByID(ctx context.Context, id string) (*ProjectDTO, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.ErrProjectNotFound
	}

	featureList, err := s.featureSvc.List(ctx, project.ID.String())
	if err != nil {
		return nil, err
	}

	dto := project.ToDTO(featureList)
	return &dto, nil
}

// Summary returns the lightweight project list for the selector modal.
func (s *Service) Summary(ctx context.Context) (*SummaryResponse, error) {
	rows, err := s.repo.Summaries(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ProjectSummary, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		name := ""
		if row.Name != nil {
			name = *row.Name
		}
		modifiedAt := row.ModifiedAt
		if modifiedAt == nil {
			modifiedAt = row.CreatedAt
		}

		summaries = append(summaries, ProjectSummary{
			ID:                             row.ID.String(),
			Name:                           name,
			Status:                         row.Status,
			FeatureCount:                   row.FeatureCount,
			TaskCount:                      row.TaskCount,
			CompletedTaskCount:             row.CompletedTaskCount,
			CompletedFeatureCount:          row.CompletedFeatureCount,
			TaskCompletionPercentage:       percent(row.CompletedTaskCount, row.TaskCount),
			ComplexityCompletionPercentage: percent(row.CompletedComplexity, row.TotalComplexity),
			FeatureCompletionPercentage:    percent(row.CompletedFeatureCount, row.FeatureCount),
			TotalComplexity:                row.TotalComplexity,
			CompletedComplexity:            row.CompletedComplexity,
			ModifiedAt:                     modifiedAt,
			CreatedAt:                      row.CreatedAt,
		})
	}

	return &SummaryResponse{Projects: summaries, Count: len(summaries)}, nil
}

// MostRecent returns the most recently modified project for dashboard
// auto-loading.
func (s *Service) MostRecent(ctx context.Context) (*MostRecentResponse, error) {
	project, err := s.repo.MostRecent(ctx)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.ErrNotFound.WithMessage("No projects found")
	}

	name := ""
	if project.Name != nil {
		name = *project.Name
	}

	return &MostRecentResponse{
		ID:         project.ID.String(),
		Name:       name,
		Status:     project.Status,
		ModifiedAt: project.ModifiedAt,
		CreatedAt:  project.CreatedAt,
	}, nil
}

// Overview returns the detailed single-project view: the project, its
// features with counts, a recency-filtered task list, and stats that
// combine the filtered display counts with the unfiltered totals.
func (s *Service) Overview(ctx context.Context, id string, days *int) (*OverviewResponse, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.ErrProjectNotFound
	}

	canonical := project.ID.String()

	featureRows, err := s.repo.OverviewFeatures(ctx, canonical)
	if err != nil {
		return nil, err
	}
	featureList := make([]OverviewFeature, 0, len(featureRows))
	for i := range featureRows {
		row := &featureRows[i]
		name := ""
		if row.Name != nil {
			name = *row.Name
		}
		featureList = append(featureList, OverviewFeature{
			ID:              row.ID.String(),
			Name:            name,
			Status:          row.Status,
			TaskCount:       row.TaskCount,
			CompletedCount:  row.CompletedCount,
			InProgressCount: row.InProgressCount,
		})
	}

	taskRows, err := s.repo.OverviewTasks(ctx, canonical, days)
	if err != nil {
		return nil, err
	}
	taskList := make([]OverviewTask, 0, len(taskRows))
	completedInList := 0
	for i := range taskRows {
		row := &taskRows[i]

		title := ""
		if row.Title != nil && *row.Title != "" {
			title = *row.Title
		} else if row.Name != nil {
			title = *row.Name
		}

		status := ""
		if row.Status != nil {
			status = tasks.NormalizeStatus(*row.Status)
		}
		if status == "completed" {
			completedInList++
		}

		modifiedAt := row.ModifiedAt
		if modifiedAt == nil {
			modifiedAt = row.UpdatedAt
		}

		taskList = append(taskList, OverviewTask{
			ID:          row.ID.String(),
			Title:       title,
			Status:      status,
			Priority:    row.Priority,
			Complexity:  row.Complexity,
			FeatureName: row.FeatureName,
			ModifiedAt:  modifiedAt,
		})
	}

	depCount, err := s.repo.DependencyCountFor(ctx, canonical)
	if err != nil {
		return nil, err
	}
	sectionCount, err := s.repo.SectionCountFor(ctx, canonical)
	if err != nil {
		return nil, err
	}
	taskStats, err := s.repo.TaskStatsFor(ctx, canonical)
	if err != nil {
		return nil, err
	}
	featureStats, err := s.repo.FeatureStatsFor(ctx, canonical)
	if err != nil {
		return nil, err
	}

	name := ""
	if project.Name != nil {
		name = *project.Name
	}

	return &OverviewResponse{
		Project: OverviewProject{
			ID:         project.ID.String(),
			Name:       name,
			Summary:    project.Summary,
			Status:     project.Status,
			CreatedAt:  project.CreatedAt,
			ModifiedAt: project.ModifiedAt,
		},
		Features: featureList,
		Tasks:    taskList,
		Stats: OverviewStats{
			FeatureCount:                   len(featureList),
			TaskCount:                      len(taskList),
			CompletedCount:                 completedInList,
			DependencyCount:                depCount,
			SectionCount:                   sectionCount,
			TotalTaskCount:                 taskStats.Total,
			TotalCompletedCount:            taskStats.Completed,
			TaskCompletionPercentage:       percent(taskStats.Completed, taskStats.Total),
			ComplexityCompletionPercentage: percent(taskStats.CompletedComplexity, taskStats.TotalComplexity),
			FeatureCompletionPercentage:    percent(featureStats.Completed, featureStats.Total),
		},
	}, nil
}
