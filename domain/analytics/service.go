package analytics

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/taskorch/dashboard/pkg/logger"
)

// Service handles business logic for the analytics endpoints
type Service struct {
	repo *Repository
	log  *slog.Logger
}

// NewService creates a new analytics service
func NewService(repo *Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(logger.Scope("analytics.svc")),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Stats returns the global dashboard statistics.
func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	stats, err := s.repo.GlobalStats(ctx)
	if err != nil {
		return nil, err
	}

	if stats.Tasks.Total > 0 {
		stats.Tasks.CompletionRate = round1(float64(stats.Tasks.Completed) / float64(stats.Tasks.Total) * 100)
	}
	stats.LastUpdated = time.Now().Format(time.RFC3339)

	return stats, nil
}

// Overview returns status/priority distributions, average complexity
// and the blocked task count, optionally scoped to one project.
func (s *Service) Overview(ctx context.Context, projectID string) (*OverviewResponse, error) {
	statusDist, err := s.repo.Distribution(ctx, "status", projectID)
	if err != nil {
		return nil, err
	}
	priorityDist, err := s.repo.Distribution(ctx, "priority", projectID)
	if err != nil {
		return nil, err
	}
	avg, err := s.repo.AverageComplexity(ctx, projectID)
	if err != nil {
		return nil, err
	}
	blocked, err := s.repo.BlockedCount(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var pid *string
	if projectID != "" {
		pid = &projectID
	}

	return &OverviewResponse{
		TaskStatusDistribution:   statusDist,
		TaskPriorityDistribution: priorityDist,
		AverageComplexity:        round2(avg),
		BlockedTasks:             blocked,
		Timestamp:                time.Now().Format(time.RFC3339),
		ProjectID:                pid,
	}, nil
}

// Search runs the global LIKE search over projects, features and
// tasks, optionally restricted to one entity type.
func (s *Service) Search(ctx context.Context, query, entityType string) (*SearchResponse, error) {
	results := []SearchResult{}

	if entityType == "" || entityType == "projects" {
		hits, err := s.repo.SearchProjects(ctx, query)
		if err != nil {
			return nil, err
		}
		results = append(results, hits...)
	}
	if entityType == "" || entityType == "features" {
		hits, err := s.repo.SearchFeatures(ctx, query)
		if err != nil {
			return nil, err
		}
		results = append(results, hits...)
	}
	if entityType == "" || entityType == "tasks" {
		hits, err := s.repo.SearchTasks(ctx, query)
		if err != nil {
			return nil, err
		}
		results = append(results, hits...)
	}

	return &SearchResponse{
		Query:   query,
		Results: results,
		Count:   len(results),
	}, nil
}

// RecentActivity merges the most recently modified projects, features
// and tasks into one feed sorted by timestamp.
func (s *Service) RecentActivity(ctx context.Context, projectID string, limit int) (*ActivityResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	activities := []Activity{}
	add := func(entityType string, rows []activityRow) {
		for i := range rows {
			row := &rows[i]

			ts := row.ModifiedAt
			if ts == nil {
				ts = row.UpdatedAt
			}
			if ts == nil {
				ts = row.CreatedAt
			}

			project := "Unknown"
			if row.ProjectName != nil {
				project = *row.ProjectName
			}
			name := "Unnamed"
			if row.Name != nil && *row.Name != "" {
				name = *row.Name
			} else if row.Title != nil && *row.Title != "" {
				name = *row.Title
			}

			activities = append(activities, Activity{
				Datetime:   ts,
				Project:    project,
				EntityType: entityType,
				EntityName: name,
				EntityID:   row.ID.String(),
				Action:     "updated",
			})
		}
	}

	if projectID == "" {
		projects, err := s.repo.RecentProjects(ctx, limit)
		if err != nil {
			return nil, err
		}
		add("project", projects)
	}

	featureRows, err := s.repo.RecentFeatures(ctx, projectID, limit)
	if err != nil {
		return nil, err
	}
	add("feature", featureRows)

	taskRows, err := s.repo.RecentTasks(ctx, projectID, limit)
	if err != nil {
		return nil, err
	}
	add("task", taskRows)

	sort.SliceStable(activities, func(i, j int) bool {
		a, b := "", ""
		if activities[i].Datetime != nil {
			a = *activities[i].Datetime
		}
		if activities[j].Datetime != nil {
			b = *activities[j].Datetime
		}
		return a > b
	})

	if len(activities) > limit {
		activities = activities[:limit]
	}

	return &ActivityResponse{
		Activities: activities,
		Count:      len(activities),
	}, nil
}
