package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/taskorch/dashboard/internal/database"
	"github.com/taskorch/dashboard/pkg/apperror"
	"github.com/taskorch/dashboard/pkg/logger"
	"github.com/taskorch/dashboard/pkg/uuidcodec"
)

// Repository handles database operations for projects. It owns the
// hierarchy predicates: a project's resolved task set is every task that
// references the project directly or through one of its features,
// de-duplicated by id. Orphaned tasks never appear in any project.
type Repository struct {
	store *database.Store
	log   *slog.Logger
}

// NewRepository creates a new project repository
func NewRepository(store *database.Store, log *slog.Logger) *Repository {
	return &Repository{
		store: store,
		log:   log.With(logger.Scope("projects.repo")),
	}
}

// taskSetPredicate matches the resolved task set of one project, given
// tasks aliased t LEFT JOINed to features aliased f.
func taskSetPredicate(id string) (string, []any) {
	expr := fmt.Sprintf("(%s OR %s)",
		database.IDMatch("t.project_id"), database.IDMatch("f.project_id"))
	args := append(database.IDMatchArgs(id), database.IDMatchArgs(id)...)
	return expr, args
}

// List returns all projects ordered by creation time.
func (r *Repository) List(ctx context.Context) ([]Project, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var projects []Project
	err = db.NewSelect().
		Model(&projects).
		ColumnExpr("p.*").
		Order("p.created_at DESC").
		Scan(ctx)
	if err != nil {
		r.log.Error("failed to list projects", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return projects, nil
}

// GetByID returns a project matched under any identifier encoding, or
// nil when absent.
func (r *Repository) GetByID(ctx context.Context, id string) (*Project, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var project Project
	err = db.NewSelect().
		Model(&project).
		ColumnExpr("p.*").
		Where(database.IDMatch("p.id"), database.IDMatchArgs(id)...).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get project", logger.Error(err), slog.String("id", id))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return &project, nil
}

// MostRecent returns the most recently modified project, or nil when
// the table is empty.
func (r *Repository) MostRecent(ctx context.Context) (*Project, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var project Project
	err = db.NewSelect().
		Model(&project).
		ColumnExpr("p.*").
		OrderExpr("p.modified_at DESC, p.created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get most recent project", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return &project, nil
}

// summaryRow carries one project with its aggregate counts. Task counts
// resolve through both attachment paths; the correlated subqueries keep
// directly-attached and via-feature tasks de-duplicated by id.
type summaryRow struct {
	bun.BaseModel `bun:"table:projects,alias:p"`

	ID         uuidcodec.ID `bun:"id"`
	Name       *string      `bun:"name"`
	Status     *string      `bun:"status"`
	CreatedAt  *string      `bun:"created_at"`
	ModifiedAt *string      `bun:"modified_at"`

	FeatureCount          int `bun:"feature_count,scanonly"`
	TaskCount             int `bun:"task_count,scanonly"`
	CompletedTaskCount    int `bun:"completed_task_count,scanonly"`
	TotalComplexity       int `bun:"total_complexity,scanonly"`
	CompletedComplexity   int `bun:"completed_complexity,scanonly"`
	CompletedFeatureCount int `bun:"completed_feature_count,scanonly"`
}

// Summaries returns every project with its aggregate counts, ordered by
// recency.
func (r *Repository) Summaries(ctx context.Context) ([]summaryRow, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var rows []summaryRow
	err = db.NewSelect().
		Model(&rows).
		ColumnExpr("p.id, p.name, p.status, p.created_at, p.modified_at").
		ColumnExpr("COUNT(DISTINCT f.id) AS feature_count").
		ColumnExpr(`(
			SELECT COUNT(DISTINCT t.id)
			FROM tasks t
			LEFT JOIN features f2 ON t.feature_id = f2.id
			WHERE t.project_id = p.id OR f2.project_id = p.id
		) AS task_count`).
		ColumnExpr(`(
			SELECT COUNT(DISTINCT t.id)
			FROM tasks t
			LEFT JOIN features f2 ON t.feature_id = f2.id
			WHERE (t.project_id = p.id OR f2.project_id = p.id)
			AND UPPER(t.status) = 'COMPLETED'
		) AS completed_task_count`).
		ColumnExpr(`COALESCE((
			SELECT SUM(t.complexity)
			FROM tasks t
			LEFT JOIN features f2 ON t.feature_id = f2.id
			WHERE (t.project_id = p.id OR f2.project_id = p.id)
			AND t.complexity IS NOT NULL
		), 0) AS total_complexity`).
		ColumnExpr(`COALESCE((
			SELECT SUM(t.complexity)
			FROM tasks t
			LEFT JOIN features f2 ON t.feature_id = f2.id
			WHERE (t.project_id = p.id OR f2.project_id = p.id)
			AND UPPER(t.status) = 'COMPLETED'
			AND t.complexity IS NOT NULL
		), 0) AS completed_complexity`).
		ColumnExpr(`(
			SELECT COUNT(DISTINCT f3.id)
			FROM features f3
			WHERE f3.project_id = p.id
			AND UPPER(f3.status) = 'COMPLETED'
		) AS completed_feature_count`).
		Join("LEFT JOIN features AS f ON f.project_id = p.id").
		GroupExpr("p.id").
		OrderExpr("p.modified_at DESC, p.created_at DESC").
		Scan(ctx)
	if err != nil {
		r.log.Error("failed to load project summaries", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return rows, nil
}

// overviewFeatureRow is one feature with its task counts.
type overviewFeatureRow struct {
	bun.BaseModel `bun:"table:features,alias:f"`

	ID     uuidcodec.ID `bun:"id"`
	Name   *string      `bun:"name"`
	Status *string      `bun:"status"`

	TaskCount       int `bun:"task_count,scanonly"`
	CompletedCount  int `bun:"completed_count,scanonly"`
	InProgressCount int `bun:"in_progress_count,scanonly"`
}

// OverviewFeatures returns the project's features with their task
// counts, most recently modified first.
func (r *Repository) OverviewFeatures(ctx context.Context, projectID string) ([]overviewFeatureRow, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var rows []overviewFeatureRow
	err = db.NewSelect().
		Model(&rows).
		ColumnExpr("f.id, f.name, f.status").
		ColumnExpr("COUNT(DISTINCT t.id) AS task_count").
		ColumnExpr("COALESCE(SUM(CASE WHEN t.status = 'COMPLETED' THEN 1 ELSE 0 END), 0) AS completed_count").
		ColumnExpr("COALESCE(SUM(CASE WHEN t.status = 'IN_PROGRESS' THEN 1 ELSE 0 END), 0) AS in_progress_count").
		Join("LEFT JOIN tasks AS t ON t.feature_id = f.id").
		Where(database.IDMatch("f.project_id"), database.IDMatchArgs(projectID)...).
		GroupExpr("f.id").
		OrderExpr("f.modified_at DESC, f.created_at DESC").
		Scan(ctx)
	if err != nil {
		r.log.Error("failed to load overview features", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return rows, nil
}

// overviewTaskRow is one task of the overview list. It maps every known
// column variant so the t.* select works against old files missing
// name, description or updated_at.
type overviewTaskRow struct {
	bun.BaseModel `bun:"table:tasks,alias:t"`

	ID          uuidcodec.ID `bun:"id"`
	FeatureID   uuidcodec.ID `bun:"feature_id"`
	ProjectID   uuidcodec.ID `bun:"project_id"`
	Title       *string      `bun:"title"`
	Name        *string      `bun:"name"`
	Summary     *string      `bun:"summary"`
	Description *string      `bun:"description"`
	Status      *string      `bun:"status"`
	Priority    *string      `bun:"priority"`
	Complexity  *int         `bun:"complexity"`
	CreatedAt   *string      `bun:"created_at"`
	UpdatedAt   *string      `bun:"updated_at"`
	ModifiedAt  *string      `bun:"modified_at"`

	FeatureName *string `bun:"feature_name,scanonly"`
}

// OverviewTasks returns the project's resolved tasks, most recently
// modified first and capped at 50. A non-nil days filter keeps only
// tasks modified within that many days.
func (r *Repository) OverviewTasks(ctx context.Context, projectID string, days *int) ([]overviewTaskRow, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	expr, args := taskSetPredicate(projectID)

	var rows []overviewTaskRow
	q := db.NewSelect().
		Model(&rows).
		ColumnExpr("t.*").
		ColumnExpr("f.name AS feature_name").
		Join("LEFT JOIN features AS f ON t.feature_id = f.id").
		Where(expr, args...)

	if days != nil {
		q = q.Where("datetime(t.modified_at) >= datetime('now', ?)", fmt.Sprintf("-%d days", *days))
	}

	err = q.OrderExpr("t.modified_at DESC, t.created_at DESC").
		Limit(50).
		Scan(ctx)
	if err != nil {
		r.log.Error("failed to load overview tasks", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return rows, nil
}

// TaskStats aggregates the project's resolved task set.
type TaskStats struct {
	Total               int
	Completed           int
	TotalComplexity     int
	CompletedComplexity int
}

// TaskStatsFor returns unfiltered task totals for one project.
func (r *Repository) TaskStatsFor(ctx context.Context, projectID string) (*TaskStats, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	expr, args := taskSetPredicate(projectID)

	var stats TaskStats
	err = db.NewSelect().
		TableExpr("tasks AS t").
		ColumnExpr("COUNT(DISTINCT t.id)").
		ColumnExpr("COALESCE(SUM(CASE WHEN UPPER(t.status) = 'COMPLETED' THEN 1 ELSE 0 END), 0)").
		ColumnExpr("COALESCE(SUM(t.complexity), 0)").
		ColumnExpr("COALESCE(SUM(CASE WHEN UPPER(t.status) = 'COMPLETED' THEN t.complexity ELSE 0 END), 0)").
		Join("LEFT JOIN features AS f ON t.feature_id = f.id").
		Where(expr, args...).
		Scan(ctx, &stats.Total, &stats.Completed, &stats.TotalComplexity, &stats.CompletedComplexity)
	if err != nil {
		r.log.Error("failed to load task stats", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return &stats, nil
}

// FeatureStats counts a project's features.
type FeatureStats struct {
	Total     int
	Completed int
}

// FeatureStatsFor returns feature totals for one project.
func (r *Repository) FeatureStatsFor(ctx context.Context, projectID string) (*FeatureStats, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var stats FeatureStats
	err = db.NewSelect().
		TableExpr("features").
		ColumnExpr("COUNT(*)").
		ColumnExpr("COALESCE(SUM(CASE WHEN UPPER(status) = 'COMPLETED' THEN 1 ELSE 0 END), 0)").
		Where(database.IDMatch("project_id"), database.IDMatchArgs(projectID)...).
		Scan(ctx, &stats.Total, &stats.Completed)
	if err != nil {
		r.log.Error("failed to load feature stats", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return &stats, nil
}

// DependencyCountFor counts dependencies originating from the project's
// resolved task set.
func (r *Repository) DependencyCountFor(ctx context.Context, projectID string) (int, error) {
	db, err := r.store.DB()
	if err != nil {
		return 0, err
	}

	expr, args := taskSetPredicate(projectID)

	var count int
	err = db.NewSelect().
		TableExpr("dependencies AS d").
		ColumnExpr("COUNT(*)").
		Where(fmt.Sprintf(`d.from_task_id IN (
			SELECT t.id FROM tasks t
			LEFT JOIN features f ON t.feature_id = f.id
			WHERE %s
		)`, expr), args...).
		Scan(ctx, &count)
	if err != nil {
		r.log.Error("failed to count dependencies", logger.Error(err))
		return 0, apperror.ErrDatabase.WithInternal(err)
	}

	return count, nil
}

// SectionCountFor counts sections attached to the project itself, its
// features, or its resolved tasks.
func (r *Repository) SectionCountFor(ctx context.Context, projectID string) (int, error) {
	db, err := r.store.DB()
	if err != nil {
		return 0, err
	}

	taskExpr, taskArgs := taskSetPredicate(projectID)
	expr := fmt.Sprintf(`(entity_type = 'PROJECT' AND %s)
		OR (entity_type = 'FEATURE' AND entity_id IN (SELECT id FROM features WHERE %s))
		OR (entity_type = 'TASK' AND entity_id IN (
			SELECT t.id FROM tasks t
			LEFT JOIN features f ON t.feature_id = f.id
			WHERE %s
		))`,
		database.IDMatch("entity_id"), database.IDMatch("project_id"), taskExpr)

	args := append(database.IDMatchArgs(projectID), database.IDMatchArgs(projectID)...)
	args = append(args, taskArgs...)

	var count int
	err = db.NewSelect().
		TableExpr("sections").
		ColumnExpr("COUNT(*)").
		Where(expr, args...).
		Scan(ctx, &count)
	if err != nil {
		r.log.Error("failed to count sections", logger.Error(err))
		return 0, apperror.ErrDatabase.WithInternal(err)
	}

	return count, nil
}
