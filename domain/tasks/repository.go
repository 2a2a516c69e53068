package tasks

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/taskorch/dashboard/internal/database"
	"github.com/taskorch/dashboard/pkg/apperror"
	"github.com/taskorch/dashboard/pkg/logger"
	"github.com/taskorch/dashboard/pkg/uuidcodec"
)

// Repository handles database operations for tasks
type Repository struct {
	store *database.Store
	log   *slog.Logger
}

// NewRepository creates a new task repository
func NewRepository(store *database.Store, log *slog.Logger) *Repository {
	return &Repository{
		store: store,
		log:   log.With(logger.Scope("tasks.repo")),
	}
}

// ListParams defines filters for listing tasks. Status and Priority
// filter on the stored column values.
type ListParams struct {
	FeatureID string
	Status    string
	Priority  string
	Limit     int
}

// List returns tasks with their effective project resolved: the task's
// own project_id, or the owning feature's when the task is only attached
// through a feature. Orphans appear with no project.
func (r *Repository) List(ctx context.Context, params ListParams) ([]Task, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var tasks []Task
	q := db.NewSelect().
		Model(&tasks).
		ColumnExpr("t.*").
		ColumnExpr("COALESCE(t.project_id, f.project_id) AS computed_project_id").
		ColumnExpr("p.name AS project_name").
		ColumnExpr("f.name AS feature_name").
		Join("LEFT JOIN features AS f ON t.feature_id = f.id").
		Join("LEFT JOIN projects AS p ON COALESCE(t.project_id, f.project_id) = p.id")

	if params.FeatureID != "" {
		q = q.Where(database.IDMatch("t.feature_id"), database.IDMatchArgs(params.FeatureID)...)
	}
	if params.Status != "" {
		q = q.Where("t.status = ?", params.Status)
	}
	if params.Priority != "" {
		q = q.Where("t.priority = ?", params.Priority)
	}

	err = q.Order("t.created_at DESC").Limit(params.Limit).Scan(ctx)
	if err != nil {
		r.log.Error("failed to list tasks", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return tasks, nil
}

// GetByID returns a task matched under any identifier encoding, with
// its effective project resolved, or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id string) (*Task, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var task Task
	err = db.NewSelect().
		Model(&task).
		ColumnExpr("t.*").
		ColumnExpr("COALESCE(t.project_id, f.project_id) AS computed_project_id").
		ColumnExpr("p.name AS project_name").
		ColumnExpr("f.name AS feature_name").
		Join("LEFT JOIN features AS f ON t.feature_id = f.id").
		Join("LEFT JOIN projects AS p ON COALESCE(t.project_id, f.project_id) = p.id").
		Where(database.IDMatch("t.id"), database.IDMatchArgs(id)...).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get task", logger.Error(err), slog.String("id", id))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return &task, nil
}

// UpdateStatus sets status and modified_at in one statement.
func (r *Repository) UpdateStatus(ctx context.Context, id, storedStatus, now string) error {
	return r.update(ctx, id, func(q *bun.UpdateQuery) {
		q.Set("status = ?", storedStatus)
	}, now)
}

// UpdatePriority sets priority and modified_at in one statement.
func (r *Repository) UpdatePriority(ctx context.Context, id, storedPriority, now string) error {
	return r.update(ctx, id, func(q *bun.UpdateQuery) {
		q.Set("priority = ?", storedPriority)
	}, now)
}

// UpdateComplexity sets complexity and modified_at in one statement.
func (r *Repository) UpdateComplexity(ctx context.Context, id string, complexity int, now string) error {
	return r.update(ctx, id, func(q *bun.UpdateQuery) {
		q.Set("complexity = ?", complexity)
	}, now)
}

// PatchParams carries storage-ready values for a partial update. Nil
// means unchanged; Clear flags null out the reference columns.
type PatchParams struct {
	Title        *string
	Summary      *string
	Status       *string
	Priority     *string
	Complexity   *int
	FeatureID    uuidcodec.ID
	ClearFeature bool
	ProjectID    uuidcodec.ID
	ClearProject bool
}

// Empty reports whether the patch changes nothing.
func (p *PatchParams) Empty() bool {
	return p.Title == nil && p.Summary == nil && p.Status == nil &&
		p.Priority == nil && p.Complexity == nil &&
		p.FeatureID.IsZero() && !p.ClearFeature &&
		p.ProjectID.IsZero() && !p.ClearProject
}

// Patch applies a partial update together with modified_at.
func (r *Repository) Patch(ctx context.Context, id string, params PatchParams, now string) error {
	return r.update(ctx, id, func(q *bun.UpdateQuery) {
		if params.Title != nil {
			q.Set("title = ?", *params.Title)
		}
		if params.Summary != nil {
			q.Set("summary = ?", *params.Summary)
		}
		if params.Status != nil {
			q.Set("status = ?", *params.Status)
		}
		if params.Priority != nil {
			q.Set("priority = ?", *params.Priority)
		}
		if params.Complexity != nil {
			q.Set("complexity = ?", *params.Complexity)
		}
		if params.ClearFeature {
			q.Set("feature_id = NULL")
		} else if !params.FeatureID.IsZero() {
			q.Set("feature_id = ?", params.FeatureID)
		}
		if params.ClearProject {
			q.Set("project_id = NULL")
		} else if !params.ProjectID.IsZero() {
			q.Set("project_id = ?", params.ProjectID)
		}
	}, now)
}

// update runs a mutation against every encoding of the row id.
func (r *Repository) update(ctx context.Context, id string, set func(*bun.UpdateQuery), now string) error {
	db, err := r.store.DB()
	if err != nil {
		return err
	}

	q := db.NewUpdate().
		Model((*Task)(nil)).
		Set("modified_at = ?", now).
		Where(database.IDMatch("id"), database.IDMatchArgs(id)...)
	set(q)

	if _, err := q.Exec(ctx); err != nil {
		r.log.Error("failed to update task", logger.Error(err), slog.String("id", id))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// Create inserts a new task row. The insert names only the columns
// every orchestrator file has; older files lack name, description and
// updated_at entirely.
func (r *Repository) Create(ctx context.Context, task *Task) error {
	db, err := r.store.DB()
	if err != nil {
		return err
	}

	q := db.NewInsert().
		Model(task).
		Column("id", "title", "summary", "status", "priority", "complexity",
			"feature_id", "project_id", "created_at", "modified_at")
	if _, err := q.Exec(ctx); err != nil {
		r.log.Error("failed to create task", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}
