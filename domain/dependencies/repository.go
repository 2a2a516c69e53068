package dependencies

import (
	"context"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/taskorch/dashboard/internal/database"
	"github.com/taskorch/dashboard/pkg/apperror"
	"github.com/taskorch/dashboard/pkg/logger"
	"github.com/taskorch/dashboard/pkg/uuidcodec"
)

// Repository handles database operations for dependencies
type Repository struct {
	store *database.Store
	log   *slog.Logger
}

// NewRepository creates a new dependency repository
func NewRepository(store *database.Store, log *slog.Logger) *Repository {
	return &Repository{
		store: store,
		log:   log.With(logger.Scope("dependencies.repo")),
	}
}

func (r *Repository) joined(db *bun.DB, deps *[]Dependency) *bun.SelectQuery {
	return db.NewSelect().
		Model(deps).
		ColumnExpr("d.*").
		ColumnExpr("t1.title AS from_task_title").
		ColumnExpr("t2.title AS to_task_title").
		Join("LEFT JOIN tasks AS t1 ON d.from_task_id = t1.id").
		Join("LEFT JOIN tasks AS t2 ON d.to_task_id = t2.id")
}

// List returns all dependencies with the titles of both endpoints.
func (r *Repository) List(ctx context.Context) ([]Dependency, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var deps []Dependency
	err = r.joined(db, &deps).
		Order("d.created_at DESC").
		Scan(ctx)
	if err != nil {
		r.log.Error("failed to list dependencies", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return deps, nil
}

// ListForTask returns dependencies touching one task. The binary id
// form is tried first; when it matches nothing the text form is used,
// covering files that store task references as UUID strings.
func (r *Repository) ListForTask(ctx context.Context, taskID string) ([]Dependency, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var deps []Dependency
	if bin, ok := uuidcodec.Decode(taskID); ok {
		err = r.joined(db, &deps).
			Where("d.from_task_id = ? OR d.to_task_id = ?", bin, bin).
			Order("d.created_at DESC").
			Scan(ctx)
		if err != nil {
			r.log.Error("failed to list task dependencies", logger.Error(err), slog.String("task_id", taskID))
			return nil, apperror.ErrDatabase.WithInternal(err)
		}
	}

	if len(deps) == 0 {
		err = r.joined(db, &deps).
			Where("CAST(d.from_task_id AS TEXT) = ? OR CAST(d.to_task_id AS TEXT) = ?", taskID, taskID).
			Order("d.created_at DESC").
			Scan(ctx)
		if err != nil {
			r.log.Error("failed to list task dependencies", logger.Error(err), slog.String("task_id", taskID))
			return nil, apperror.ErrDatabase.WithInternal(err)
		}
	}

	return deps, nil
}

// graphTaskRow is one task of the dependency graph. Every known column
// variant is mapped so the t.* select tolerates old files missing name,
// description or updated_at.
type graphTaskRow struct {
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
}

// GraphTasks returns the tasks forming the graph's node set, optionally
// scoped to a project or feature under any identifier encoding.
func (r *Repository) GraphTasks(ctx context.Context, projectID, featureID string) ([]graphTaskRow, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var rows []graphTaskRow
	q := db.NewSelect().
		Model(&rows).
		ColumnExpr("t.*")

	if projectID != "" {
		q = q.Where(database.IDMatch("t.project_id"), database.IDMatchArgs(projectID)...)
	}
	if featureID != "" {
		q = q.Where(database.IDMatch("t.feature_id"), database.IDMatchArgs(featureID)...)
	}

	if err := q.Scan(ctx); err != nil {
		r.log.Error("failed to load graph tasks", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return rows, nil
}
