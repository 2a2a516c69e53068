package analytics

import (
	"context"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/taskorch/dashboard/internal/database"
	"github.com/taskorch/dashboard/pkg/apperror"
	"github.com/taskorch/dashboard/pkg/logger"
	"github.com/taskorch/dashboard/pkg/uuidcodec"
)

// Repository handles the aggregate and search queries behind the
// analytics endpoints
type Repository struct {
	store *database.Store
	log   *slog.Logger
}

// NewRepository creates a new analytics repository
func NewRepository(store *database.Store, log *slog.Logger) *Repository {
	return &Repository{
		store: store,
		log:   log.With(logger.Scope("analytics.repo")),
	}
}

func (r *Repository) count(ctx context.Context, db *bun.DB, table, where string) (int, error) {
	var n int
	q := db.NewSelect().TableExpr(table).ColumnExpr("COUNT(*)")
	if where != "" {
		q = q.Where(where)
	}
	if err := q.Scan(ctx, &n); err != nil {
		r.log.Error("failed to count rows", logger.Error(err), slog.String("table", table))
		return 0, apperror.ErrDatabase.WithInternal(err)
	}
	return n, nil
}

// GlobalStats returns the table-level counts of the stats endpoint.
func (r *Repository) GlobalStats(ctx context.Context) (*StatsResponse, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	stats := &StatsResponse{}
	if stats.Projects, err = r.count(ctx, db, "projects", ""); err != nil {
		return nil, err
	}
	if stats.Features, err = r.count(ctx, db, "features", ""); err != nil {
		return nil, err
	}
	if stats.Tasks.Total, err = r.count(ctx, db, "tasks", ""); err != nil {
		return nil, err
	}
	if stats.Tasks.Completed, err = r.count(ctx, db, "tasks", "status = 'COMPLETED'"); err != nil {
		return nil, err
	}
	if stats.Tasks.InProgress, err = r.count(ctx, db, "tasks", "status = 'IN_PROGRESS'"); err != nil {
		return nil, err
	}
	if stats.Tasks.Pending, err = r.count(ctx, db, "tasks", "status IN ('PENDING', 'TODO')"); err != nil {
		return nil, err
	}
	if stats.Dependencies, err = r.count(ctx, db, "dependencies", ""); err != nil {
		return nil, err
	}
	if stats.Sections, err = r.count(ctx, db, "sections", ""); err != nil {
		return nil, err
	}
	if stats.Templates, err = r.count(ctx, db, "templates", "is_enabled = 1"); err != nil {
		return nil, err
	}

	return stats, nil
}

// Distribution groups tasks by the given column, optionally scoped to
// tasks directly attached to one project.
func (r *Repository) Distribution(ctx context.Context, column, projectID string) (map[string]int, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Key   *string `bun:"key"`
		Count int     `bun:"count"`
	}
	q := db.NewSelect().
		TableExpr("tasks").
		ColumnExpr("? AS key", bun.Ident(column)).
		ColumnExpr("COUNT(*) AS count").
		GroupExpr("?", bun.Ident(column))
	if projectID != "" {
		q = q.Where(database.IDMatch("project_id"), database.IDMatchArgs(projectID)...)
	}
	if err := q.Scan(ctx, &rows); err != nil {
		r.log.Error("failed to load distribution", logger.Error(err), slog.String("column", column))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	dist := make(map[string]int, len(rows))
	for _, row := range rows {
		// NULL and empty groups get a readable label instead of a
		// blank chart bucket
		key := "unknown"
		if row.Key != nil && *row.Key != "" {
			key = *row.Key
		}
		dist[key] += row.Count
	}
	return dist, nil
}

// AverageComplexity returns the mean task complexity, 0 when there are
// no tasks.
func (r *Repository) AverageComplexity(ctx context.Context, projectID string) (float64, error) {
	db, err := r.store.DB()
	if err != nil {
		return 0, err
	}

	var avg *float64
	q := db.NewSelect().
		TableExpr("tasks").
		ColumnExpr("AVG(complexity)")
	if projectID != "" {
		q = q.Where(database.IDMatch("project_id"), database.IDMatchArgs(projectID)...)
	}
	if err := q.Scan(ctx, &avg); err != nil {
		r.log.Error("failed to average complexity", logger.Error(err))
		return 0, apperror.ErrDatabase.WithInternal(err)
	}

	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

// BlockedCount counts distinct tasks on the receiving end of a BLOCKS
// edge, optionally scoped to tasks directly attached to one project.
func (r *Repository) BlockedCount(ctx context.Context, projectID string) (int, error) {
	db, err := r.store.DB()
	if err != nil {
		return 0, err
	}

	var n int
	if projectID != "" {
		err = db.NewSelect().
			TableExpr("dependencies AS d").
			ColumnExpr("COUNT(DISTINCT d.to_task_id)").
			Join("JOIN tasks AS t ON d.to_task_id = t.id").
			Where("d.type = 'BLOCKS'").
			Where(database.IDMatch("t.project_id"), database.IDMatchArgs(projectID)...).
			Scan(ctx, &n)
	} else {
		err = db.NewSelect().
			TableExpr("dependencies").
			ColumnExpr("COUNT(DISTINCT to_task_id)").
			Where("type = 'BLOCKS'").
			Scan(ctx, &n)
	}
	if err != nil {
		r.log.Error("failed to count blocked tasks", logger.Error(err))
		return 0, apperror.ErrDatabase.WithInternal(err)
	}

	return n, nil
}

// searchRow is one LIKE-search hit from any of the three tables.
type searchRow struct {
	ID      uuidcodec.ID `bun:"id"`
	Name    *string      `bun:"name"`
	Summary *string      `bun:"summary"`
	Status  *string      `bun:"status"`
}

func (r *Repository) searchTable(ctx context.Context, table, nameCol, resultType, term string) ([]SearchResult, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	like := "%" + term + "%"
	var rows []searchRow
	err = db.NewSelect().
		TableExpr(table).
		ColumnExpr("id, ? AS name, summary, status", bun.Ident(nameCol)).
		Where("? LIKE ? OR summary LIKE ?", bun.Ident(nameCol), like, like).
		Limit(20).
		Scan(ctx, &rows)
	if err != nil {
		r.log.Error("failed to search", logger.Error(err), slog.String("table", table))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	results := make([]SearchResult, 0, len(rows))
	for _, row := range rows {
		name := ""
		if row.Name != nil {
			name = *row.Name
		}
		results = append(results, SearchResult{
			ID:      row.ID.String(),
			Type:    resultType,
			Name:    name,
			Summary: row.Summary,
			Status:  row.Status,
		})
	}
	return results, nil
}

// SearchProjects matches projects by name or summary.
func (r *Repository) SearchProjects(ctx context.Context, term string) ([]SearchResult, error) {
	return r.searchTable(ctx, "projects", "name", "project", term)
}

// SearchFeatures matches features by name or summary.
func (r *Repository) SearchFeatures(ctx context.Context, term string) ([]SearchResult, error) {
	return r.searchTable(ctx, "features", "name", "feature", term)
}

// SearchTasks matches tasks by title or summary.
func (r *Repository) SearchTasks(ctx context.Context, term string) ([]SearchResult, error) {
	return r.searchTable(ctx, "tasks", "title", "task", term)
}

// activityRow is one recent-activity candidate. It maps the union of
// the project/feature/task column sets because the queries select whole
// rows, matching whatever columns the file actually has; old files
// lack name, description or updated_at on some tables.
type activityRow struct {
	ID          uuidcodec.ID `bun:"id"`
	FeatureID   uuidcodec.ID `bun:"feature_id"`
	ProjectID   uuidcodec.ID `bun:"project_id"`
	Name        *string      `bun:"name"`
	Title       *string      `bun:"title"`
	Summary     *string      `bun:"summary"`
	Description *string      `bun:"description"`
	Status      *string      `bun:"status"`
	Priority    *string      `bun:"priority"`
	Complexity  *int         `bun:"complexity"`
	ProjectName *string      `bun:"project_name"`
	CreatedAt   *string      `bun:"created_at"`
	UpdatedAt   *string      `bun:"updated_at"`
	ModifiedAt  *string      `bun:"modified_at"`
}

// RecentProjects returns the most recently modified projects.
func (r *Repository) RecentProjects(ctx context.Context, limit int) ([]activityRow, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var rows []activityRow
	err = db.NewSelect().
		TableExpr("projects AS p").
		ColumnExpr("p.*, p.name AS project_name").
		OrderExpr("p.modified_at DESC, p.created_at DESC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		r.log.Error("failed to load recent projects", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return rows, nil
}

// RecentFeatures returns the most recently modified features with
// their project name, optionally scoped to one project.
func (r *Repository) RecentFeatures(ctx context.Context, projectID string, limit int) ([]activityRow, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var rows []activityRow
	q := db.NewSelect().
		TableExpr("features AS f").
		ColumnExpr("f.*, p.name AS project_name").
		Join("LEFT JOIN projects AS p ON f.project_id = p.id")
	if projectID != "" {
		q = q.Where(database.IDMatch("f.project_id"), database.IDMatchArgs(projectID)...)
	}
	err = q.OrderExpr("f.modified_at DESC, f.created_at DESC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		r.log.Error("failed to load recent features", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return rows, nil
}

// RecentTasks returns the most recently modified tasks with their
// project resolved directly or through the owning feature.
func (r *Repository) RecentTasks(ctx context.Context, projectID string, limit int) ([]activityRow, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var rows []activityRow
	q := db.NewSelect().
		TableExpr("tasks AS t").
		ColumnExpr("t.*, COALESCE(p.name, p2.name, 'Unknown') AS project_name").
		Join("LEFT JOIN projects AS p ON t.project_id = p.id").
		Join("LEFT JOIN features AS f ON t.feature_id = f.id").
		Join("LEFT JOIN projects AS p2 ON f.project_id = p2.id")
	if projectID != "" {
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				WhereOr(database.IDMatch("t.project_id"), database.IDMatchArgs(projectID)...).
				WhereOr(database.IDMatch("f.project_id"), database.IDMatchArgs(projectID)...)
		})
	}
	err = q.OrderExpr("t.modified_at DESC, t.created_at DESC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		r.log.Error("failed to load recent tasks", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return rows, nil
}
