package features

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/taskorch/dashboard/internal/database"
	"github.com/taskorch/dashboard/pkg/apperror"
	"github.com/taskorch/dashboard/pkg/logger"
)

// Repository handles database operations for features
type Repository struct {
	store *database.Store
	log   *slog.Logger
}

// NewRepository creates a new feature repository
func NewRepository(store *database.Store, log *slog.Logger) *Repository {
	return &Repository{
		store: store,
		log:   log.With(logger.Scope("features.repo")),
	}
}

// List returns features, optionally filtered to one project under any
// identifier encoding.
func (r *Repository) List(ctx context.Context, projectID string) ([]Feature, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var features []Feature
	q := db.NewSelect().Model(&features).ColumnExpr("f.*")

	if projectID != "" {
		q = q.Where(database.IDMatch("f.project_id"), database.IDMatchArgs(projectID)...)
	}

	if err := q.Order("f.created_at DESC").Scan(ctx); err != nil {
		r.log.Error("failed to list features", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return features, nil
}

// GetByID returns a feature matched under any identifier encoding, or
// nil when absent.
func (r *Repository) GetByID(ctx context.Context, id string) (*Feature, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var feature Feature
	err = db.NewSelect().
		Model(&feature).
		ColumnExpr("f.*").
		Where(database.IDMatch("f.id"), database.IDMatchArgs(id)...).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get feature", logger.Error(err), slog.String("id", id))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return &feature, nil
}
