package templates

import (
	"context"
	"log/slog"

	"github.com/taskorch/dashboard/internal/database"
	"github.com/taskorch/dashboard/pkg/apperror"
	"github.com/taskorch/dashboard/pkg/logger"
)

// Repository handles database operations for templates
type Repository struct {
	store *database.Store
	log   *slog.Logger
}

// NewRepository creates a new template repository
func NewRepository(store *database.Store, log *slog.Logger) *Repository {
	return &Repository{
		store: store,
		log:   log.With(logger.Scope("templates.repo")),
	}
}

// ListEnabled returns enabled templates ordered by name.
func (r *Repository) ListEnabled(ctx context.Context) ([]Template, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var rows []Template
	err = db.NewSelect().
		Model(&rows).
		ColumnExpr("tp.*").
		Where("tp.is_enabled = 1").
		Order("tp.name").
		Scan(ctx)
	if err != nil {
		r.log.Error("failed to list templates", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return rows, nil
}
