package sections

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taskorch/dashboard/internal/database"
	"github.com/taskorch/dashboard/pkg/apperror"
	"github.com/taskorch/dashboard/pkg/logger"
)

// Repository handles database operations for sections
type Repository struct {
	store *database.Store
	log   *slog.Logger
}

// NewRepository creates a new section repository
func NewRepository(store *database.Store, log *slog.Logger) *Repository {
	return &Repository{
		store: store,
		log:   log.With(logger.Scope("sections.repo")),
	}
}

// ListForEntity returns the sections of one entity ordered by ordinal.
// The entity id is compared in its 16-byte binary form.
func (r *Repository) ListForEntity(ctx context.Context, entityType string, entityID []byte) ([]Section, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var sections []Section
	err = db.NewSelect().
		Model(&sections).
		Where("s.entity_type = ?", strings.ToUpper(entityType)).
		Where("s.entity_id = ?", entityID).
		Order("s.ordinal").
		Scan(ctx)
	if err != nil {
		r.log.Error("failed to list entity sections", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return sections, nil
}

// ListRecent returns the latest 100 sections.
func (r *Repository) ListRecent(ctx context.Context) ([]Section, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var sections []Section
	err = db.NewSelect().
		Model(&sections).
		Order("s.created_at DESC").
		Limit(100).
		Scan(ctx)
	if err != nil {
		r.log.Error("failed to list sections", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return sections, nil
}
