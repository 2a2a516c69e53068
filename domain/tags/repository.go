package tags

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taskorch/dashboard/internal/database"
	"github.com/taskorch/dashboard/pkg/apperror"
	"github.com/taskorch/dashboard/pkg/logger"
)

// Repository handles database operations for entity tags
type Repository struct {
	store *database.Store
	log   *slog.Logger
}

// NewRepository creates a new tag repository
func NewRepository(store *database.Store, log *slog.Logger) *Repository {
	return &Repository{
		store: store,
		log:   log.With(logger.Scope("tags.repo")),
	}
}

// List returns every tag with its usage count and the distinct entity
// types carrying it, most used first.
func (r *Repository) List(ctx context.Context) ([]TagDTO, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Tag         string  `bun:"tag"`
		Count       int     `bun:"count"`
		EntityTypes *string `bun:"entity_types"`
	}
	err = db.NewSelect().
		TableExpr("entity_tags").
		ColumnExpr("tag").
		ColumnExpr("COUNT(*) AS count").
		ColumnExpr("GROUP_CONCAT(DISTINCT entity_type) AS entity_types").
		GroupExpr("tag").
		OrderExpr("count DESC").
		Scan(ctx, &rows)
	if err != nil {
		r.log.Error("failed to list tags", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	result := make([]TagDTO, 0, len(rows))
	for _, row := range rows {
		entityTypes := []string{}
		if row.EntityTypes != nil && *row.EntityTypes != "" {
			entityTypes = strings.Split(*row.EntityTypes, ",")
		}
		result = append(result, TagDTO{
			Tag:         row.Tag,
			Count:       row.Count,
			EntityTypes: entityTypes,
		})
	}
	return result, nil
}
