package worksessions

import (
	"context"
	"log/slog"

	"github.com/taskorch/dashboard/internal/database"
	"github.com/taskorch/dashboard/pkg/apperror"
	"github.com/taskorch/dashboard/pkg/logger"
)

// Repository handles database operations for work sessions and task
// locks
type Repository struct {
	store *database.Store
	log   *slog.Logger
}

// NewRepository creates a new work session repository
func NewRepository(store *database.Store, log *slog.Logger) *Repository {
	return &Repository{
		store: store,
		log:   log.With(logger.Scope("worksessions.repo")),
	}
}

// ListSessions returns all work sessions, most recently active first.
func (r *Repository) ListSessions(ctx context.Context) ([]WorkSession, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var sessions []WorkSession
	err = db.NewSelect().
		Model(&sessions).
		Order("w.last_activity DESC").
		Scan(ctx)
	if err != nil {
		r.log.Error("failed to list work sessions", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return sessions, nil
}

// ListActiveLocks returns unexpired task locks with the owning
// session's client info.
func (r *Repository) ListActiveLocks(ctx context.Context) ([]TaskLock, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var locks []TaskLock
	err = db.NewSelect().
		Model(&locks).
		ColumnExpr("l.*").
		ColumnExpr("w.client_id, w.user_context").
		Join("LEFT JOIN work_sessions AS w ON l.session_id = w.session_id").
		Where("l.expires_at > datetime('now')").
		Order("l.locked_at DESC").
		Scan(ctx)
	if err != nil {
		r.log.Error("failed to list task locks", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return locks, nil
}
