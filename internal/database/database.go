// Package database manages the SQLite connection behind the dashboard.
// The database file is owned by the task orchestrator; this package only
// opens it, re-opens it on refresh, and reports when it is missing.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"go.uber.org/fx"

	"github.com/taskorch/dashboard/internal/config"
	"github.com/taskorch/dashboard/pkg/apperror"
	"github.com/taskorch/dashboard/pkg/logger"
)

var Module = fx.Module("database",
	fx.Provide(NewStore),
)

// Store owns the bun.DB handle for the orchestrator database. The handle
// can be absent (file missing at startup) or replaced at runtime via
// Refresh, so consumers fetch it per operation with DB().
type Store struct {
	mu       sync.RWMutex
	db       *bun.DB
	path     string
	readOnly bool

	cfg *config.DatabaseConfig
	log *slog.Logger
}

// NewStore locates the database file and opens it. A missing file is not
// fatal: the server starts and every data endpoint returns 503 until a
// refresh finds the file.
func NewStore(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) *Store {
	log = log.With(logger.Scope("database"))

	path, readOnly := Locate(&cfg.Database, log)

	s := &Store{
		path:     path,
		readOnly: readOnly,
		cfg:      &cfg.Database,
		log:      log,
	}

	if err := s.open(); err != nil {
		log.Warn("database not opened at startup",
			slog.String("path", path),
			logger.Error(err),
		)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return s.Close()
		},
	})

	return s
}

// open creates the bun.DB handle. Caller must hold no lock or the write
// lock; it is only called from NewStore and Refresh.
func (s *Store) open() error {
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("stat database file: %w", err)
	}

	dsn := s.cfg.DSN(s.path)
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return fmt.Errorf("open sqlite database: %w", err)
	}

	sqldb.SetMaxOpenConns(s.cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(s.cfg.MaxIdleConns)
	sqldb.SetConnMaxIdleTime(s.cfg.MaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqldb.PingContext(ctx); err != nil {
		sqldb.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if s.cfg.QueryDebug {
		db.AddQueryHook(&queryLoggingHook{log: s.log})
	}

	s.mu.Lock()
	old := s.db
	s.db = db
	s.mu.Unlock()

	if old != nil {
		old.Close()
	}

	s.log.Info("database opened",
		slog.String("path", s.path),
		slog.Bool("read_only", s.readOnly),
		slog.Int("max_conns", s.cfg.MaxOpenConns),
	)

	return nil
}

// NewStoreWithDB wraps an existing handle. Used by tests and tools that
// open the database themselves.
func NewStoreWithDB(db *bun.DB, path string, readOnly bool) *Store {
	return &Store{
		db:       db,
		path:     path,
		readOnly: readOnly,
		cfg:      &config.DatabaseConfig{},
		log:      slog.Default(),
	}
}

// DB returns the current handle, or a 503 application error when the
// database file has not been found yet.
func (s *Store) DB() (*bun.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, apperror.ErrUnavailable
	}
	return s.db, nil
}

// Ready reports whether a database handle is currently open.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db != nil
}

// ReadOnly reports whether the database was opened in read-only mode.
func (s *Store) ReadOnly() bool {
	return s.readOnly
}

// Path returns the resolved database file path.
func (s *Store) Path() string {
	return s.path
}

// Refresh closes the current handle and re-opens the file. Clients call
// this through POST /api/refresh after replacing or syncing the database
// file; it also recovers a server that started before the file existed.
func (s *Store) Refresh() error {
	s.log.Info("refreshing database connections")
	return s.open()
}

// Close releases the current handle, if any.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// queryLoggingHook implements bun.QueryHook for query logging
type queryLoggingHook struct {
	log *slog.Logger
}

func (h *queryLoggingHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *queryLoggingHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)

	if event.Err != nil && event.Err != sql.ErrNoRows {
		h.log.Error("query error",
			slog.String("query", event.Query),
			slog.Duration("duration", duration),
			logger.Error(event.Err),
		)
		return
	}

	// Log slow queries as warnings
	if duration > 3*time.Second {
		h.log.Warn("slow query",
			slog.String("query", event.Query),
			slog.Duration("duration", duration),
		)
		return
	}

	h.log.Debug("query",
		slog.String("query", event.Query),
		slog.Duration("duration", duration),
	)
}
