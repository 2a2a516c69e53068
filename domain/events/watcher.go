package events

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/taskorch/dashboard/internal/config"
	"github.com/taskorch/dashboard/internal/database"
	"github.com/taskorch/dashboard/pkg/logger"
)

// Watcher broadcasts a database_update message when the orchestrator
// writes the database file. It watches the containing directory because
// SQLite replaces and touches sibling files (-wal, -journal) and the
// database file itself may be recreated.
type Watcher struct {
	hub      *Hub
	dbPath   string
	debounce time.Duration
	log      *slog.Logger

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher creates the database file watcher.
func NewWatcher(hub *Hub, store *database.Store, cfg *config.Config, log *slog.Logger) *Watcher {
	return &Watcher{
		hub:      hub,
		dbPath:   store.Path(),
		debounce: cfg.WebSocket.WatchDebounce,
		log:      log.With(logger.Scope("events.watcher")),
	}
}

// Start begins watching. Returns without error when the database
// directory does not exist yet; the dashboard simply runs without file
// notifications until restarted.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.dbPath)
	if _, err := os.Stat(dir); err != nil {
		w.log.Warn("database directory missing, file watcher disabled",
			slog.String("dir", dir),
		)
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})

	w.log.Info("watching database file", slog.String("path", w.dbPath))

	go func() {
		defer close(w.done)
		defer fsw.Close()

		base := filepath.Base(w.dbPath)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				name := filepath.Base(event.Name)
				if name != base && name != base+"-wal" && name != base+"-journal" {
					continue
				}
				w.scheduleBroadcast()
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				w.log.Warn("database watch error", logger.Error(err))
			}
		}
	}()

	return nil
}

// scheduleBroadcast coalesces bursts of file events into one message.
func (w *Watcher) scheduleBroadcast() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		modifiedAt := Timestamp()
		if info, err := os.Stat(w.dbPath); err == nil {
			modifiedAt = info.ModTime().UTC().Format(time.RFC3339)
		}
		w.hub.Broadcast(Envelope{
			Type:      TypeDatabaseUpdate,
			Timestamp: Timestamp(),
			Data: &DatabaseUpdateData{
				ModifiedAt: modifiedAt,
				Message:    "Task orchestrator database has been updated",
			},
		})
	})
}

// Stop terminates the watch goroutine.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
		<-w.done
	}
}
