package events

import (
	"context"

	"go.uber.org/fx"

	"github.com/taskorch/dashboard/internal/config"
)

// Module provides the events domain
var Module = fx.Module("events",
	fx.Provide(NewHub),
	fx.Provide(NewHandler),
	fx.Provide(NewWatcher),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(registerWatcher),
)

func registerWatcher(lc fx.Lifecycle, w *Watcher, cfg *config.Config) {
	if !cfg.WebSocket.Enabled {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return w.Start()
		},
		OnStop: func(ctx context.Context) error {
			w.Stop()
			return nil
		},
	})
}
