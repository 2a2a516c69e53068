// Package main provides the entry point for the task dashboard server
package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/taskorch/dashboard/domain/analytics"
	"github.com/taskorch/dashboard/domain/dependencies"
	"github.com/taskorch/dashboard/domain/events"
	"github.com/taskorch/dashboard/domain/features"
	"github.com/taskorch/dashboard/domain/health"
	"github.com/taskorch/dashboard/domain/projects"
	"github.com/taskorch/dashboard/domain/sections"
	"github.com/taskorch/dashboard/domain/tags"
	"github.com/taskorch/dashboard/domain/tasks"
	"github.com/taskorch/dashboard/domain/templates"
	"github.com/taskorch/dashboard/domain/ui"
	"github.com/taskorch/dashboard/domain/worksessions"
	"github.com/taskorch/dashboard/internal/config"
	"github.com/taskorch/dashboard/internal/database"
	"github.com/taskorch/dashboard/internal/server"
	"github.com/taskorch/dashboard/pkg/logger"
)

func main() {
	// Load .env if present (for local development). Load() won't
	// overwrite vars already set in the environment.
	_ = godotenv.Load()

	fx.New(
		// Logging
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),

		// Infrastructure modules
		logger.Module,
		config.Module,
		database.Module,
		server.Module,

		// WebSocket push channel and database file watcher
		events.Module,

		// Domain modules
		health.Module,
		projects.Module,
		features.Module,
		tasks.Module,
		dependencies.Module,
		sections.Module,
		tags.Module,
		templates.Module,
		worksessions.Module,
		analytics.Module,

		// Dashboard UI
		ui.Module,
	).Run()
}
