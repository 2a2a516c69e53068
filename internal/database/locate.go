package database

import (
	"log/slog"
	"os"
	"strings"

	"github.com/taskorch/dashboard/internal/config"
)

// Well-known mount points for the orchestrator's "mcp-task-data" Docker
// volume. The WSL paths cover Docker Desktop on Windows.
var dockerVolumePaths = []string{
	"/var/lib/docker/volumes/mcp-task-data/_data/tasks.db",
	`\\wsl.localhost\docker-desktop-data\data\docker\volumes\mcp-task-data\_data\tasks.db`,
	`\\wsl$\docker-desktop-data\data\docker\volumes\mcp-task-data\_data\tasks.db`,
}

// Locate resolves the database file path and whether it must be opened
// read-only. Docker volume detection runs first when enabled; a volume hit
// forces read-only mode so the dashboard never takes locks against a live
// orchestrator writing the same file.
func Locate(cfg *config.DatabaseConfig, log *slog.Logger) (path string, readOnly bool) {
	path = cfg.Path
	readOnly = cfg.ReadOnly

	if cfg.DockerDetection {
		for _, candidate := range dockerVolumePaths {
			if _, err := os.Stat(candidate); err == nil {
				log.Info("docker volume database detected, forcing read-only mode",
					slog.String("path", candidate),
				)
				return candidate, true
			}
		}
	}

	// Paths that point into a container volume or WSL share are treated
	// as externally owned even when configured by hand.
	lower := strings.ToLower(path)
	if strings.Contains(lower, "docker") || strings.Contains(lower, "wsl") {
		log.Info("database path looks externally owned, forcing read-only mode",
			slog.String("path", path),
		)
		readOnly = true
	}

	return path, readOnly
}
