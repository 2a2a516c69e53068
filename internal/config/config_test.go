package config

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		path     string
		expected string
	}{
		{
			name: "read-write with defaults",
			config: DatabaseConfig{
				BusyTimeout: 5 * time.Second,
			},
			path:     "data/tasks.db",
			expected: "file:data/tasks.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=cache_size(-64000)",
		},
		{
			name: "read-write with custom busy timeout",
			config: DatabaseConfig{
				BusyTimeout: 30 * time.Second,
			},
			path:     "/var/lib/tasks/tasks.db",
			expected: "file:/var/lib/tasks/tasks.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(30000)&_pragma=cache_size(-64000)",
		},
		{
			name: "read-only immutable",
			config: DatabaseConfig{
				ReadOnly:    true,
				BusyTimeout: 5 * time.Second,
			},
			path:     "data/tasks.db",
			expected: "file:data/tasks.db?mode=ro&immutable=1",
		},
		{
			name: "read-only ignores pragmas",
			config: DatabaseConfig{
				ReadOnly:    true,
				BusyTimeout: time.Minute,
			},
			path:     "/data/tasks.db",
			expected: "file:/data/tasks.db?mode=ro&immutable=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.config.DSN(tt.path)
			if got != tt.expected {
				t.Errorf("DSN() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	// env vars the suite may inherit from the host
	for _, key := range []string{
		"SERVER_PORT", "SERVER_ADDRESS", "TASK_ORCHESTRATOR_DB",
		"DB_READ_ONLY", "ENABLE_DOCKER_DETECTION", "ENABLE_WEBSOCKET",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("SERVER_PORT", "8888")
	t.Setenv("TASK_ORCHESTRATOR_DB", "data/tasks.db")
	t.Setenv("DB_READ_ONLY", "false")
	t.Setenv("ENABLE_DOCKER_DETECTION", "true")
	t.Setenv("ENABLE_WEBSOCKET", "true")
	t.Setenv("SERVER_ADDRESS", "0.0.0.0")

	cfg, err := NewConfig(discardLogger())
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}

	if cfg.ServerPort != 8888 {
		t.Errorf("ServerPort = %d, want 8888", cfg.ServerPort)
	}
	if cfg.ServerAddress != "0.0.0.0" {
		t.Errorf("ServerAddress = %q, want 0.0.0.0", cfg.ServerAddress)
	}
	if cfg.Database.Path != "data/tasks.db" {
		t.Errorf("Database.Path = %q, want data/tasks.db", cfg.Database.Path)
	}
	if cfg.Database.ReadOnly {
		t.Error("Database.ReadOnly = true, want false")
	}
	if !cfg.Database.DockerDetection {
		t.Error("Database.DockerDetection = false, want true")
	}
	if !cfg.WebSocket.Enabled {
		t.Error("WebSocket.Enabled = false, want true")
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("TASK_ORCHESTRATOR_DB", "/data/tasks.db")
	t.Setenv("DB_READ_ONLY", "true")
	t.Setenv("ENABLE_WEBSOCKET", "false")
	t.Setenv("DB_QUERY_DEBUG", "true")

	cfg, err := NewConfig(discardLogger())
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}

	if cfg.ServerPort != 9999 {
		t.Errorf("ServerPort = %d, want 9999", cfg.ServerPort)
	}
	if cfg.Database.Path != "/data/tasks.db" {
		t.Errorf("Database.Path = %q, want /data/tasks.db", cfg.Database.Path)
	}
	if !cfg.Database.ReadOnly {
		t.Error("Database.ReadOnly = false, want true")
	}
	if cfg.WebSocket.Enabled {
		t.Error("WebSocket.Enabled = true, want false")
	}
	if !cfg.Database.QueryDebug {
		t.Error("Database.QueryDebug = false, want true")
	}
}
