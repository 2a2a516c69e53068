package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)

// Config holds all application configuration
type Config struct {
	// Server settings
	ServerPort    int    `env:"SERVER_PORT" envDefault:"8888"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:"0.0.0.0"`
	Environment   string `env:"ENVIRONMENT" envDefault:"local"`
	Debug         bool   `env:"DEBUG" envDefault:"false"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	// Database settings
	Database DatabaseConfig

	// WebSocket push channel
	WebSocket WebSocketConfig

	// Dashboard UI assets
	UI UIConfig

	// Server timeouts
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"28800s"` // 8 hours for WebSocket
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"28800s"`  // 8 hours for WebSocket
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// DatabaseConfig holds SQLite connection settings
type DatabaseConfig struct {
	// Path to the SQLite database file
	Path string `env:"TASK_ORCHESTRATOR_DB" envDefault:"data/tasks.db"`

	// ReadOnly opens the database in read-only immutable mode; all
	// mutating endpoints are rejected while it is set
	ReadOnly bool `env:"DB_READ_ONLY" envDefault:"false"`

	// DockerDetection enables probing well-known container volume
	// mount points when the configured path does not exist
	DockerDetection bool `env:"ENABLE_DOCKER_DETECTION" envDefault:"true"`

	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	MaxIdleTime  time.Duration `env:"DB_MAX_IDLE_TIME" envDefault:"5m"`
	BusyTimeout  time.Duration `env:"DB_BUSY_TIMEOUT" envDefault:"5s"`
	QueryDebug   bool          `env:"DB_QUERY_DEBUG" envDefault:"false"`
}

// DSN returns the SQLite connection string for the given path. Read-only
// mode opens the file as immutable so concurrent writers elsewhere never
// block the dashboard; read-write mode enables WAL.
func (d *DatabaseConfig) DSN(path string) string {
	if d.ReadOnly {
		return fmt.Sprintf("file:%s?mode=ro&immutable=1", path)
	}
	return fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=cache_size(-64000)",
		path, d.BusyTimeout.Milliseconds(),
	)
}

// WebSocketConfig holds push channel settings
type WebSocketConfig struct {
	// Enabled turns the /ws endpoint and file watcher on
	Enabled bool `env:"ENABLE_WEBSOCKET" envDefault:"true"`

	// WriteTimeout bounds a single frame write to a client
	WriteTimeout time.Duration `env:"WS_WRITE_TIMEOUT" envDefault:"10s"`

	// WatchDebounce coalesces rapid database file changes into a
	// single update broadcast
	WatchDebounce time.Duration `env:"DB_WATCH_DEBOUNCE" envDefault:"500ms"`
}

// UIConfig holds the on-disk locations of the dashboard assets. Both
// are optional; the API works without a UI.
type UIConfig struct {
	DashboardFile string `env:"DASHBOARD_FILE" envDefault:"ui/dashboard.html"`
	StaticDir     string `env:"STATIC_DIR" envDefault:"ui/static"`
}

// NewConfig loads configuration from environment variables
func NewConfig(log *slog.Logger) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	log.Info("configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.ServerPort),
		slog.String("db_path", cfg.Database.Path),
		slog.Bool("read_only", cfg.Database.ReadOnly),
		slog.Bool("websocket", cfg.WebSocket.Enabled),
	)

	return cfg, nil
}
