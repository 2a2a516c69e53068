// Package logger provides the application-wide slog setup and shared
// logging helpers.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/fx"
)

var Module = fx.Module("logger",
	fx.Provide(NewLogger),
	fx.Provide(NewHTTPLogger),
)

// NewLogger creates the root slog.Logger. The level comes from LOG_LEVEL
// (debug/info/warn/error, case-insensitive, defaulting to info) and the
// handler is JSON when GO_ENV=production, human-readable text otherwise.
func NewLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	case "info":
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if os.Getenv("GO_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// Scope returns a slog attribute identifying the logging component.
func Scope(scope string) slog.Attr {
	return slog.String("scope", scope)
}

// Error returns a slog attribute carrying an error value.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// HTTPLogger appends one line per request to a log file, independent of the
// structured application log. A missing or unwritable file disables it.
type HTTPLogger struct {
	mu   sync.Mutex
	file *os.File
}

// NewHTTPLogger opens the HTTP access log file. The path comes from
// HTTP_LOG_FILE; when unset or unopenable the logger is a no-op.
func NewHTTPLogger(log *slog.Logger) *HTTPLogger {
	path := os.Getenv("HTTP_LOG_FILE")
	if path == "" {
		return &HTTPLogger{}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Warn("http log directory not created", Error(err))
		return &HTTPLogger{}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Warn("http log file not opened", slog.String("path", path), Error(err))
		return &HTTPLogger{}
	}

	return &HTTPLogger{file: file}
}

// LogRequest writes a single access-log line.
func (h *HTTPLogger) LogRequest(ip, method, uri string, status int, latency time.Duration, userAgent, requestID string) {
	if h.file == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	fmt.Fprintf(h.file, "%s %s %s %s %d %s %q %s\n",
		time.Now().UTC().Format(time.RFC3339), ip, method, uri, status, latency, userAgent, requestID)
}

// Close closes the underlying file, if any.
func (h *HTTPLogger) Close() error {
	if h.file == nil {
		return nil
	}
	return h.file.Close()
}
