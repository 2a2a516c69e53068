package health

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskorch/dashboard/domain/events"
	"github.com/taskorch/dashboard/internal/config"
	"github.com/taskorch/dashboard/internal/database"
	"github.com/taskorch/dashboard/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHandler(store *database.Store) *Handler {
	hub := events.NewHub(&config.Config{}, discardLogger())
	return NewHandler(store, hub, discardLogger())
}

func doRequest(t *testing.T, h echo.HandlerFunc, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestHealthHealthy(t *testing.T) {
	db := testutil.NewTestDB(t)
	h := newHandler(db.Store())

	rec := doRequest(t, h.Health, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	var got HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "healthy", got.Status)
	assert.Equal(t, "connected", got.Database)
	assert.Equal(t, 0, got.WebSocketConnections)
	assert.NotEmpty(t, got.Version)
}

func TestHealthUnhealthyWithoutDatabase(t *testing.T) {
	h := newHandler(database.NewStoreWithDB(nil, "/nonexistent/tasks.db", true))

	rec := doRequest(t, h.Health, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	var got UnhealthyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "unhealthy", got.Status)
	assert.NotEmpty(t, got.Error)
}

func TestRefreshFailureStaysHTTP200(t *testing.T) {
	h := newHandler(database.NewStoreWithDB(nil, "/nonexistent/tasks.db", true))

	rec := doRequest(t, h.Refresh, http.MethodPost, "/api/refresh")
	assert.Equal(t, http.StatusOK, rec.Code)

	var got RefreshResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.Success)
	assert.Contains(t, got.Message, "Failed to refresh database")
}
