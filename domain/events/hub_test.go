package events

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskorch/dashboard/internal/config"
)

func testConfig(enabled bool) *config.Config {
	return &config.Config{
		WebSocket: config.WebSocketConfig{
			Enabled:       enabled,
			WriteTimeout:  5 * time.Second,
			WatchDebounce: 10 * time.Millisecond,
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startWS spins up an echo server with the /ws route and dials it.
func startWS(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	e := echo.New()
	h := NewHandler(hub, discardLogger())
	e.GET("/ws", h.Connect)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { ws.Close() })

	return ws
}

func readEnvelope(t *testing.T, ws *websocket.Conn) Envelope {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := ws.ReadMessage()
	require.NoError(t, err)
	var msg Envelope
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestConnectSendsGreeting(t *testing.T) {
	hub := NewHub(testConfig(true), discardLogger())
	ws := startWS(t, hub)

	greeting := readEnvelope(t, ws)
	assert.Equal(t, TypeConnectionEstablished, greeting.Type)
	assert.NotEmpty(t, greeting.Timestamp)
	assert.Contains(t, greeting.Message, "Task Orchestrator Dashboard")
}

func TestPingPong(t *testing.T) {
	hub := NewHub(testConfig(true), discardLogger())
	ws := startWS(t, hub)
	readEnvelope(t, ws) // greeting

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("ping")))

	pong := readEnvelope(t, ws)
	assert.Equal(t, TypePong, pong.Type)
	assert.NotEmpty(t, pong.Timestamp)
}

func TestNonPingFramesAreIgnored(t *testing.T) {
	hub := NewHub(testConfig(true), discardLogger())
	ws := startWS(t, hub)
	readEnvelope(t, ws) // greeting

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("hello")))
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("ping")))

	// Only the ping is answered
	pong := readEnvelope(t, ws)
	assert.Equal(t, TypePong, pong.Type)
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub(testConfig(true), discardLogger())
	ws1 := startWS(t, hub)
	ws2 := startWS(t, hub)
	readEnvelope(t, ws1)
	readEnvelope(t, ws2)

	require.Eventually(t, func() bool {
		return hub.ConnectionCount() == 2
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast(Envelope{Type: TypeTaskUpdated, TaskID: "abc", Timestamp: Timestamp()})

	for _, ws := range []*websocket.Conn{ws1, ws2} {
		msg := readEnvelope(t, ws)
		assert.Equal(t, TypeTaskUpdated, msg.Type)
		assert.Equal(t, "abc", msg.TaskID)
	}
}

func TestBroadcastDisabledHubIsNoop(t *testing.T) {
	hub := NewHub(testConfig(false), discardLogger())
	assert.False(t, hub.Enabled())

	// Must not panic or block with no connections
	hub.Broadcast(Envelope{Type: TypeTaskCreated, Timestamp: Timestamp()})
	assert.Equal(t, 0, hub.ConnectionCount())
}

func TestDisconnectLowersConnectionCount(t *testing.T) {
	hub := NewHub(testConfig(true), discardLogger())
	ws := startWS(t, hub)
	readEnvelope(t, ws)

	require.Eventually(t, func() bool {
		return hub.ConnectionCount() == 1
	}, time.Second, 10*time.Millisecond)

	ws.Close()

	require.Eventually(t, func() bool {
		return hub.ConnectionCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestRegisterRoutesDisabled(t *testing.T) {
	e := echo.New()
	hub := NewHub(testConfig(false), discardLogger())
	h := NewHandler(hub, discardLogger())
	RegisterRoutes(e, h, testConfig(false))

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
