package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/rentlink/domain/property"
	"github.com/example/rentlink/domain/view"
	"github.com/example/rentlink/events"
	"github.com/example/rentlink/modules/app"
)

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)         {}
func (m *mockLogger) Info(msg string, args ...any)          {}
func (m *mockLogger) Warn(msg string, args ...any)          {}
func (m *mockLogger) Error(msg string, args ...any)         {}
func (m *mockLogger) With(args ...any) types.Logger         { return m }
func (m *mockLogger) WithError(err error) types.Logger      { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

type fakePort struct {
	snap     app.Snapshot
	outcome  app.Outcome
	err      error
	label    string
	lastReq  app.IntentRequest
	lastText string
}

func (f *fakePort) Snapshot(context.Context) (app.Snapshot, error) {
	return f.snap, f.err
}

func (f *fakePort) Dispatch(_ context.Context, req app.IntentRequest) (app.Outcome, app.Snapshot, error) {
	f.lastReq = req
	if req.Name == "teleport" {
		return app.Outcome{}, f.snap, app.ErrUnknownIntent
	}
	return f.outcome, f.snap, f.err
}

func (f *fakePort) InterpretSearch(_ context.Context, query string) (string, error) {
	f.lastText = query
	return f.label, f.err
}

func testServer(port *fakePort) (*Handlers, *Hub) {
	hub := NewHub(&mockLogger{})
	return NewHandlers(port, hub, &mockLogger{}), hub
}

func do(t *testing.T, h *Handlers, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := newApp(h, "").Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHealthCheck(t *testing.T) {
	h, _ := testServer(&fakePort{snap: app.Snapshot{View: view.Home, Version: 4}})
	resp, body := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got HealthResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "healthy", got.Status)
	assert.Equal(t, "HOME", got.Details["view"])

	h, _ = testServer(&fakePort{err: app.ErrStopped})
	resp, _ = do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestGetState_AddsGeohash(t *testing.T) {
	p := property.Property{ID: "1", Latitude: 40.7128, Longitude: -74.0060}
	h, _ := testServer(&fakePort{snap: app.Snapshot{View: view.Details, Selected: &p}})

	resp, body := do(t, h, http.MethodGet, "/api/v1/state", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "DETAILS", got["view"])
	hash, ok := got["selectedGeohash"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(hash, "dr5r"), hash)
}

func TestGetState_TransportError(t *testing.T) {
	h, _ := testServer(&fakePort{err: errors.New("boom")})
	resp, body := do(t, h, http.MethodGet, "/api/v1/state", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(body), "Internal Server Error")
}

func TestPostIntent(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		outcome    app.Outcome
		wantStatus int
	}{
		{"accepted", "/api/v1/intents/select_tab", `{"tab":"chat"}`, app.Outcome{Accepted: true}, http.StatusOK},
		{"no body", "/api/v1/intents/back", "", app.Outcome{Accepted: true}, http.StatusOK},
		{"validation", "/api/v1/intents/advance_draft", "", app.Outcome{Code: app.CodeValidation}, http.StatusOK},
		{"rejected", "/api/v1/intents/logout", "", app.Outcome{Code: app.CodeRejected}, http.StatusConflict},
		{"busy", "/api/v1/intents/generate_description", "", app.Outcome{Code: app.CodeBusy}, http.StatusConflict},
		{"not found", "/api/v1/intents/open_property", `{"propertyId":"x"}`, app.Outcome{Code: app.CodeNotFound}, http.StatusNotFound},
		{"forbidden", "/api/v1/intents/delete_listing", `{"propertyId":"2"}`, app.Outcome{Code: app.CodeForbidden}, http.StatusForbidden},
		{"unknown intent", "/api/v1/intents/teleport", "", app.Outcome{}, http.StatusNotFound},
		{"malformed", "/api/v1/intents/back", `{`, app.Outcome{}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := &fakePort{outcome: tt.outcome, snap: app.Snapshot{View: view.Home}}
			h, _ := testServer(port)
			resp, _ := do(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestPostIntent_NameFromPath(t *testing.T) {
	port := &fakePort{outcome: app.Outcome{Accepted: true}, snap: app.Snapshot{View: view.Chat}}
	h, _ := testServer(port)

	resp, body := do(t, h, http.MethodPost, "/api/v1/intents/select_tab", `{"name":"logout","tab":"chat"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, app.IntentSelectTab, port.lastReq.Name)
	assert.Equal(t, "chat", port.lastReq.Tab)

	var got IntentResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.True(t, got.Outcome.Accepted)
	assert.Equal(t, view.Chat, got.State.View)
}

func TestInterpretSearch(t *testing.T) {
	port := &fakePort{label: "2BR downtown"}
	h, _ := testServer(port)

	resp, body := do(t, h, http.MethodPost, "/api/v1/search/interpret", `{"query":"two beds downtown"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "two beds downtown", port.lastText)
	assert.JSONEq(t, `{"label":"2BR downtown"}`, string(body))

	long := `{"query":"` + strings.Repeat("a", maxQueryLength+1) + `"}`
	resp, _ = do(t, h, http.MethodPost, "/api/v1/search/interpret", long)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	h, _ := testServer(&fakePort{})
	resp, _ := do(t, h, http.MethodGet, "/ws", "")
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, append([]byte(nil), data...))
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

func TestHub_BroadcastAndShutdown(t *testing.T) {
	hub := NewHub(&mockLogger{})
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	a, b := &fakeConn{}, &fakeConn{}
	require.True(t, hub.Register(NewClient("a", a)))
	require.True(t, hub.Register(NewClient("b", b)))
	assert.Equal(t, 2, hub.ClientCount())

	hub.Broadcast(WSMessage{Type: WSTypeState})
	require.Eventually(t, func() bool { return a.count() == 1 && b.count() == 1 }, time.Second, 5*time.Millisecond)

	hub.Unregister(NewClient("b", b))
	hub.Broadcast(WSMessage{Type: WSTypeState})
	require.Eventually(t, func() bool { return a.count() == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, b.count())

	cancel()
	hub.Wait()
	assert.True(t, a.closed)
	assert.Equal(t, 0, hub.ClientCount())
	assert.False(t, hub.Register(NewClient("c", &fakeConn{})))
}

func TestHandleFrame(t *testing.T) {
	port := &fakePort{outcome: app.Outcome{Accepted: true}, snap: app.Snapshot{View: view.Auth}, label: "Studio"}
	h, _ := testServer(port)
	conn := &fakeConn{}
	client := NewClient("x", conn)

	h.handleFrame(client, []byte(`{"type":"intent","payload":{"name":"sign_in"}}`))
	h.handleFrame(client, []byte(`{"type":"interpret","payload":{"query":"small studio"}}`))
	h.handleFrame(client, []byte(`{"type":"dance"}`))
	h.handleFrame(client, []byte(`not json`))

	require.Equal(t, 4, conn.count())
	var frames []WSMessage
	for _, raw := range conn.frames {
		var m WSMessage
		require.NoError(t, json.Unmarshal(raw, &m))
		frames = append(frames, m)
	}
	assert.Equal(t, WSTypeOutcome, frames[0].Type)
	assert.Equal(t, "sign_in", port.lastReq.Name)
	assert.Equal(t, WSTypeLabel, frames[1].Type)
	assert.JSONEq(t, `{"label":"Studio"}`, string(frames[1].Payload))
	assert.Equal(t, WSTypeError, frames[2].Type)
	assert.Equal(t, WSTypeError, frames[3].Type)
}

func TestStateFrame(t *testing.T) {
	p := property.Property{ID: "1", Latitude: 40.7128, Longitude: -74.0060}
	data, err := json.Marshal(app.Snapshot{View: view.Details, Selected: &p})
	require.NoError(t, err)

	frame := stateFrame(events.StateChangedEvent{Version: 3, View: "DETAILS", Snapshot: data})
	assert.Equal(t, WSTypeState, frame.Type)
	assert.Contains(t, string(frame.Payload), `"selectedGeohash":"dr5r`)
}
