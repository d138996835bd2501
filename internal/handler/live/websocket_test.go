package live

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/mindfulmate/backend/internal/service/companion"
	sessionservice "github.com/mindfulmate/backend/internal/service/session"
	"github.com/mindfulmate/backend/internal/store"
)

type event struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

func dialTestServer(t *testing.T) *websocket.Conn {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "live.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	comp, err := companion.NewService(context.Background(), nil, companion.Config{})
	if err != nil {
		t.Fatalf("failed to create companion: %v", err)
	}

	r := chi.NewRouter()
	New(sessionservice.New(st, comp)).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) event {
	t.Helper()

	var evt event
	if err := conn.ReadJSON(&evt); err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	return evt
}

func TestWebSocketTurnRoundTrip(t *testing.T) {
	conn := dialTestServer(t)

	if evt := readEvent(t, conn); evt.Type != "connected" {
		t.Fatalf("expected connected event first, got %q", evt.Type)
	}

	err := conn.WriteJSON(map[string]any{
		"type": "message",
		"data": map[string]string{"content": "I'm stressed about my exams"},
	})
	if err != nil {
		t.Fatalf("failed to send message: %v", err)
	}

	userEvt := readEvent(t, conn)
	if userEvt.Type != "user" {
		t.Fatalf("expected user event, got %q", userEvt.Type)
	}
	if userEvt.Data["content"] != "I'm stressed about my exams" {
		t.Fatalf("unexpected user payload: %+v", userEvt.Data)
	}

	botEvt := readEvent(t, conn)
	if botEvt.Type != "bot" {
		t.Fatalf("expected bot event, got %q", botEvt.Type)
	}

	moodEvt := readEvent(t, conn)
	if moodEvt.Type != "mood" {
		t.Fatalf("expected mood event, got %q", moodEvt.Type)
	}
	if moodEvt.Data["mood"] == "" {
		t.Fatal("mood event missing label")
	}
}

func TestWebSocketEmptyMessageYieldsError(t *testing.T) {
	conn := dialTestServer(t)
	readEvent(t, conn) // connected

	err := conn.WriteJSON(map[string]any{
		"type": "message",
		"data": map[string]string{"content": "   "},
	})
	if err != nil {
		t.Fatalf("failed to send message: %v", err)
	}

	if evt := readEvent(t, conn); evt.Type != "error" {
		t.Fatalf("expected error event, got %q", evt.Type)
	}
}

func TestWebSocketPingPong(t *testing.T) {
	conn := dialTestServer(t)
	readEvent(t, conn) // connected

	if err := conn.WriteJSON(map[string]any{"type": "ping"}); err != nil {
		t.Fatalf("failed to send ping: %v", err)
	}
	if evt := readEvent(t, conn); evt.Type != "pong" {
		t.Fatalf("expected pong, got %q", evt.Type)
	}
}

func TestWebSocketUnsupportedType(t *testing.T) {
	conn := dialTestServer(t)
	readEvent(t, conn) // connected

	if err := conn.WriteJSON(map[string]any{"type": "telemetry"}); err != nil {
		t.Fatalf("failed to send message: %v", err)
	}
	if evt := readEvent(t, conn); evt.Type != "error" {
		t.Fatalf("expected error event, got %q", evt.Type)
	}
}
