package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{}

// realtimeServer runs handle on every upgraded /api/clients connection.
func realtimeServer(t *testing.T, handle func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/clients" {
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		handle(conn)
	}))
}

func TestRealtimeURL(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		want    string
		wantErr bool
	}{
		{"http", "http://panel.example.com", "ws://panel.example.com/api/clients", false},
		{"https", "https://panel.example.com", "wss://panel.example.com/api/clients", false},
		{"trailing_slash", "https://panel.example.com/", "wss://panel.example.com/api/clients", false},
		{"bad_scheme", "ftp://panel.example.com", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := realtimeURL(tc.base)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("realtimeURL(%q) succeeded, want error", tc.base)
				}
				return
			}
			if err != nil {
				t.Fatalf("realtimeURL(%q): %v", tc.base, err)
			}
			if got != tc.want {
				t.Errorf("realtimeURL(%q) = %q, want %q", tc.base, got, tc.want)
			}
		})
	}
}

func TestCollectRealtime_FirstMessage(t *testing.T) {
	srv := realtimeServer(t, func(conn *websocket.Conn) {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			t.Errorf("server read: %v", err)
			return
		}
		if mt != websocket.TextMessage || string(msg) != "get" {
			t.Errorf("trigger = (%d, %q), want text %q", mt, msg, "get")
		}
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`[{"uuid":"u1","cpu":{"usage":12.3}}]`))
		// A second message must be ignored by the collector.
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`[{"uuid":"u2"}]`))
	})
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	payload, err := c.CollectRealtime(context.Background())
	if err != nil {
		t.Fatalf("CollectRealtime: %v", err)
	}

	arr, ok := payload.([]any)
	if !ok {
		t.Fatalf("payload type = %T, want []any", payload)
	}
	if len(arr) != 1 {
		t.Fatalf("len(payload) = %d, want 1", len(arr))
	}
	node, _ := arr[0].(map[string]any)
	if node["uuid"] != "u1" {
		t.Errorf("uuid = %v, want u1", node["uuid"])
	}
}

func TestCollectRealtime_SendsAuthHeaders(t *testing.T) {
	authed := make(chan bool, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session_token")
		authed <- r.Header.Get("Authorization") == "Bearer tok" && err == nil && cookie.Value == "tok"
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_, _, _ = conn.ReadMessage()
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`[]`))
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, Token: "tok"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.CollectRealtime(context.Background()); err != nil {
		t.Fatalf("CollectRealtime: %v", err)
	}
	if !<-authed {
		t.Error("handshake request missing bearer header or session_token cookie")
	}
}

func TestCollectRealtime_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := realtimeServer(t, func(conn *websocket.Conn) {
		_, _, _ = conn.ReadMessage() // consume the trigger, then stay silent
		<-release
	})
	defer srv.Close()
	defer close(release)

	c, err := New(Config{BaseURL: srv.URL, RealtimeTimeout: 100 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	start := time.Now()
	_, err = c.CollectRealtime(context.Background())
	if !errors.Is(err, ErrRealtimeTimeout) {
		t.Fatalf("CollectRealtime error = %v, want ErrRealtimeTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timed out after %v, want around the 100ms deadline", elapsed)
	}
}

func TestCollectRealtime_UnparsableMessageIsEmptyPayload(t *testing.T) {
	srv := realtimeServer(t, func(conn *websocket.Conn) {
		_, _, _ = conn.ReadMessage()
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{not json`))
	})
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	payload, err := c.CollectRealtime(context.Background())
	if err != nil {
		t.Fatalf("CollectRealtime: %v", err)
	}
	m, ok := payload.(map[string]any)
	if !ok || len(m) != 0 {
		t.Errorf("payload = %#v, want empty map", payload)
	}
}

func TestCollectRealtime_RequiresBaseURL(t *testing.T) {
	c := &Client{config: Config{}}
	_, err := c.CollectRealtime(context.Background())
	if !errors.Is(err, ErrNoBaseURL) {
		t.Fatalf("CollectRealtime error = %v, want ErrNoBaseURL", err)
	}
}
