package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	realtimePath    = "/api/clients"
	realtimeCommand = "get"

	defaultRealtimeTimeout = 3 * time.Second
)

// realtimeURL derives the WebSocket target from an HTTP base URL by
// swapping the scheme and appending the realtime path.
func realtimeURL(baseURL string) (string, error) {
	base := strings.TrimRight(baseURL, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://") + realtimePath, nil
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://") + realtimePath, nil
	}
	return "", fmt.Errorf("unsupported scheme in base URL %q", baseURL)
}

// CollectRealtime opens one WebSocket connection to /api/clients, sends
// the fixed trigger command and waits for the first inbound message.
// The wait is bounded by Config.RealtimeTimeout; expiry yields
// ErrRealtimeTimeout. The socket is closed on every exit path and only
// the first message is consumed.
//
// A message that fails to parse as JSON resolves to an empty payload
// rather than an error — the snapshot is best effort.
func (c *Client) CollectRealtime(ctx context.Context) (any, error) {
	if c.config.BaseURL == "" {
		return nil, ErrNoBaseURL
	}
	target, err := realtimeURL(c.config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("realtime: %w", err)
	}

	header := http.Header{}
	c.setAuth(header)

	dialer := websocket.Dialer{HandshakeTimeout: c.config.RealtimeTimeout}
	conn, resp, err := dialer.DialContext(ctx, target, header)
	if err != nil {
		if resp != nil && (resp.StatusCode < 200 || resp.StatusCode >= 300) &&
			resp.StatusCode != 101 {
			return nil, &StatusError{Code: resp.StatusCode}
		}
		return nil, fmt.Errorf("realtime dial: %w", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(realtimeCommand)); err != nil {
		return nil, fmt.Errorf("realtime send: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(c.config.RealtimeTimeout)); err != nil {
		return nil, fmt.Errorf("realtime deadline: %w", err)
	}
	_, msg, err := conn.ReadMessage()
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, ErrRealtimeTimeout
		}
		return nil, fmt.Errorf("realtime read: %w", err)
	}

	var payload any
	if err := json.Unmarshal(msg, &payload); err != nil {
		return map[string]any{}, nil
	}
	return payload, nil
}
