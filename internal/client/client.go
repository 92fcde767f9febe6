package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds configuration for Client.
type Config struct {
	// BaseURL is the Komari panel address, e.g. "https://panel.example.com".
	// Trailing slashes are trimmed.
	BaseURL string
	// Token is the optional API token. When non-empty it is sent as both
	// a bearer Authorization header and a session_token cookie, the two
	// auth transports Komari accepts.
	Token string
	// RealtimeTimeout bounds the wait for the first realtime message.
	// Defaults to 3s.
	RealtimeTimeout time.Duration
}

// Client talks to a Komari monitoring panel over HTTP and WebSocket.
type Client struct {
	http   *http.Client
	config Config
}

// New constructs a Client from the given config. Returns ErrNoBaseURL
// when no panel address is configured.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrNoBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.RealtimeTimeout <= 0 {
		cfg.RealtimeTimeout = defaultRealtimeTimeout
	}

	return &Client{
		http:   &http.Client{},
		config: cfg,
	}, nil
}

// BaseURL returns the configured panel address.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// setAuth attaches the configured token to h. No headers are written
// when no token is configured.
func (c *Client) setAuth(h http.Header) {
	if c.config.Token == "" {
		return
	}
	h.Set("Authorization", "Bearer "+c.config.Token)
	h.Set("Cookie", "session_token="+c.config.Token)
}

// doGet performs a single GET request to the given path (relative to
// BaseURL). No retry. Returns the response body bytes, or *StatusError
// on a non-2xx status.
func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	if c.config.BaseURL == "" {
		return nil, ErrNoBaseURL
	}
	url := c.config.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	c.setAuth(req.Header)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	const maxResponseBytes = 8 * 1024 * 1024 // well above any real panel response
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	return body, nil
}

// envelope is the common Komari response wrapper. Some endpoints answer
// bare payloads instead; unwrap handles both.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// unwrap extracts the payload from a response body. When the body is an
// envelope with a data field, the data field is the payload; otherwise
// the whole body is. An HTTP-200 envelope with a non-success status
// becomes *APIError.
func unwrap(body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		// Not an object envelope. A bare array or scalar is still a
		// valid payload; anything else is a parse failure.
		if json.Valid(body) {
			return body, nil
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if env.Status != "" && env.Status != "success" {
		return nil, &APIError{Message: env.Message}
	}
	if env.Data != nil {
		return env.Data, nil
	}
	return body, nil
}
