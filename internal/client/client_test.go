package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient creates a Client pointed at the given test server URL.
func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(Config{BaseURL: baseURL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	if !errors.Is(err, ErrNoBaseURL) {
		t.Fatalf("New error = %v, want ErrNoBaseURL", err)
	}
}

func TestNew_TrimsTrailingSlashes(t *testing.T) {
	c := newTestClient(t, "https://panel.example.com///")
	if c.BaseURL() != "https://panel.example.com" {
		t.Errorf("BaseURL = %q, want trailing slashes trimmed", c.BaseURL())
	}
}

func TestDoGet_SendsBothAuthTransports(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer s3cret" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer s3cret")
		}
		cookie, err := r.Cookie("session_token")
		if err != nil || cookie.Value != "s3cret" {
			t.Errorf("session_token cookie = %v, %v; want s3cret", cookie, err)
		}
		_, _ = w.Write([]byte(`{"version":"1.0.0","hash":"abc"}`))
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, Token: "s3cret"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.GetVersion(context.Background()); err != nil {
		t.Fatalf("GetVersion: %v", err)
	}
}

func TestDoGet_NoAuthWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want empty", got)
		}
		if got := r.Header.Get("Cookie"); got != "" {
			t.Errorf("Cookie = %q, want empty", got)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.GetVersion(context.Background()); err != nil {
		t.Fatalf("GetVersion: %v", err)
	}
}

func TestGetVersion_BarePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/version" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"version":"1.2.3","hash":"deadbeef"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	v, err := c.GetVersion(context.Background())
	if err != nil {
		t.Fatalf("GetVersion: %v", err)
	}
	if v.Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", v.Version, "1.2.3")
	}
	if v.Hash != "deadbeef" {
		t.Errorf("Hash = %q, want %q", v.Hash, "deadbeef")
	}
}

func TestGetNodes_EnvelopePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/nodes" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":"success","data":[
			{"uuid":"u1","name":"node-1","region":"HK","cpu_cores":2,"mem_total":1073741824}
		]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	nodes, err := c.GetNodes(context.Background())
	if err != nil {
		t.Fatalf("GetNodes: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("len(nodes) = %d, want 1", len(nodes))
	}
	if nodes[0].Name != "node-1" {
		t.Errorf("Name = %q, want %q", nodes[0].Name, "node-1")
	}
	if nodes[0].MemTotal != 1073741824 {
		t.Errorf("MemTotal = %d, want 1073741824", nodes[0].MemTotal)
	}
}

func TestGetNodes_APIFailureEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","message":"token invalid"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetNodes(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("GetNodes error = %v, want *APIError", err)
	}
	if apiErr.Message != "token invalid" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "token invalid")
	}
}

func TestDoGet_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetNodes(context.Background())

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("GetNodes error = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusNotFound {
		t.Errorf("Code = %d, want 404", statusErr.Code)
	}
}

func TestGetPublicSettings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/public" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":"success","data":{"sitename":"My Panel","theme":"dark","extra":42}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	s, err := c.GetPublicSettings(context.Background())
	if err != nil {
		t.Fatalf("GetPublicSettings: %v", err)
	}
	if s.Sitename != "My Panel" {
		t.Errorf("Sitename = %q, want %q", s.Sitename, "My Panel")
	}
	if s.Theme != "dark" {
		t.Errorf("Theme = %q, want %q", s.Theme, "dark")
	}
	if s.Description != "" {
		t.Errorf("Description = %q, want empty", s.Description)
	}
}
