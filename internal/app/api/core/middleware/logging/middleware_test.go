package logging

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// captureLogs installs a text handler writing to a buffer as the default
// slog logger and restores the previous logger when the test finishes.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() {
		slog.SetDefault(previous)
	})

	return buf
}

func TestMiddleware_logsRequest(t *testing.T) {
	buf := captureLogs(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("Hello, World!"))
	})

	middleware := New().Handler(handler)
	req := httptest.NewRequest("GET", "http://example.com/audit/all", nil)
	rr := httptest.NewRecorder()

	middleware.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusTeapot {
		t.Errorf("expected status code to be %v, got %v", http.StatusTeapot, status)
	}
	if rr.Body.String() != "Hello, World!" {
		t.Errorf("expected response body to be preserved, got %v", rr.Body.String())
	}

	logged := buf.String()
	if !strings.Contains(logged, "GET /audit/all") {
		t.Errorf("expected log message to contain request info, got %v", logged)
	}
	if !strings.Contains(logged, "status=418") {
		t.Errorf("expected log message to contain status code, got %v", logged)
	}
	if !strings.Contains(logged, "dataLength=13") {
		t.Errorf("expected log message to contain response size, got %v", logged)
	}
}

func TestMiddleware_level(t *testing.T) {
	buf := captureLogs(t)

	middleware := New(WithLevel(slog.LevelError)).Handler(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest("GET", "http://example.com/foo", nil)
	rr := httptest.NewRecorder()

	middleware.ServeHTTP(rr, req)

	if !strings.Contains(buf.String(), "level=ERROR") {
		t.Errorf("expected log message at error level, got %v", buf.String())
	}
}

func TestMiddleware_prefix(t *testing.T) {
	buf := captureLogs(t)

	middleware := New(WithPrefix("[WEB]")).Handler(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest("GET", "http://example.com/foo", nil)
	rr := httptest.NewRecorder()

	middleware.ServeHTTP(rr, req)

	if !strings.Contains(buf.String(), "[WEB] GET /foo") {
		t.Errorf("expected log message with prefix, got %v", buf.String())
	}
}

func TestMiddleware_requestIds(t *testing.T) {
	buf := captureLogs(t)

	middleware := New(
		WithHeaderRequestIdKey("X-Request-Id"),
	).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest("GET", "http://example.com/foo", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rr := httptest.NewRecorder()

	middleware.ServeHTTP(rr, req)

	if !strings.Contains(buf.String(), "headerRequestId=req-123") {
		t.Errorf("expected log message with header request id, got %v", buf.String())
	}
}

func TestMiddleware_forwardedClientIP(t *testing.T) {
	buf := captureLogs(t)

	middleware := New().Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest("GET", "http://example.com/foo", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.9")
	rr := httptest.NewRecorder()

	middleware.ServeHTTP(rr, req)

	if !strings.Contains(buf.String(), "clientIP=10.0.0.9") {
		t.Errorf("expected log message with forwarded client ip, got %v", buf.String())
	}
}
