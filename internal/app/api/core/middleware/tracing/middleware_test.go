package tracing

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiddleware_generatesRequestId(t *testing.T) {
	var contextId string
	handler := New().Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contextId, _ = r.Context().Value("RequestId").(string)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(rec, req)

	headerId := rec.Header().Get("X-Request-Id")
	if headerId == "" {
		t.Error("expected a generated request id in the response header")
	}
	if contextId != headerId {
		t.Errorf("context id %q does not match header id %q", contextId, headerId)
	}
}

func TestMiddleware_uniqueIds(t *testing.T) {
	handler := New().Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		handler.ServeHTTP(rec, req)

		id := rec.Header().Get("X-Request-Id")
		if seen[id] {
			t.Fatalf("request id %q was generated twice", id)
		}
		seen[id] = true
	}
}

func TestMiddleware_reusesUpstreamId(t *testing.T) {
	handler := New(
		WithUpstreamHeader("X-Upstream-Id"),
		WithHeaderIdentifier("X-Request-Id"),
	).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Upstream-Id", "upstream-42")
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "upstream-42" {
		t.Errorf("expected upstream id to be reused, got %q", got)
	}
}

func TestMiddleware_customIdentifiers(t *testing.T) {
	var contextId string
	handler := New(
		WithContextIdentifier("TraceId"),
		WithHeaderIdentifier("X-Trace-Id"),
	).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contextId, _ = r.Context().Value("TraceId").(string)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-Trace-Id") == "" {
		t.Error("expected a request id in the custom response header")
	}
	if contextId == "" {
		t.Error("expected a request id under the custom context key")
	}
}

func TestMiddleware_disabledHeader(t *testing.T) {
	handler := New(
		WithHeaderIdentifier(""),
	).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "" {
		t.Errorf("expected no request id header, got %q", got)
	}
}
