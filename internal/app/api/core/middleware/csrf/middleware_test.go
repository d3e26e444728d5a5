package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// sessionStore is a primitive in-memory session replacement for tests.
type sessionStore struct {
	token string
}

func (s *sessionStore) read(r *http.Request) string {
	return s.token
}

func (s *sessionStore) write(r *http.Request, token string) {
	s.token = token
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestMiddleware_ignoredMethod(t *testing.T) {
	store := &sessionStore{}
	m := New(store.read, store.write)

	req := httptest.NewRequest(http.MethodGet, "/audit/all", nil)
	rec := httptest.NewRecorder()
	m.Handler(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}

func TestMiddleware_missingToken(t *testing.T) {
	store := &sessionStore{}
	m := New(store.read, store.write)

	req := httptest.NewRequest(http.MethodPost, "/audit/new", nil)
	rec := httptest.NewRecorder()
	m.Handler(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", rec.Code)
	}
}

func TestMiddleware_validToken(t *testing.T) {
	store := &sessionStore{}
	m := New(store.read, store.write)

	// fetch a fresh token first, like the frontend would
	var issued string
	tokenEndpoint := m.RefreshToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		issued = GetToken(r.Context())
	}))
	tokenEndpoint.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/csrf", nil))

	if issued == "" {
		t.Fatal("expected RefreshToken to issue a token")
	}
	if store.token != issued {
		t.Fatal("expected issued token to be stored in the session")
	}

	req := httptest.NewRequest(http.MethodPost, "/audit/new", nil)
	req.Header.Set("X-CSRF-TOKEN", issued)
	rec := httptest.NewRecorder()
	m.Handler(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}

func TestMiddleware_invalidToken(t *testing.T) {
	store := &sessionStore{}
	m := New(store.read, store.write)

	tokenEndpoint := m.RefreshToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	tokenEndpoint.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/csrf", nil))

	req := httptest.NewRequest(http.MethodPost, "/audit/new", nil)
	req.Header.Set("X-CSRF-TOKEN", encodeToken(maskToken(generateToken(32), generateToken(32))))
	rec := httptest.NewRecorder()
	m.Handler(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", rec.Code)
	}
}

func TestMiddleware_customErrorCallback(t *testing.T) {
	store := &sessionStore{}
	m := New(store.read, store.write, WithErrorCallback(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/audit/1", nil)
	rec := httptest.NewRecorder()
	m.Handler(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("expected status 418, got %d", rec.Code)
	}
}

func TestGetToken_missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token := GetToken(req.Context()); token != "" {
		t.Errorf("expected empty token, got %q", token)
	}
}
