package recovery

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		options        []Option
		panicSimulator func()
		expectedStatus int
		expectedBody   string
		expectStack    bool
	}{
		{
			name:    "default behavior",
			options: []Option{},
			panicSimulator: func() {
				panic(errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal Server Error"}`,
		},
		{
			name:    "non error panic value",
			options: []Option{},
			panicSimulator: func() {
				panic("plain string panic")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal Server Error"}`,
		},
		{
			name: "custom error callback",
			options: []Option{
				WithErrCallback(func(err error, stack []byte, w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusTeapot)
					_, _ = w.Write([]byte("custom error"))
				}),
			},
			panicSimulator: func() {
				panic(errors.New("boom"))
			},
			expectedStatus: http.StatusTeapot,
			expectedBody:   "custom error",
		},
		{
			name: "exposed stack trace",
			options: []Option{
				WithExposeStackTrace(true),
			},
			panicSimulator: func() {
				panic(errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectStack:    true,
		},
		{
			name:    "broken pipe error",
			options: nil,
			panicSimulator: func() {
				panic(&os.SyscallError{Err: errors.New("broken pipe")})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := New(tt.options...).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.panicSimulator()
			}))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}

			body := strings.TrimSpace(rec.Body.String())
			if tt.expectStack {
				if !strings.Contains(body, "stack") {
					t.Errorf("expected stack trace in body, got %s", body)
				}
				return
			}
			if body != tt.expectedBody {
				t.Errorf("expected body %q, got %q", tt.expectedBody, body)
			}
		})
	}
}

func TestMiddleware_passthrough(t *testing.T) {
	handler := New().Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Errorf("expected status %d, got %d", http.StatusAccepted, rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("expected body ok, got %s", rec.Body.String())
	}
}

func Test_isBrokenPipeError(t *testing.T) {
	if isBrokenPipeError(errors.New("some error")) {
		t.Error("plain error should not be detected as broken pipe")
	}
	if !isBrokenPipeError(&os.SyscallError{Err: errors.New("connection reset by peer")}) {
		t.Error("connection reset should be detected as broken pipe")
	}
}
