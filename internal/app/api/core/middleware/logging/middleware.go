package logging

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Middleware is a type that creates a new logging middleware. The logging middleware
// logs information about each request to the structured slog logger.
type Middleware struct {
	o options
}

// New returns a new logging middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o: o,
	}

	return m
}

// Handler returns the logging middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := newWriterWrapper(w)
		start := time.Now()
		defer func() {
			message, args := m.buildMessageAndArguments(r, start, ww)
			slog.Log(r.Context(), m.o.logLevel, message, args...)
		}()

		next.ServeHTTP(ww, r)
	})
}

// buildMessageAndArguments assembles the log message and the key-value
// arguments for one finished request. The argument order is fixed so that
// log lines are always comparable.
func (m *Middleware) buildMessageAndArguments(
	r *http.Request,
	start time.Time,
	ww *writerWrapper,
) (message string, args []any) {
	message = fmt.Sprintf("%s %s", r.Method, r.URL.Path)
	if m.o.prefix != "" {
		message = m.o.prefix + " " + message
	}

	args = []any{
		"protocol", r.Proto,
		"status", ww.StatusCode,
		"dataLength", ww.WrittenBytes,
		"duration", time.Since(start).String(),
		"clientIP", clientIP(r),
		"userAgent", r.UserAgent(),
		"referer", r.Header.Get("Referer"),
	}

	if m.o.headerRequestIdKey != "" {
		args = append(args, "headerRequestId", r.Header.Get(m.o.headerRequestIdKey))
	}
	if m.o.contextRequestIdKey != "" {
		requestId, _ := r.Context().Value(m.o.contextRequestIdKey).(string)
		args = append(args, "contextRequestId", requestId)
	}

	return
}

// clientIP extracts the client address, preferring the X-Forwarded-For
// header over the remote address of the connection.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}

	// strip the port number from the remote address
	lastColonIndex := strings.LastIndex(r.RemoteAddr, ":")
	if lastColonIndex == -1 {
		return r.RemoteAddr
	}
	return r.RemoteAddr[:lastColonIndex]
}
