package recovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
)

// Middleware is a type that creates a new recovery middleware. The recovery middleware
// recovers from panics and returns an Internal Server Error response. This middleware should
// be the first middleware in the middleware chain, so that it can recover from panics in other
// middlewares.
type Middleware struct {
	o options
}

// New returns a new recovery middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o: o,
	}

	return m
}

// Handler returns the recovery middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()

				realErr, ok := err.(error)
				if !ok {
					realErr = fmt.Errorf("%v", err)
				}

				// Check for a broken connection, as it is not really a
				// condition that warrants a panic stack trace.
				if isBrokenPipeError(realErr) {
					return
				}

				slog.Error(m.addPrefix(realErr.Error()), "stack", string(stack))

				if m.o.errCallback != nil {
					m.o.errCallback(realErr, stack, w, r)
				}
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) addPrefix(message string) string {
	if m.o.logPrefix != "" {
		return m.o.logPrefix + " " + message
	}
	return message
}

// getDefaultErrCallback is the default error callback function for the recovery middleware.
// It writes a JSON response with an Internal Server Error status code. If the exposeStackTrace
// option is enabled, the stack trace is included in the response.
func getDefaultErrCallback(o options) func(err error, stack []byte, w http.ResponseWriter, r *http.Request) {
	return func(err error, stack []byte, w http.ResponseWriter, r *http.Request) {
		responseBody := map[string]interface{}{
			"error": "Internal Server Error",
		}
		if o.exposeStackTrace && len(stack) > 0 {
			responseBody["stack"] = string(stack)
		}

		jsonBody, _ := json.Marshal(responseBody)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(jsonBody)
	}
}

func isBrokenPipeError(err error) bool {
	var syscallErr *os.SyscallError
	if errors.As(err, &syscallErr) {
		errMsg := strings.ToLower(syscallErr.Err.Error())
		if strings.Contains(errMsg, "broken pipe") ||
			strings.Contains(errMsg, "connection reset by peer") {
			return true
		}
	}

	return false
}
