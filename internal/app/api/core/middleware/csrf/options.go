package csrf

import (
	"net/http"
	"slices"
)

// SessionReader is a function that returns the CSRF token that is currently
// stored in the session of the given request.
type SessionReader func(r *http.Request) string

// SessionWriter is a function that persists the given CSRF token in the
// session of the given request.
type SessionWriter func(r *http.Request, token string)

type options struct {
	tokenGetter   func(r *http.Request) string
	sessionGetter SessionReader
	sessionWriter SessionWriter

	errCallback func(w http.ResponseWriter, r *http.Request)

	tokenLength   int
	ignoreMethods []string
}

// WithTokenLength sets the length of the generated CSRF token in bytes.
func WithTokenLength(length int) Option {
	return func(o *options) {
		o.tokenLength = length
	}
}

// WithErrorCallback sets the function that is called if the CSRF token
// validation failed. The default callback sends status code 403.
func WithErrorCallback(cb func(w http.ResponseWriter, r *http.Request)) Option {
	return func(o *options) {
		o.errCallback = cb
	}
}

// WithTokenGetter sets the function that extracts the CSRF token from the
// incoming request.
func WithTokenGetter(fn func(r *http.Request) string) Option {
	return func(o *options) {
		o.tokenGetter = fn
	}
}

// WithIgnoredMethods sets the HTTP methods that skip token validation.
func WithIgnoredMethods(methods ...string) Option {
	return func(o *options) {
		o.ignoreMethods = slices.Clone(methods)
	}
}

func withSessionReader(reader SessionReader) Option {
	return func(o *options) {
		o.sessionGetter = reader
	}
}

func withSessionWriter(writer SessionWriter) Option {
	return func(o *options) {
		o.sessionWriter = writer
	}
}

// Option is a function that modifies the middleware options.
type Option func(*options)

func newOptions(opts ...Option) options {
	o := options{
		tokenGetter:   defaultTokenGetter,
		errCallback:   defaultErrorHandler,
		tokenLength:   32,
		ignoreMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "CSRF token mismatch", http.StatusForbidden)
}

// defaultTokenGetter searches common locations for the CSRF token:
// the X-CSRF-TOKEN and X-XSRF-TOKEN headers, the _csrf query parameter and
// the _csrf form field.
func defaultTokenGetter(r *http.Request) string {
	if t := r.Header.Get("X-CSRF-TOKEN"); len(t) > 0 {
		return t
	}

	if t := r.Header.Get("X-XSRF-TOKEN"); len(t) > 0 {
		return t
	}

	if t := r.URL.Query().Get("_csrf"); len(t) > 0 {
		return t
	}

	if t := r.PostFormValue("_csrf"); len(t) > 0 {
		return t
	}

	return ""
}
