package recovery

import "net/http"

// options is a struct that contains options for the recovery middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	logPrefix        string
	exposeStackTrace bool

	errCallbackOverride bool
	errCallback         func(err error, stack []byte, w http.ResponseWriter, r *http.Request)
}

// Option is a type that is used to set options for the recovery middleware.
// It implements the functional options pattern.
type Option func(*options)

// WithErrCallback sets the error callback function for the recovery middleware.
// The error callback function is called when a panic is recovered by the middleware.
// This function completely overrides the default behavior of the middleware. It is the
// responsibility of the user to handle the error and write a response to the client.
//
// Ensure that this function does not panic, as it will be called in a deferred function!
func WithErrCallback(fn func(err error, stack []byte, w http.ResponseWriter, r *http.Request)) Option {
	return func(o *options) {
		o.errCallback = fn
		o.errCallbackOverride = true
	}
}

// WithLogPrefix sets the log prefix for the recovery middleware.
// If a prefix is set, it will be prepended to each log message, separated
// by a space. The default value is an empty string.
func WithLogPrefix(prefix string) Option {
	return func(o *options) {
		o.logPrefix = prefix
	}
}

// WithExposeStackTrace sets whether the stack trace should be exposed in the response.
// If set to true, the stack trace will be included in the response body.
// This only applies to the default error callback. The default value is false.
func WithExposeStackTrace(expose bool) Option {
	return func(o *options) {
		o.exposeStackTrace = expose
	}
}

// newOptions is a function that returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		logPrefix:        "",
		exposeStackTrace: false,
		errCallback:      nil,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.errCallback == nil && !o.errCallbackOverride {
		o.errCallback = getDefaultErrCallback(o)
	}

	return o
}
