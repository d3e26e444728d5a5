package logging

import "log/slog"

// options is a struct that contains options for the logging middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	logLevel slog.Level
	prefix   string

	contextRequestIdKey string
	headerRequestIdKey  string
}

// Option is a type that is used to set options for the logging middleware.
// It implements the functional options pattern.
type Option func(*options)

// WithLevel sets the log level for the logging middleware.
// The default value is slog.LevelInfo.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.logLevel = level
	}
}

// WithPrefix sets the prefix for the logging middleware.
// If a prefix is set, it will be prepended to each log message, separated
// by a space. The default value is an empty string.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithContextRequestIdKey sets the key for the request ID in the request
// context. If a key is set, the logging middleware will use this key to
// retrieve the request ID from the request context.
// The default value is an empty string, meaning the request ID will not be logged.
func WithContextRequestIdKey(key string) Option {
	return func(o *options) {
		o.contextRequestIdKey = key
	}
}

// WithHeaderRequestIdKey sets the key for the request ID in the request
// headers. If a key is set, the logging middleware will use this key to
// retrieve the request ID from the request headers.
// The default value is an empty string, meaning the request ID will not be logged.
func WithHeaderRequestIdKey(key string) Option {
	return func(o *options) {
		o.headerRequestIdKey = key
	}
}

// newOptions is a function that returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		logLevel:            slog.LevelInfo,
		prefix:              "",
		contextRequestIdKey: "",
		headerRequestIdKey:  "",
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
