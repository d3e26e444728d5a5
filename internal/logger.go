package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// SetupLogging replaces the default slog logger with one that honors the
// given level and output format.
func SetupLogging(level string, pretty, json bool) {
	slog.SetDefault(slog.New(GetLoggingHandler(level, pretty, json)))
}

// GetLoggingHandler initializes a slog.Handler based on the provided logging level and format options.
func GetLoggingHandler(level string, pretty, json bool) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}

	// log output goes to stderr, stdout stays reserved for command output
	out := os.Stderr

	switch {
	case json:
		return slog.NewJSONHandler(out, opts)
	case pretty:
		return NewPrettyHandler(out, opts)
	default:
		return slog.NewTextHandler(out, opts)
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "trace", "debug":
		return slog.LevelDebug
	case "info", "information":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const prettyTimeFormat = "2006/01/02 15:04:05"

// PrettyHandler is a slog.Handler that writes log records as single
// human-readable lines, similar to the output of the stdlib log package.
type PrettyHandler struct {
	opts        slog.HandlerOptions
	groupPrefix string // accumulated group names, each followed by a dot
	attrText    string // preformatted attributes from WithAttrs, starts with a space

	mu sync.Mutex
	w  io.Writer
}

// NewPrettyHandler creates a new PrettyHandler that writes to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	h := &PrettyHandler{w: w}
	if opts != nil {
		h.opts = *opts
	}

	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// WithGroup returns a handler whose future attribute keys are qualified by
// the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	return &PrettyHandler{
		w:           h.w,
		opts:        h.opts,
		groupPrefix: h.groupPrefix + name + ".",
		attrText:    h.attrText,
	}
}

// WithAttrs returns a handler that includes the given attributes in every
// record it writes.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var buf []byte
	for _, a := range attrs {
		buf = h.appendAttr(buf, h.groupPrefix, a)
	}
	return &PrettyHandler{
		w:           h.w,
		opts:        h.opts,
		groupPrefix: h.groupPrefix,
		attrText:    h.attrText + string(buf),
	}
}

// Handle formats its argument Record as a single line of text ending in a newline.
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf []byte

	if !r.Time.IsZero() {
		buf = r.Time.AppendFormat(buf, prettyTimeFormat)
		buf = append(buf, ' ')
	}

	// pad (or cut) the level name to a fixed width so that messages align
	buf = fmt.Appendf(buf, "%-5.5s ", r.Level.String())

	if h.opts.AddSource && r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		frame, _ := frames.Next()
		buf = append(buf, frame.File...)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(frame.Line), 10)
		buf = append(buf, ' ')
	}

	buf = append(buf, r.Message...)
	buf = append(buf, h.attrText...)
	r.Attrs(func(a slog.Attr) bool {
		buf = h.appendAttr(buf, h.groupPrefix, a)
		return true
	})
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf)
	return err
}

func (h *PrettyHandler) appendAttr(buf []byte, prefix string, a slog.Attr) []byte {
	if a.Equal(slog.Attr{}) {
		return buf
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, groupAttr := range a.Value.Group() {
			buf = h.appendAttr(buf, prefix, groupAttr)
		}
		return buf
	}

	buf = append(buf, ' ')
	buf = append(buf, prefix...)
	buf = append(buf, a.Key...)
	buf = append(buf, '=')
	return fmt.Appendf(buf, "%v", a.Value.Any())
}
