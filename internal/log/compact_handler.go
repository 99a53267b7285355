package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// maxAttrLen bounds the length of a single string attribute value.
// Entry bodies run to a few hundred characters; anything longer in a
// log line is page content that escaped extraction.
const maxAttrLen = 256

// truncationMarker is appended to values cut at maxAttrLen.
const truncationMarker = "...(truncated)"

// CompactHandler wraps an slog.Handler to keep log records one line
// and bounded in size. String attribute values have newlines flattened
// to spaces and are truncated at maxAttrLen.
//
// Design decision: We use a handler wrapper rather than a custom
// logger because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Libraries that accept *slog.Logger get the same treatment
type CompactHandler struct {
	// handler is the underlying slog handler that receives compacted
	// records.
	handler slog.Handler
}

// NewCompactHandler creates a CompactHandler wrapping the given
// handler.
func NewCompactHandler(handler slog.Handler) *CompactHandler {
	return &CompactHandler{handler: handler}
}

// Enabled reports whether the underlying handler handles records at
// the given level.
func (h *CompactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle compacts the record's attributes and passes it on.
func (h *CompactHandler) Handle(ctx context.Context, record slog.Record) error {
	compacted := slog.NewRecord(record.Time, record.Level, compactString(record.Message), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		compacted.AddAttrs(h.compactAttr(a))
		return true
	})
	return h.handler.Handle(ctx, compacted)
}

// WithAttrs returns a new CompactHandler with the given attributes
// compacted and added.
func (h *CompactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	compacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		compacted[i] = h.compactAttr(a)
	}
	return &CompactHandler{handler: h.handler.WithAttrs(compacted)}
}

// WithGroup returns a new CompactHandler with the given group name.
func (h *CompactHandler) WithGroup(name string) slog.Handler {
	return &CompactHandler{handler: h.handler.WithGroup(name)}
}

// compactAttr compacts a single attribute, recursively handling groups.
func (h *CompactHandler) compactAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		compacted := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			compacted[i] = h.compactAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(compacted...)}
	case slog.KindString:
		return slog.String(a.Key, compactString(a.Value.String()))
	case slog.KindAny:
		// Errors carry multi-line text through Error() just like
		// string attributes do.
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, compactString(err.Error()))
		}
		return a
	default:
		return a
	}
}

// compactString flattens newlines and truncates over-long values.
func compactString(s string) string {
	if strings.ContainsAny(s, "\n\r\t") {
		s = strings.Join(strings.Fields(s), " ")
	}
	if len(s) > maxAttrLen {
		s = s[:maxAttrLen] + truncationMarker
	}
	return s
}

// NewCompactLogger creates a new slog.Logger with compact handling.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or
// passed to components that accept *slog.Logger.
func NewCompactLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewCompactHandler(textHandler))
}
