// Package log provides structured logging (slog) for contracts. Records are
// serialized as JSON and shipped to the host through the debug_print import.
package log

import (
	"context"
	"encoding/json"
	"log/slog"
	"runtime"

	cdkruntime "github.com/c123chain/cdk-go/runtime"
)

// WasmLogHandler implements slog.Handler to route logs through a host function.
type WasmLogHandler struct {
	emit   func(string)
	attrs  []LogAttrWire
	groups string
	opts   handlerConfig
}

// HandlerOption configures the WasmLogHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level     slog.Level
	addSource bool
}

// defaultHandlerConfig returns the default configuration.
func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level: slog.LevelInfo,
	}
}

// WithLevel sets the minimum log level to report.
// Records below this level will be filtered on the guest side.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// NewHandler creates a new WasmLogHandler with the given options.
func NewHandler(opts ...HandlerOption) *WasmLogHandler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &WasmLogHandler{opts: cfg, emit: cdkruntime.Debug}
}

// Enabled reports whether the handler handles records at the given level.
func (h *WasmLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level
}

// Handle serializes a slog.Record and sends it to the host.
func (h *WasmLogHandler) Handle(_ context.Context, record slog.Record) error {
	msg := LogMessageWire{
		Level:     record.Level.String(),
		Message:   record.Message,
		Timestamp: record.Time,
	}
	msg.Attrs = append(msg.Attrs, h.attrs...)
	record.Attrs(func(attr slog.Attr) bool {
		msg.Attrs = append(msg.Attrs, flattenAttr(h.groups, attr)...)
		return true
	})
	if h.opts.addSource && record.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{record.PC})
		frame, _ := frames.Next()
		msg.Source = &SourceWire{Function: frame.Function, File: frame.File, Line: frame.Line}
	}

	data, err := json.Marshal(msg)
	if err != nil {
		// Fall back to the bare message so the line is not lost.
		h.emit(record.Message)
		return nil
	}
	h.emit(string(data))
	return nil
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *WasmLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]LogAttrWire(nil), h.attrs...)
	for _, attr := range attrs {
		next.attrs = append(next.attrs, flattenAttr(h.groups, attr)...)
	}
	return &next
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *WasmLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = qualify(h.groups, name)
	return &next
}
