package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Collector accumulates warning messages emitted during a run.
// It is safe for concurrent use; scrape sessions log from separate
// goroutines.
type Collector struct {
	mu       sync.Mutex
	warnings []string
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// add records a single formatted warning.
func (c *Collector) add(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, msg)
}

// Warnings returns a copy of the collected warnings in emission order.
func (c *Collector) Warnings() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Count returns the number of collected warnings.
func (c *Collector) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.warnings)
}

// CollectorHandler wraps another slog.Handler and records every log
// entry at Warn level or above in a Collector, in addition to passing
// the record through to the wrapped handler.
type CollectorHandler struct {
	handler   slog.Handler
	collector *Collector
}

// NewCollectorHandler wraps an existing handler with warning collection.
func NewCollectorHandler(handler slog.Handler, collector *Collector) *CollectorHandler {
	return &CollectorHandler{
		handler:   handler,
		collector: collector,
	}
}

// Enabled reports whether the handler handles records at the given level.
// Warnings are collected even when the wrapped handler would drop the
// record, so a quiet run still produces a complete summary.
func (h *CollectorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level >= slog.LevelWarn {
		return true
	}
	return h.handler.Enabled(ctx, level)
}

// Handle collects Warn-and-above records and forwards to the wrapped handler.
func (h *CollectorHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		h.collector.add(formatRecord(r))
	}
	if !h.handler.Enabled(ctx, r.Level) {
		return nil
	}
	return h.handler.Handle(ctx, r)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *CollectorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CollectorHandler{
		handler:   h.handler.WithAttrs(attrs),
		collector: h.collector,
	}
}

// WithGroup returns a new handler with the given group name.
func (h *CollectorHandler) WithGroup(name string) slog.Handler {
	return &CollectorHandler{
		handler:   h.handler.WithGroup(name),
		collector: h.collector,
	}
}

// formatRecord flattens a record to "message (key=value, ...)" for the
// summary. The structured form still reaches the wrapped handler.
func formatRecord(r slog.Record) string {
	msg := r.Message
	if r.NumAttrs() == 0 {
		return msg
	}

	attrs := ""
	r.Attrs(func(a slog.Attr) bool {
		if attrs != "" {
			attrs += ", "
		}
		attrs += fmt.Sprintf("%s=%v", a.Key, a.Value.Any())
		return true
	})
	return msg + " (" + attrs + ")"
}

// NewLogger creates a *slog.Logger writing text output to w.
// If verbose is true the level is Debug, otherwise Warn.
// If collector is non-nil, Warn-and-above records are also collected.
func NewLogger(w io.Writer, verbose bool, collector *Collector) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	var handler slog.Handler = slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	if collector != nil {
		handler = NewCollectorHandler(handler, collector)
	}

	return slog.New(handler)
}
