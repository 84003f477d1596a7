// Package logging builds the shell's own operational log, kept distinct
// from any command's stdout/stderr, which always carry byte-exact output.
// The shell writes parse failures and a failed startup to it; the
// executor's pipeline diagnostics go to its own DiagnosticsOut writer
// rather than through this log.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/fatih/color"
)

// Handler is a slog.Handler that renders one colorized line per record
// plus sorted key=value attribute lines, in the style of a terminal tool
// rather than a structured-logging service.
type Handler struct {
	cfg    HandlerConfig
	attrs  []slog.Attr
	groups []string
	w      io.Writer
}

// HandlerConfig controls color and the minimum level shown.
type HandlerConfig struct {
	Color bool
	Level slog.Leveler
}

// Option configures a Handler.
type Option func(*HandlerConfig)

// WithColor enables or disables ANSI coloring, independent of whether w is
// a terminal — cmd/lsh decides this once at startup via term.IsTerminal.
func WithColor(enabled bool) Option {
	return func(cfg *HandlerConfig) { cfg.Color = enabled }
}

// WithLevel sets the minimum level the handler emits.
func WithLevel(level slog.Leveler) Option {
	return func(cfg *HandlerConfig) { cfg.Level = level }
}

// NewHandler returns a Handler writing to w.
func NewHandler(w io.Writer, opts ...Option) *Handler {
	cfg := HandlerConfig{Color: true, Level: slog.LevelInfo}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Handler{cfg: cfg, w: w}
}

func (h *Handler) clone() *Handler {
	nh := *h
	nh.attrs = append([]slog.Attr(nil), h.attrs...)
	nh.groups = append([]string(nil), h.groups...)
	return &nh
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	min := slog.LevelInfo
	if h.cfg.Level != nil {
		min = h.cfg.Level.Level()
	}
	return level >= min
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := h.clone()
	nh.attrs = append(nh.attrs, attrs...)
	return nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := h.clone()
	nh.groups = append(nh.groups, name)
	return nh
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	color.NoColor = !h.cfg.Color
	color.Output = h.w

	c := color.New()
	defer color.Unset()

	if _, err := c.Printf("%s ", record.Time.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("lsh log: write time: %w", err)
	}

	switch record.Level {
	case slog.LevelDebug:
		c = color.Set(color.FgCyan)
	case slog.LevelInfo:
		c = color.Set(color.FgBlue)
	case slog.LevelWarn:
		c = color.Set(color.FgYellow)
	case slog.LevelError:
		c = color.Set(color.FgRed)
	}
	if _, err := c.Printf("%-5s ", record.Level); err != nil {
		return fmt.Errorf("lsh log: write level: %w", err)
	}

	c = color.New()
	if _, err := c.Printf("%s\n", record.Message); err != nil {
		return fmt.Errorf("lsh log: write message: %w", err)
	}

	kv := make(map[string]slog.Value, len(h.attrs))
	for _, attr := range h.attrs {
		kv[attr.Key] = attr.Value
	}
	record.Attrs(func(attr slog.Attr) bool {
		kv[attr.Key] = attr.Value
		return true
	})

	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := c.Printf("    %s=%s\n", k, kv[k]); err != nil {
			return fmt.Errorf("lsh log: write %s: %w", k, err)
		}
	}
	return nil
}

// New returns a slog.Logger writing lsh's operational log to w.
func New(w io.Writer, color bool) *slog.Logger {
	return slog.New(NewHandler(w, WithColor(color)))
}
