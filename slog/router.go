package slog

import (
	"context"
	"errors"
	"log/slog"
)

// Router sends records below a threshold level to one handler and records
// at or above it to another.
type Router struct {
	below     slog.Handler
	above     slog.Handler
	threshold slog.Level
}

// NewRouter creates a new Router. Records at threshold or above go to above.
func NewRouter(below, above slog.Handler, threshold slog.Level) *Router {
	return &Router{below: below, above: above, threshold: threshold}
}

func (r *Router) route(level slog.Level) slog.Handler {
	if level >= r.threshold {
		return r.above
	}
	return r.below
}

func (r *Router) Enabled(ctx context.Context, level slog.Level) bool {
	return r.route(level).Enabled(ctx, level)
}

func (r *Router) Handle(ctx context.Context, rec slog.Record) error {
	return r.route(rec.Level).Handle(ctx, rec)
}

func (r *Router) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Router{below: r.below.WithAttrs(attrs), above: r.above.WithAttrs(attrs), threshold: r.threshold}
}

func (r *Router) WithGroup(name string) slog.Handler {
	return &Router{below: r.below.WithGroup(name), above: r.above.WithGroup(name), threshold: r.threshold}
}

// Tee sends every record to all of its handlers.
type Tee []slog.Handler

func (t Tee) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t Tee) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, rec.Level) {
			errs = append(errs, h.Handle(ctx, rec.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t Tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(Tee, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t Tee) WithGroup(name string) slog.Handler {
	out := make(Tee, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}
