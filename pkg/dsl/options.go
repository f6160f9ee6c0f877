package dsl

import (
	"context"
	"log/slog"
)

// Option configures a Context.
type Option func(*Context)

// WithStrict makes a render fail with ErrNotQuiet instead of producing an
// element that is waiting on resources. Strict passes are used to detect
// whether a tree is fully loaded.
func WithStrict(strict bool) Option {
	return func(c *Context) {
		c.strict = strict
	}
}

// WithLogger sets the logger. If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		c.logger = logger
	}
}

// WithObserver sets the observer notified of every outermost render.
func WithObserver(o Observer) Option {
	return func(c *Context) {
		c.observer = o
	}
}

// WithStdContext sets the context.Context handed to the observer.
func WithStdContext(ctx context.Context) Option {
	return func(c *Context) {
		c.std = ctx
	}
}
