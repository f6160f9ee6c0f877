package dsl

import (
	"context"
	"time"

	"github.com/vango-dev/vdsl/pkg/vdom"
)

// RenderResult describes a finished outermost render.
type RenderResult struct {
	// Name is the tag, "element", "component" or "scope" for a nil name.
	Name string

	// Element is the produced element, nil on error.
	Element *vdom.VNode

	// Err is the error the render returned, if any.
	Err error

	// Elements is the number of elements constructed during the render.
	Elements int

	// Duration is the wall time of the render.
	Duration time.Duration
}

// Observer is notified when an outermost render starts and finishes.
// BeginRender returns the context to use for the duration of the render
// and a function called exactly once with the result, also when the render
// panics.
type Observer interface {
	BeginRender(ctx context.Context, name string) (context.Context, func(RenderResult))
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, name string) (context.Context, func(RenderResult))

// BeginRender implements Observer.
func (f ObserverFunc) BeginRender(ctx context.Context, name string) (context.Context, func(RenderResult)) {
	return f(ctx, name)
}

// Observers fans out to several observers.
type Observers []Observer

// BeginRender implements Observer.
func (obs Observers) BeginRender(ctx context.Context, name string) (context.Context, func(RenderResult)) {
	finishers := make([]func(RenderResult), 0, len(obs))
	for _, o := range obs {
		if o == nil {
			continue
		}
		var done func(RenderResult)
		ctx, done = o.BeginRender(ctx, name)
		finishers = append(finishers, done)
	}
	return ctx, func(r RenderResult) {
		for i := len(finishers) - 1; i >= 0; i-- {
			finishers[i](r)
		}
	}
}
