package dsl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vango-dev/vdsl/internal/errors"
	"github.com/vango-dev/vdsl/pkg/vdom"
)

// Block is the body of a nested construction. It may call Render on the
// same Context to append children, and its return value is the block's
// final value: a string, an element, a Pending placeholder, or anything
// else (which is only meaningful to the validator).
type Block func() (any, error)

// Pending is implemented by placeholder values that stand in for data that
// has not arrived yet. When a block returns a Pending that acts as a string,
// a span is rendered around its string form in the block's own scope.
type Pending interface {
	ActsAsString() bool
	String() string
}

// Waiter is anything that can report it is waiting on resources.
type Waiter interface {
	WaitingOnResources() bool
}

// Context is a rendering context: a stack of buffers (one per nesting
// level), the ambient waiting-on-resources flag, and the marker for the
// outermost render.
//
// A Context is not safe for concurrent use. Use one Context per render
// pass and goroutine.
type Context struct {
	buffer   *Buffer
	waiting  bool
	inRender bool
	built    int

	strict   bool
	logger   *slog.Logger
	observer Observer
	std      context.Context
}

// NewContext creates a rendering context.
func NewContext(opts ...Option) *Context {
	c := &Context{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.std == nil {
		c.std = context.Background()
	}
	return c
}

// Strict reports whether the context fails on elements waiting on resources.
func (c *Context) Strict() bool { return c.strict }

// StdContext returns the context.Context of the current render.
func (c *Context) StdContext() context.Context { return c.std }

// InRender reports whether a render is in progress.
func (c *Context) InRender() bool { return c.inRender }

// WaitingOnResources returns the ambient flag: set by a collaborator that
// found its data missing and not yet consumed by a construction.
func (c *Context) WaitingOnResources() bool { return c.waiting }

// SetWaitingOnResources sets the ambient flag. The next construction
// consumes it.
func (c *Context) SetWaitingOnResources(waiting bool) { c.waiting = waiting }

// MarkWaiting sets the ambient flag.
func (c *Context) MarkWaiting() { c.waiting = true }

// Current returns the active buffer.
func (c *Context) Current() *Buffer { return c.buffer }

// Tag renders an element without children.
func (c *Context) Tag(tag string, args ...any) (*vdom.VNode, error) {
	return c.Render(tag, nil, args...)
}

// Scope renders block as a component scope: its result must be exactly one
// element or string.
func (c *Context) Scope(block Block) (*vdom.VNode, error) {
	return c.Render(nil, block)
}

// Render constructs an element and appends it to the current buffer.
//
// name is a tag string, an existing *vdom.VNode (appended as is), a
// vdom.Component, or nil. With a block, a fresh buffer collects the
// block's children; with a nil name the block is a component scope and
// must produce exactly one element or string, which becomes the result
// (strings are wrapped in a span).
//
// Attribute values in args that are elements are removed from the current
// buffer first, so an element passed as a value is not also rendered in
// place.
func (c *Context) Render(name any, block Block, args ...any) (el *vdom.VNode, err error) {
	if !c.inRender {
		finish := c.beginOutermost(name)
		defer func() {
			if p := recover(); p != nil {
				finish(nil, fmt.Errorf("dsl: render panicked: %v", p))
				panic(p)
			}
			finish(el, err)
		}()
	}

	c.scrubArgs(args)

	if block != nil {
		el, err = c.renderBlock(name, block, args)
	} else {
		el, err = c.renderLeaf(name, args)
	}
	if err != nil {
		return nil, err
	}

	if c.strict && el.WaitingOnResources {
		return nil, notQuiet(el)
	}

	c.buffer.push(nodeEntry(el))
	c.waiting = false
	return el, nil
}

// beginOutermost marks the context as rendering and returns the function
// that tears the state down again. The teardown runs deferred so the
// marker and buffer are released on error returns and panics alike.
//
// A buffer that is already active, such as one opened by Build, stays the
// current buffer and receives the result.
func (c *Context) beginOutermost(name any) func(*vdom.VNode, error) {
	c.inRender = true
	entry := c.buffer
	if c.buffer == nil {
		c.buffer = newBuffer()
	}
	c.built = 0
	start := time.Now()

	outer := c.std
	done := func(RenderResult) {}
	if c.observer != nil {
		c.std, done = c.observer.BeginRender(outer, nameOf(name))
	}

	return func(el *vdom.VNode, err error) {
		result := RenderResult{
			Name:     nameOf(name),
			Element:  el,
			Err:      err,
			Elements: c.built,
			Duration: time.Since(start),
		}
		c.inRender = false
		c.buffer = entry
		c.waiting = false
		c.std = outer
		c.logResult(result)
		done(result)
	}
}

func (c *Context) renderLeaf(name any, args []any) (*vdom.VNode, error) {
	switch n := name.(type) {
	case *vdom.VNode:
		if n == nil {
			return nil, errors.New("E106").WithDetail("Render was given a nil element.")
		}
		return n, nil
	case string:
		el := vdom.CreateElement(n, args, nil)
		el.WaitingOnResources = c.waiting
		c.built++
		return el, nil
	case vdom.Component:
		el := &vdom.VNode{Kind: vdom.KindComponent, Comp: n}
		el.WaitingOnResources = c.waiting
		c.built++
		return el, nil
	case nil:
		return nil, errors.New("E106").WithDetail("Render needs a tag, an element or a block.")
	}
	return nil, errors.New("E106").WithDetailf("Render cannot construct an element from %T.", name)
}

func (c *Context) renderBlock(name any, block Block, args []any) (*vdom.VNode, error) {
	var tag string
	switch n := name.(type) {
	case string:
		tag = n
	case nil:
	default:
		return nil, errors.New("E106").WithDetailf("Render cannot take a block for %T; only tags and nil can.", name)
	}

	var el *vdom.VNode
	_, err := c.Build(func(buf *Buffer) (any, error) {
		saved := c.waiting
		c.waiting = false

		if err := c.runChildBlock(name == nil, block); err != nil {
			return nil, err
		}

		last, hasLast := buf.Last()
		switch {
		case name != nil:
			el = vdom.CreateElement(tag, args, buf.Nodes())
			c.built++
			el.WaitingOnResources = saved || buf.anyPending()
			if hasLast && last.IsText() && c.waiting {
				el.WaitingOnResources = true
			}
		case hasLast && last.Node != nil:
			el = last.Node
			el.WaitingOnResources = el.WaitingOnResources || saved
		default:
			text := last.Text
			span, err := c.Render("span", func() (any, error) { return text, nil })
			if err != nil {
				return nil, err
			}
			span.WaitingOnResources = saved
			el = span
		}
		return el, nil
	})
	if err != nil {
		return nil, err
	}
	return el, nil
}

// runChildBlock runs block and settles what its final value contributes to
// the current buffer:
//
//  1. a Pending that acts as a string: a span is rendered here so its
//     waiting flag lands on the element built in this scope;
//  2. a string: pushed;
//  3. an element while the buffer is empty: pushed;
//  4. anything else (typically the last element already pushed): nothing.
//
// A component scope is then validated to hold exactly the result.
func (c *Context) runChildBlock(outerScope bool, block Block) error {
	result, err := block()
	if err != nil {
		return err
	}

	switch r := result.(type) {
	case Pending:
		if r.ActsAsString() {
			s := r.String()
			span, err := c.Render("span", func() (any, error) { return s, nil })
			if err != nil {
				return err
			}
			result = span
		}
	case string:
		c.buffer.push(textEntry(r))
	case *vdom.VNode:
		if r != nil && c.buffer.Len() == 0 {
			c.buffer.push(nodeEntry(r))
		}
	}

	if outerScope {
		return c.validate(result)
	}
	return nil
}

// validate succeeds iff the buffer is exactly [result].
func (c *Context) validate(result any) error {
	if c.buffer.Len() == 1 && c.buffer.entries[0].is(result) {
		return nil
	}
	return improperRender(c.buffer, result)
}

// Build runs fn with a fresh buffer as the current one and restores the
// previous buffer afterwards, also when fn fails or panics.
func (c *Context) Build(fn func(buf *Buffer) (any, error)) (any, error) {
	prev := c.buffer
	c.buffer = newBuffer()
	defer func() { c.buffer = prev }()
	return fn(c.buffer)
}

// Text appends a raw string to the current buffer.
func (c *Context) Text(s string) {
	if c.buffer == nil {
		c.buffer = newBuffer()
	}
	c.buffer.push(textEntry(s))
}

// Delete removes el from the current buffer, if present, and returns it so
// it can be used as a value elsewhere.
func (c *Context) Delete(el *vdom.VNode) *vdom.VNode {
	c.buffer.remove(el)
	return el
}

// AsNode is Delete under the name used when an element is taken out of the
// flow to be passed around as a value.
func (c *Context) AsNode(el *vdom.VNode) *vdom.VNode {
	return c.Delete(el)
}

// Rendered reports whether el is in the current buffer.
func (c *Context) Rendered(el *vdom.VNode) bool {
	return c.buffer.Contains(el)
}

// Replace substitutes e2 for e1 in the current buffer. It fails with
// ErrNotRendered if e1 is not there and with ErrInvalidTarget if e2 is nil.
func (c *Context) Replace(e1, e2 *vdom.VNode) error {
	if e2 == nil {
		return errors.New("E106").WithDetail("Replace was given a nil element.")
	}
	i := c.buffer.index(e1)
	if i < 0 {
		return errors.New("E105").WithDetailf("%v is not in the current buffer.", e1)
	}
	c.buffer.entries[i] = nodeEntry(e2)
	return nil
}

// QuietTest fails with ErrNotQuiet if the context is strict and w is
// waiting on resources.
func (c *Context) QuietTest(w Waiter) error {
	if c.strict && w.WaitingOnResources() {
		return notQuiet(w)
	}
	return nil
}

// scrubArgs unlinks elements passed as arguments, either as children or
// as attribute values, from the current buffer. Values that are not
// elements are left alone.
func (c *Context) scrubArgs(args []any) {
	for _, arg := range args {
		switch v := arg.(type) {
		case *vdom.VNode:
			c.unlink(v)
		case []*vdom.VNode:
			for _, n := range v {
				c.unlink(n)
			}
		case vdom.Attr:
			c.unlink(v.Value)
		case []vdom.Attr:
			for _, a := range v {
				c.unlink(a.Value)
			}
		case vdom.Props:
			for _, value := range v {
				c.unlink(value)
			}
		}
	}
}

func (c *Context) unlink(v any) {
	if n, ok := v.(*vdom.VNode); ok && n != nil {
		c.Delete(n)
	}
}

func (c *Context) logResult(r RenderResult) {
	if r.Err == nil {
		c.logger.Debug("rendered", "name", r.Name, "elements", r.Elements, "duration", r.Duration)
		return
	}
	if errors.Is(r.Err, ErrNotQuiet) {
		c.logger.Debug("render not quiet", "name", r.Name, "error", r.Err)
		return
	}
	c.logger.Warn("render failed", "name", r.Name, "error", r.Err)
}

func nameOf(name any) string {
	switch n := name.(type) {
	case string:
		return n
	case *vdom.VNode:
		return "element"
	case vdom.Component:
		return "component"
	case nil:
		return "scope"
	}
	return "invalid"
}
