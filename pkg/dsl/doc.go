// Package dsl is the rendering context behind block-structured element
// construction.
//
// Code describes a tree by nesting Render calls. Each call with a block
// pushes a buffer; elements constructed inside the block append themselves
// to that buffer and become the children of the element being built:
//
//	c := dsl.NewContext()
//	card, err := c.Render("div", func() (any, error) {
//	    if _, err := c.Render("h1", func() (any, error) { return "Title", nil }); err != nil {
//	        return nil, err
//	    }
//	    return dsl.Para(c, "Content")
//	}, vdom.Class("card"))
//
// # Block Results
//
// The value a block returns is settled against its buffer: a string is
// appended as text, an element is appended only if the block generated
// nothing, and a Pending placeholder acting as a string is wrapped in a
// span. Anything else leaves the buffer alone.
//
// # Component Scopes
//
// Render with a nil name (or Scope) runs a component scope. A component
// must generate and return exactly one element or string; otherwise the
// render fails with an error matching ErrImproperRender whose code tells
// why: E101 (a different element was returned), E102 (several elements),
// E103 (a component was returned instead of rendered), E104 (a value of
// the wrong kind).
//
// # Waiting on Resources
//
// Collaborators that find their data missing call MarkWaiting. The next
// construction takes the flag, and parents inherit it from their
// children. With WithStrict(true), producing such an element fails with
// ErrNotQuiet instead.
//
// A Context is not safe for concurrent use.
package dsl
