package dsl

import (
	"fmt"

	"github.com/vango-dev/vdsl/pkg/vdom"
)

// TagOf renders tag with the string form of v as its content. A
// vdom.Component is rendered as the tag's only child instead.
func TagOf(c *Context, tag string, v any, args ...any) (*vdom.VNode, error) {
	if comp, ok := v.(vdom.Component); ok {
		return c.Render(tag, func() (any, error) { return c.Render(comp, nil) }, args...)
	}
	s := StringOf(v)
	return c.Render(tag, func() (any, error) { return s, nil }, args...)
}

// Span renders <span> around the string form of v.
func Span(c *Context, v any, args ...any) (*vdom.VNode, error) {
	return TagOf(c, "span", v, args...)
}

// Td renders a table cell around the string form of v.
func Td(c *Context, v any, args ...any) (*vdom.VNode, error) {
	return TagOf(c, "td", v, args...)
}

// Th renders a table header cell around the string form of v.
func Th(c *Context, v any, args ...any) (*vdom.VNode, error) {
	return TagOf(c, "th", v, args...)
}

// Para renders <p> around the string form of v.
func Para(c *Context, v any, args ...any) (*vdom.VNode, error) {
	return TagOf(c, "p", v, args...)
}

// Br renders the string form of v followed by a line break, wrapped in a
// span.
func Br(c *Context, v any) (*vdom.VNode, error) {
	s := StringOf(v)
	return c.Render("span", func() (any, error) {
		c.Text(s)
		return c.Tag("br")
	})
}

// StringOf returns the string form used for element content.
func StringOf(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	}
	return fmt.Sprint(v)
}
