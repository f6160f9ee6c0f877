// Package vdom provides the element factory used by the vdsl rendering
// context.
//
// VNode is the fundamental building block representing elements, text,
// fragments, components, and raw HTML. Props holds attributes; Attr is used
// to build Props.
//
// # Element Factory
//
// CreateElement builds an element from a tag, construction arguments and a
// list of already collected children:
//
//	card := CreateElement("div", []any{Class("card"), ID("main")}, []*VNode{
//	    Text("Content"),
//	})
//
// Elements carry a WaitingOnResources flag that the rendering context sets
// when a node was built while external data was still pending.
package vdom
