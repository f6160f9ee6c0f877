// Package render serializes VNode trees to HTML.
//
// The renderer produces HTML5: text and attribute values are escaped, void
// elements (input, br, img, ...) have no closing tag and boolean attributes
// (disabled, checked, ...) are written by name only. Attributes are sorted
// so output is deterministic.
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// To stream HTML to a writer:
//
//	err := renderer.RenderToWriter(w, node)
//
// # Full Page Rendering
//
//	err := renderer.RenderPage(w, render.PageData{
//	    Title: "Orders",
//	    Body:  node,
//	})
//
// # Elements waiting on resources
//
// With RendererConfig.MarkWaiting, elements whose WaitingOnResources flag
// is set get data-waiting="true" and aria-busy="true", and RenderPage adds
// a stylesheet rule that dims them.
//
// # Security
//
// All text content is escaped. Raw HTML can be inserted using KindRaw
// nodes, but should only be used with trusted content.
package render
