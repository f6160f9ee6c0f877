// Package document plays declarative element documents through a
// dsl.Context.
//
// A document is YAML (or JSON) with a body and optional named components:
//
//	title: Order row
//	components:
//	  price:
//	    tag: td
//	    attrs: {class: num}
//	    text: "$10.00"
//	body:
//	  tag: tr
//	  children:
//	    - tag: td
//	      text: Widget
//	    - use: price
//	    - tag: td
//	      children:
//	        - text: "…"
//	          pending: true
//
// The body and every component use are component scopes: each must produce
// exactly one element or string, and a violation is reported with the line
// of the offending node. Text nodes marked pending stand in for data that
// has not arrived; they render inside a span that is waiting on resources.
// Markdown nodes are converted to HTML with goldmark.
package document
