// Package errors provides structured, actionable error messages for vdsl.
//
// Every error carries a code (e.g., "E102") that maps to a short message, a
// longer explanation and a documentation link. Render failures add a
// suggestion telling the component author how to fix the block, and errors
// raised while playing a document carry the location of the offending node.
//
// # Error Categories
//
//   - render: a block produced something other than exactly one element
//   - resource: an element is still waiting on external data
//   - config: the project configuration could not be loaded
//   - document: a tree document is malformed
//   - cli: command line usage errors
//
// # Usage
//
//	err := errors.New("E102").
//	    WithDetail("Instead 2 elements were generated.").
//	    WithSuggestion("Do you want to wrap your elements in a div?")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E102: Improper render: too many elements
//	//
//	//   Instead 2 elements were generated.
//	//
//	//   Hint: Do you want to wrap your elements in a div?
//	//
//	//   Learn more: https://vdsl.dev/docs/errors/E102
package errors
