package dsl

import (
	"fmt"

	"github.com/vango-dev/vdsl/internal/errors"
	"github.com/vango-dev/vdsl/pkg/vdom"
)

// Sentinels for errors.Is.
var (
	// ErrImproperRender matches every classified single-result failure.
	ErrImproperRender = errors.New("E100")

	// ErrNotRendered is returned by Replace when the element is absent.
	ErrNotRendered = errors.New("E105")

	// ErrInvalidTarget is returned for names Render cannot construct.
	ErrInvalidTarget = errors.New("E106")

	// ErrNotQuiet signals that an element is waiting on resources while
	// the context is strict.
	ErrNotQuiet = errors.New("E110")
)

const mustRenderOne = "A component's render must generate and return exactly 1 element or a string."

// improperRender classifies why buffer is not exactly [result].
// The first matching cause wins.
func improperRender(buffer *Buffer, result any) *errors.Error {
	switch {
	case buffer.Len() == 1:
		return errors.New("E101").
			WithDetail(mustRenderOne + " A different element was returned than was generated within the DSL.").
			WithSuggestion("Possibly improper use of Delete or AsNode.")
	case buffer.Len() > 1:
		return errors.New("E102").
			WithDetailf("%s Instead %d elements were generated.", mustRenderOne, buffer.Len()).
			WithSuggestion("Do you want to wrap your elements in a div?")
	}
	if comp, ok := result.(vdom.Component); ok {
		return errors.New("E103").
			WithDetailf("%s Instead the component %T was returned.", mustRenderOne, comp).
			WithSuggestion(fmt.Sprintf("Did you mean to render it with Render(%T)?", comp))
	}
	return errors.New("E104").
		WithDetailf("%s Instead the %T %v was returned.", mustRenderOne, result, result).
		WithSuggestion("You may need to convert this to a string.")
}

func notQuiet(subject any) *errors.Error {
	return errors.New("E110").WithDetailf("%v is waiting on resources.", subject)
}
