package document

import (
	"github.com/vango-dev/vdsl/internal/errors"
	"github.com/vango-dev/vdsl/pkg/dsl"
	"github.com/vango-dev/vdsl/pkg/vdom"
)

// Render plays the document body through c as a component scope and
// returns the single resulting element. Errors carry the location of the
// node that caused them.
func (d *Document) Render(c *dsl.Context) (*vdom.VNode, error) {
	p := &player{c: c, doc: d, active: map[string]bool{}}
	el, err := c.Scope(func() (any, error) {
		return p.playList(d.Body)
	})
	if err != nil && len(d.Body) > 0 {
		return nil, p.locate(err, d.Body[0])
	}
	return el, err
}

type player struct {
	c      *dsl.Context
	doc    *Document
	active map[string]bool
}

// placeholder is text that is still waiting on resources.
type placeholder struct {
	c    *dsl.Context
	text string
}

func (p placeholder) ActsAsString() bool { return true }

func (p placeholder) String() string {
	p.c.MarkWaiting()
	return p.text
}

// playList plays nodes in order. As in a hand-written block only the last
// value is the block's result, so earlier text is appended explicitly.
func (p *player) playList(nodes Nodes) (any, error) {
	var last any
	for i, n := range nodes {
		v, err := p.play(n)
		if err != nil {
			return nil, err
		}
		if i < len(nodes)-1 {
			switch s := v.(type) {
			case string:
				p.c.Text(s)
			case dsl.Pending:
				p.c.Text(s.String())
			}
		}
		last = v
	}
	return last, nil
}

func (p *player) play(n *Node) (any, error) {
	if n == nil {
		return nil, nil
	}
	v, err := p.playNode(n)
	if err != nil {
		return nil, p.locate(err, n)
	}
	return v, nil
}

func (p *player) playNode(n *Node) (any, error) {
	switch {
	case n.Use != "":
		return p.use(n)
	case n.Tag == "":
		return p.content(n)
	}

	if n.Pending {
		p.c.MarkWaiting()
	}

	args := make([]any, 0, 1)
	if len(n.Attrs) > 0 {
		args = append(args, vdom.Props(n.Attrs))
	}

	body := n.body()
	if len(body) == 0 {
		return p.c.Tag(n.Tag, args...)
	}
	return p.c.Render(n.Tag, func() (any, error) {
		return p.playList(body)
	}, args...)
}

// body returns the node's text or markdown followed by its children.
func (n *Node) body() Nodes {
	var body Nodes
	if n.Text != nil {
		body = append(body, &Node{Text: n.Text, Line: n.Line, Column: n.Column})
	}
	if n.Markdown != "" {
		body = append(body, &Node{Markdown: n.Markdown, Line: n.Line, Column: n.Column})
	}
	return append(body, n.Children...)
}

// content plays a node without a tag: text or markdown.
func (p *player) content(n *Node) (any, error) {
	switch {
	case len(n.Children) > 0 || len(n.Attrs) > 0:
		return nil, errors.New("E132").
			WithDetail("A node with attrs or children needs a tag.").
			WithExample("tag: div\nchildren:\n  - Hello")
	case n.Markdown != "":
		html, err := markdownToHTML(n.Markdown)
		if err != nil {
			return nil, errors.New("E132").WithDetail("Markdown could not be converted.").Wrap(err)
		}
		raw := vdom.Raw(html)
		raw.WaitingOnResources = n.Pending
		return p.c.Render(raw, nil)
	case n.Text != nil:
		if n.Pending {
			return placeholder{c: p.c, text: *n.Text}, nil
		}
		return *n.Text, nil
	}
	return nil, errors.New("E132").
		WithDetail("The node is empty: it needs a tag, use, text or markdown.")
}

// use plays a component in its own scope.
func (p *player) use(n *Node) (any, error) {
	if n.Tag != "" || len(n.Children) > 0 || n.Text != nil || n.Markdown != "" {
		return nil, errors.New("E132").
			WithDetailf("A node that uses %q cannot also have a tag or content.", n.Use)
	}
	nodes, ok := p.doc.Components[n.Use]
	if !ok {
		return nil, errors.New("E131").
			WithDetailf("%q is not defined in components.", n.Use).
			WithSuggestion("Add it under components, or check the spelling")
	}
	if p.active[n.Use] {
		return nil, errors.New("E132").WithDetailf("Component %q uses itself.", n.Use)
	}

	p.active[n.Use] = true
	defer delete(p.active, n.Use)

	if n.Pending {
		p.c.MarkWaiting()
	}
	return p.c.Scope(func() (any, error) {
		return p.playList(nodes)
	})
}

// locate attaches n's position to the first coded error that has none, so
// the innermost failing node is reported.
func (p *player) locate(err error, n *Node) error {
	var e *errors.Error
	if !errors.As(err, &e) || e.Location != nil || n.Line == 0 {
		return err
	}
	if p.doc.Path != "" {
		e.WithLocation(p.doc.Path, n.Line, n.Column)
	} else {
		e.Location = &errors.Location{File: p.doc.Name, Line: n.Line, Column: n.Column}
	}
	if len(e.Context) == 0 {
		e.WithContext(p.doc.contextLines(n.Line))
	}
	return err
}
