package document

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/vdsl/internal/errors"
	"gopkg.in/yaml.v3"
)

// Document is a declarative element tree. The body is played as a
// component scope, so it must produce exactly one element or string.
type Document struct {
	// Title is shown by the preview server.
	Title string `yaml:"title"`

	// Strict overrides the project setting for this document when set.
	Strict *bool `yaml:"strict"`

	// Components are named node lists the body can use. Each use is a
	// component scope of its own.
	Components map[string]Nodes `yaml:"components"`

	// Body is the document content.
	Body Nodes `yaml:"body"`

	// Name is the document name, the file name without extension.
	Name string `yaml:"-"`

	// Path is the file the document was read from, if any.
	Path string `yaml:"-"`

	source []string
}

// Node is one entry of a document tree. A node is either:
//   - a string, which is text content;
//   - a mapping with use, naming a component;
//   - a mapping with tag and optional attrs, text, markdown and children;
//   - a mapping with only text or markdown, which is content without an
//     element of its own.
//
// pending marks the node as waiting on resources: the element built for it
// takes the flag, and text becomes a placeholder rendered inside a span.
type Node struct {
	Tag      string         `yaml:"tag"`
	Attrs    map[string]any `yaml:"attrs"`
	Text     *string        `yaml:"text"`
	Markdown string         `yaml:"markdown"`
	Children Nodes          `yaml:"children"`
	Use      string         `yaml:"use"`
	Pending  bool           `yaml:"pending"`

	// Line and Column locate the node in its source.
	Line   int `yaml:"-"`
	Column int `yaml:"-"`
}

// UnmarshalYAML accepts a bare string as a text node and records the
// node's position.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	n.Line, n.Column = value.Line, value.Column

	if value.Kind == yaml.ScalarNode {
		text := value.Value
		n.Text = &text
		return nil
	}

	if value.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(value.Content); i += 2 {
			key := value.Content[i]
			if !nodeFields[key.Value] {
				return fmt.Errorf("line %d: unknown node field %q", key.Line, key.Value)
			}
		}
	}

	type plain Node
	p := plain{}
	if err := value.Decode(&p); err != nil {
		return err
	}
	p.Line, p.Column = value.Line, value.Column
	*n = Node(p)
	return nil
}

var nodeFields = map[string]bool{
	"tag": true, "attrs": true, "text": true, "markdown": true,
	"children": true, "use": true, "pending": true,
}

// Nodes is a list of nodes. A single node may be written without the
// enclosing list.
type Nodes []*Node

// UnmarshalYAML implements yaml.Unmarshaler.
func (ns *Nodes) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		n := &Node{}
		if err := value.Decode(n); err != nil {
			return err
		}
		*ns = Nodes{n}
		return nil
	}

	var list []*Node
	if err := value.Decode(&list); err != nil {
		return err
	}
	*ns = list
	return nil
}

// Parse decodes a document from YAML or JSON source. name is used in
// error locations.
func Parse(name string, src []byte) (*Document, error) {
	doc := &Document{Name: name}

	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil {
		if err == io.EOF {
			return nil, errors.New("E130").WithDetailf("%s is empty.", name)
		}
		return nil, errors.New("E130").
			WithDetailf("%s: %v", name, err).
			WithSuggestion("Documents are YAML or JSON with a body and optional components")
	}
	doc.source = strings.Split(string(src), "\n")

	if len(doc.Body) == 0 {
		return nil, errors.New("E130").
			WithDetailf("%s has no body.", name).
			WithExample("body:\n  tag: p\n  text: Hello")
	}
	return doc, nil
}

// ParseFile reads and decodes a document file. The document is named after
// the file, without extension.
func ParseFile(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E133").WithDetailf("%s does not exist.", path)
		}
		return nil, errors.New("E130").Wrap(err)
	}

	doc, err := Parse(NameOf(path), src)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// NameOf returns the document name for a file path.
func NameOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// contextLines returns the source lines around line, as shown in error
// output.
func (d *Document) contextLines(line int) []string {
	if line <= 0 || len(d.source) == 0 {
		return nil
	}
	start := max(line-3, 0)
	end := min(line+2, len(d.source))
	if start >= end {
		return nil
	}
	return d.source[start:end]
}
