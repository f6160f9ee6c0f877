package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/vdsl/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// MarkWaiting adds data-waiting="true" and aria-busy="true" to elements
	// that are waiting on resources, so a page can style placeholders.
	MarkWaiting bool
}

// Renderer serializes VNode trees to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// Config returns the renderer's configuration.
func (r *Renderer) Config() RendererConfig { return r.config }

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0, r.config.Pretty)
}

// renderNode writes node at depth. pretty is false below inline parents,
// whose children stay on one line.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int, pretty bool) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth, pretty)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth, pretty); err != nil {
				return err
			}
		}
		return nil
	case vdom.KindComponent:
		if node.Comp == nil {
			return nil
		}
		return r.renderNode(w, node.Comp.Render(), depth, pretty)
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	default:
		return fmt.Errorf("render: unknown node kind %d", node.Kind)
	}
}

func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int, pretty bool) error {
	tag := node.Tag

	if pretty && depth > 0 {
		if err := r.writeIndent(w, depth); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if vdom.IsVoidElement(tag) {
		return r.newline(w, pretty)
	}

	block := pretty && !isInlineElement(tag) && hasElementChild(node)
	if block {
		if err := r.newline(w, true); err != nil {
			return err
		}
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1, block); err != nil {
			return err
		}
	}

	if block {
		if err := r.writeIndent(w, depth); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, "</"+tag+">"); err != nil {
		return err
	}
	return r.newline(w, pretty)
}

// renderAttributes writes attributes sorted by name. Keys starting with an
// underscore, the key attribute and values that cannot be serialized
// (elements, components and functions) are skipped.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if key == "key" || strings.HasPrefix(key, "_") {
			continue
		}
		if err := writeAttr(w, key, node.Props[key]); err != nil {
			return err
		}
	}

	if r.config.MarkWaiting && node.WaitingOnResources {
		for _, key := range []string{"data-waiting", "aria-busy"} {
			if _, set := node.Props[key]; set {
				continue
			}
			if _, err := io.WriteString(w, " "+key+`="true"`); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeAttr(w io.Writer, key string, value any) error {
	if isBooleanAttr(key) {
		if b, ok := value.(bool); ok {
			if !b {
				return nil
			}
			_, err := io.WriteString(w, " "+key)
			return err
		}
	}

	s, ok := attrToString(value)
	if !ok || s == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(s))
	return err
}

// attrToString converts an attribute value to its HTML form. The second
// result is false for values that have no attribute form.
func attrToString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case *vdom.VNode, vdom.Component:
		return "", false
	case fmt.Stringer:
		return v.String(), true
	}
	if strings.HasPrefix(fmt.Sprintf("%T", value), "func") {
		return "", false
	}
	return fmt.Sprintf("%v", value), true
}

func hasElementChild(node *vdom.VNode) bool {
	for _, child := range node.Children {
		if child != nil && child.Kind == vdom.KindElement {
			return true
		}
	}
	return false
}

func (r *Renderer) newline(w io.Writer, pretty bool) error {
	if !pretty {
		return nil
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (r *Renderer) writeIndent(w io.Writer, depth int) error {
	_, err := io.WriteString(w, strings.Repeat(r.config.Indent, depth))
	return err
}
