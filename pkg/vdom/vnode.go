package vdom

import "fmt"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
	KindRaw                    // Raw HTML (dangerous)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Attributes
	Children []*VNode  // Child nodes
	Key      string    // Reconciliation key
	Text     string    // For KindText and KindRaw
	Comp     Component // For KindComponent

	// WaitingOnResources reports that this node, or something it was built
	// from, is still waiting on external data. It may be set after
	// construction.
	WaitingOnResources bool
}

// Props holds element attributes.
type Props map[string]any

// IsElement returns true if v is a node that can stand on its own in a
// rendered tree (anything but nil).
func IsElement(v any) bool {
	n, ok := v.(*VNode)
	return ok && n != nil
}

// Pending returns true if this node or any of its descendants is waiting on
// resources.
func (v *VNode) Pending() bool {
	if v == nil {
		return false
	}
	if v.WaitingOnResources {
		return true
	}
	for _, child := range v.Children {
		if child.Pending() {
			return true
		}
	}
	return false
}

// String returns a short description such as "<div>" or "text(\"hi\")".
func (v *VNode) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind {
	case KindElement:
		return "<" + v.Tag + ">"
	case KindText:
		return fmt.Sprintf("text(%q)", v.Text)
	case KindComponent:
		return fmt.Sprintf("component(%T)", v.Comp)
	default:
		return v.Kind.String()
	}
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}
