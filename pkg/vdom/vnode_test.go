package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{KindRaw, "Raw"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsElement(t *testing.T) {
	var nilNode *VNode
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"element", &VNode{Kind: KindElement, Tag: "div"}, true},
		{"text node", Text("hi"), true},
		{"typed nil", nilNode, false},
		{"nil", nil, false},
		{"string", "div", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsElement(tt.v); got != tt.want {
				t.Errorf("IsElement() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodePending(t *testing.T) {
	leaf := CreateElement("span", nil, nil)
	leaf.WaitingOnResources = true
	parent := CreateElement("div", nil, []*VNode{CreateElement("p", nil, []*VNode{leaf})})

	if !parent.Pending() {
		t.Error("parent should report a pending descendant")
	}
	if CreateElement("div", nil, nil).Pending() {
		t.Error("fresh element should not be pending")
	}
	var nilNode *VNode
	if nilNode.Pending() {
		t.Error("nil node should not be pending")
	}
}

func TestVNodeString(t *testing.T) {
	tests := []struct {
		node *VNode
		want string
	}{
		{CreateElement("td", nil, nil), "<td>"},
		{Text("hi"), `text("hi")`},
		{Raw("<b>x</b>"), "Raw"},
		{nil, "<nil>"},
	}

	for _, tt := range tests {
		if got := tt.node.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestAttrIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		attr Attr
		want bool
	}{
		{"empty attr", Attr{}, true},
		{"attr with key", Attr{Key: "class", Value: "test"}, false},
		{"attr with empty value", Attr{Key: "disabled", Value: ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.attr.IsEmpty(); got != tt.want {
				t.Errorf("Attr.IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFuncComponent(t *testing.T) {
	called := false
	comp := Func(func() *VNode {
		called = true
		return CreateElement("div", []any{Class("test")}, nil)
	})

	node := comp.Render()

	if !called {
		t.Error("Func component was not called")
	}
	if node == nil {
		t.Fatal("Render returned nil")
	}
	if node.Tag != "div" {
		t.Errorf("Tag = %v, want div", node.Tag)
	}
}
