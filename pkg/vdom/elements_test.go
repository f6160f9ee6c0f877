package vdom

import "testing"

func TestCreateElement(t *testing.T) {
	t.Run("basic element", func(t *testing.T) {
		node := CreateElement("div", nil, nil)
		if node.Kind != KindElement {
			t.Errorf("Kind = %v, want KindElement", node.Kind)
		}
		if node.Tag != "div" {
			t.Errorf("Tag = %v, want div", node.Tag)
		}
		if len(node.Children) != 0 {
			t.Errorf("Children len = %d, want 0", len(node.Children))
		}
	})

	t.Run("with attributes", func(t *testing.T) {
		node := CreateElement("div", []any{Class("card"), ID("main")}, nil)
		if node.Props["class"] != "card" {
			t.Errorf("class = %v, want card", node.Props["class"])
		}
		if node.Props["id"] != "main" {
			t.Errorf("id = %v, want main", node.Props["id"])
		}
	})

	t.Run("class accumulates", func(t *testing.T) {
		node := CreateElement("div", []any{Class("a"), Class("b")}, nil)
		if node.Props["class"] != "a b" {
			t.Errorf("class = %v, want 'a b'", node.Props["class"])
		}
	})

	t.Run("props map and attr slice", func(t *testing.T) {
		node := CreateElement("td", []any{
			Props{"colspan": 2},
			[]Attr{Scope("row"), {}},
		}, nil)
		if node.Props["colspan"] != 2 {
			t.Errorf("colspan = %v, want 2", node.Props["colspan"])
		}
		if node.Props["scope"] != "row" {
			t.Errorf("scope = %v, want row", node.Props["scope"])
		}
		if _, ok := node.Props[""]; ok {
			t.Error("empty attribute should be ignored")
		}
	})

	t.Run("key attribute", func(t *testing.T) {
		node := CreateElement("li", []any{Key(7)}, nil)
		if node.Key != "7" {
			t.Errorf("Key = %q, want 7", node.Key)
		}
	})

	t.Run("argument children precede collected children", func(t *testing.T) {
		node := CreateElement("p", []any{"lead", nil, Text("x")}, []*VNode{Text("tail"), nil})
		if len(node.Children) != 3 {
			t.Fatalf("Children len = %d, want 3", len(node.Children))
		}
		if node.Children[0].Text != "lead" || node.Children[2].Text != "tail" {
			t.Errorf("children order = %v", node.Children)
		}
	})

	t.Run("component argument", func(t *testing.T) {
		comp := Func(func() *VNode { return Text("c") })
		node := CreateElement("div", []any{comp}, nil)
		if len(node.Children) != 1 || node.Children[0].Kind != KindComponent {
			t.Fatalf("expected one component child, got %v", node.Children)
		}
	})
}

func TestIsVoidElement(t *testing.T) {
	for _, tag := range []string{"br", "img", "input", "hr"} {
		if !IsVoidElement(tag) {
			t.Errorf("IsVoidElement(%q) = false, want true", tag)
		}
	}
	for _, tag := range []string{"div", "span", "td"} {
		if IsVoidElement(tag) {
			t.Errorf("IsVoidElement(%q) = true, want false", tag)
		}
	}
}
