package dsl

import "github.com/vango-dev/vdsl/pkg/vdom"

// Entry is one item of a Buffer: either an element or a raw string
// fragment. An Entry with a nil Node is a string.
type Entry struct {
	Node *vdom.VNode
	Text string
}

func nodeEntry(n *vdom.VNode) Entry { return Entry{Node: n} }
func textEntry(s string) Entry      { return Entry{Text: s} }

// IsText reports whether the entry is a raw string fragment.
func (e Entry) IsText() bool { return e.Node == nil }

// Value returns the entry as *vdom.VNode or string.
func (e Entry) Value() any {
	if e.Node != nil {
		return e.Node
	}
	return e.Text
}

// Pending reports whether the entry is an element waiting on resources.
func (e Entry) Pending() bool {
	return e.Node != nil && e.Node.WaitingOnResources
}

// String returns the string form of the entry.
func (e Entry) String() string {
	if e.Node != nil {
		return e.Node.String()
	}
	return e.Text
}

// is reports whether v is this entry: the same element, or an equal string.
func (e Entry) is(v any) bool {
	switch x := v.(type) {
	case *vdom.VNode:
		return e.Node != nil && e.Node == x
	case string:
		return e.Node == nil && e.Text == x
	}
	return false
}

// Buffer is the ordered list of results accumulated by one block.
// A Buffer belongs to exactly one nesting level of a Context.
type Buffer struct {
	entries []Entry
}

func newBuffer() *Buffer {
	return &Buffer{}
}

// Len returns the number of entries.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// Entries returns a copy of the entries.
func (b *Buffer) Entries() []Entry {
	if b == nil {
		return nil
	}
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Last returns the last entry, if any.
func (b *Buffer) Last() (Entry, bool) {
	if b.Len() == 0 {
		return Entry{}, false
	}
	return b.entries[len(b.entries)-1], true
}

// Nodes converts the entries to child nodes; strings become text nodes.
func (b *Buffer) Nodes() []*vdom.VNode {
	if b == nil {
		return nil
	}
	nodes := make([]*vdom.VNode, 0, len(b.entries))
	for _, e := range b.entries {
		if e.Node != nil {
			nodes = append(nodes, e.Node)
		} else {
			nodes = append(nodes, vdom.Text(e.Text))
		}
	}
	return nodes
}

// Contains reports whether n is in the buffer.
func (b *Buffer) Contains(n *vdom.VNode) bool {
	return b.index(n) >= 0
}

func (b *Buffer) anyPending() bool {
	if b == nil {
		return false
	}
	for _, e := range b.entries {
		if e.Pending() {
			return true
		}
	}
	return false
}

func (b *Buffer) push(e Entry) {
	b.entries = append(b.entries, e)
}

func (b *Buffer) index(n *vdom.VNode) int {
	if b == nil || n == nil {
		return -1
	}
	for i, e := range b.entries {
		if e.Node == n {
			return i
		}
	}
	return -1
}

// remove deletes every occurrence of n.
func (b *Buffer) remove(n *vdom.VNode) {
	if b == nil || n == nil {
		return
	}
	kept := b.entries[:0]
	for _, e := range b.entries {
		if e.Node != n {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(b.entries); i++ {
		b.entries[i] = Entry{}
	}
	b.entries = kept
}
