package token

import (
	"autocorrect/internal/source"
)

// Node is one region of a document. Leaves carry Text; containers carry
// Children.
type Node struct {
	Kind     Kind
	Lang     string // only for Embedded
	Span     source.Span
	Text     string
	Children []*Node
}

// Leaf builds a leaf node over src[start:end].
func Leaf(kind Kind, src string, start, end int) *Node {
	return &Node{Kind: kind, Span: source.SpanOf(start, end), Text: src[start:end]}
}

// EmbeddedLeaf builds an Embedded node for lang over src[start:end].
func EmbeddedLeaf(lang, src string, start, end int) *Node {
	n := Leaf(Embedded, src, start, end)
	n.Lang = lang
	return n
}

// Root wraps children into a Code container spanning the whole of src.
func Root(src string, children []*Node) *Node {
	return &Node{Kind: Code, Span: source.SpanOf(0, len(src)), Text: src, Children: children}
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Walk visits leaves in document order. Returning false stops the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if n.IsLeaf() {
		return fn(n)
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Leaves returns all leaves in document order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(l *Node) bool {
		out = append(out, l)
		return true
	})
	return out
}

// Concat reproduces the text covered by the tree.
func (n *Node) Concat() string {
	if n == nil {
		return ""
	}
	if n.IsLeaf() {
		return n.Text
	}
	size := 0
	n.Walk(func(l *Node) bool { size += len(l.Text); return true })
	buf := make([]byte, 0, size)
	n.Walk(func(l *Node) bool {
		buf = append(buf, l.Text...)
		return true
	})
	return string(buf)
}
