package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"autocorrect/internal/source"
	"autocorrect/internal/token"
)

// CheckTree runs the region tree invariants every tokenizer must keep:
// 1) the root spans the whole source
// 2) leaves are non-empty, contiguous and carry exactly src[span]
// 3) every container covers the union of its children
// 4) only Embedded leaves carry a language, and they always do
func CheckTree(root *token.Node, src string) error {
	if root == nil {
		return fmt.Errorf("nil tree")
	}
	lenSrc, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return fmt.Errorf("len source overflow: %w", err)
	}
	if root.Span != (source.Span{Start: 0, End: lenSrc}) {
		return fmt.Errorf("root span %v does not cover source of %d bytes", root.Span, lenSrc)
	}
	if root.IsLeaf() {
		if root.Text != src {
			return fmt.Errorf("leaf root text differs from source")
		}
		return nil
	}

	var next uint32
	var failed error
	root.Walk(func(l *token.Node) bool {
		switch {
		case l.Span.Empty():
			failed = fmt.Errorf("empty leaf at %v", l.Span)
		case l.Span.Start != next:
			failed = fmt.Errorf("leaf %v does not start at %d", l.Span, next)
		case l.Span.End > lenSrc:
			failed = fmt.Errorf("leaf %v beyond source end %d", l.Span, lenSrc)
		case l.Text != src[l.Span.Start:l.Span.End]:
			failed = fmt.Errorf("leaf %v text %q differs from source", l.Span, l.Text)
		case (l.Kind == token.Embedded) != (l.Lang != ""):
			failed = fmt.Errorf("leaf %v: kind %v with lang %q", l.Span, l.Kind, l.Lang)
		}
		next = l.Span.End
		return failed == nil
	})
	if failed != nil {
		return failed
	}
	if next != lenSrc {
		return fmt.Errorf("leaves end at %d, source at %d", next, lenSrc)
	}
	return checkCover(root)
}

func checkCover(n *token.Node) error {
	if n.IsLeaf() {
		return nil
	}
	union := n.Children[0].Span
	for _, c := range n.Children {
		if err := checkCover(c); err != nil {
			return err
		}
		union = union.Cover(c.Span)
	}
	if union.Start < n.Span.Start || union.End > n.Span.End {
		return fmt.Errorf("container %v does not cover children %v", n.Span, union)
	}
	return nil
}
