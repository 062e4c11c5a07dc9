package token

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human-readable listing of the tree, one leaf per line.
func Dump(w io.Writer, n *Node) error {
	return dump(w, n, 0)
}

func dump(w io.Writer, n *Node, depth int) error {
	if n == nil {
		return nil
	}
	indent := strings.Repeat("  ", depth)
	label := n.Kind.String()
	if n.Kind == Embedded {
		label += "(" + n.Lang + ")"
	}
	if !n.IsLeaf() {
		if _, err := fmt.Fprintf(w, "%s%s %s\n", indent, label, n.Span); err != nil {
			return err
		}
		for _, c := range n.Children {
			if err := dump(w, c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := fmt.Fprintf(w, "%s%-16s %-12s %q\n", indent, label, n.Span, n.Text)
	return err
}
