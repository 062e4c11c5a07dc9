package testkit

import (
	"testing"

	"autocorrect/internal/token"
)

func TestCheckTree(t *testing.T) {
	src := "// 注释\nx := 1\n"
	b := token.NewBuilder(src)
	b.Emit(token.Comment, 0, len("// 注释"))
	if err := CheckTree(b.Finish(), src); err != nil {
		t.Fatalf("valid tree rejected: %v", err)
	}

	if err := CheckTree(token.Root("", nil), ""); err != nil {
		t.Fatalf("empty source rejected: %v", err)
	}

	gap := token.Root(src, []*token.Node{token.Leaf(token.Code, src, 0, 3)})
	if err := CheckTree(gap, src); err == nil {
		t.Fatal("tree with uncovered tail accepted")
	}

	lang := token.Root(src, []*token.Node{token.Leaf(token.Code, src, 0, len(src))})
	lang.Children[0].Lang = "go"
	if err := CheckTree(lang, src); err == nil {
		t.Fatal("code leaf with a language accepted")
	}

	if err := CheckTree(nil, src); err == nil {
		t.Fatal("nil tree accepted")
	}
}
