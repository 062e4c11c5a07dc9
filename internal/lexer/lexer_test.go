package lexer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"autocorrect/internal/token"
)

type leaf struct {
	kind string
	text string
}

func leavesOf(t *testing.T, n *token.Node, src string) []leaf {
	t.Helper()
	if got := n.Concat(); got != src {
		t.Fatalf("tree does not cover the source:\nwant %q\ngot  %q", src, got)
	}
	var out []leaf
	for _, l := range n.Leaves() {
		k := l.Kind.String()
		if l.Kind == token.Embedded {
			k += "(" + l.Lang + ")"
		}
		out = append(out, leaf{k, l.Text})
	}
	return out
}

func sameLeaves(t *testing.T, want, got []leaf) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("leaf count: want %d, got %d\nwant %v\ngot  %v", len(want), len(got), want, got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("leaf %d: want %s %q, got %s %q", i, want[i].kind, want[i].text, got[i].kind, got[i].text)
		}
	}
}

func TestPlain(t *testing.T) {
	src := "你好world\n第二行"
	n, err := Plain{}.Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	sameLeaves(t, []leaf{{"Text", src}}, leavesOf(t, n, src))
}

func TestMarkdownDocument(t *testing.T) {
	src := "---\ntitle: 标题\n---\n# 你好world\n\n```js\nlet a = \"中文\";\n```\n看[链接](http://x.com)和<!-- autocorrect-disable -->\n"
	n, err := Markdown{}.Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	sameLeaves(t, []leaf{
		{"Code", "---\ntitle: 标题\n---\n"},
		{"Text", "# 你好world\n\n"},
		{"Code", "```js\n"},
		{"Embedded(js)", "let a = \"中文\";\n"},
		{"Code", "```\n"},
		{"Text", "看[链接]"},
		{"Code", "(http://x.com)"},
		{"Text", "和"},
		{"Comment", "<!-- autocorrect-disable -->"},
		{"Text", "\n"},
	}, leavesOf(t, n, src))
}

func TestMarkdownFences(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []leaf
	}{
		{
			name: "no info string",
			src:  "```\n中文abc\n```\n",
			want: []leaf{{"Code", "```\n中文abc\n```\n"}},
		},
		{
			name: "unterminated",
			src:  "~~~Go\nfoo\n",
			want: []leaf{{"Code", "~~~Go\n"}, {"Embedded(go)", "foo\n"}},
		},
		{
			name: "longer closing fence",
			src:  "````css\na{}\n`````\n文字",
			want: []leaf{{"Code", "````css\n"}, {"Embedded(css)", "a{}\n"}, {"Code", "`````\n"}, {"Text", "文字"}},
		},
		{
			name: "backticks in info are inline code",
			src:  "```a`b```\n",
			want: []leaf{{"Text", "```a`b```\n"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Markdown{}.Tokenize(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			sameLeaves(t, tt.want, leavesOf(t, n, tt.src))
		})
	}
}

func TestMarkdownLinks(t *testing.T) {
	src := "见<https://a.com>和https://b.com中文，用`code`吧 a < b"
	n, err := Markdown{}.Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	sameLeaves(t, []leaf{
		{"Text", "见"},
		{"Code", "<https://a.com>"},
		{"Text", "和"},
		{"Code", "https://b.com"},
		{"Text", "中文，用"},
		{"Code", "`code`"},
		{"Text", "吧 a < b"},
	}, leavesOf(t, n, src))
}

func TestMarkdownInlineCode(t *testing.T) {
	src := "用``a ` b``和`x`，单个`不算"
	n, err := Markdown{}.Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	sameLeaves(t, []leaf{
		{"Text", "用"},
		{"Code", "``a ` b``"},
		{"Text", "和"},
		{"Code", "`x`"},
		{"Text", "，单个`不算"},
	}, leavesOf(t, n, src))
}

func TestMarkdownUnclosedFrontMatterIsProse(t *testing.T) {
	src := "---\n你好world\n"
	n, err := Markdown{}.Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	sameLeaves(t, []leaf{{"Text", src}}, leavesOf(t, n, src))
}

func TestHTMLDocument(t *testing.T) {
	src := "<p>你好world</p><!-- x --><style>\n/* 注释abc */\n</style>&nbsp;文字 a < b & c"
	n, err := HTML{}.Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	sameLeaves(t, []leaf{
		{"Code", "<p>"},
		{"Text", "你好world"},
		{"Code", "</p>"},
		{"Comment", "<!-- x -->"},
		{"Code", "<style>"},
		{"Embedded(css)", "\n/* 注释abc */\n"},
		{"Code", "</style>&nbsp;"},
		{"Text", "文字 a < b & c"},
	}, leavesOf(t, n, src))
}

func TestHTMLRawElements(t *testing.T) {
	src := `<script type="text/javascript">let s = "a>b";</SCRIPT><pre>中文abc</pre><br/>`
	n, err := HTML{}.Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	sameLeaves(t, []leaf{
		{"Code", `<script type="text/javascript">`},
		{"Embedded(javascript)", `let s = "a>b";`},
		{"Code", `</SCRIPT><pre>中文abc</pre><br/>`},
	}, leavesOf(t, n, src))
}

func TestHTMLErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"<p>ok</p>\n<!-- open", "2:1"},
		{`<div class="a>`, "1:1"},
		{"<script>let a", "1:9"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			n, err := HTML{}.Tokenize(tt.src)
			if !errors.Is(err, ErrTokenize) {
				t.Fatalf("want ErrTokenize, got %v", err)
			}
			if n != nil {
				t.Fatal("no tree on failure")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not point at %s", err, tt.want)
			}
		})
	}
}

func TestChromaGo(t *testing.T) {
	c, err := NewChroma("go")
	if err != nil {
		t.Fatal(err)
	}
	src := "package main\n\nvar x = \"你好world\" // 注释abc\n"
	n, err := c.Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	var text, comment bool
	for _, l := range leavesOf(t, n, src) {
		switch {
		case l.kind == "Text" && strings.Contains(l.text, "你好world"):
			text = true
		case l.kind == "Comment" && strings.Contains(l.text, "注释abc"):
			comment = true
		case strings.Contains(l.text, "package"):
			if l.kind != "Code" {
				t.Errorf("keyword in %s leaf", l.kind)
			}
		}
	}
	if !text || !comment {
		t.Fatalf("string text=%v comment=%v", text, comment)
	}
}

func TestChromaNoTrailingNewline(t *testing.T) {
	for _, name := range []string{"go", "python", "yaml", "javascript"} {
		t.Run(name, func(t *testing.T) {
			c, err := NewChroma(name)
			if err != nil {
				t.Fatal(err)
			}
			src := "# 注释"
			if name == "go" || name == "javascript" {
				src = "// 注释"
			}
			n, err := c.Tokenize(src)
			if err != nil {
				t.Fatal(err)
			}
			leavesOf(t, n, src)
		})
	}
}

func TestChromaUnknown(t *testing.T) {
	if _, err := NewChroma("no-such-language-here"); err == nil {
		t.Fatal("expected an error")
	}
}

func ExampleMarkdown() {
	n, _ := Markdown{}.Tokenize("看<!-- x -->文档\n")
	for _, l := range n.Leaves() {
		fmt.Printf("%s %q\n", l.Kind, l.Text)
	}
	// Output:
	// Text "看"
	// Comment "<!-- x -->"
	// Text "文档\n"
}
