package format

import (
	"strings"
	"unicode"

	"autocorrect/internal/rule"
	"autocorrect/internal/token"
)

// line is one line of a region: body without terminator plus the original
// terminator ("\n", "\r\n" or "" for the last line). before and after hold
// inline code that touches the line from neighbouring regions; they are
// seen by the rules but never written.
type line struct {
	body   string
	term   string
	before string
	after  string
}

func (l line) full() string { return l.before + l.body + l.after }

type edges struct{ before, after string }

// inlineEdges returns the inline code spans of the Code siblings that touch
// siblings[i].
func inlineEdges(siblings []*token.Node, i int) edges {
	var e edges
	if siblings[i].Kind != token.Text {
		return e
	}
	if i > 0 {
		if p := siblings[i-1]; p.IsLeaf() && p.Kind == token.Code {
			e.before = trailingCode(p.Text)
		}
	}
	if i+1 < len(siblings) {
		if n := siblings[i+1]; n.IsLeaf() && n.Kind == token.Code {
			e.after = n.Text[:rule.CodeSpan(n.Text)]
		}
	}
	return e
}

// trailingCode returns the code span that ends s, if any.
func trailingCode(s string) string {
	if !strings.HasSuffix(s, "`") {
		return ""
	}
	from := strings.LastIndexByte(s, '\n') + 1
	for j := from; j < len(s); j++ {
		if s[j] != '`' || (j > from && s[j-1] == '`') {
			continue
		}
		if rule.CodeSpan(s[j:]) == len(s)-j {
			return s[j:]
		}
	}
	return ""
}

func splitLines(text string) []line {
	out := make([]line, 0, strings.Count(text, "\n")+1)
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			out = append(out, line{body: text})
			return out
		}
		body, term := text[:i], "\n"
		if strings.HasSuffix(body, "\r") {
			body, term = body[:len(body)-1], "\r\n"
		}
		out = append(out, line{body: body, term: term})
		text = text[i+1:]
	}
}

// leadingSpace counts leading whitespace characters.
func leadingSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}
