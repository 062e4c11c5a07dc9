package lexer

import (
	"strings"

	"autocorrect/internal/token"
)

// rawText lists elements whose content is not markup, with the region id
// their body is delegated to. An empty id means the body is Code.
var rawText = map[string]string{
	"style":    "css",
	"script":   "javascript",
	"pre":      "",
	"code":     "",
	"textarea": "",
}

// HTML splits an HTML document. Tags, doctypes and entities are Code,
// comments are Comment, the rest is Text. <style> and <script> bodies are
// Embedded.
type HTML struct{}

func (HTML) Tokenize(src string) (*token.Node, error) {
	h := &htmlScanner{src: src, c: NewCursor(src), b: token.NewBuilder(src)}
	if err := h.run(); err != nil {
		return nil, err
	}
	return h.b.Finish(), nil
}

type htmlScanner struct {
	src  string
	c    Cursor
	b    *token.Builder
	text int
}

func (h *htmlScanner) region(kind token.Kind, start, end int) {
	h.b.Emit(token.Text, h.text, start)
	h.b.Emit(kind, start, end)
	h.text = end
}

func (h *htmlScanner) run() error {
	for !h.c.EOF() {
		start := h.c.Pos()
		switch ch := h.c.Peek(); {
		case h.c.HasPrefix("<!--"):
			if !h.c.SkipPast("-->") {
				return failAt(h.src, start, "unterminated comment")
			}
			h.region(token.Comment, start, h.c.Pos())
		case ch == '<':
			_, next, _ := h.c.Peek2()
			if next != '/' && next != '!' && next != '?' && !isASCIILetter(next) {
				h.c.Bump()
				continue
			}
			name, closing, err := h.tag(start)
			if err != nil {
				return err
			}
			h.region(token.Code, start, h.c.Pos())
			if lang, ok := rawText[name]; ok && !closing {
				if err := h.raw(name, lang); err != nil {
					return err
				}
			}
		case ch == '&':
			h.entity(start)
		default:
			h.c.Bump()
		}
	}
	h.b.Emit(token.Text, h.text, len(h.src))
	return nil
}

// tag consumes one tag and returns its lower-cased name. Quoted attribute
// values may contain '>'.
func (h *htmlScanner) tag(start int) (name string, closing bool, err error) {
	h.c.Bump() // <
	closing = h.c.Eat('/')
	nameStart := h.c.Pos()
	for !h.c.EOF() {
		b := h.c.Peek()
		if b == '>' || b == '/' || b <= ' ' {
			break
		}
		h.c.Bump()
	}
	name = strings.ToLower(h.src[nameStart:h.c.Pos()])
	selfClosing := false
	var quote byte
	for !h.c.EOF() {
		b := h.c.Bump()
		switch {
		case quote != 0:
			if b == quote {
				quote = 0
			}
		case b == '"' || b == '\'':
			quote = b
		case b == '/':
			selfClosing = h.c.Peek() == '>'
		case b == '>':
			if selfClosing {
				return "", closing, nil
			}
			return name, closing, nil
		}
	}
	return "", false, failAt(h.src, start, "unterminated tag <%s", name)
}

// raw consumes the body of a raw text element up to its end tag.
func (h *htmlScanner) raw(name, lang string) error {
	start := h.c.Pos()
	end := indexFold(h.c.Rest(), "</"+name)
	if end < 0 {
		return failAt(h.src, start, "unterminated <%s> element", name)
	}
	h.c.Skip(end)
	bodyEnd := h.c.Pos()
	if lang == "" {
		h.region(token.Code, start, bodyEnd)
		return nil
	}
	h.b.Emit(token.Text, h.text, start)
	h.b.EmitEmbedded(lang, start, bodyEnd)
	h.text = bodyEnd
	return nil
}

// entity marks "&name;" and "&#123;" as Code; a bare '&' stays prose.
func (h *htmlScanner) entity(start int) {
	h.c.Bump()
	n := 0
	for !h.c.EOF() && n < 32 {
		b := h.c.Peek()
		if b == ';' {
			if n > 0 {
				h.c.Bump()
				h.region(token.Code, start, h.c.Pos())
			}
			return
		}
		if !isASCIILetter(b) && !(b >= '0' && b <= '9') && b != '#' {
			return
		}
		h.c.Bump()
		n++
	}
}

func indexFold(s, sub string) int {
	n := len(sub)
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], sub) {
			return i
		}
	}
	return -1
}
