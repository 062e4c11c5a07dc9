package lexer

import (
	"strings"

	"autocorrect/internal/rule"
	"autocorrect/internal/token"
)

// Markdown splits a markdown document. Front matter, inline code, link
// targets, autolinks, bare URLs and inline HTML tags are Code; HTML comments
// are Comment; fenced blocks with an info string are Embedded under the info
// language.
type Markdown struct{}

func (Markdown) Tokenize(src string) (*token.Node, error) {
	m := &mdScanner{src: src, c: NewCursor(src), b: token.NewBuilder(src), bol: true}
	m.frontMatter()
	m.run()
	return m.b.Finish(), nil
}

type mdScanner struct {
	src  string
	c    Cursor
	b    *token.Builder
	text int // начало текущего куска прозы
	bol  bool
}

func (m *mdScanner) flush(upto int) {
	m.b.Emit(token.Text, m.text, upto)
	m.text = upto
}

func (m *mdScanner) region(kind token.Kind, start, end int) {
	m.flush(start)
	m.b.Emit(kind, start, end)
	m.text = end
}

func (m *mdScanner) embed(lang string, start, end int) {
	m.flush(start)
	m.b.EmitEmbedded(lang, start, end)
	m.text = end
}

func (m *mdScanner) frontMatter() {
	if !strings.HasPrefix(m.src, "---\n") && !strings.HasPrefix(m.src, "---\r\n") {
		return
	}
	save := m.c.Mark()
	m.c.SkipLine()
	for !m.c.EOF() {
		if strings.TrimRight(m.line(), " \t") == "---" {
			m.c.SkipLine()
			m.region(token.Code, 0, m.c.Pos())
			return
		}
		m.c.SkipLine()
	}
	// незакрытый блок: это не front matter
	m.c.Reset(save)
}

// line returns the current line from the cursor, without its terminator.
func (m *mdScanner) line() string {
	rest := m.c.Rest()
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSuffix(rest, "\r")
}

func (m *mdScanner) run() {
	for !m.c.EOF() {
		if m.bol {
			m.bol = false
			if m.fence() {
				m.bol = true
				continue
			}
		}
		start := m.c.Pos()
		ch := m.c.Peek()
		switch {
		case ch == '\n':
			m.c.Bump()
			m.bol = true
		case m.c.HasPrefix("<!--"):
			if !m.c.SkipPast("-->") {
				m.c.Off = m.c.limit()
			}
			m.region(token.Comment, start, m.c.Pos())
		case ch == '`':
			m.inlineCode(start)
		case ch == '<':
			m.angle(start)
		case ch == ']':
			m.c.Bump()
			if m.c.Peek() == '(' {
				m.linkTarget()
			}
		case ch == 'h' && (m.c.HasPrefix("http://") || m.c.HasPrefix("https://")):
			m.url(start)
		default:
			m.c.Bump()
		}
	}
	m.flush(len(m.src))
}

// fence consumes a fenced code block starting at the current line.
func (m *mdScanner) fence() bool {
	line := m.line()
	indent := 0
	for indent < len(line) && line[indent] == ' ' {
		indent++
	}
	if indent > 3 || indent == len(line) {
		return false
	}
	ch := line[indent]
	if ch != '`' && ch != '~' {
		return false
	}
	n := 0
	for indent+n < len(line) && line[indent+n] == ch {
		n++
	}
	if n < 3 {
		return false
	}
	info := strings.TrimSpace(line[indent+n:])
	if ch == '`' && strings.ContainsRune(info, '`') {
		return false
	}
	lang := ""
	if f := strings.Fields(info); len(f) > 0 {
		lang = strings.ToLower(strings.Trim(f[0], "{}."))
	}

	start := m.c.Pos()
	m.c.SkipLine()
	body := m.c.Pos()
	closeStart, closeEnd := len(m.src), len(m.src)
	for !m.c.EOF() {
		ls := m.c.Pos()
		if closesFence(m.line(), ch, n) {
			m.c.SkipLine()
			closeStart, closeEnd = ls, m.c.Pos()
			break
		}
		m.c.SkipLine()
	}

	m.region(token.Code, start, body)
	if lang != "" {
		m.embed(lang, body, closeStart)
	} else {
		m.region(token.Code, body, closeStart)
	}
	m.region(token.Code, closeStart, closeEnd)
	return true
}

func closesFence(line string, ch byte, n int) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}
	k := 0
	for k < len(trimmed) && trimmed[k] == ch {
		k++
	}
	return k >= n && strings.TrimSpace(trimmed[k:]) == ""
}

// inlineCode consumes a backtick code span; an unmatched run stays prose.
func (m *mdScanner) inlineCode(start int) {
	if n := rule.CodeSpan(m.c.Rest()); n > 0 {
		m.c.Skip(n)
		m.region(token.Code, start, m.c.Pos())
		return
	}
	for m.c.Peek() == '`' {
		m.c.Bump()
	}
}

// angle handles autolinks and inline tags; a lone '<' stays prose.
func (m *mdScanner) angle(start int) {
	m.c.Bump()
	next := m.c.Peek()
	if next != '/' && next != '!' && !isASCIILetter(next) {
		return
	}
	line := m.line()
	end := strings.IndexByte(line, '>')
	if end < 0 {
		return
	}
	m.c.Skip(end + 1)
	m.region(token.Code, start, m.c.Pos())
}

// linkTarget consumes "(target)" after "]".
func (m *mdScanner) linkTarget() {
	start := m.c.Pos()
	line := m.line()
	end := strings.IndexByte(line, ')')
	if end < 0 {
		return
	}
	m.c.Skip(end + 1)
	m.region(token.Code, start, m.c.Pos())
}

func (m *mdScanner) url(start int) {
	for !m.c.EOF() {
		b := m.c.Peek()
		if b <= ' ' || b >= 0x80 || strings.IndexByte(")]>\"'`", b) >= 0 {
			break
		}
		m.c.Bump()
	}
	m.region(token.Code, start, m.c.Pos())
}

func isASCIILetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
