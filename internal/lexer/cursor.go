package lexer

import (
	"fmt"
	"strings"

	"autocorrect/internal/source"

	"fortio.org/safecast"
)

// Cursor представляет собой позицию в документе
type Cursor struct {
	Src string
	Off uint32
	// Limit is the exclusive upper bound for Off; defaults to len(Src).
	Limit uint32
}

// NewCursor creates a new cursor over src.
func NewCursor(src string) Cursor {
	limit, err := safecast.Conv[uint32](len(src))
	if err != nil {
		panic(fmt.Errorf("len source overflow: %w", err))
	}
	return Cursor{Src: src, Limit: limit}
}

func (c *Cursor) limit() uint32 {
	if c.Limit != 0 {
		return c.Limit
	}
	n, err := safecast.Conv[uint32](len(c.Src))
	if err != nil {
		panic(fmt.Errorf("len source overflow: %w", err))
	}
	return n
}

// EOF проверяет, достигнут ли конец документа
func (c *Cursor) EOF() bool {
	return c.Off >= c.limit()
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Src[c.Off]
}

// Peek2 читает текущий и следующий байт
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.limit() {
		return 0, 0, false
	}
	return c.Src[c.Off], c.Src[c.Off+1], true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Src[c.Off]
	c.Off++
	return b
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{Start: uint32(m), End: c.Off}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Src[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// Rest returns the unread part of the document.
func (c *Cursor) Rest() string {
	return c.Src[c.Off:c.limit()]
}

// HasPrefix reports whether the unread part starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	return strings.HasPrefix(c.Rest(), s)
}

// HasPrefixFold is HasPrefix with ASCII case folding.
func (c *Cursor) HasPrefixFold(s string) bool {
	rest := c.Rest()
	return len(rest) >= len(s) && strings.EqualFold(rest[:len(s)], s)
}

// Skip advances by n bytes, stopping at the limit.
func (c *Cursor) Skip(n int) {
	for ; n > 0 && !c.EOF(); n-- {
		c.Off++
	}
}

// SkipPast moves the cursor right after the next occurrence of s.
// When s is missing the cursor stays and false is returned.
func (c *Cursor) SkipPast(s string) bool {
	i := strings.Index(c.Rest(), s)
	if i < 0 {
		return false
	}
	c.Skip(i + len(s))
	return true
}

// SkipLine moves the cursor past the next '\n' or to the limit.
func (c *Cursor) SkipLine() {
	if !c.SkipPast("\n") {
		c.Off = c.limit()
	}
}

// Pos returns Off as an int, the form token.Builder takes.
func (c *Cursor) Pos() int {
	return int(c.Off)
}
