package source

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"
)

// LineCol represents a human-readable position in a source file.
// Both fields are 1-based; Col counts characters (runes), not bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}

// Start is the position of the first character of a document.
var Start = LineCol{Line: 1, Col: 1}

func (lc LineCol) String() string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Col)
}

// IsZero reports whether lc is the zero value (no position).
func (lc LineCol) IsZero() bool {
	return lc.Line == 0 && lc.Col == 0
}

// Advance returns the position immediately after text when text starts at lc.
// Line breaks are counted by '\n', so a "\r\n" pair is a single break.
func (lc LineCol) Advance(text string) LineCol {
	breaks := strings.Count(text, "\n")
	if breaks == 0 {
		lc.Col += mustU32(utf8.RuneCountInString(text))
		return lc
	}
	lc.Line += mustU32(breaks)
	tail := text[strings.LastIndexByte(text, '\n')+1:]
	lc.Col = 1 + mustU32(utf8.RuneCountInString(tail))
	return lc
}

// Anchor maps a position local to an embedded region onto the coordinates of
// the enclosing document, given that the region starts at lc.
func (lc LineCol) Anchor(local LineCol) LineCol {
	if local.Line <= 1 {
		return LineCol{Line: lc.Line, Col: lc.Col + local.Col - 1}
	}
	return LineCol{Line: lc.Line + local.Line - 1, Col: local.Col}
}

func mustU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("position overflow: %w", err))
	}
	return v
}
