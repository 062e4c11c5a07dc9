package source

import (
	"fmt"
)

// Span is a byte range inside a document.
type Span struct {
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

// SpanOf builds a span from int offsets.
func SpanOf(start, end int) Span {
	return Span{Start: mustU32(start), End: mustU32(end)}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// ShiftRight moves the span n bytes forward; used to rebase spans of an
// embedded region onto the enclosing document.
func (s Span) ShiftRight(n uint32) Span {
	return Span{
		Start: s.Start + n,
		End:   s.End + n,
	}
}

// Slice returns the text covered by the span.
func (s Span) Slice(src string) string {
	return src[s.Start:s.End]
}
