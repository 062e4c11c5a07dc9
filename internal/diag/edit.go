package diag

import (
	"fmt"

	"autocorrect/internal/source"
)

// Edit is a single rewrite suggested for one line of a document.
type Edit struct {
	Line     uint32 // 1-based
	Col      uint32 // 1-based, characters
	Old      string
	New      string
	Severity Severity
	Rules    []string
}

// Pos returns the position of the edit.
func (e Edit) Pos() source.LineCol {
	return source.LineCol{Line: e.Line, Col: e.Col}
}

// At returns a copy of e moved to pos.
func (e Edit) At(pos source.LineCol) Edit {
	e.Line, e.Col = pos.Line, pos.Col
	return e
}

func (e Edit) String() string {
	return fmt.Sprintf("%d:%d %s: %q -> %q", e.Line, e.Col, e.Severity, e.Old, e.New)
}
