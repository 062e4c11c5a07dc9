package format

import (
	"strings"

	"autocorrect/internal/diag"
	"autocorrect/internal/source"
)

// sink receives the output of a traversal. Both modes see the same calls.
type sink interface {
	// ignore passes text through unchanged.
	ignore(text string)
	// line receives one processed line starting at pos; out is the rewrite
	// of ln.full().
	line(pos source.LineCol, ln line, out string, sev diag.Severity, rules []string)
	// splice merges the result of an embedded region starting at pos.
	splice(pos source.LineCol, res Result)
	result(err error) Result
}

type formatSink struct {
	sb strings.Builder
}

func newFormatSink(size int) *formatSink {
	s := &formatSink{}
	s.sb.Grow(size + size/8)
	return s
}

func (s *formatSink) ignore(text string) { s.sb.WriteString(text) }

func (s *formatSink) line(_ source.LineCol, ln line, out string, _ diag.Severity, _ []string) {
	s.sb.WriteString(out[len(ln.before) : len(out)-len(ln.after)])
	s.sb.WriteString(ln.term)
}

func (s *formatSink) splice(_ source.LineCol, res Result) { s.sb.WriteString(res.Out) }

func (s *formatSink) result(err error) Result {
	return Result{Out: s.sb.String(), Err: err}
}

type lintSink struct {
	bag *diag.Bag
}

func newLintSink() *lintSink {
	return &lintSink{bag: diag.NewBag(0)}
}

func (s *lintSink) ignore(string) {}

func (s *lintSink) line(pos source.LineCol, ln line, out string, sev diag.Severity, rules []string) {
	oldText := strings.TrimSpace(ln.full())
	newText := strings.TrimSpace(out)
	if oldText == newText {
		return
	}
	s.bag.Add(diag.Edit{
		Line:     pos.Line,
		Col:      pos.Col,
		Old:      oldText,
		New:      newText,
		Severity: sev,
		Rules:    append([]string(nil), rules...),
	})
}

func (s *lintSink) splice(pos source.LineCol, res Result) {
	for _, e := range res.Edits {
		s.bag.Add(e.At(pos.Anchor(e.Pos())))
	}
}

// result returns edits in traversal order, which is document order.
func (s *lintSink) result(err error) Result {
	return Result{Edits: s.bag.Items(), Err: err}
}
