package format

import (
	"errors"

	"autocorrect/internal/config"
	"autocorrect/internal/diag"
	"autocorrect/internal/toggle"
	"autocorrect/internal/token"
)

// ErrEmbedded marks a failed embedded region. The region is left as is and
// the parent traversal goes on.
var ErrEmbedded = errors.New("embedded region failed")

// Mode selects the sink of a traversal.
type Mode uint8

const (
	ModeFormat Mode = iota
	ModeLint
)

func (m Mode) String() string {
	if m == ModeLint {
		return "lint"
	}
	return "format"
}

// Tokenizer splits a document into regions.
type Tokenizer interface {
	Tokenize(src string) (*token.Node, error)
}

// TokenizerFunc adapts a function to Tokenizer.
type TokenizerFunc func(src string) (*token.Node, error)

func (f TokenizerFunc) Tokenize(src string) (*token.Node, error) { return f(src) }

// Formatter runs one traversal with a pinned config snapshot.
type Formatter interface {
	Run(mode Mode, src string, cfg *config.Snapshot) Result
}

// NestedFormatter is a Formatter that can start from the toggle state of the
// enclosing document.
type NestedFormatter interface {
	Formatter
	RunNested(mode Mode, src string, cfg *config.Snapshot, tg toggle.State) Result
}

// Registry maps embedded region ids to sub-formatters.
type Registry interface {
	Lookup(id string) (Formatter, bool)
}

// Result of Run. Out is set in format mode, Edits in lint mode.
type Result struct {
	Out   string
	Edits []diag.Edit
	Err   error
}

// FormatResult is the outcome of formatting one document. On a document
// level error Out is the original text.
type FormatResult struct {
	Out string
	Err error
}

// LintResult is the outcome of linting one document. Edits are sorted by
// position.
type LintResult struct {
	Edits []diag.Edit
	Err   error
}
