package lexer

import (
	"fmt"
	"strings"

	"autocorrect/internal/token"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Chroma tokenizes source code with a chroma lexer. Comments become Comment,
// string literal bodies become Text, everything else is Code.
type Chroma struct {
	name  string
	lexer chroma.Lexer
}

// NewChroma looks the lexer up by chroma name or alias.
func NewChroma(name string) (*Chroma, error) {
	l := lexers.Get(name)
	if l == nil {
		return nil, fmt.Errorf("no chroma lexer for %q", name)
	}
	return &Chroma{name: name, lexer: l}, nil
}

// Name returns the lexer name the tokenizer was built for.
func (c *Chroma) Name() string { return c.name }

func (c *Chroma) Tokenize(src string) (*token.Node, error) {
	// без EnsureLF: смещения должны совпадать с исходником байт в байт
	it, err := c.lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTokenize, c.name, err)
	}
	b := token.NewBuilder(src)
	off := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		if tok.Value == "" {
			continue
		}
		rest := src[off:]
		var end int
		switch {
		case strings.HasPrefix(rest, tok.Value):
			end = off + len(tok.Value)
		case strings.HasPrefix(tok.Value, rest) && strings.Trim(tok.Value[len(rest):], "\n") == "":
			// lexers with EnsureNL append a newline we never had
			end = len(src)
		default:
			return nil, failAt(src, off, "%s lexer went out of sync", c.name)
		}
		b.Emit(kindOf(tok.Type), off, end)
		off = end
	}
	if off != len(src) {
		return nil, failAt(src, off, "%s lexer stopped early", c.name)
	}
	return b.Finish(), nil
}

func kindOf(t chroma.TokenType) token.Kind {
	switch t {
	case chroma.CommentPreproc, chroma.CommentPreprocFile, chroma.CommentHashbang:
		return token.Code
	case chroma.LiteralStringEscape, chroma.LiteralStringInterpol, chroma.LiteralStringAffix,
		chroma.LiteralStringDelimiter, chroma.LiteralStringRegex, chroma.LiteralStringSymbol,
		chroma.LiteralStringChar, chroma.LiteralStringBacktick:
		return token.Code
	}
	switch {
	case t.InCategory(chroma.Comment):
		return token.Comment
	case t.InSubCategory(chroma.LiteralString):
		return token.Text
	}
	return token.Code
}
