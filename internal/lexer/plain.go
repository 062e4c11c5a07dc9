package lexer

import "autocorrect/internal/token"

// Plain treats the whole document as prose.
type Plain struct{}

func (Plain) Tokenize(src string) (*token.Node, error) {
	b := token.NewBuilder(src)
	b.Emit(token.Text, 0, len(src))
	return b.Finish(), nil
}
