package lexer

import (
	"errors"
	"fmt"

	"autocorrect/internal/source"
)

// ErrTokenize is returned when a document cannot be split into regions.
// Callers fall back to the original text.
var ErrTokenize = errors.New("tokenize failed")

// failAt builds an ErrTokenize pointing at the byte offset off of src.
func failAt(src string, off int, format string, args ...any) error {
	if off > len(src) {
		off = len(src)
	}
	pos := source.Start.Advance(src[:off])
	return fmt.Errorf("%w: %s: %s", ErrTokenize, pos, fmt.Sprintf(format, args...))
}
