package token

// Kind represents the category of a region in a document.
type Kind uint8

const (
	// Code is never rewritten. Containers use it too.
	Code Kind = iota
	// Text is natural-language content: string literal bodies, markdown prose.
	Text
	// Comment is natural-language content that may carry toggle pragmas.
	Comment
	// Embedded is a region in another dialect, formatted by a sub-formatter.
	Embedded
)

func (k Kind) String() string {
	switch k {
	case Code:
		return "Code"
	case Text:
		return "Text"
	case Comment:
		return "Comment"
	case Embedded:
		return "Embedded"
	}
	return "Kind(?)"
}

// IsProse reports whether the rule pipeline runs on regions of this kind.
func (k Kind) IsProse() bool {
	return k == Text || k == Comment
}
