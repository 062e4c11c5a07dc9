package token

import "autocorrect/internal/source"

// Builder accumulates leaves over one source string, merging adjacent leaves
// of the same kind and filling gaps with Code.
type Builder struct {
	src   string
	pos   int
	nodes []*Node
}

func NewBuilder(src string) *Builder {
	return &Builder{src: src}
}

// Pos returns the end of the last emitted leaf.
func (b *Builder) Pos() int { return b.pos }

// Emit appends a leaf for src[start:end]. Any gap before start becomes Code.
// Empty and backwards ranges are ignored.
func (b *Builder) Emit(kind Kind, start, end int) {
	if start < b.pos {
		start = b.pos
	}
	if end <= start {
		return
	}
	if start > b.pos {
		b.push(Code, b.pos, start)
	}
	b.push(kind, start, end)
}

// EmitEmbedded appends an Embedded leaf for lang. Embedded leaves are never
// merged with neighbours.
func (b *Builder) EmitEmbedded(lang string, start, end int) {
	if start < b.pos {
		start = b.pos
	}
	if end <= start {
		return
	}
	if start > b.pos {
		b.push(Code, b.pos, start)
	}
	b.nodes = append(b.nodes, EmbeddedLeaf(lang, b.src, start, end))
	b.pos = end
}

func (b *Builder) push(kind Kind, start, end int) {
	if n := len(b.nodes); n > 0 {
		last := b.nodes[n-1]
		if last.Kind == kind && kind != Embedded && int(last.Span.End) == start {
			last.Span = source.SpanOf(int(last.Span.Start), end)
			last.Text = b.src[last.Span.Start:end]
			b.pos = end
			return
		}
	}
	b.nodes = append(b.nodes, Leaf(kind, b.src, start, end))
	b.pos = end
}

// Finish closes the tree; the remaining tail becomes Code.
func (b *Builder) Finish() *Node {
	if b.pos < len(b.src) {
		b.push(Code, b.pos, len(b.src))
	}
	return Root(b.src, b.nodes)
}
