// Package token defines the span tree produced by tokenizers and consumed by
// the traversal engine.
// Invariants:
//   - Node.Text is a slice of the original source (no copies).
//   - Node.Span matches Text exactly (Start..End).
//   - Children of a node are ordered, contiguous and cover the parent span, so
//     concatenating the leaf texts reproduces the document byte for byte.
//   - Embedded nodes carry the sub-formatter id in Lang and are leaves.
//   - A tree is immutable once returned by a tokenizer.
package token
