// Package keyword implements the dictionary corrector: a case-insensitive
// Aho-Corasick automaton over the configured spellcheck words and a splice
// step that rewrites accepted matches.
//
// The automaton lives in an arena (a slice of nodes addressed by index). It is
// built once per config load and is read-only afterwards, so a *Dict can be
// shared by any number of goroutines.
package keyword
