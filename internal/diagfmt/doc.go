// Package diagfmt renders lint edits for people and for tools.
//
// Text and Diff are meant for terminals (colored through fatih/color),
// JSON mirrors the autocorrect lint output consumed by editor plugins and
// RDJSON feeds reviewdog.
package diagfmt
