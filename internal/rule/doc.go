// Package rule holds the ordered spacing and punctuation pipeline applied to
// one line of natural-language text.
//
// Rules run in a fixed order and every rule sees the output of the previous
// ones. Most rules are a list of strategies: a left and right character class
// plus a rewrite (add a space between them, or remove the spaces between
// them). A strategy is re-applied until the line stops changing, because
// regexp matches never overlap and a single pass can leave a boundary behind.
//
// Lines without any CJK character are returned unchanged before any spacing
// rule runs.
package rule
