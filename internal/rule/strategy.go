package rule

import (
	"regexp"
)

// maxPasses bounds how often a single strategy is re-applied to one line.
const maxPasses = 8

// strategy is one boundary rewrite.
type strategy struct {
	re   *regexp.Regexp
	repl string
	fn   func(string) string // если задана, используется вместо repl
}

func (s strategy) apply(text string) string {
	for range maxPasses {
		var next string
		if s.fn != nil {
			next = s.re.ReplaceAllStringFunc(text, s.fn)
		} else {
			next = s.re.ReplaceAllString(text, s.repl)
		}
		if next == text {
			break
		}
		text = next
	}
	return text
}

// addSpace inserts one space between left and right.
func addSpace(left, right string) strategy {
	return strategy{
		re:   regexp.MustCompile(`(` + left + `)(` + right + `)`),
		repl: "$1 $2",
	}
}

// addSpaceGuarded is addSpace where left must not follow any character of guard.
func addSpaceGuarded(guard, left, right string) strategy {
	return strategy{
		re:   regexp.MustCompile(`(^|[^` + guard + `])(` + left + `)(` + right + `)`),
		repl: "${1}${2} ${3}",
	}
}

// removeSpace drops ASCII spaces and tabs between left and right.
func removeSpace(left, right string) strategy {
	return strategy{
		re:   regexp.MustCompile(`(` + left + `)[ \t]+(` + right + `)`),
		repl: "$1$2",
	}
}

// both returns the strategy for (left, right) and for (right, left).
func both(mk func(l, r string) strategy, left, right string) []strategy {
	return []strategy{mk(left, right), mk(right, left)}
}

func chain(ss ...[]strategy) []strategy {
	var out []strategy
	for _, s := range ss {
		out = append(out, s...)
	}
	return out
}

func run(ss []strategy) func(string) string {
	return func(text string) string {
		for _, s := range ss {
			text = s.apply(text)
		}
		return text
	}
}
