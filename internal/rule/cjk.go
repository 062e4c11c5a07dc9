package rule

import (
	"unicode"
)

// cjk is the character class body used inside regexp brackets.
const cjk = `\p{Han}\p{Hangul}\p{Hiragana}\p{Katakana}\p{Bopomofo}`

var cjkTables = []*unicode.RangeTable{
	unicode.Han,
	unicode.Hangul,
	unicode.Hiragana,
	unicode.Katakana,
	unicode.Bopomofo,
}

// IsCJK reports whether r is a Chinese, Japanese or Korean script character.
func IsCJK(r rune) bool {
	if r < 0x1100 {
		return false
	}
	return unicode.In(r, cjkTables...)
}

// HasCJK reports whether s contains at least one CJK character.
func HasCJK(s string) bool {
	for _, r := range s {
		if IsCJK(r) {
			return true
		}
	}
	return false
}
