package rule

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"

	"autocorrect/internal/diag"
)

// Rule names, in pipeline order.
const (
	HalfwidthWord         = "halfwidth-word"
	HalfwidthPunctuation  = "halfwidth-punctuation"
	SpaceWord             = "space-word"
	SpacePunctuation      = "space-punctuation"
	SpaceBracket          = "space-bracket"
	SpaceBackticks        = "space-backticks"
	SpaceDash             = "space-dash"
	Fullwidth             = "fullwidth"
	NoSpaceFullwidth      = "no-space-fullwidth"
	NoSpaceFullwidthQuote = "no-space-fullwidth-quote"
	NoSpaceDate           = "no-space-date"
	Spellcheck            = "spellcheck"
)

var names = []string{
	HalfwidthWord,
	HalfwidthPunctuation,
	SpaceWord,
	SpacePunctuation,
	SpaceBracket,
	SpaceBackticks,
	SpaceDash,
	Fullwidth,
	NoSpaceFullwidth,
	NoSpaceFullwidthQuote,
	NoSpaceDate,
	Spellcheck,
}

var defaults = map[string]diag.Severity{
	HalfwidthWord:         diag.SevError,
	HalfwidthPunctuation:  diag.SevError,
	SpaceWord:             diag.SevError,
	SpacePunctuation:      diag.SevError,
	SpaceBracket:          diag.SevError,
	SpaceBackticks:        diag.SevError,
	SpaceDash:             diag.SevPass,
	Fullwidth:             diag.SevError,
	NoSpaceFullwidth:      diag.SevError,
	NoSpaceFullwidthQuote: diag.SevError,
	NoSpaceDate:           diag.SevError,
	Spellcheck:            diag.SevPass,
}

// Names returns all rule names in pipeline order.
func Names() []string {
	return append([]string(nil), names...)
}

// Known reports whether name is a rule.
func Known(name string) bool {
	_, ok := defaults[name]
	return ok
}

// DefaultSeverity returns the built-in severity of a rule.
func DefaultSeverity(name string) diag.Severity {
	return defaults[name]
}

// Defaults returns a fresh copy of the built-in severities.
func Defaults() map[string]diag.Severity {
	out := make(map[string]diag.Severity, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	return out
}

const (
	cjkClass   = `[` + cjk + `]`
	latinClass = `[A-Za-z0-9]`

	// fullwidth punctuation that carries its own spacing
	fwPunct = `[，。；：！？、（）【】《》〈〉]`
	fwQuote = `[“”‘’「」『』]`
)

// halfwidth-word

func halfwidthWord(text string) string {
	if !strings.ContainsFunc(text, isFullwidthWord) {
		return text
	}
	return strings.Map(func(r rune) rune {
		if !isFullwidthWord(r) {
			return r
		}
		if r == '　' {
			return ' '
		}
		if n := width.LookupRune(r).Narrow(); n != 0 {
			return n
		}
		return r
	}, text)
}

func isFullwidthWord(r rune) bool {
	switch {
	case r == '　':
		return true
	case r >= '０' && r <= '９':
		return true
	case r >= 'Ａ' && r <= 'Ｚ':
		return true
	case r >= 'ａ' && r <= 'ｚ':
		return true
	}
	return false
}

// halfwidth-punctuation

var halfwidthPunct = []strategy{{
	re: regexp.MustCompile(latinClass + `[ \t]*[，！？；：][ \t]*` + latinClass),
	fn: func(m string) string {
		first, _ := utf8.DecodeRuneInString(m)
		last, _ := utf8.DecodeLastRuneInString(m)
		var punct rune
		for _, r := range m {
			if strings.ContainsRune("，！？；：", r) {
				punct = width.LookupRune(r).Narrow()
				break
			}
		}
		return string(first) + string(punct) + " " + string(last)
	},
}}

// space-word

var spaceWord = []strategy{
	addSpace(cjkClass, latinClass),
	addSpaceGuarded(`%$\\`, latinClass, cjkClass),
	addSpace(`[0-9]%`, cjkClass),
}

// space-punctuation

var spacePunctuation = chain(
	both(addSpace, cjkClass, `[|+]`),
	[]strategy{addSpace(cjkClass, `@[A-Za-z0-9_`+cjk+`]`)},
)

// space-bracket

var spaceBracket = []strategy{
	addSpace(cjkClass, `[(\[{]`),
	addSpace(`[)\]}]`, cjkClass),
}

// space-backticks

var spaceBackticks = both(addSpace, cjkClass, "`[^`]+`")

// space-dash

var spaceDash = []strategy{{
	re:   regexp.MustCompile(`([` + cjk + `）】」》”’])[ \t]*(-+)[ \t]*([` + cjk + `（【「《“‘])`),
	repl: "$1 $2 $3",
}}

// fullwidth

var fullwidth = []strategy{
	{re: regexp.MustCompile(cjkClass + `[,;:!?]`), fn: widenPunct},
	{re: regexp.MustCompile(`[,;:!?]` + cjkClass), fn: widenPunct},
	{re: regexp.MustCompile(cjkClass + `\.(?:` + cjkClass + `|[ \t]|$)`), fn: func(m string) string {
		return strings.Replace(m, ".", "。", 1)
	}},
}

func widenPunct(m string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ',', ';', ':', '!', '?':
			return width.LookupRune(r).Wide()
		}
		return r
	}, m)
}

// no-space-fullwidth

var noSpaceFullwidth = []strategy{
	removeSpace(`\S`, fwPunct),
	removeSpace(fwPunct, `\S`),
}

// no-space-fullwidth-quote

var noSpaceFullwidthQuote = both(removeSpace, cjkClass, fwQuote)

// no-space-date

var noSpaceDate = []strategy{{
	re:   regexp.MustCompile(`(\d+)[ \t]*年[ \t]*(\d+)[ \t]*月[ \t]*(\d+)[ \t]*([日号])`),
	repl: "${1}年${2}月${3}${4}",
}}
