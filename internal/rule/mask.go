package rule

import "strings"

// placeholders are private-use runes; a masked span becomes "`" + r + "`"
// so space-backticks still sees a code span while no other rule can reach
// its content.
const (
	placeholderBase = 0xE000
	maxPlaceholders = 0x1900
)

// CodeSpan returns the length of the backtick code span at the start of s,
// or 0. The closing run must have the same length and sit on the same line.
func CodeSpan(s string) int {
	n := 0
	for n < len(s) && s[n] == '`' {
		n++
	}
	if n == 0 {
		return 0
	}
	fence := s[:n]
	rest := s[n:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	for off := 0; off < len(rest); {
		i := strings.Index(rest[off:], fence)
		if i < 0 {
			return 0
		}
		start := off + i
		end := start + n
		for end < len(rest) && rest[end] == '`' {
			end++
		}
		if end-start == n && start > 0 {
			return n + end
		}
		off = end
	}
	return 0
}

type masked struct {
	text  string
	spans []string
}

// mask replaces every code span of text with a placeholder. A span that is
// the whole text (a raw string literal) is prose and stays.
func mask(text string) masked {
	if strings.IndexByte(text, '`') < 0 || CodeSpan(text) == len(text) {
		return masked{text: text}
	}
	var sb strings.Builder
	var spans []string
	for i := 0; i < len(text); {
		if text[i] != '`' {
			j := strings.IndexByte(text[i:], '`')
			if j < 0 {
				j = len(text) - i
			}
			sb.WriteString(text[i : i+j])
			i += j
			continue
		}
		n := CodeSpan(text[i:])
		if n == 0 || len(spans) == maxPlaceholders {
			// одиночная обратная кавычка остаётся текстом
			k := i
			for k < len(text) && text[k] == '`' {
				k++
			}
			sb.WriteString(text[i:k])
			i = k
			continue
		}
		sb.WriteByte('`')
		sb.WriteRune(rune(placeholderBase + len(spans)))
		sb.WriteByte('`')
		spans = append(spans, text[i:i+n])
		i += n
	}
	return masked{text: sb.String(), spans: spans}
}

// restore puts the original spans back into a rewritten masked text.
func (m masked) restore(text string) string {
	if len(m.spans) == 0 {
		return text
	}
	pairs := make([]string, 0, 2*len(m.spans))
	for i, s := range m.spans {
		pairs = append(pairs, "`"+string(rune(placeholderBase+i))+"`", s)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
