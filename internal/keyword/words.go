package keyword

import (
	"fmt"
	"strings"
)

// ParseWords reads spellcheck entries. Each entry is either a bare word, which
// maps its lower-case form to itself ("iOS" fixes "ios"), or "key = Replacement".
func ParseWords(entries []string) (map[string]string, error) {
	out := make(map[string]string, len(entries))
	for i, raw := range entries {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, repl, hasEq := strings.Cut(line, "=")
		key, repl = strings.TrimSpace(key), strings.TrimSpace(repl)
		if !hasEq {
			repl = key
		}
		if key == "" || repl == "" {
			return nil, fmt.Errorf("spellcheck word %d: malformed entry %q", i+1, raw)
		}
		out[key] = repl
	}
	return out, nil
}
