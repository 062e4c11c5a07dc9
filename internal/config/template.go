package config

import (
	"fmt"
	"strings"

	"autocorrect/internal/diag"
	"autocorrect/internal/rule"
)

// Template renders a commented YAML config listing every rule with its
// built-in severity. Used by `autocorrect init`.
func Template() string {
	var sb strings.Builder
	sb.WriteString("# autocorrect configuration\n")
	sb.WriteString("# severity: 0 - off, 1 - error, 2 - warning\n")
	sb.WriteString("rules:\n")
	for _, name := range rule.Names() {
		fmt.Fprintf(&sb, "  %s: %d\n", name, templateValue(name))
	}
	sb.WriteString("# lines containing these texts get the given severity (0 skips them)\n")
	sb.WriteString("textRules:\n")
	sb.WriteString("  # \"No CJK\": 0\n")
	sb.WriteString("spellcheck:\n")
	sb.WriteString("  words:\n")
	sb.WriteString("    # - iOS\n")
	sb.WriteString("    # - wifi = Wi-Fi\n")
	sb.WriteString("fileTypes:\n")
	sb.WriteString("  # \"*.mdx\": markdown\n")
	return sb.String()
}

// templateValue maps a severity to its numeric config spelling.
func templateValue(name string) int {
	switch rule.DefaultSeverity(name) {
	case diag.SevPass:
		return 0
	case diag.SevWarning:
		return 2
	}
	return 1
}
