// Package toggle parses autocorrect pragmas found in comments and keeps the
// enable/disable rule set that gates the rule pipeline.
//
// Recognised pragmas (case-insensitive), optionally followed by a comma
// separated rule list:
//
//	autocorrect-disable    autocorrect: false
//	autocorrect-enable     autocorrect: true
package toggle

import (
	"regexp"
	"sort"
	"strings"

	"autocorrect/internal/rule"
)

// Variant of a pragma or state.
type Variant uint8

const (
	None Variant = iota
	Enable
	Disable
)

func (v Variant) String() string {
	switch v {
	case Enable:
		return "enable"
	case Disable:
		return "disable"
	}
	return "none"
}

// Pragma is one parsed directive. Empty Rules means all rules. Parse keeps
// only known rule names.
type Pragma struct {
	Variant Variant
	Rules   []string
}

var pragmaRe = regexp.MustCompile(`(?i)autocorrect(?:-(disable|enable)\b|:\s*(false|true)\b)(?:[ \t]+([a-z][\w-]*(?:[ \t]*,[ \t]*[a-z][\w-]*)*))?`)

// Parse returns the first pragma in text.
func Parse(text string) (Pragma, bool) {
	if !mayContain(text) {
		return Pragma{}, false
	}
	m := pragmaRe.FindStringSubmatch(text)
	if m == nil {
		return Pragma{}, false
	}
	return fromMatch(m), true
}

// Scan returns every pragma in text in order of appearance.
func Scan(text string) []Pragma {
	if !mayContain(text) {
		return nil
	}
	all := pragmaRe.FindAllStringSubmatch(text, -1)
	if len(all) == 0 {
		return nil
	}
	out := make([]Pragma, 0, len(all))
	for _, m := range all {
		out = append(out, fromMatch(m))
	}
	return out
}

// mayContain is a cheap prefilter: most comments carry no pragma.
func mayContain(text string) bool {
	return len(text) >= len("autocorrect") && strings.Contains(strings.ToLower(text), "autocorrect")
}

func fromMatch(m []string) Pragma {
	var p Pragma
	switch strings.ToLower(m[1] + m[2]) {
	case "disable", "false":
		p.Variant = Disable
	default:
		p.Variant = Enable
	}
	// слова, не являющиеся именами правил, считаются пояснением:
	// "autocorrect-disable next line" выключает всё
	if m[3] != "" {
		for _, name := range strings.Split(m[3], ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if rule.Known(name) {
				p.Rules = append(p.Rules, name)
			}
		}
	}
	return p
}

// State is the toggle state of one traversal. The zero value is None.
// State is a value: Merge returns a new state and never mutates the receiver.
type State struct {
	Kind  Variant
	rules map[string]struct{}
}

// Merge applies p. A pragma of the same variant unions the rule sets, where an
// empty set (all rules) wins; a pragma of the other variant replaces the state.
func (s State) Merge(p Pragma) State {
	if p.Variant == None {
		return s
	}
	if s.Kind == p.Variant {
		if len(s.rules) == 0 || len(p.Rules) == 0 {
			return State{Kind: p.Variant}
		}
		next := make(map[string]struct{}, len(s.rules)+len(p.Rules))
		for k := range s.rules {
			next[k] = struct{}{}
		}
		for _, r := range p.Rules {
			next[strings.ToLower(r)] = struct{}{}
		}
		return State{Kind: p.Variant, rules: next}
	}
	if len(p.Rules) == 0 {
		return State{Kind: p.Variant}
	}
	next := make(map[string]struct{}, len(p.Rules))
	for _, r := range p.Rules {
		next[strings.ToLower(r)] = struct{}{}
	}
	return State{Kind: p.Variant, rules: next}
}

// Match tells whether the state enables the rule. ok is false when the state
// has no opinion (None) and the caller keeps the configured behaviour.
func (s State) Match(rule string) (enabled, ok bool) {
	switch s.Kind {
	case Enable:
		if len(s.rules) == 0 {
			return true, true
		}
		return s.has(rule), true
	case Disable:
		if len(s.rules) == 0 {
			return false, true
		}
		return !s.has(rule), true
	}
	return false, false
}

// Allows is Match with None treated as enabled.
func (s State) Allows(rule string) bool {
	enabled, ok := s.Match(rule)
	return !ok || enabled
}

// DisablesAll reports whether every rule is off.
func (s State) DisablesAll() bool {
	return s.Kind == Disable && len(s.rules) == 0
}

// Rules returns the rule set in sorted order.
func (s State) Rules() []string {
	out := make([]string, 0, len(s.rules))
	for k := range s.rules {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s State) has(rule string) bool {
	_, ok := s.rules[strings.ToLower(rule)]
	return ok
}

func (s State) String() string {
	if s.Kind == None {
		return "none"
	}
	if len(s.rules) == 0 {
		return s.Kind.String() + "(*)"
	}
	return s.Kind.String() + "(" + strings.Join(s.Rules(), ",") + ")"
}
