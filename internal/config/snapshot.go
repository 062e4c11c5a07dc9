package config

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"autocorrect/internal/diag"
	"autocorrect/internal/keyword"
	"autocorrect/internal/rule"
)

// Snapshot is one loaded configuration. It is never mutated after
// construction and may be shared between goroutines.
type Snapshot struct {
	source    string
	rules     map[string]diag.Severity
	textRules []textRule
	fileTypes map[string]string
	dict      *keyword.Dict
	pipeline  *rule.Pipeline
	digest    [sha256.Size]byte
}

type textRule struct {
	text     string
	severity diag.Severity
}

var defaultSnapshot = newSnapshot("<default>", rule.Defaults(), nil, nil, nil)

// Default returns the built-in configuration.
func Default() *Snapshot { return defaultSnapshot }

func newSnapshot(source string, rules map[string]diag.Severity, texts map[string]diag.Severity, fileTypes map[string]string, words map[string]string) *Snapshot {
	s := &Snapshot{
		source:    source,
		rules:     rules,
		fileTypes: make(map[string]string, len(fileTypes)),
	}
	for k, v := range fileTypes {
		s.fileTypes[strings.ToLower(k)] = strings.ToLower(v)
	}
	for text, sev := range texts {
		s.textRules = append(s.textRules, textRule{text: text, severity: sev})
	}
	// длинные тексты первыми: более конкретное правило побеждает
	sort.Slice(s.textRules, func(i, j int) bool {
		a, b := s.textRules[i], s.textRules[j]
		if len(a.text) != len(b.text) {
			return len(a.text) > len(b.text)
		}
		return a.text < b.text
	})
	if len(words) > 0 {
		s.dict = keyword.NewDict(words)
	}
	s.pipeline = rule.New(s.dict)
	s.digest = digestOf(rules, s.textRules, s.fileTypes, words)
	return s
}

// digestOf hashes everything that changes results; the source name does not.
func digestOf(rules map[string]diag.Severity, texts []textRule, fileTypes, words map[string]string) [sha256.Size]byte {
	h := sha256.New()
	for _, k := range sortedKeys(rules) {
		fmt.Fprintf(h, "r %s=%d\n", k, rules[k])
	}
	for _, t := range texts {
		fmt.Fprintf(h, "t %q=%d\n", t.text, t.severity)
	}
	for _, k := range sortedKeys(fileTypes) {
		fmt.Fprintf(h, "f %s=%s\n", k, fileTypes[k])
	}
	for _, k := range sortedKeys(words) {
		fmt.Fprintf(h, "w %q=%q\n", k, words[k])
	}
	var out [sha256.Size]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Digest identifies the effective configuration; equal snapshots from
// different files share it.
func (s *Snapshot) Digest() [sha256.Size]byte { return s.digest }

// Source names where the snapshot came from (file path or "<default>").
func (s *Snapshot) Source() string { return s.source }

// SeverityOf returns the configured severity of a rule; unknown rules are off.
func (s *Snapshot) SeverityOf(name string) diag.Severity {
	return s.rules[name]
}

// Enabled reports whether the rule runs at all.
func (s *Snapshot) Enabled(name string) bool {
	return s.SeverityOf(name).Enabled()
}

// Dictionary returns the spellcheck dictionary; nil when no words are set.
func (s *Snapshot) Dictionary() *keyword.Dict { return s.dict }

// Pipeline returns the rule pipeline bound to this snapshot's dictionary.
func (s *Snapshot) Pipeline() *rule.Pipeline { return s.pipeline }

// TextRule returns the severity override for a line containing one of the
// configured texts.
func (s *Snapshot) TextRule(line string) (diag.Severity, bool) {
	for _, tr := range s.textRules {
		if strings.Contains(line, tr.text) {
			return tr.severity, true
		}
	}
	return diag.SevPass, false
}

// FileType returns the dialect configured for path. Keys are either an
// extension ("mdx", ".mdx") or a glob matched against the base name.
func (s *Snapshot) FileType(path string) (string, bool) {
	if len(s.fileTypes) == 0 {
		return "", false
	}
	base := strings.ToLower(filepath.Base(path))
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	if ext != "" {
		if id, ok := s.fileTypes[ext]; ok {
			return id, true
		}
		if id, ok := s.fileTypes["."+ext]; ok {
			return id, true
		}
	}
	keys := make([]string, 0, len(s.fileTypes))
	for k := range s.fileTypes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, pattern := range keys {
		if !strings.ContainsAny(pattern, "*?[") {
			if pattern == base {
				return s.fileTypes[pattern], true
			}
			continue
		}
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return s.fileTypes[pattern], true
		}
	}
	return "", false
}

// Rules returns a copy of all rule severities.
func (s *Snapshot) Rules() map[string]diag.Severity {
	out := make(map[string]diag.Severity, len(s.rules))
	for k, v := range s.rules {
		out[k] = v
	}
	return out
}
