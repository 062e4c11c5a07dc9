package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"autocorrect/internal/diag"
	"autocorrect/internal/keyword"
	"autocorrect/internal/rule"
)

// ErrConfig is returned for malformed configuration.
var ErrConfig = errors.New("invalid config")

// FileNames are searched in this order in every directory.
var FileNames = []string{".autocorrectrc", "autocorrect.toml"}

type rawConfig struct {
	Rules      map[string]any `yaml:"rules" toml:"rules"`
	TextRules  map[string]any `yaml:"textRules" toml:"textRules"`
	Spellcheck struct {
		Words []string `yaml:"words" toml:"words"`
	} `yaml:"spellcheck" toml:"spellcheck"`
	FileTypes map[string]string `yaml:"fileTypes" toml:"fileTypes"`
}

// Parse decodes data into a Snapshot. The format is chosen by name: ".toml"
// means TOML, everything else YAML. Errors wrap ErrConfig.
func Parse(name string, data []byte) (*Snapshot, error) {
	var raw rawConfig
	if isTOML(name) {
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %s: failed to parse TOML: %w", ErrConfig, name, err)
		}
	} else if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %s: failed to parse YAML: %w", ErrConfig, name, err)
		}
	}
	return build(name, &raw)
}

func isTOML(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".toml")
}

func build(name string, raw *rawConfig) (*Snapshot, error) {
	var errs []error

	rules := rule.Defaults()
	for _, key := range sortedKeys(raw.Rules) {
		ruleName := strings.ToLower(strings.TrimSpace(key))
		if !rule.Known(ruleName) {
			errs = append(errs, fmt.Errorf("unknown rule %q", key))
			continue
		}
		sev, err := diag.SeverityFromAny(raw.Rules[key])
		if err != nil {
			errs = append(errs, fmt.Errorf("rules.%s: %w", key, err))
			continue
		}
		rules[ruleName] = sev
	}

	texts := make(map[string]diag.Severity, len(raw.TextRules))
	for _, key := range sortedKeys(raw.TextRules) {
		if key == "" {
			errs = append(errs, errors.New("textRules: empty text"))
			continue
		}
		sev, err := diag.SeverityFromAny(raw.TextRules[key])
		if err != nil {
			errs = append(errs, fmt.Errorf("textRules.%q: %w", key, err))
			continue
		}
		texts[key] = sev
	}

	words, err := keyword.ParseWords(raw.Spellcheck.Words)
	if err != nil {
		errs = append(errs, err)
	}

	for k, v := range raw.FileTypes {
		if strings.TrimSpace(k) == "" || strings.TrimSpace(v) == "" {
			errs = append(errs, fmt.Errorf("fileTypes: empty entry %q: %q", k, v))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, name, errors.Join(errs...))
	}
	return newSnapshot(name, rules, texts, raw.FileTypes, words), nil
}

// LoadFile reads and parses a config file.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return Parse(path, data)
}

// Find looks for a config file in startDir and its parents.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true, nil
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
