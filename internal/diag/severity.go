package diag

import (
	"fmt"
	"strconv"
	"strings"
)

// Severity defines how a rule violation is reported.
type Severity uint8

const (
	// SevPass means the rule is off: nothing is rewritten or reported.
	SevPass Severity = iota
	// SevWarning reports without failing the run.
	SevWarning
	// SevError fails lint runs.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevPass:
		return "pass"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// Enabled reports whether a rule with this severity runs at all.
func (s Severity) Enabled() bool {
	return s != SevPass
}

// ParseSeverity accepts the config spellings: 0/off, 1/error, 2/warning.
// The numeric form follows the config file convention where 1 is the default
// "on" state, which is why 1 maps to Error and 2 to Warning.
func ParseSeverity(v string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "0", "off", "pass", "false":
		return SevPass, nil
	case "1", "error", "on", "true":
		return SevError, nil
	case "2", "warning", "warn":
		return SevWarning, nil
	}
	return SevPass, fmt.Errorf("invalid severity %q (expected 0|1|2 or off|error|warning)", v)
}

// SeverityFromAny converts a decoded YAML/TOML scalar into a Severity.
func SeverityFromAny(v any) (Severity, error) {
	switch x := v.(type) {
	case int:
		return ParseSeverity(strconv.Itoa(x))
	case int64:
		return ParseSeverity(strconv.FormatInt(x, 10))
	case uint64:
		return ParseSeverity(strconv.FormatUint(x, 10))
	case float64:
		return ParseSeverity(strconv.FormatFloat(x, 'f', -1, 64))
	case bool:
		return ParseSeverity(strconv.FormatBool(x))
	case string:
		return ParseSeverity(x)
	case nil:
		return SevPass, fmt.Errorf("missing severity value")
	}
	return SevPass, fmt.Errorf("invalid severity value %v (%T)", v, v)
}

// Max returns the more severe of a and b.
func Max(a, b Severity) Severity {
	if a > b {
		return a
	}
	return b
}
