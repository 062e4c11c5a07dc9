package format

import "autocorrect/internal/diag"

// severity is the highest configured severity among the rules that changed
// the line; a matching text rule overrides it.
func (w *walker) severity(line string, changed []string) diag.Severity {
	if len(changed) == 0 {
		return diag.SevPass
	}
	if sev, ok := w.cfg.TextRule(line); ok {
		return sev
	}
	sev := diag.SevPass
	for _, name := range changed {
		sev = diag.Max(sev, w.cfg.SeverityOf(name))
	}
	return sev
}
