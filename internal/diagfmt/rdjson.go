package diagfmt

import (
	"encoding/json"
	"io"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"

	"autocorrect/internal/diag"
)

// Reviewdog Diagnostic Format (rdjson).
type (
	rdPosition struct {
		Line   uint32 `json:"line"`
		Column uint32 `json:"column"`
	}
	rdRange struct {
		Start rdPosition  `json:"start"`
		End   *rdPosition `json:"end,omitempty"`
	}
	rdLocation struct {
		Path  string  `json:"path"`
		Range rdRange `json:"range"`
	}
	rdSuggestion struct {
		Range rdRange `json:"range"`
		Text  string  `json:"text"`
	}
	rdCode struct {
		Value string `json:"value"`
	}
	rdDiagnostic struct {
		Message     string         `json:"message"`
		Location    rdLocation     `json:"location"`
		Severity    string         `json:"severity"`
		Code        *rdCode        `json:"code,omitempty"`
		Suggestions []rdSuggestion `json:"suggestions,omitempty"`
	}
	rdSource struct {
		Name string `json:"name"`
		URL  string `json:"url,omitempty"`
	}
	rdResult struct {
		Source      rdSource       `json:"source"`
		Severity    string         `json:"severity"`
		Diagnostics []rdDiagnostic `json:"diagnostics"`
	}
)

// RDJSON writes a reviewdog diagnostic result. Each edit replaces the
// range of its old text with the new text.
func RDJSON(w io.Writer, files []File, opts Opts) error {
	out := rdResult{
		Source:      rdSource{Name: "autocorrect"},
		Severity:    "WARNING",
		Diagnostics: make([]rdDiagnostic, 0),
	}
	for _, f := range files {
		path := opts.displayPath(f.Path)
		if f.Err != nil {
			out.Diagnostics = append(out.Diagnostics, rdDiagnostic{
				Message:  f.Err.Error(),
				Location: rdLocation{Path: path, Range: rdRange{Start: rdPosition{Line: 1, Column: 1}}},
				Severity: "ERROR",
			})
		}
		for _, e := range f.Edits {
			width, err := safecast.Conv[uint32](utf8.RuneCountInString(e.Old))
			if err != nil {
				return err
			}
			rng := rdRange{
				Start: rdPosition{Line: e.Line, Column: e.Col},
				End:   &rdPosition{Line: e.Line, Column: e.Col + width},
			}
			d := rdDiagnostic{
				Message:     "AutoCorrect lint: " + e.New,
				Location:    rdLocation{Path: path, Range: rng},
				Severity:    rdSeverity(e.Severity),
				Suggestions: []rdSuggestion{{Range: rng, Text: e.New}},
			}
			if len(e.Rules) > 0 {
				d.Code = &rdCode{Value: strings.Join(e.Rules, ",")}
			}
			out.Diagnostics = append(out.Diagnostics, d)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

func rdSeverity(s diag.Severity) string {
	if s == diag.SevError {
		return "ERROR"
	}
	return "WARNING"
}
