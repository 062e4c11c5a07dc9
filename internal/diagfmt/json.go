package diagfmt

import (
	"encoding/json"
	"io"

	"autocorrect/internal/diag"
)

// LineJSON is one edit in JSON output.
type LineJSON struct {
	L        uint32 `json:"l"`
	C        uint32 `json:"c"`
	New      string `json:"new"`
	Old      string `json:"old"`
	Severity uint8  `json:"severity"`
}

// FileJSON представляет результат одного файла.
type FileJSON struct {
	Filepath string     `json:"filepath"`
	Lines    []LineJSON `json:"lines"`
	Error    string     `json:"error"`
}

// OutputJSON is the root of JSON output.
type OutputJSON struct {
	Count    int        `json:"count"`
	Messages []FileJSON `json:"messages"`
}

// JSON writes files that have edits or errors. Severity follows the config
// file numbering: 1 is error, 2 is warning.
func JSON(w io.Writer, files []File, opts Opts) error {
	out := OutputJSON{Messages: make([]FileJSON, 0, len(files))}
	for _, f := range files {
		if len(f.Edits) == 0 && f.Err == nil {
			continue
		}
		msg := FileJSON{Filepath: opts.displayPath(f.Path), Lines: make([]LineJSON, 0, len(f.Edits))}
		if f.Err != nil {
			msg.Error = f.Err.Error()
		}
		for _, e := range f.Edits {
			msg.Lines = append(msg.Lines, LineJSON{L: e.Line, C: e.Col, New: e.New, Old: e.Old, Severity: configSeverity(e.Severity)})
		}
		out.Count += len(f.Edits)
		out.Messages = append(out.Messages, msg)
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func configSeverity(s diag.Severity) uint8 {
	switch s {
	case diag.SevError:
		return 1
	case diag.SevWarning:
		return 2
	}
	return 0
}
