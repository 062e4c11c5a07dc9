package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"autocorrect/internal/diag"
)

// Text печатает правки в человекочитаемом виде:
//
//	<path>:<line>:<col>
//	- old line
//	+ new line
//	    ^
//
// Caret marks the first changed character, aligned by display width so
// that CJK text lines up in a terminal. A summary line closes the output.
func Text(w io.Writer, files []File, opts Opts) error {
	var (
		header = paint(opts.Color, color.Bold)
		oldC   = paint(opts.Color, color.FgRed)
		newC   = paint(opts.Color, color.FgGreen)
		caretC = paint(opts.Color, color.FgYellow, color.Bold)
		errC   = paint(opts.Color, color.FgRed, color.Bold)
		warnC  = paint(opts.Color, color.FgYellow, color.Bold)
	)
	var b strings.Builder
	for _, f := range files {
		path := opts.displayPath(f.Path)
		if f.Err != nil {
			fmt.Fprintf(&b, "%s: %s %v\n\n", header.Sprint(path), errC.Sprint("error:"), f.Err)
		}
		for _, e := range f.Edits {
			sev := warnC
			if e.Severity == diag.SevError {
				sev = errC
			}
			fmt.Fprintf(&b, "%s %s", header.Sprintf("%s:%d:%d", path, e.Line, e.Col), sev.Sprint(e.Severity))
			if len(e.Rules) > 0 {
				fmt.Fprintf(&b, " [%s]", strings.Join(e.Rules, ", "))
			}
			b.WriteByte('\n')
			b.WriteString(oldC.Sprint("- " + e.Old))
			b.WriteByte('\n')
			b.WriteString(newC.Sprint("+ " + e.New))
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(" ", 2+caretColumn(e.Old, e.New)))
			b.WriteString(caretC.Sprint("^"))
			b.WriteString("\n\n")
		}
	}
	errs, warns := Count(files)
	fmt.Fprintf(&b, "%s %d, %s %d\n", errC.Sprint("Error:"), errs, warnC.Sprint("Warning:"), warns)
	_, err := io.WriteString(w, b.String())
	return err
}

// caretColumn returns the display width of the common prefix of before and after.
func caretColumn(before, after string) int {
	o, n := []rune(before), []rune(after)
	i := 0
	for i < len(o) && i < len(n) && o[i] == n[i] {
		i++
	}
	return runewidth.StringWidth(string(n[:i]))
}
