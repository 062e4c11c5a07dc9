package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff prints every edit as one line with inline character changes.
// Without color, deletions are written as [-x-] and insertions as {+x+}.
func Diff(w io.Writer, files []File, opts Opts) error {
	header := paint(opts.Color, color.Bold)
	errC := paint(opts.Color, color.FgRed, color.Bold)
	var b strings.Builder
	for _, f := range files {
		path := opts.displayPath(f.Path)
		if f.Err != nil {
			fmt.Fprintf(&b, "%s: %s %v\n", header.Sprint(path), errC.Sprint("error:"), f.Err)
		}
		for _, e := range f.Edits {
			fmt.Fprintf(&b, "%s %s\n", header.Sprintf("%s:%d:%d:", path, e.Line, e.Col), InlineDiff(e.Old, e.New, opts.Color))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// InlineDiff renders the character-level difference between two lines.
func InlineDiff(before, after string, colored bool) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))
	del := paint(colored, color.FgRed, color.CrossedOut)
	ins := paint(colored, color.FgGreen, color.Underline)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			if colored {
				b.WriteString(del.Sprint(d.Text))
			} else {
				b.WriteString("[-" + d.Text + "-]")
			}
		case diffmatchpatch.DiffInsert:
			if colored {
				b.WriteString(ins.Sprint(d.Text))
			} else {
				b.WriteString("{+" + d.Text + "+}")
			}
		}
	}
	return b.String()
}

// FileDiff writes a line diff between the original and formatted contents
// of a file, as printed by `fmt --check`. Each hunk is headed by the line
// number in the original.
func FileDiff(w io.Writer, path, before, after string, opts Opts) error {
	if before == after {
		return nil
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	header := paint(opts.Color, color.Bold)
	hunk := paint(opts.Color, color.FgCyan)
	del := paint(opts.Color, color.FgRed)
	ins := paint(opts.Color, color.FgGreen)

	var out strings.Builder
	name := opts.displayPath(path)
	out.WriteString(header.Sprintf("--- %s\n+++ %s\n", name, name))
	line, open := 1, false
	for _, d := range diffs {
		chunk := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			line += len(chunk)
			open = false
		case diffmatchpatch.DiffDelete:
			if !open {
				out.WriteString(hunk.Sprintf("@@ -%d @@\n", line))
				open = true
			}
			for _, l := range chunk {
				out.WriteString(del.Sprint("-"+l) + "\n")
			}
			line += len(chunk)
		case diffmatchpatch.DiffInsert:
			if !open {
				out.WriteString(hunk.Sprintf("@@ -%d @@\n", line))
				open = true
			}
			for _, l := range chunk {
				out.WriteString(ins.Sprint("+"+l) + "\n")
			}
		}
	}
	_, err := io.WriteString(w, out.String())
	return err
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
