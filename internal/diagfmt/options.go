package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"autocorrect/internal/diag"
	"autocorrect/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto prints paths as they were given.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// Format selects a renderer.
type Format uint8

const (
	FormatText Format = iota
	FormatDiff
	FormatJSON
	FormatRDJSON
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatDiff:
		return "diff"
	case FormatJSON:
		return "json"
	case FormatRDJSON:
		return "rdjson"
	}
	return "unknown"
}

// ParseFormat converts a --format value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "diff":
		return FormatDiff, nil
	case "json":
		return FormatJSON, nil
	case "rdjson":
		return FormatRDJSON, nil
	}
	return FormatText, fmt.Errorf("unknown format %q (expected: text|diff|json|rdjson)", s)
}

// Opts configures rendering.
type Opts struct {
	Color    bool
	PathMode PathMode
	BaseDir  string // для PathModeRelative, пусто - рабочий каталог
}

// File is the lint outcome of one document.
type File struct {
	Path  string
	Edits []diag.Edit
	Err   error
}

// Render writes files in the given format.
func Render(w io.Writer, f Format, files []File, opts Opts) error {
	switch f {
	case FormatText:
		return Text(w, files, opts)
	case FormatDiff:
		return Diff(w, files, opts)
	case FormatJSON:
		return JSON(w, files, opts)
	case FormatRDJSON:
		return RDJSON(w, files, opts)
	}
	return fmt.Errorf("unknown format %v", f)
}

// Count returns the number of error and warning edits.
func Count(files []File) (errors, warnings int) {
	for _, f := range files {
		for _, e := range f.Edits {
			switch e.Severity {
			case diag.SevError:
				errors++
			case diag.SevWarning:
				warnings++
			}
		}
	}
	return errors, warnings
}

func (o Opts) displayPath(p string) string {
	switch o.PathMode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(p); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		base := o.BaseDir
		if base == "" {
			base = "."
		}
		if rel, err := source.RelativePath(p, base); err == nil {
			return rel
		}
	case PathModeBasename:
		return filepath.Base(p)
	}
	return p
}

// paint returns a color that ignores the global NoColor switch.
func paint(on bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if on {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
