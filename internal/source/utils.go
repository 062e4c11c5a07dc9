package source

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func removeBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, utf8BOM) {
		return content[len(utf8BOM):], true
	}
	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, mustU32(i))
		}
	}
	return out
}

// toLineCol converts a byte offset into a 1-based line and a 1-based
// character column.
func toLineCol(content []byte, lineIdx []uint32, off uint32) LineCol {
	// бинпоиск: находим наибольший lineIdx[i] < off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := hi + 1 // количество переводов строки до off

	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}
	if off > mustU32(len(content)) {
		off = mustU32(len(content))
	}
	col := utf8.RuneCount(content[startOff:off])
	return LineCol{Line: mustU32(line + 1), Col: mustU32(col + 1)}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// RelativePath returns p relative to baseDir, falling back to the cleaned
// absolute path when p lives outside baseDir.
func RelativePath(p, baseDir string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(abs), nil
	}
	return normalizePath(rel), nil
}
