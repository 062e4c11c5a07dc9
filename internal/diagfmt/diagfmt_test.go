package diagfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"autocorrect/internal/diag"
)

func sampleFiles() []File {
	return []File{
		{
			Path: "docs/a.md",
			Edits: []diag.Edit{
				{Line: 1, Col: 1, Old: "# 你好world", New: "# 你好 world", Severity: diag.SevError, Rules: []string{"space-word"}},
				{Line: 3, Col: 5, Old: "测试,ok", New: "测试，ok", Severity: diag.SevWarning},
			},
		},
		{Path: "clean.go"},
		{Path: "broken.html", Err: errors.New("tokenize failed: 2:1: unterminated comment")},
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleFiles(), Opts{}))
	want := "docs/a.md:1:1 error [space-word]\n" +
		"- # 你好world\n" +
		"+ # 你好 world\n" +
		"        ^\n\n" +
		"docs/a.md:3:5 warning\n" +
		"- 测试,ok\n" +
		"+ 测试，ok\n" +
		"      ^\n\n" +
		"broken.html: error: tokenize failed: 2:1: unterminated comment\n\n" +
		"Error: 1, Warning: 1\n"
	require.Equal(t, want, buf.String())
}

func TestTextColor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleFiles()[:1], Opts{Color: true}))
	require.Contains(t, buf.String(), "\x1b[")
}

func TestInlineDiff(t *testing.T) {
	require.Equal(t, "你好{+ +}world", InlineDiff("你好world", "你好 world", false))
	require.Equal(t, "测试[-,-]{+，+}ok", InlineDiff("测试,ok", "测试，ok", false))
	require.Equal(t, "same", InlineDiff("same", "same", false))
}

func TestDiff(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Diff(&buf, sampleFiles(), Opts{}))
	require.Equal(t,
		"docs/a.md:1:1: # 你好{+ +}world\n"+
			"docs/a.md:3:5: 测试[-,-]{+，+}ok\n"+
			"broken.html: error: tokenize failed: 2:1: unterminated comment\n",
		buf.String())
}

func TestFileDiff(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FileDiff(&buf, "x.md", "a\nb\nc\nd\n", "a\nB\nc\nD\n", Opts{}))
	require.Equal(t, "--- x.md\n+++ x.md\n@@ -2 @@\n-b\n+B\n@@ -4 @@\n-d\n+D\n", buf.String())

	buf.Reset()
	require.NoError(t, FileDiff(&buf, "x.md", "same\n", "same\n", Opts{}))
	require.Empty(t, buf.String())
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleFiles(), Opts{}))

	var out OutputJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, 2, out.Count)
	require.Len(t, out.Messages, 2, "files without edits or errors are omitted")
	require.Equal(t, FileJSON{
		Filepath: "docs/a.md",
		Lines: []LineJSON{
			{L: 1, C: 1, New: "# 你好 world", Old: "# 你好world", Severity: 1},
			{L: 3, C: 5, New: "测试，ok", Old: "测试,ok", Severity: 2},
		},
	}, out.Messages[0])
	require.Equal(t, "broken.html", out.Messages[1].Filepath)
	require.Contains(t, out.Messages[1].Error, "unterminated comment")
	require.Empty(t, out.Messages[1].Lines)
}

func TestRDJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RDJSON(&buf, sampleFiles(), Opts{}))

	var out rdResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, "autocorrect", out.Source.Name)
	require.Len(t, out.Diagnostics, 3)

	first := out.Diagnostics[0]
	require.Equal(t, "ERROR", first.Severity)
	require.Equal(t, "space-word", first.Code.Value)
	require.Equal(t, rdPosition{Line: 1, Column: 1}, first.Location.Range.Start)
	require.Equal(t, rdPosition{Line: 1, Column: 10}, *first.Location.Range.End)
	require.Equal(t, "# 你好 world", first.Suggestions[0].Text)

	require.Equal(t, "WARNING", out.Diagnostics[1].Severity)
	require.Nil(t, out.Diagnostics[1].Code)

	require.Equal(t, "broken.html", out.Diagnostics[2].Location.Path)
	require.Equal(t, "ERROR", out.Diagnostics[2].Severity)
}

func TestParseFormatAndRender(t *testing.T) {
	for _, name := range []string{"text", "diff", "json", "rdjson"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		require.Equal(t, name, f.String())
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, f, sampleFiles(), Opts{}))
		require.NotEmpty(t, buf.String())
	}
	_, err := ParseFormat("sarif")
	require.Error(t, err)
}

func TestCount(t *testing.T) {
	errs, warns := Count(sampleFiles())
	require.Equal(t, 1, errs)
	require.Equal(t, 1, warns)
}

func TestDisplayPath(t *testing.T) {
	base := t.TempDir()
	p := filepath.Join(base, "docs", "a.md")
	require.Equal(t, "docs/a.md", Opts{PathMode: PathModeRelative, BaseDir: base}.displayPath(p))
	require.Equal(t, "a.md", Opts{PathMode: PathModeBasename}.displayPath(p))
	require.Equal(t, p, Opts{}.displayPath(p))
	require.Equal(t, filepath.ToSlash(p), Opts{PathMode: PathModeAbsolute}.displayPath(p))
}
