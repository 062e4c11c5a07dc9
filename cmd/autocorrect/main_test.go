package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"autocorrect/internal/config"
	"autocorrect/internal/diagfmt"
)

// execute runs the CLI with every flag reset to its default.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		reset(c.Flags())
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--ui", "off", "--color", "off"}, args...))
	err := rootCmd.Execute()
	cleanupRun()
	return out.String(), err
}

func workspace(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	t.Chdir(dir)
	return dir
}

func TestLintJSON(t *testing.T) {
	workspace(t, map[string]string{
		"docs/a.md": "# 你好world\n",
		"ok.md":     "正常的文本\n",
	})
	out, err := execute(t, "", "lint", "--format", "json")
	require.ErrorIs(t, err, errFailed)

	var payload diagfmt.OutputJSON
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Equal(t, 1, payload.Count)
	require.Equal(t, filepath.Join("docs", "a.md"), payload.Messages[0].Filepath)
	require.Equal(t, "# 你好 world", payload.Messages[0].Lines[0].New)
}

func TestLintHonorsConfig(t *testing.T) {
	workspace(t, map[string]string{
		"a.md":           "你好world\n",
		".autocorrectrc": "rules:\n  space-word: 2\n",
	})
	out, err := execute(t, "", "lint")
	require.NoError(t, err, "warnings do not fail the run")
	require.Contains(t, out, "Warning: 1")

	_, err = execute(t, "", "lint", "--config", "missing.toml")
	require.ErrorIs(t, err, config.ErrConfig)
}

func TestFmtCheckThenWrite(t *testing.T) {
	dir := workspace(t, map[string]string{"a.md": "你好world\n"})

	out, err := execute(t, "", "fmt", "--check", "--diff")
	require.ErrorIs(t, err, errFailed)
	require.Contains(t, out, "-你好world")
	require.Contains(t, out, "+你好 world")

	_, err = execute(t, "", "fmt")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	require.Equal(t, "你好 world\n", string(data))

	_, err = execute(t, "", "fmt", "--check")
	require.NoError(t, err)
}

func TestStdin(t *testing.T) {
	workspace(t, nil)
	out, err := execute(t, "你好world", "--stdin", "md", "fmt")
	require.NoError(t, err)
	require.Equal(t, "你好 world", out)

	_, err = execute(t, "你好world\n", "--stdin", "md", "lint")
	require.ErrorIs(t, err, errFailed)

	_, err = execute(t, "你好 world\n", "--stdin", "md", "lint")
	require.NoError(t, err)
}

func TestInitAndTokenize(t *testing.T) {
	dir := workspace(t, map[string]string{"a.md": "```go\nx := 1\n```\n"})
	_, err := execute(t, "", "init")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, ".autocorrectrc"))
	require.NoError(t, err)
	require.Equal(t, config.Template(), string(data))

	_, err = execute(t, "", "init")
	require.Error(t, err, "init must not overwrite")

	out, err := execute(t, "", "tokenize", "a.md")
	require.NoError(t, err)
	require.Contains(t, out, "Embedded(go)")
}

func TestVersionJSON(t *testing.T) {
	workspace(t, nil)
	out, err := execute(t, "", "version", "--format", "json")
	require.NoError(t, err)
	require.Contains(t, out, `"tool": "autocorrect"`)
}

func TestModes(t *testing.T) {
	for _, v := range []string{"on", "off", "auto", ""} {
		_, err := readUIMode(v)
		require.NoError(t, err)
	}
	_, err := readUIMode("maybe")
	require.Error(t, err)
	require.True(t, shouldUseTUI(uiModeOn, true))
	require.False(t, shouldUseTUI(uiModeOff, false))

	on, err := readColorMode("always")
	require.NoError(t, err)
	require.True(t, on)
	_, err = readColorMode("rainbow")
	require.Error(t, err)
}
