package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"autocorrect/internal/diag"
	"autocorrect/internal/dialect"
	"autocorrect/internal/observ"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func sampleTree(t *testing.T) string {
	return writeTree(t, map[string]string{
		"docs/a.md":       "# 你好world\n\n正常的 text\n",
		"src/b.go":        "// 注释abc\npackage b\n",
		"src/clean.go":    "package clean\n",
		".hidden/c.md":    "你好world\n",
		"src/.cache/d.md": "你好world\n",
		"blob.unknownext": "你好world\n",
	})
}

func TestCollectFilesSkipsHiddenAndUnknown(t *testing.T) {
	root := sampleTree(t)
	files, err := CollectFiles(context.Background(), []string{root}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "docs", "a.md"),
		filepath.Join(root, "src", "b.go"),
		filepath.Join(root, "src", "clean.go"),
	}, files)

	// явно указанный файл берётся всегда
	explicit := filepath.Join(root, "blob.unknownext")
	files, err = CollectFiles(context.Background(), []string{explicit, explicit}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{explicit}, files)
}

func TestSupported(t *testing.T) {
	require.True(t, Supported("docs/a.md", nil))
	require.False(t, Supported("docs/.a.md", nil))
	require.False(t, Supported("blob.unknownext", nil))
}

func TestLintPaths(t *testing.T) {
	root := sampleTree(t)
	var mu sync.Mutex
	stages := map[string][]Stage{}
	stats := &Stats{}
	timer := observ.NewTimer()

	results, err := LintPaths(context.Background(), []string{root}, Options{
		Jobs:  2,
		Stats: stats,
		Timer: timer,
		Observer: func(ev Event) {
			mu.Lock()
			defer mu.Unlock()
			stages[filepath.Base(ev.Path)] = append(stages[filepath.Base(ev.Path)], ev.Stage)
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	md := results[0]
	require.Equal(t, "markdown", md.Dialect)
	require.NoError(t, md.Err)
	require.Len(t, md.Edits, 1)
	require.Equal(t, diag.Edit{
		Line: 1, Col: 1, Old: "# 你好world", New: "# 你好 world",
		Severity: diag.SevError, Rules: []string{"space-word"},
	}, md.Edits[0])
	require.True(t, md.HasErrors())

	require.Equal(t, "go", results[1].Dialect)
	require.Len(t, results[1].Edits, 1)
	require.Empty(t, results[2].Edits)

	require.EqualValues(t, 3, stats.Files.Load())
	require.EqualValues(t, 2, stats.Changed.Load())
	require.Equal(t, []Stage{StageQueued, StageWorking, StageDone}, stages["a.md"])
	require.Len(t, timer.Report().Phases, 2)
}

func TestLintPathsCache(t *testing.T) {
	root := sampleTree(t)
	memo := NewMemoCache(time.Minute)
	disk, err := NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	reg := dialect.NewRegistry(nil)

	first := &Stats{}
	cold, err := LintPaths(context.Background(), []string{root}, Options{Registry: reg, Cache: Tiered{memo, disk}, Stats: first})
	require.NoError(t, err)
	require.EqualValues(t, 0, first.CacheHits.Load())
	require.EqualValues(t, 3, first.CacheMisses.Load())
	require.Equal(t, 3, memo.Len())

	// память пуста: ответы приходят с диска и снова оседают в памяти
	memo.Flush()
	second := &Stats{}
	warm, err := LintPaths(context.Background(), []string{root}, Options{Registry: reg, Cache: Tiered{memo, disk}, Stats: second})
	require.NoError(t, err)
	require.EqualValues(t, 3, second.CacheHits.Load())
	require.Equal(t, 3, memo.Len())
	for i := range cold {
		require.True(t, warm[i].Cached)
		require.ElementsMatch(t, cold[i].Edits, warm[i].Edits)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	c, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)
	key := CacheKey("markdown", nil, []byte("x"))

	_, ok, err := c.Get(key)
	require.NoError(t, err)
	require.False(t, ok)

	edits := []diag.Edit{{Line: 2, Col: 3, Old: "a", New: "b", Severity: diag.SevWarning, Rules: []string{"fullwidth"}}}
	require.NoError(t, c.Put(key, edits))
	got, ok, err := c.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, edits, got)

	require.NoError(t, c.DropAll())
	_, ok, err = c.Get(key)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCacheKeyDependsOnInputs(t *testing.T) {
	a := CacheKey("markdown", nil, []byte("x"))
	require.Equal(t, a, CacheKey("markdown", nil, []byte("x")))
	require.NotEqual(t, a, CacheKey("text", nil, []byte("x")))
	require.NotEqual(t, a, CacheKey("markdown", nil, []byte("y")))
}

func TestFormatPaths(t *testing.T) {
	root := sampleTree(t)
	md := filepath.Join(root, "docs", "a.md")

	results, err := FormatPaths(context.Background(), []string{root}, FormatOptions{Check: true})
	require.NoError(t, err)
	require.True(t, results[0].Changed)
	require.Equal(t, "# 你好 world\n\n正常的 text\n", string(results[0].Formatted))
	require.Equal(t, "# 你好world\n\n正常的 text\n", string(results[0].Original))
	require.False(t, results[2].Changed)
	data, err := os.ReadFile(md)
	require.NoError(t, err)
	require.Equal(t, "# 你好world\n\n正常的 text\n", string(data), "check must not write")

	results, err = FormatPaths(context.Background(), []string{md}, FormatOptions{Stdout: true})
	require.NoError(t, err)
	require.Equal(t, "# 你好 world\n\n正常的 text\n", string(results[0].Formatted))

	_, err = FormatPaths(context.Background(), []string{root}, FormatOptions{})
	require.NoError(t, err)
	data, err = os.ReadFile(md)
	require.NoError(t, err)
	require.Equal(t, "# 你好 world\n\n正常的 text\n", string(data))
	data, err = os.ReadFile(filepath.Join(root, "src", "b.go"))
	require.NoError(t, err)
	require.Equal(t, "// 注释 abc\npackage b\n", string(data))
}

func TestFormatKeepsBOM(t *testing.T) {
	root := writeTree(t, map[string]string{"bom.md": "\ufeff你好world\n"})
	p := filepath.Join(root, "bom.md")
	results, err := FormatPaths(context.Background(), []string{p}, FormatOptions{})
	require.NoError(t, err)
	require.True(t, results[0].Changed)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	require.Equal(t, "\ufeff你好 world\n", string(data))
}

func TestBinaryFilesAreSkipped(t *testing.T) {
	root := writeTree(t, map[string]string{"x.md": "a\x00b\x00c"})
	results, err := LintPaths(context.Background(), []string{filepath.Join(root, "x.md")}, Options{})
	require.NoError(t, err)
	require.True(t, results[0].Skipped)
	require.Empty(t, results[0].Edits)
}

func TestNoFiles(t *testing.T) {
	_, err := LintPaths(context.Background(), []string{t.TempDir()}, Options{})
	require.True(t, errors.Is(err, ErrNoFiles))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FormatPaths(ctx, []string{t.TempDir()}, FormatOptions{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSources(t *testing.T) {
	res := LintSource(nil, "md", "<stdin>", "你好world\n")
	require.Equal(t, "markdown", res.Dialect)
	require.Len(t, res.Edits, 1)

	out := FormatSource(nil, "", "notes.txt", "你好world")
	require.Equal(t, "text", out.Dialect)
	require.True(t, out.Changed)
	require.Equal(t, "你好 world", string(out.Formatted))
}
