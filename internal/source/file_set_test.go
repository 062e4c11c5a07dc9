package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("README.md", []byte("hello world"), 0)
	id2 := fs.Add("README.md", []byte("hello universe"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.GetLatest("README.md")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d, %v; want %d, true", latest, ok, id2)
	}

	// старая версия остаётся доступной
	if got := fs.Get(id1).Text(); got != "hello world" {
		t.Errorf("first version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestResolveCountsCharacters(t *testing.T) {
	fs := NewFileSet()
	content := []byte("你好\nab中文c")
	id := fs.AddVirtual("test.md", content)

	// "中" starts after "ab" on line 2: byte offset 7+2 = 9
	start, end := fs.Resolve(id, Span{Start: 9, End: 12})
	if start != (LineCol{Line: 2, Col: 3}) {
		t.Errorf("start = %v, want 2:3", start)
	}
	if end != (LineCol{Line: 2, Col: 4}) {
		t.Errorf("end = %v, want 2:4", end)
	}

	start, _ = fs.Resolve(id, Span{Start: 0, End: 0})
	if start != Start {
		t.Errorf("offset 0 resolved to %v", start)
	}
}

func TestLoadBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("中文\r\nabc\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM")
	}
	if f.Flags&FileHasCRLF == 0 {
		t.Error("expected FileHasCRLF")
	}
	// CRLF is preserved verbatim
	if f.Text() != "中文\r\nabc\r\n" {
		t.Errorf("content = %q", f.Text())
	}
	if got := string(f.Bytes(f.Content)); got != string(raw) {
		t.Errorf("Bytes did not restore BOM: %q", got)
	}
	if got := fs.DisplayPath(f); got != "a.txt" {
		t.Errorf("DisplayPath = %q, want a.txt", got)
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	target := filepath.Join(tmp, "other", "file.md")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}
