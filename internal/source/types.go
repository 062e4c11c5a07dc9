package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // не с диска (тест, stdin)
	// FileHadBOM records that a UTF-8 BOM was stripped on load.
	FileHadBOM
	// FileHasCRLF records that the content uses \r\n line terminators.
	// Content is never normalized: rewrites must keep the original terminators.
	FileHasCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// Text returns the file content as a string.
func (f *File) Text() string {
	return string(f.Content)
}

// Bytes returns the content as it should be written back to disk,
// restoring a stripped BOM.
func (f *File) Bytes(content []byte) []byte {
	if f.Flags&FileHadBOM == 0 {
		return content
	}
	out := make([]byte, 0, len(content)+len(utf8BOM))
	out = append(out, utf8BOM...)
	return append(out, content...)
}
