package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"sync"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files. It is safe for concurrent use;
// the driver loads files from many workers at once.
type FileSet struct {
	mu      sync.RWMutex
	files   []*File
	index   map[string]FileID // path -> id
	baseDir string
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase создаёт FileSet с заданной базовой директорией.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{
		files:   make([]*File, 0),
		index:   make(map[string]FileID),
		baseDir: baseDir,
	}
}

// BaseDir returns the directory used for relative display paths.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Add stores a file, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)
	normalizedPath := normalizePath(path)

	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, &File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: lineIdx,
		Hash:    hash,
		Flags:   flags,
	})
	// Всегда обновляем индекс на последнюю версию файла
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, strips a BOM, and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hasCRLF(content) {
		flags |= FileHasCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return fileSet.files[id]
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Len returns the number of files added so far.
func (fileSet *FileSet) Len() int {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return len(fileSet.files)
}

// Resolve converts a span of file id into line and column positions.
func (fileSet *FileSet) Resolve(id FileID, span Span) (start, end LineCol) {
	f := fileSet.Get(id)
	return toLineCol(f.Content, f.LineIdx, span.Start), toLineCol(f.Content, f.LineIdx, span.End)
}

// DisplayPath returns the path of f relative to the set's base directory.
func (fileSet *FileSet) DisplayPath(f *File) string {
	if f.Flags&FileVirtual != 0 {
		return f.Path
	}
	if rel, err := RelativePath(f.Path, fileSet.BaseDir()); err == nil {
		return rel
	}
	return f.Path
}

func hasCRLF(content []byte) bool {
	for i := 1; i < len(content); i++ {
		if content[i] == '\n' && content[i-1] == '\r' {
			return true
		}
	}
	return false
}
