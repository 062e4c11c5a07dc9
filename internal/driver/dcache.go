package driver

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"autocorrect/internal/diag"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты lint по ключу на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the on-disk form of one lint result.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16
	Edits  []DiskEdit
}

// DiskEdit mirrors diag.Edit with stable msgpack field names.
type DiskEdit struct {
	Line     uint32   `msgpack:"l"`
	Col      uint32   `msgpack:"c"`
	Old      string   `msgpack:"o"`
	New      string   `msgpack:"n"`
	Severity uint8    `msgpack:"s"`
	Rules    []string `msgpack:"r,omitempty"`
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache uses dir as the cache root.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Key) string {
	hexKey := key.String()
	// подкаталог по первым двум символам, чтобы не держать всё в одной папке
	return filepath.Join(c.dir, "lint", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes edits to the disk cache.
func (c *DiskCache) Put(key Key, edits []diag.Edit) (err error) {
	if c == nil {
		return nil
	}
	payload := DiskPayload{Schema: diskCacheSchemaVersion, Edits: make([]DiskEdit, len(edits))}
	for i, e := range edits {
		payload.Edits[i] = DiskEdit{
			Line:     e.Line,
			Col:      e.Col,
			Old:      e.Old,
			New:      e.New,
			Severity: uint8(e.Severity),
			Rules:    e.Rules,
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads edits from the disk cache. Entries of another schema are misses.
func (c *DiskCache) Get(key Key) (edits []diag.Edit, ok bool, err error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	if len(payload.Edits) == 0 {
		return nil, true, nil
	}
	edits = make([]diag.Edit, len(payload.Edits))
	for i, e := range payload.Edits {
		edits[i] = diag.Edit{
			Line:     e.Line,
			Col:      e.Col,
			Old:      e.Old,
			New:      e.New,
			Severity: diag.Severity(e.Severity),
			Rules:    e.Rules,
		}
	}
	return edits, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
