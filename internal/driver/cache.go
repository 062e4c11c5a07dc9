package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"

	"autocorrect/internal/config"
	"autocorrect/internal/diag"
)

// Key identifies one lint result: dialect, effective config and content.
type Key [sha256.Size]byte

func (k Key) String() string { return hex.EncodeToString(k[:]) }

// CacheKey derives the cache key of a lint run.
func CacheKey(dialectID string, cfg *config.Snapshot, content []byte) Key {
	if cfg == nil {
		cfg = config.Default()
	}
	h := sha256.New()
	h.Write([]byte(dialectID))
	h.Write([]byte{0})
	d := cfg.Digest()
	h.Write(d[:])
	h.Write(content)
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// Cache stores lint edits by key. Only successful runs are stored.
type Cache interface {
	Get(key Key) ([]diag.Edit, bool, error)
	Put(key Key, edits []diag.Edit) error
}

// MemoCache keeps results in process memory, mostly for watch mode where
// the same files are linted again and again.
type MemoCache struct {
	c *cache.Cache
}

// NewMemoCache creates a memo whose entries expire after ttl (0 = never).
func NewMemoCache(ttl time.Duration) *MemoCache {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	cleanup := ttl
	if cleanup == cache.NoExpiration || cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &MemoCache{c: cache.New(ttl, cleanup)}
}

func (m *MemoCache) Get(key Key) ([]diag.Edit, bool, error) {
	v, ok := m.c.Get(key.String())
	if !ok {
		return nil, false, nil
	}
	edits, ok := v.([]diag.Edit)
	if !ok {
		return nil, false, nil
	}
	return cloneEdits(edits), true, nil
}

func (m *MemoCache) Put(key Key, edits []diag.Edit) error {
	m.c.SetDefault(key.String(), cloneEdits(edits))
	return nil
}

// Len reports the number of live entries.
func (m *MemoCache) Len() int { return m.c.ItemCount() }

// Flush drops every entry, e.g. after a config reload.
func (m *MemoCache) Flush() { m.c.Flush() }

// Tiered reads from the first cache that has the key and back-fills the
// faster ones; writes go to all of them.
type Tiered []Cache

func (t Tiered) Get(key Key) ([]diag.Edit, bool, error) {
	for i, c := range t {
		if c == nil {
			continue
		}
		edits, ok, err := c.Get(key)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}
		for _, faster := range t[:i] {
			if faster != nil {
				_ = faster.Put(key, edits)
			}
		}
		return edits, true, nil
	}
	return nil, false, nil
}

func (t Tiered) Put(key Key, edits []diag.Edit) error {
	var first error
	for _, c := range t {
		if c == nil {
			continue
		}
		if err := c.Put(key, edits); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func cloneEdits(edits []diag.Edit) []diag.Edit {
	if edits == nil {
		return nil
	}
	out := make([]diag.Edit, len(edits))
	for i, e := range edits {
		e.Rules = append([]string(nil), e.Rules...)
		out[i] = e
	}
	return out
}
