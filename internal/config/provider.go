package config

import (
	"sync"
	"sync/atomic"
)

// Provider publishes the current Snapshot. Loads are serialised and
// all-or-nothing; reads are a single atomic load.
type Provider struct {
	mu  sync.Mutex
	cur atomic.Pointer[Snapshot]
}

// NewProvider starts with initial, or the default snapshot when nil.
func NewProvider(initial *Snapshot) *Provider {
	if initial == nil {
		initial = Default()
	}
	p := &Provider{}
	p.cur.Store(initial)
	return p
}

// Current returns the snapshot in effect.
func (p *Provider) Current() *Snapshot {
	return p.cur.Load()
}

// Load parses data and swaps it in. On error the current snapshot stays.
func (p *Provider) Load(name string, data []byte) (*Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := Parse(name, data)
	if err != nil {
		return nil, err
	}
	p.cur.Store(s)
	return s, nil
}

// LoadFile is Load for a file on disk.
func (p *Provider) LoadFile(path string) (*Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	p.cur.Store(s)
	return s, nil
}
