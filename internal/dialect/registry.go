package dialect

import (
	"sort"
	"strings"
	"sync"

	"autocorrect/internal/config"
	"autocorrect/internal/format"
)

// Registry holds one formatter per dialect id. It is the embedded-region
// lookup of every engine it builds.
type Registry struct {
	mu         sync.RWMutex
	formatters map[string]format.Formatter
	engines    map[string]*format.Engine
	tokenizers map[string]format.Tokenizer
	config     *config.Provider
	opts       []format.Option
}

// NewRegistry registers all built-in dialects. Engines read cfg; opts are
// applied to each of them.
func NewRegistry(cfg *config.Provider, opts ...format.Option) *Registry {
	if cfg == nil {
		cfg = config.NewProvider(nil)
	}
	r := &Registry{
		formatters: make(map[string]format.Formatter, len(builtin)),
		engines:    make(map[string]*format.Engine, len(builtin)),
		tokenizers: make(map[string]format.Tokenizer, len(builtin)),
		config:     cfg,
		opts:       opts,
	}
	for _, d := range builtin {
		tok, err := d.Tokenizer()
		if err != nil {
			// chroma without this lexer; files fall back to text
			continue
		}
		r.RegisterTokenizer(d.ID, tok)
	}
	return r
}

// Config returns the provider the registry engines read.
func (r *Registry) Config() *config.Provider { return r.config }

// RegisterTokenizer builds an engine for tok and registers it under id.
func (r *Registry) RegisterTokenizer(id string, tok format.Tokenizer) *format.Engine {
	id = strings.ToLower(id)
	opts := make([]format.Option, 0, len(r.opts)+1)
	opts = append(opts, format.WithName(id))
	opts = append(opts, r.opts...)
	eng := format.New(tok, r, r.config, opts...)

	r.mu.Lock()
	r.formatters[id] = eng
	r.engines[id] = eng
	r.tokenizers[id] = tok
	r.mu.Unlock()
	return eng
}

// Register adds or replaces the formatter for id.
func (r *Registry) Register(id string, f format.Formatter) {
	id = strings.ToLower(id)
	r.mu.Lock()
	r.formatters[id] = f
	delete(r.engines, id)
	delete(r.tokenizers, id)
	r.mu.Unlock()
}

func (r *Registry) resolve(id string) string {
	key := strings.ToLower(strings.TrimSpace(id))
	if _, ok := r.formatters[key]; ok {
		return key
	}
	if canon, ok := Canonical(key); ok {
		return canon
	}
	return key
}

// Lookup implements format.Registry. Aliases and extensions resolve to
// their dialect ("js" → "javascript").
func (r *Registry) Lookup(id string) (format.Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formatters[r.resolve(id)]
	return f, ok
}

// Engine returns the engine registered for id.
func (r *Registry) Engine(id string) (*format.Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.engines[r.resolve(id)]
	return e, ok
}

// EngineFor returns the engine for id, falling back to text.
func (r *Registry) EngineFor(id string) *format.Engine {
	if e, ok := r.Engine(id); ok {
		return e
	}
	e, _ := r.Engine(Text)
	return e
}

// Tokenizer returns the tokenizer registered for id.
func (r *Registry) Tokenizer(id string) (format.Tokenizer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tokenizers[r.resolve(id)]
	return t, ok
}

// IDs returns the registered ids in order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.formatters))
	for id := range r.formatters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
