package format

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"autocorrect/internal/config"
	"autocorrect/internal/rule"
	"autocorrect/internal/source"
	"autocorrect/internal/token"
	"autocorrect/internal/toggle"
	"autocorrect/internal/trace"
)

// Engine formats and lints documents of one dialect.
type Engine struct {
	name      string
	tokenizer Tokenizer
	registry  Registry
	config    *config.Provider
	tracer    trace.Tracer
}

// Option configures an Engine.
type Option func(*Engine)

// WithTracer emits region-level events (embedded failures) to t.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithName labels the engine in errors and traces, usually the dialect id.
func WithName(name string) Option {
	return func(e *Engine) { e.name = name }
}

// New builds an engine. registry and cfg may be nil: no embedded regions are
// delegated and the built-in config is used.
func New(tok Tokenizer, registry Registry, cfg *config.Provider, opts ...Option) *Engine {
	if cfg == nil {
		cfg = config.NewProvider(nil)
	}
	e := &Engine{
		tokenizer: tok,
		registry:  registry,
		config:    cfg,
		tracer:    trace.Nop,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the engine label.
func (e *Engine) Name() string { return e.name }

// Format rewrites src with the current config snapshot.
func (e *Engine) Format(src string) FormatResult {
	res := e.Run(ModeFormat, src, e.config.Current())
	return FormatResult{Out: res.Out, Err: res.Err}
}

// Lint reports the edits Format would make.
func (e *Engine) Lint(src string) LintResult {
	res := e.Run(ModeLint, src, e.config.Current())
	return LintResult{Edits: res.Edits, Err: res.Err}
}

// Run traverses src in mode with cfg pinned for the whole call, including
// embedded regions.
func (e *Engine) Run(mode Mode, src string, cfg *config.Snapshot) Result {
	return e.RunNested(mode, src, cfg, toggle.State{})
}

// RunNested is Run starting from the toggle state in effect where an
// embedded region begins.
func (e *Engine) RunNested(mode Mode, src string, cfg *config.Snapshot, tg toggle.State) Result {
	if cfg == nil {
		cfg = config.Default()
	}
	root, err := e.tokenizer.Tokenize(src)
	if err == nil && root != nil && int(root.Span.End) != len(src) {
		err = fmt.Errorf("tokenizer covered %d of %d bytes", root.Span.End, len(src))
	}
	if err != nil {
		if e.name != "" {
			err = fmt.Errorf("%s: %w", e.name, err)
		}
		if mode == ModeLint {
			return Result{Err: err}
		}
		return Result{Out: src, Err: err}
	}

	w := &walker{
		engine: e,
		mode:   mode,
		cfg:    cfg,
	}
	if mode == ModeLint {
		w.sink = newLintSink()
	} else {
		w.sink = newFormatSink(len(src))
	}
	w.Walk(root, State{Cursor: source.Start, Toggle: tg})
	return w.sink.result(errors.Join(w.errs...))
}

// State is threaded through the walk by value.
type State struct {
	Cursor source.LineCol
	Toggle toggle.State
}

type walker struct {
	engine *Engine
	mode   Mode
	cfg    *config.Snapshot
	sink   sink
	errs   []error
}

// Walk visits n and its children in document order and returns the state
// after the last character of n.
func (w *walker) Walk(n *token.Node, st State) State {
	if n == nil {
		return st
	}
	if n.IsLeaf() {
		return w.leaf(n, st, edges{})
	}
	for i, c := range n.Children {
		if c.IsLeaf() {
			st = w.leaf(c, st, inlineEdges(n.Children, i))
			continue
		}
		st = w.Walk(c, st)
	}
	return st
}

func (w *walker) leaf(n *token.Node, st State, ctx edges) State {
	switch n.Kind {
	case token.Comment:
		for _, p := range toggle.Scan(n.Text) {
			st.Toggle = st.Toggle.Merge(p)
		}
		w.prose(n.Text, st, edges{})
	case token.Text:
		w.prose(n.Text, st, ctx)
	case token.Embedded:
		w.embedded(n, st)
	default:
		w.sink.ignore(n.Text)
	}

	st.Cursor = st.Cursor.Advance(n.Text)
	return st
}

func (w *walker) prose(text string, st State, ctx edges) {
	if st.Toggle.DisablesAll() {
		w.sink.ignore(text)
		return
	}
	enabled := func(name string) bool {
		return w.cfg.Enabled(name) && st.Toggle.Allows(name)
	}
	pipeline := w.cfg.Pipeline()

	lines := splitLines(text)
	for i, ln := range lines {
		if sev, ok := w.cfg.TextRule(ln.body); ok && !sev.Enabled() {
			w.sink.ignore(ln.body + ln.term)
			continue
		}
		if i == 0 {
			ln.before = ctx.before
		}
		if i == len(lines)-1 {
			ln.after = ctx.after
		}
		var res rule.Result
		ln, res = applyLine(pipeline, ln, enabled)

		// первая строка сообщается с колонки курсора, остальные с первого
		// непробельного символа
		pos := source.LineCol{Line: st.Cursor.Line + uint32(i), Col: 1 + uint32(leadingSpace(ln.body))} //nolint:gosec // i < число строк региона
		if i == 0 {
			pos.Col = st.Cursor.Col - uint32(utf8.RuneCountInString(ln.before)) //nolint:gosec // before лежит в той же строке перед курсором
		}
		sev := w.severity(ln.full(), res.Changed)
		w.sink.line(pos, ln, res.Text, sev, res.Changed)
	}
}

// applyLine runs the pipeline on the line with its inline code neighbours.
// The neighbours are dropped when the rewrite does not keep them intact.
func applyLine(p *rule.Pipeline, ln line, enabled func(string) bool) (line, rule.Result) {
	res := p.Apply(ln.full(), enabled)
	if ln.before == "" && ln.after == "" {
		return ln, res
	}
	if len(res.Text) >= len(ln.before)+len(ln.after) &&
		strings.HasPrefix(res.Text, ln.before) && strings.HasSuffix(res.Text, ln.after) {
		return ln, res
	}
	ln.before, ln.after = "", ""
	return ln, p.Apply(ln.body, enabled)
}

func (w *walker) embedded(n *token.Node, st State) {
	var sub Formatter
	ok := false
	if w.engine.registry != nil {
		sub, ok = w.engine.registry.Lookup(n.Lang)
	}
	if !ok || st.Toggle.DisablesAll() {
		w.sink.ignore(n.Text)
		return
	}

	var res Result
	if nested, ok := sub.(NestedFormatter); ok {
		res = nested.RunNested(w.mode, n.Text, w.cfg, st.Toggle)
	} else {
		res = sub.Run(w.mode, n.Text, w.cfg)
	}
	if res.Err != nil {
		err := fmt.Errorf("%w: %s at %s: %w", ErrEmbedded, n.Lang, st.Cursor, res.Err)
		trace.Point(w.engine.tracer, trace.ScopeRegion, "embedded", err.Error(), 0)
		w.errs = append(w.errs, err)
		w.sink.ignore(n.Text)
		return
	}
	w.sink.splice(st.Cursor, res)
}
