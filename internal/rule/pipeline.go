package rule

import (
	"slices"

	"autocorrect/internal/keyword"
)

// maxRounds bounds how often the whole pipeline is re-run on a line. Later
// rules may expose a boundary for an earlier one; the line is done once a
// round leaves it unchanged.
const maxRounds = 4

// Rule is one named step of the pipeline.
type Rule struct {
	Name  string
	Apply func(string) string

	cjkOnly bool
}

// Result of running the pipeline on one line.
type Result struct {
	Text    string
	Changed []string // rules that rewrote the line, in order of first change
}

// Pipeline is the ordered rule list bound to one spellcheck dictionary.
// It is immutable and safe for concurrent use.
type Pipeline struct {
	rules []Rule
	dict  *keyword.Dict
}

var std = New(nil)

// Default returns the pipeline without a spellcheck dictionary.
func Default() *Pipeline { return std }

// New builds the pipeline. dict may be nil; spellcheck is then a no-op.
func New(dict *keyword.Dict) *Pipeline {
	p := &Pipeline{dict: dict}
	p.rules = []Rule{
		{Name: HalfwidthWord, Apply: halfwidthWord, cjkOnly: true},
		{Name: HalfwidthPunctuation, Apply: run(halfwidthPunct), cjkOnly: true},
		{Name: SpaceWord, Apply: run(spaceWord), cjkOnly: true},
		{Name: SpacePunctuation, Apply: run(spacePunctuation), cjkOnly: true},
		{Name: SpaceBracket, Apply: run(spaceBracket), cjkOnly: true},
		{Name: SpaceBackticks, Apply: run(spaceBackticks), cjkOnly: true},
		{Name: SpaceDash, Apply: run(spaceDash), cjkOnly: true},
		{Name: Fullwidth, Apply: run(fullwidth), cjkOnly: true},
		{Name: NoSpaceFullwidth, Apply: run(noSpaceFullwidth), cjkOnly: true},
		{Name: NoSpaceFullwidthQuote, Apply: run(noSpaceFullwidthQuote), cjkOnly: true},
		{Name: NoSpaceDate, Apply: run(noSpaceDate), cjkOnly: true},
		{Name: Spellcheck, Apply: p.spellcheck},
	}
	return p
}

// Rules returns the rules in order.
func (p *Pipeline) Rules() []Rule {
	return slices.Clone(p.rules)
}

// Dict returns the spellcheck dictionary, possibly nil.
func (p *Pipeline) Dict() *keyword.Dict { return p.dict }

func (p *Pipeline) spellcheck(text string) string {
	if p.dict == nil {
		return text
	}
	return p.dict.Correct(text)
}

// Apply runs every rule for which enabled returns true. A nil enabled runs the
// rules that are on by default. Lines without CJK only see spellcheck.
// Backtick code spans are never rewritten; rules only see their boundaries.
func (p *Pipeline) Apply(text string, enabled func(string) bool) Result {
	res := Result{Text: text}
	if text == "" {
		return res
	}
	if enabled == nil {
		enabled = DefaultEnabled
	}
	m := mask(text)
	hasCJK := HasCJK(m.text)
	if !hasCJK && (p.dict.Len() == 0 || !enabled(Spellcheck)) {
		return res
	}
	cur := m.text
	for range maxRounds {
		next := p.round(cur, hasCJK, enabled, &res.Changed)
		if next == cur {
			break
		}
		cur = next
	}
	if len(res.Changed) > 0 {
		res.Text = m.restore(cur)
	}
	return res
}

func (p *Pipeline) round(text string, hasCJK bool, enabled func(string) bool, changed *[]string) string {
	for _, r := range p.rules {
		if r.cjkOnly && !hasCJK {
			continue
		}
		if !enabled(r.Name) {
			continue
		}
		out := r.Apply(text)
		if out == text {
			continue
		}
		if !slices.Contains(*changed, r.Name) {
			*changed = append(*changed, r.Name)
		}
		text = out
	}
	return text
}

// DefaultEnabled reports whether a rule is on with the built-in severities.
func DefaultEnabled(name string) bool {
	return DefaultSeverity(name).Enabled()
}

// FormatLine runs the default pipeline with the built-in severities.
func FormatLine(text string) string {
	return std.Apply(text, DefaultEnabled).Text
}
