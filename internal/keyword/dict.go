package keyword

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const root int32 = 0

type node struct {
	next map[rune]int32
	fail int32
	out  []int32 // индексы в Dict.keys, включая унаследованные по fail-ссылкам
}

// Dict maps lowercase keys to their canonical spelling.
type Dict struct {
	keys    []string // отсортированы: длинные первыми, затем лексикографически
	keyLen  []int    // длина ключа в символах
	repl    []string
	nodes   []node
	longest int
}

// Match is one occurrence of a dictionary key. Offsets are in characters.
type Match struct {
	Start int
	Len   int
	Key   string
}

// End returns the character offset right after the match.
func (m Match) End() int { return m.Start + m.Len }

// NewDict builds the automaton from key -> replacement pairs. Keys are folded
// to lower case; when two keys fold to the same string the one that sorts
// first by its original spelling wins.
func NewDict(words map[string]string) *Dict {
	folded := make(map[string]string, len(words))
	originals := make([]string, 0, len(words))
	for k := range words {
		originals = append(originals, k)
	}
	sort.Strings(originals)
	for _, k := range originals {
		key := fold(strings.TrimSpace(k))
		if key == "" {
			continue
		}
		if _, dup := folded[key]; dup {
			continue
		}
		folded[key] = words[k]
	}

	d := &Dict{nodes: []node{{fail: root}}}
	d.keys = make([]string, 0, len(folded))
	for k := range folded {
		d.keys = append(d.keys, k)
	}
	sort.Slice(d.keys, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(d.keys[i]), utf8.RuneCountInString(d.keys[j])
		if li != lj {
			return li > lj
		}
		return d.keys[i] < d.keys[j]
	})
	d.keyLen = make([]int, len(d.keys))
	d.repl = make([]string, len(d.keys))
	for i, k := range d.keys {
		d.keyLen[i] = utf8.RuneCountInString(k)
		d.repl[i] = folded[k]
		if d.keyLen[i] > d.longest {
			d.longest = d.keyLen[i]
		}
		d.insert(k, int32(i)) //nolint:gosec // количество ключей ограничено размером конфига
	}
	d.link()
	return d
}

// Len returns the number of keys.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Lookup returns the replacement for a key (case-insensitive).
func (d *Dict) Lookup(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	key = fold(key)
	for i, k := range d.keys {
		if k == key {
			return d.repl[i], true
		}
	}
	return "", false
}

func (d *Dict) insert(key string, idx int32) {
	cur := root
	for _, r := range key {
		nx, ok := d.nodes[cur].next[r]
		if !ok {
			nx = int32(len(d.nodes)) //nolint:gosec // размер арены ограничен суммарной длиной ключей
			d.nodes = append(d.nodes, node{})
			if d.nodes[cur].next == nil {
				d.nodes[cur].next = make(map[rune]int32, 2)
			}
			d.nodes[cur].next[r] = nx
		}
		cur = nx
	}
	d.nodes[cur].out = append(d.nodes[cur].out, idx)
}

// link computes fail links breadth-first and propagates terminal lists so
// each node reports every key that is a suffix of its path.
func (d *Dict) link() {
	queue := make([]int32, 0, len(d.nodes))
	for _, child := range d.nodes[root].next {
		d.nodes[child].fail = root
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for r, child := range d.nodes[cur].next {
			f := d.nodes[cur].fail
			for {
				if nx, ok := d.nodes[f].next[r]; ok && nx != child {
					d.nodes[child].fail = nx
					break
				}
				if f == root {
					d.nodes[child].fail = root
					break
				}
				f = d.nodes[f].fail
			}
			inherited := d.nodes[d.nodes[child].fail].out
			if len(inherited) > 0 {
				out := make([]int32, 0, len(d.nodes[child].out)+len(inherited))
				out = append(out, d.nodes[child].out...)
				out = append(out, inherited...)
				d.nodes[child].out = out
			}
			queue = append(queue, child)
		}
	}
}

// step follows goto/fail transitions for r starting from cur.
func (d *Dict) step(cur int32, r rune) int32 {
	for {
		if nx, ok := d.nodes[cur].next[r]; ok {
			return nx
		}
		if cur == root {
			return root
		}
		cur = d.nodes[cur].fail
	}
}

// Find returns every occurrence of every key in text, sorted by start offset,
// longer matches first on ties. Offsets are character indices.
func (d *Dict) Find(text string) []Match {
	if d.Len() == 0 {
		return nil
	}
	var matches []Match
	cur := root
	i := 0
	for _, r := range text {
		cur = d.step(cur, foldRune(r))
		for _, k := range d.nodes[cur].out {
			n := d.keyLen[k]
			matches = append(matches, Match{Start: i - n + 1, Len: n, Key: d.keys[k]})
		}
		i++
	}
	if len(matches) == 0 {
		return nil
	}
	sortMatches(matches)
	return matches
}

func sortMatches(m []Match) {
	sort.Slice(m, func(i, j int) bool {
		if m[i].Start != m[j].Start {
			return m[i].Start < m[j].Start
		}
		if m[i].Len != m[j].Len {
			return m[i].Len > m[j].Len
		}
		return m[i].Key < m[j].Key
	})
}

// Correct rewrites every accepted match with its replacement. A match is
// rejected when the character right before or after it is a non-CJK letter or
// digit, or ASCII punctuation; matches never overlap. Text without any match
// is returned as is.
func (d *Dict) Correct(text string) string {
	matches := d.Find(text)
	if len(matches) == 0 {
		return text
	}
	src := []rune(text)
	var sb strings.Builder
	sb.Grow(len(text))

	copied := 0 // src[:copied] уже в sb
	lastEnd := 0
	changed := false
	for _, m := range matches {
		if m.Start < lastEnd {
			continue
		}
		if m.Start > 0 && blocksBoundary(src[m.Start-1]) {
			continue
		}
		if m.End() < len(src) && blocksBoundary(src[m.End()]) {
			continue
		}
		repl := d.replacement(m.Key)
		if string(src[m.Start:m.End()]) != repl {
			changed = true
		}
		sb.WriteString(string(src[copied:m.Start]))
		sb.WriteString(repl)
		copied = m.End()
		lastEnd = m.End()
	}
	if !changed {
		return text
	}
	sb.WriteString(string(src[copied:]))
	return sb.String()
}

func (d *Dict) replacement(key string) string {
	i := sort.Search(len(d.keys), func(i int) bool {
		li, lk := d.keyLen[i], utf8.RuneCountInString(key)
		if li != lk {
			return li < lk
		}
		return d.keys[i] >= key
	})
	if i < len(d.keys) && d.keys[i] == key {
		return d.repl[i]
	}
	return key
}

func (d *Dict) String() string {
	return fmt.Sprintf("keyword.Dict{keys: %d, nodes: %d}", len(d.keys), len(d.nodes))
}

func fold(s string) string {
	return strings.Map(foldRune, s)
}

func foldRune(r rune) rune {
	return unicode.ToLower(r)
}

// blocksBoundary reports whether r glued to a match means the match is part
// of a larger token.
func blocksBoundary(r rune) bool {
	if r < utf8.RuneSelf {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
	}
	if isCJK(r) {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hangul, unicode.Hiragana, unicode.Katakana, unicode.Bopomofo)
}
