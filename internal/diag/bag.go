package diag

import (
	"sort"
)

// Bag collects edits of one document.
type Bag struct {
	items []Edit
}

func NewBag(capacity int) *Bag {
	if capacity < 0 {
		capacity = 0
	}
	return &Bag{items: make([]Edit, 0, capacity)}
}

// Add appends an edit. Edits with Old == New or SevPass are dropped.
// Возвращает false, если edit не добавлен.
func (b *Bag) Add(e Edit) bool {
	if e.Old == e.New || e.Severity == SevPass {
		return false
	}
	b.items = append(b.items, e)
	return true
}

// HasErrors возвращает true, если есть хотя бы один edit с Severity >= Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings возвращает true, если есть хотя бы один edit с Severity >= Warning
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// длина
func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// Items возвращает read-only slice.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Edit {
	if b == nil {
		return nil
	}
	return b.items
}

// Merge appends all edits of other.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}

// Sort orders edits by line, column, then severity (desc) for stable output
// after merging bags of embedded regions.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		ei, ej := b.items[i], b.items[j]
		if ei.Line != ej.Line {
			return ei.Line < ej.Line
		}
		if ei.Col != ej.Col {
			return ei.Col < ej.Col
		}
		return ei.Severity > ej.Severity
	})
}

// Count returns the number of errors and warnings.
func (b *Bag) Count() (errors, warnings int) {
	for i := range b.items {
		switch b.items[i].Severity {
		case SevError:
			errors++
		case SevWarning:
			warnings++
		}
	}
	return errors, warnings
}
