package diag

// Reporter: минимальный контракт получения edits от движка.
// Реализации: BagReporter (кладёт в Bag), NopReporter.
type Reporter interface {
	Report(e Edit)
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(e Edit) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(e)
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Edit) {}
