package dialect

// Hint is a small piece of evidence suggesting a dialect for a file.
type Hint struct {
	Dialect string
	Score   int
	Reason  string
}

// Evidence aggregates per-file hints collected during detection.
type Evidence struct {
	hints []Hint
}

// NewEvidence creates a new Evidence container.
func NewEvidence() *Evidence {
	return &Evidence{
		hints: make([]Hint, 0, 8),
	}
}

// Add appends a hint to the evidence collection.
func (e *Evidence) Add(h Hint) {
	if e == nil || h.Dialect == "" {
		return
	}
	e.hints = append(e.hints, h)
}

// Hints returns the collected hints.
func (e *Evidence) Hints() []Hint {
	if e == nil {
		return nil
	}
	return e.hints
}

// Len reports how many hints were collected.
func (e *Evidence) Len() int {
	if e == nil {
		return 0
	}
	return len(e.hints)
}
