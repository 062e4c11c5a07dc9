package diag

import "testing"

func TestBagDropsNoopEdits(t *testing.T) {
	b := NewBag(4)
	if b.Add(Edit{Line: 1, Col: 1, Old: "a", New: "a", Severity: SevError}) {
		t.Error("expected identical old/new to be dropped")
	}
	if b.Add(Edit{Line: 1, Col: 1, Old: "a", New: "b", Severity: SevPass}) {
		t.Error("expected SevPass edit to be dropped")
	}
	if !b.Add(Edit{Line: 1, Col: 1, Old: "a", New: "b", Severity: SevWarning}) {
		t.Error("expected real edit to be added")
	}
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
	if b.HasErrors() {
		t.Error("HasErrors = true with only a warning")
	}
	if !b.HasWarnings() {
		t.Error("HasWarnings = false")
	}
}

func TestBagSortAndCount(t *testing.T) {
	b := NewBag(0)
	BagReporter{Bag: b}.Report(Edit{Line: 3, Col: 1, Old: "x", New: "y", Severity: SevWarning})
	BagReporter{Bag: b}.Report(Edit{Line: 1, Col: 5, Old: "x", New: "y", Severity: SevError})
	BagReporter{Bag: b}.Report(Edit{Line: 1, Col: 2, Old: "x", New: "y", Severity: SevError})
	b.Sort()

	items := b.Items()
	if items[0].Col != 2 || items[1].Col != 5 || items[2].Line != 3 {
		t.Fatalf("unexpected order: %v", items)
	}
	errs, warns := b.Count()
	if errs != 2 || warns != 1 {
		t.Errorf("Count = %d, %d; want 2, 1", errs, warns)
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   any
		want Severity
		err  bool
	}{
		{0, SevPass, false},
		{1, SevError, false},
		{2, SevWarning, false},
		{int64(2), SevWarning, false},
		{"off", SevPass, false},
		{"Warning", SevWarning, false},
		{"error", SevError, false},
		{true, SevError, false},
		{3, SevPass, true},
		{"loud", SevPass, true},
		{nil, SevPass, true},
	}
	for _, tt := range tests {
		got, err := SeverityFromAny(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("SeverityFromAny(%v) err = %v, want err %v", tt.in, err, tt.err)
			continue
		}
		if got != tt.want {
			t.Errorf("SeverityFromAny(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
