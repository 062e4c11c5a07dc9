package source

import "testing"

func TestLineColAdvance(t *testing.T) {
	tests := []struct {
		name string
		from LineCol
		text string
		want LineCol
	}{
		{"empty", Start, "", Start},
		{"single line", Start, "hello", LineCol{Line: 1, Col: 6}},
		{"multi line span", Start, "Foo\nHello world\nThis is ", LineCol{Line: 3, Col: 9}},
		{"crlf counts once", Start, "a\r\nb", LineCol{Line: 2, Col: 2}},
		{"cjk counts characters", LineCol{Line: 4, Col: 3}, "中文", LineCol{Line: 4, Col: 5}},
		{"trailing newline", LineCol{Line: 2, Col: 7}, "x\n", LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.Advance(tt.text); got != tt.want {
				t.Errorf("Advance(%q) from %v = %v, want %v", tt.text, tt.from, got, tt.want)
			}
		})
	}
}

func TestLineColAnchor(t *testing.T) {
	base := LineCol{Line: 10, Col: 8}
	if got := base.Anchor(LineCol{Line: 1, Col: 3}); got != (LineCol{Line: 10, Col: 10}) {
		t.Errorf("first-line anchor = %v", got)
	}
	if got := base.Anchor(LineCol{Line: 3, Col: 5}); got != (LineCol{Line: 12, Col: 5}) {
		t.Errorf("later-line anchor = %v", got)
	}
}

func TestSpanCoverAndSlice(t *testing.T) {
	src := "hello world"
	s := Span{Start: 6, End: 8}.Cover(Span{Start: 7, End: 11})
	if s != (Span{Start: 6, End: 11}) {
		t.Fatalf("Cover = %v", s)
	}
	if got := s.Slice(src); got != "world" {
		t.Errorf("Slice = %q", got)
	}
	if got := SpanOf(1, 3).ShiftRight(2); got != (Span{Start: 3, End: 5}) {
		t.Errorf("ShiftRight = %v", got)
	}
}
