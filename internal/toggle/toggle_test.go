package toggle

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in    string
		ok    bool
		want  Variant
		rules []string
	}{
		{"// autocorrect-disable", true, Disable, nil},
		{"/* AutoCorrect-Enable */", true, Enable, nil},
		{"# autocorrect: false", true, Disable, nil},
		{"<!-- autocorrect: true -->", true, Enable, nil},
		{"// autocorrect-disable space-word, fullwidth", true, Disable, []string{"space-word", "fullwidth"}},
		{"// autocorrect-enable Space-Word", true, Enable, []string{"space-word"}},
		{"// autocorrect-disable next line", true, Disable, nil},
		{"// autocorrect-disable nonsense, space-word", true, Disable, []string{"space-word"}},
		{"// autocorrected text", false, None, nil},
		{"// nothing to see", false, None, nil},
	}
	for _, tt := range tests {
		p, ok := Parse(tt.in)
		require.Equal(t, tt.ok, ok, "Parse(%q)", tt.in)
		if !ok {
			continue
		}
		require.Equal(t, tt.want, p.Variant, "Parse(%q)", tt.in)
		require.Equal(t, tt.rules, p.Rules, "Parse(%q)", tt.in)
	}
}

func TestPragmaWithNoteDisablesAll(t *testing.T) {
	p, ok := Parse("// autocorrect-disable next line")
	require.True(t, ok)
	s := State{}.Merge(p)
	require.True(t, s.DisablesAll())
	require.False(t, s.Allows("space-word"))
}

func TestScanKeepsOrder(t *testing.T) {
	ps := Scan("autocorrect-disable space-word ... autocorrect-enable")
	require.Len(t, ps, 2)
	require.Equal(t, Disable, ps[0].Variant)
	require.Equal(t, Enable, ps[1].Variant)
	require.Empty(t, ps[1].Rules)
}

func TestMatch(t *testing.T) {
	var s State
	_, ok := s.Match("space-word")
	require.False(t, ok, "None has no opinion")
	require.True(t, s.Allows("space-word"))

	s = s.Merge(Pragma{Variant: Disable})
	require.True(t, s.DisablesAll())
	enabled, ok := s.Match("fullwidth")
	require.True(t, ok)
	require.False(t, enabled)

	s = s.Merge(Pragma{Variant: Enable})
	enabled, ok = s.Match("fullwidth")
	require.True(t, ok)
	require.True(t, enabled)

	s = State{}.Merge(Pragma{Variant: Disable, Rules: []string{"space-word"}})
	require.False(t, s.DisablesAll())
	require.False(t, s.Allows("space-word"))
	require.True(t, s.Allows("fullwidth"))

	s = State{}.Merge(Pragma{Variant: Enable, Rules: []string{"space-word"}})
	require.True(t, s.Allows("space-word"))
	require.False(t, s.Allows("fullwidth"))
}

func TestMergeSameVariantUnions(t *testing.T) {
	s := State{}.
		Merge(Pragma{Variant: Disable, Rules: []string{"a"}}).
		Merge(Pragma{Variant: Disable, Rules: []string{"b"}})
	require.Equal(t, []string{"a", "b"}, s.Rules())

	// пустой набор побеждает
	s = s.Merge(Pragma{Variant: Disable})
	require.True(t, s.DisablesAll())
	s = s.Merge(Pragma{Variant: Disable, Rules: []string{"c"}})
	require.True(t, s.DisablesAll())
}

func TestMergeOppositeVariantReplaces(t *testing.T) {
	s := State{}.
		Merge(Pragma{Variant: Disable, Rules: []string{"a", "b"}}).
		Merge(Pragma{Variant: Enable, Rules: []string{"c"}})
	require.Equal(t, Enable, s.Kind)
	require.Equal(t, []string{"c"}, s.Rules())
}

func TestMergeDoesNotMutateReceiver(t *testing.T) {
	base := State{}.Merge(Pragma{Variant: Disable, Rules: []string{"a"}})
	_ = base.Merge(Pragma{Variant: Disable, Rules: []string{"b"}})
	require.Equal(t, []string{"a"}, base.Rules())
}

func TestMergeProperties(t *testing.T) {
	name := rapid.SampledFrom([]string{"a", "b", "c"})
	pragma := rapid.Custom(func(t *rapid.T) Pragma {
		v := rapid.SampledFrom([]Variant{Enable, Disable}).Draw(t, "variant")
		rules := rapid.SliceOfN(name, 0, 2).Draw(t, "rules")
		return Pragma{Variant: v, Rules: rules}
	})
	rapid.Check(t, func(t *rapid.T) {
		ps := rapid.SliceOfN(pragma, 1, 6).Draw(t, "pragmas")
		var s State
		for _, p := range ps {
			s = s.Merge(p)
		}
		last := ps[len(ps)-1]
		if s.Kind != last.Variant {
			t.Fatalf("state variant %v, last pragma %v", s.Kind, last.Variant)
		}
		// последнее правило из последней прагмы всегда получает ответ этой прагмы
		for _, r := range last.Rules {
			enabled, ok := s.Match(r)
			if !ok {
				t.Fatalf("no answer for %q in %v", r, s)
			}
			if s.Kind == Disable && enabled {
				t.Fatalf("%q enabled after disable pragma: %v", r, s)
			}
			if s.Kind == Enable && !enabled {
				t.Fatalf("%q disabled after enable pragma: %v", r, s)
			}
		}
	})
}
