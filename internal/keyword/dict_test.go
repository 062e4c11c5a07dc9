package keyword

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCorrectBoundaries(t *testing.T) {
	d := NewDict(map[string]string{"ios": "iOS"})

	tests := []struct {
		in   string
		want string
	}{
		{"this is ios", "this is iOS"},
		{"IOS at start", "iOS at start"},
		{"hello_ios", "hello_ios"},
		{"https://ios.com", "https://ios.com"},
		{"iosx", "iosx"},
		{"xios", "xios"},
		{"我用ios开发", "我用iOS开发"},
		{"ios，你好", "iOS，你好"},
		{"no match here", "no match here"},
		{"", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, d.Correct(tt.in), "Correct(%q)", tt.in)
	}
}

func TestCorrectPrefersLongestAndNeverOverlaps(t *testing.T) {
	d := NewDict(map[string]string{
		"github":         "GitHub",
		"github actions": "GitHub Actions",
		"foo bar":        "Foo Bar",
		"bar baz":        "Bar Baz",
	})
	require.Equal(t, "use GitHub Actions now", d.Correct("use github actions now"))
	require.Equal(t, "push to GitHub", d.Correct("push to github"))
	require.Equal(t, "Foo Bar baz", d.Correct("foo bar baz"))
}

func TestCorrectShiftsOffsetsAfterLengthChange(t *testing.T) {
	d := NewDict(map[string]string{"js": "JavaScript", "ios": "iOS", "k8s": "Kubernetes"})
	require.Equal(t, "JavaScript 和 iOS 和 Kubernetes", d.Correct("js 和 ios 和 k8s"))
}

func TestCorrectLongLine(t *testing.T) {
	d := NewDict(map[string]string{"ios": "iOS", "k8s": "Kubernetes"})
	src := strings.Repeat("ios 和 k8s，", 5000)
	require.Equal(t, strings.Repeat("iOS 和 Kubernetes，", 5000), d.Correct(src))
}

func TestFindUsesCharacterOffsets(t *testing.T) {
	d := NewDict(map[string]string{"ios": "iOS"})
	m := d.Find("中文ios")
	require.Len(t, m, 1)
	require.Equal(t, Match{Start: 2, Len: 3, Key: "ios"}, m[0])
}

func TestFindReportsSuffixKeys(t *testing.T) {
	// "he" является суффиксом "she": оба должны найтись через fail-ссылки
	d := NewDict(map[string]string{"she": "She", "he": "He", "hers": "Hers"})
	got := d.Find("ushers")
	require.Equal(t, []Match{
		{Start: 1, Len: 3, Key: "she"},
		{Start: 2, Len: 4, Key: "hers"},
		{Start: 2, Len: 2, Key: "he"},
	}, got)
}

func TestCorrectNoMatchDoesNotAllocate(t *testing.T) {
	d := NewDict(map[string]string{"ios": "iOS", "github": "GitHub"})
	text := "nothing to see in this sentence at all"
	allocs := testing.AllocsPerRun(100, func() {
		_ = d.Correct(text)
	})
	require.Zero(t, allocs)
}

func TestEmptyDict(t *testing.T) {
	d := NewDict(nil)
	require.Equal(t, 0, d.Len())
	require.Nil(t, d.Find("anything"))
	require.Equal(t, "anything", d.Correct("anything"))
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	d := NewDict(map[string]string{"WiFi": "Wi-Fi"})
	repl, ok := d.Lookup("WIFI")
	require.True(t, ok)
	require.Equal(t, "Wi-Fi", repl)
}

func TestParseWords(t *testing.T) {
	words, err := ParseWords([]string{"iOS", "  wifi = Wi-Fi ", "", "# comment"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"iOS": "iOS", "wifi": "Wi-Fi"}, words)

	_, err = ParseWords([]string{"= nothing"})
	require.Error(t, err)
}

// naiveFind is the quadratic reference search.
func naiveFind(keys []string, text string) []Match {
	runes := []rune(fold(text))
	seen := map[string]bool{}
	var out []Match
	for _, k := range keys {
		k = fold(k)
		if seen[k] {
			continue
		}
		seen[k] = true
		kr := []rune(k)
		for i := 0; i+len(kr) <= len(runes); i++ {
			if string(runes[i:i+len(kr)]) == k {
				out = append(out, Match{Start: i, Len: utf8.RuneCountInString(k), Key: k})
			}
		}
	}
	sortMatches(out)
	return out
}

func TestFindMatchesNaiveSearch(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		keys := rapid.SliceOfN(rapid.StringMatching(`[abAB中]{1,3}`), 1, 5).Draw(t, "keys")
		text := rapid.StringMatching(`[abAB 中]{0,24}`).Draw(t, "text")

		words := make(map[string]string, len(keys))
		for _, k := range keys {
			words[k] = k
		}
		got := NewDict(words).Find(text)
		want := naiveFind(keys, text)
		if len(got) != len(want) {
			t.Fatalf("Find(%q) = %v, want %v", text, got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("Find(%q)[%d] = %v, want %v", text, i, got[i], want[i])
			}
		}
	})
}
