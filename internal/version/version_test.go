package version

import (
	"testing"

	"github.com/fatih/color"
)

func withPlain(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestColoredPlain(t *testing.T) {
	withPlain(t)
	orig := Version
	t.Cleanup(func() { Version = orig })

	for in, want := range map[string]string{
		"0.1.0-dev":  "0.1.0-dev",
		"1.2.3":      "1.2.3",
		"2.0.0-rc.1": "2.0.0-rc.1",
		"nightly":    "nightly",
	} {
		Version = in
		if got := Colored(); got != want {
			t.Errorf("Colored(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestString(t *testing.T) {
	withPlain(t)
	origV, origC, origD := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origV, origC, origD })

	Version, GitCommit, BuildDate = "1.2.3", "", ""
	if got := String(); got != "autocorrect 1.2.3" {
		t.Errorf("got %q", got)
	}

	GitCommit = "1234567890abcdef1234"
	BuildDate = "2024-01-15"
	if got := String(); got != "autocorrect 1.2.3 (1234567890ab) built 2024-01-15" {
		t.Errorf("got %q", got)
	}
}
