package observ

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func fakeClock() func() time.Time {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	step := 0
	return func() time.Time {
		step++
		return t0.Add(time.Duration(step) * 10 * time.Millisecond)
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock()

	outer := tm.Begin("lint")    // 10ms
	inner := tm.Begin("collect") // 20ms
	tm.End(inner, "3 files")     // 30ms
	tm.End(outer, "")            // 40ms
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases: %d", len(r.Phases))
	}
	if r.Phases[0].DurationMS != 30 || r.Phases[1].DurationMS != 10 {
		t.Fatalf("durations: %+v", r.Phases)
	}
	if r.TotalMS != 30 {
		t.Fatalf("total must not double count nested phases: %v", r.TotalMS)
	}
	if r.Phases[1].Note != "3 files" {
		t.Fatalf("note: %q", r.Phases[1].Note)
	}
}

func TestTimerTrackAndSummary(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock()
	boom := errors.New("boom")
	if err := tm.Track("render", func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("track must return fn error, got %v", err)
	}
	s := tm.Summary()
	for _, want := range []string{"timings:", "render", "error: boom", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary misses %q:\n%s", want, s)
		}
	}
	if (&Timer{}).Report().Phases != nil {
		t.Error("empty timer must report no phases")
	}
}
