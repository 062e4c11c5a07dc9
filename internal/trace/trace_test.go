package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestStreamTracerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	Begin(tr, ScopePass, "walk", 0).End("3 files")
	Begin(tr, ScopeFile, "lint", 0).End("")

	out := buf.String()
	if !strings.Contains(out, "walk") || !strings.Contains(out, "(3 files)") {
		t.Fatalf("missing pass span:\n%s", out)
	}
	if strings.Contains(out, "lint") {
		t.Fatalf("file scope must be filtered at phase level:\n%s", out)
	}
}

func TestErrorAlwaysEmitted(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatNDJSON)
	Error(tr, "config.reload", errors.New("bad yaml"), 0)

	var ev map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev); err != nil {
		t.Fatalf("invalid ndjson %q: %v", buf.String(), err)
	}
	if ev["name"] != "config.reload" || ev["detail"] != "bad yaml" {
		t.Fatalf("unexpected event: %v", ev)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(r, ScopeRegion, name, "", 0)
	}
	got := r.Snapshot()
	if len(got) != 2 || got[0].Name != "b" || got[1].Name != "c" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("expected Nop without tracer")
	}
	r := NewRingTracer(8, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatal("tracer not propagated")
	}
	span := Begin(r, ScopeDriver, "run", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx) != span.ID() {
		t.Fatal("span not propagated")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("off tracer must be disabled")
	}
}
