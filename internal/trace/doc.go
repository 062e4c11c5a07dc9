// Package trace provides structured event tracing for autocorrect runs.
//
// Tracing follows a run from the CLI down to single files: which config was
// loaded, how long each file took, which embedded region failed. It is the
// logging layer of the tool; everything else writes results only.
//
// # Usage
//
//	autocorrect lint --trace=- --trace-level=detail docs/
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory for dumps on failure
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// Events carry a scope; the level decides which scopes are emitted:
//
//   - LevelPhase: ScopeDriver and ScopePass (config load, walk, render)
//   - LevelDetail: adds ScopeFile (one span per document)
//   - LevelDebug: adds ScopeRegion (embedded regions, tokenizer failures)
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeFile, "lint", parentID)
//	defer span.End("")
package trace
