package driver

import (
	"context"
	"time"

	"autocorrect/internal/config"
	"autocorrect/internal/diag"
	"autocorrect/internal/dialect"
	"autocorrect/internal/format"
	"autocorrect/internal/trace"
)

// LintResult captures the result of linting a single file.
type LintResult struct {
	Path    string
	Dialect string
	Edits   []diag.Edit
	Err     error
	Cached  bool
	Skipped bool // binary file
}

// HasErrors reports whether any edit has error severity.
func (r LintResult) HasErrors() bool {
	for _, e := range r.Edits {
		if e.Severity == diag.SevError {
			return true
		}
	}
	return false
}

// LintPaths lints provided files or directories. Per-file failures are
// reported in the results; the returned error is for the run itself
// (no files, cancellation).
func LintPaths(ctx context.Context, paths []string, opts Options) ([]LintResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := prepare(ctx, "lint", paths, &opts)
	if err != nil {
		return nil, err
	}
	results := make([]LintResult, len(files))
	err = fanOut(ctx, "lint", files, &opts, func(ctx context.Context, i int, in *input) error {
		results[i] = lintOne(ctx, in, &opts)
		return nil
	})
	return results, err
}

func lintOne(ctx context.Context, in *input, opts *Options) LintResult {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "lint_file", trace.CurrentSpan(ctx)).WithExtra("path", in.path)
	started := time.Now()
	res := LintResult{Path: in.path, Dialect: in.dialect}

	switch {
	case in.err != nil:
		res.Err = in.err
	case in.binary:
		res.Skipped = true
	default:
		res.Edits, res.Cached, res.Err = lintCached(ctx, in, opts)
	}

	ev := Event{Path: in.path, Dialect: in.dialect, Edits: len(res.Edits), Err: res.Err, Stage: StageDone, Elapsed: time.Since(started)}
	switch {
	case res.Err != nil:
		ev.Stage = StageFailed
		trace.Error(tracer, "lint_file", res.Err, span.ID())
	case res.Skipped:
		ev.Stage = StageSkipped
	}
	if s := opts.Stats; s != nil {
		switch {
		case res.Err != nil:
			s.Errors.Add(1)
		case res.Skipped:
			s.Skipped.Add(1)
		}
		s.Edits.Add(int64(len(res.Edits)))
		if len(res.Edits) > 0 {
			s.Changed.Add(1)
		}
	}
	opts.emit(ev)
	span.WithExtra("dialect", in.dialect).End(ev.Stage.String())
	return res
}

func lintCached(ctx context.Context, in *input, opts *Options) ([]diag.Edit, bool, error) {
	eng := opts.registry().EngineFor(in.dialect)
	if opts.Cache == nil {
		res := eng.Run(format.ModeLint, string(in.content), in.cfg)
		return res.Edits, false, res.Err
	}

	tracer := trace.FromContext(ctx)
	key := CacheKey(eng.Name(), in.cfg, in.content)
	edits, ok, err := opts.Cache.Get(key)
	if err != nil {
		// битый кэш не должен ломать lint
		trace.Error(tracer, "cache_get", err, trace.CurrentSpan(ctx))
	}
	if ok {
		if opts.Stats != nil {
			opts.Stats.CacheHits.Add(1)
		}
		return edits, true, nil
	}
	if opts.Stats != nil {
		opts.Stats.CacheMisses.Add(1)
	}

	res := eng.Run(format.ModeLint, string(in.content), in.cfg)
	if res.Err == nil {
		if err := opts.Cache.Put(key, res.Edits); err != nil {
			trace.Error(tracer, "cache_put", err, trace.CurrentSpan(ctx))
		}
	}
	return res.Edits, false, res.Err
}

// LintSource lints src as dialect id (detected from name when id is empty),
// e.g. for stdin.
func LintSource(reg *dialect.Registry, id, name, src string) LintResult {
	if reg == nil {
		reg = dialect.NewRegistry(nil)
	}
	cfg := reg.Config().Current()
	id = sourceDialect(id, name, src, cfg)
	res := reg.EngineFor(id).Run(format.ModeLint, src, cfg)
	return LintResult{Path: name, Dialect: id, Edits: res.Edits, Err: res.Err}
}

func sourceDialect(id, name, src string, cfg *config.Snapshot) string {
	if id != "" {
		if canon, ok := dialect.Canonical(id); ok {
			return canon
		}
		return id
	}
	return dialect.Detect(name, []byte(src), cfg).ID
}
