package driver

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"autocorrect/internal/config"
	"autocorrect/internal/dialect"
	"autocorrect/internal/observ"
	"autocorrect/internal/source"
	"autocorrect/internal/trace"
)

// Stage is the state of one file in a run.
type Stage uint8

const (
	StageQueued Stage = iota
	StageWorking
	StageDone
	StageFailed
	StageSkipped
)

func (s Stage) String() string {
	switch s {
	case StageQueued:
		return "queued"
	case StageWorking:
		return "working"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	case StageSkipped:
		return "skipped"
	}
	return "unknown"
}

// Event reports progress of one file.
type Event struct {
	Path    string
	Stage   Stage
	Dialect string
	Edits   int
	Changed bool
	Err     error
	Elapsed time.Duration
}

// Observer receives events from worker goroutines; it must be safe for
// concurrent use.
type Observer func(Event)

// Options configures a run.
type Options struct {
	Registry *dialect.Registry
	Jobs     int
	Cache    Cache         // lint only; nil disables caching
	Observer Observer      // nil ignores events
	Timer    *observ.Timer // nil disables phase timings
	Stats    *Stats        // nil discards counters
	Files    *source.FileSet
}

// Stats counts what a run did. Safe for concurrent use.
type Stats struct {
	Files       atomic.Int64
	Changed     atomic.Int64
	Edits       atomic.Int64
	Errors      atomic.Int64
	Skipped     atomic.Int64
	CacheHits   atomic.Int64
	CacheMisses atomic.Int64
}

func (s *Stats) String() string {
	if s == nil {
		return ""
	}
	hits, misses := s.CacheHits.Load(), s.CacheMisses.Load()
	rate := 0.0
	if hits+misses > 0 {
		rate = float64(hits) / float64(hits+misses) * 100
	}
	return fmt.Sprintf("files=%d changed=%d edits=%d errors=%d skipped=%d cache=%d/%d (%.1f%%)",
		s.Files.Load(), s.Changed.Load(), s.Edits.Load(), s.Errors.Load(), s.Skipped.Load(),
		hits, hits+misses, rate)
}

func (o *Options) registry() *dialect.Registry {
	if o.Registry == nil {
		o.Registry = dialect.NewRegistry(nil)
	}
	return o.Registry
}

func (o *Options) fileSet() *source.FileSet {
	if o.Files == nil {
		o.Files = source.NewFileSet()
	}
	return o.Files
}

func (o *Options) emit(ev Event) {
	if o.Observer != nil {
		o.Observer(ev)
	}
}

func (o *Options) phase(name string) func(note string) {
	if o.Timer == nil {
		return func(string) {}
	}
	idx := o.Timer.Begin(name)
	return func(note string) { o.Timer.End(idx, note) }
}

// input is one file ready for an engine.
type input struct {
	path    string
	dialect string
	content []byte
	file    *source.File
	cfg     *config.Snapshot
	binary  bool
	err     error // read failure
}

// prepare collects the files of a run and queues them.
func prepare(ctx context.Context, op string, paths []string, opts *Options) ([]string, error) {
	reg := opts.registry()
	done := opts.phase("collect")
	files, err := CollectFiles(ctx, paths, reg.Config().Current())
	done(fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoFiles)
	}
	for _, f := range files {
		opts.emit(Event{Path: f, Stage: StageQueued})
	}
	return files, nil
}

// fanOut reads and detects every file and calls fn on a bounded errgroup.
// fn writes its own result slot, so results keep the collected order.
func fanOut(ctx context.Context, op string, files []string, opts *Options, fn func(ctx context.Context, i int, in *input) error) error {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, op, trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)
	done := opts.phase(op)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	reg := opts.registry()
	fset := opts.fileSet()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			if opts.Stats != nil {
				opts.Stats.Files.Add(1)
			}
			opts.emit(Event{Path: path, Stage: StageWorking})

			in := &input{path: path}
			id, err := fset.Load(path)
			switch {
			case err != nil:
				in.err = err
			default:
				in.file = fset.Get(id)
				if dialect.IsBinary(in.file.Content) {
					in.binary = true
					break
				}
				in.cfg = reg.Config().Current()
				in.dialect = dialect.Detect(path, in.file.Content, in.cfg).ID
				in.content = in.file.Content
			}
			return fn(gctx, i, in)
		})
	}
	err := g.Wait()
	note := opts.Stats.String()
	done(note)
	span.WithExtra("files", fmt.Sprint(len(files))).End(note)
	return err
}
