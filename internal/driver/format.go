package driver

import (
	"bytes"
	"context"
	"os"
	"time"

	"autocorrect/internal/dialect"
	"autocorrect/internal/format"
	"autocorrect/internal/trace"
)

// FormatOptions configures formatting.
type FormatOptions struct {
	Options
	Check  bool
	Stdout bool
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Dialect   string
	Changed   bool
	Err       error
	Formatted []byte // with Check or Stdout
	Original  []byte // with Check, BOM stripped
	Skipped   bool
}

// FormatPaths formats provided files or directories.
// When opts.Check is true, files are not modified; Changed indicates whether formatting
// would update the file contents. When opts.Stdout is true, formatted content is returned
// in the results without touching files on disk.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := prepare(ctx, "format", paths, &opts.Options)
	if err != nil {
		return nil, err
	}
	results := make([]FormatResult, len(files))
	err = fanOut(ctx, "format", files, &opts.Options, func(ctx context.Context, i int, in *input) error {
		results[i] = formatOne(ctx, in, &opts)
		return nil
	})
	return results, err
}

func formatOne(ctx context.Context, in *input, opts *FormatOptions) FormatResult {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "format_file", trace.CurrentSpan(ctx)).WithExtra("path", in.path)
	started := time.Now()
	result := FormatResult{Path: in.path, Dialect: in.dialect}

	switch {
	case in.err != nil:
		result.Err = in.err
	case in.binary:
		result.Skipped = true
	default:
		eng := opts.registry().EngineFor(in.dialect)
		res := eng.Run(format.ModeFormat, string(in.content), in.cfg)
		if res.Err != nil {
			result.Err = res.Err
		}
		formatted := []byte(res.Out)
		changed := !bytes.Equal(in.content, formatted)
		switch {
		case opts.Check:
			result.Changed = changed
			if changed {
				result.Original = in.content
				result.Formatted = formatted
			}
		case opts.Stdout:
			result.Formatted = formatted
			result.Changed = changed
		case changed:
			if err := writeFile(in.path, in.file.Bytes(formatted)); err != nil {
				result.Err = err
			} else {
				result.Changed = true
			}
		}
	}

	ev := Event{Path: in.path, Dialect: in.dialect, Changed: result.Changed, Err: result.Err, Stage: StageDone, Elapsed: time.Since(started)}
	switch {
	case result.Err != nil:
		ev.Stage = StageFailed
		trace.Error(tracer, "format_file", result.Err, span.ID())
	case result.Skipped:
		ev.Stage = StageSkipped
	}
	if s := opts.Stats; s != nil {
		switch {
		case result.Err != nil:
			s.Errors.Add(1)
		case result.Skipped:
			s.Skipped.Add(1)
		}
		if result.Changed {
			s.Changed.Add(1)
		}
	}
	opts.emit(ev)
	span.WithExtra("dialect", in.dialect).End(ev.Stage.String())
	return result
}

func writeFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, data, mode.Perm())
}

// FormatSource formats src as dialect id (detected from name when id is
// empty), e.g. for stdin.
func FormatSource(reg *dialect.Registry, id, name, src string) FormatResult {
	if reg == nil {
		reg = dialect.NewRegistry(nil)
	}
	cfg := reg.Config().Current()
	id = sourceDialect(id, name, src, cfg)
	res := reg.EngineFor(id).Run(format.ModeFormat, src, cfg)
	return FormatResult{
		Path:      name,
		Dialect:   id,
		Changed:   res.Out != src,
		Formatted: []byte(res.Out),
		Err:       res.Err,
	}
}
