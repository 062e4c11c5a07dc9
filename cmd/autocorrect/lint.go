package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"autocorrect/internal/diagfmt"
	"autocorrect/internal/driver"
)

var lintCmd = &cobra.Command{
	Use:   "lint [flags] [path...]",
	Short: "Report lines that would be corrected",
	Long: `lint checks files or directories (default: current directory) and reports
every line autocorrect would rewrite. Exits with 1 when an error-level edit
is found.`,
	RunE: runLint,
}

func init() {
	lintCmd.Flags().String("format", "text", "output format (text|diff|json|rdjson)")
	lintCmd.Flags().Bool("cache", false, "reuse lint results from the on-disk cache")
	lintCmd.Flags().Bool("clear-cache", false, "drop the on-disk cache before linting")
}

func runLint(cmd *cobra.Command, args []string) error {
	formatName, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	outFormat, err := diagfmt.ParseFormat(formatName)
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return err
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return err
	}

	var files []diagfmt.File
	stats := &driver.Stats{}
	if env.stdin != "" {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("lint: reading stdin: %w", err)
		}
		res := driver.LintSource(env.registry, env.stdin, "<stdin>", string(src))
		files = append(files, diagfmt.File{Path: res.Path, Edits: res.Edits, Err: res.Err})
	} else {
		opts := env.driverOptions(stats)
		if useCache || clearCache {
			disk, err := driver.OpenDiskCache("autocorrect")
			if err != nil {
				return fmt.Errorf("lint: opening cache: %w", err)
			}
			if clearCache {
				if err := disk.DropAll(); err != nil {
					return fmt.Errorf("lint: clearing cache: %w", err)
				}
			}
			if useCache {
				opts.Cache = driver.Tiered{driver.NewMemoCache(10 * time.Minute), disk}
			}
		}

		var results []driver.LintResult
		run := func() error {
			var err error
			results, err = driver.LintPaths(cmd.Context(), pathsOrCwd(args), opts)
			return err
		}
		if shouldUseTUI(env.ui, env.quiet) {
			err = runWithUI("lint", &opts, run)
		} else {
			err = run()
		}
		if err != nil {
			return err
		}
		files = lintFiles(results)
	}

	out := cmd.OutOrStdout()
	err = trackPhase("render", func() error {
		return diagfmt.Render(out, outFormat, files, diagfmt.Opts{Color: env.color && outFormat <= diagfmt.FormatDiff})
	})
	if err != nil {
		return err
	}
	env.printTimings(cmd, stats)

	errs, _ := diagfmt.Count(files)
	if errs > 0 || hasFileErrors(files) {
		return errFailed
	}
	return nil
}

func lintFiles(results []driver.LintResult) []diagfmt.File {
	files := make([]diagfmt.File, 0, len(results))
	for _, r := range results {
		if r.Skipped {
			continue
		}
		files = append(files, diagfmt.File{Path: r.Path, Edits: r.Edits, Err: r.Err})
	}
	return files
}

func hasFileErrors(files []diagfmt.File) bool {
	for _, f := range files {
		if f.Err != nil {
			return true
		}
	}
	return false
}

func pathsOrCwd(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

func trackPhase(name string, fn func() error) error {
	if env.timer == nil {
		return fn()
	}
	return env.timer.Track(name, fn)
}

func warnf(format string, args ...any) {
	if env != nil && env.quiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
