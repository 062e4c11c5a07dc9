package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"autocorrect/internal/diagfmt"
	"autocorrect/internal/driver"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] [path...]",
	Short: "Rewrite files in place",
	Long: `fmt formats files or directories (default: current directory).
With --check nothing is written and the command exits with 1 when a file
would change.`,
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "list files that need formatting without writing them")
	fmtCmd.Flags().Bool("stdout", false, "print formatted content to stdout instead of rewriting files")
	fmtCmd.Flags().Bool("diff", false, "with --check, print a line diff for every file that would change")
}

func runFmt(cmd *cobra.Command, args []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	showDiff, err := cmd.Flags().GetBool("diff")
	if err != nil {
		return err
	}
	if toStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	out := cmd.OutOrStdout()

	if env.stdin != "" {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("fmt: reading stdin: %w", err)
		}
		res := driver.FormatSource(env.registry, env.stdin, "<stdin>", string(src))
		if res.Err != nil {
			warnf("fmt: <stdin>: %v\n", res.Err)
		}
		if check {
			if res.Changed {
				return errFailed
			}
			return nil
		}
		_, err = out.Write(res.Formatted)
		return err
	}

	stats := &driver.Stats{}
	opts := driver.FormatOptions{Options: env.driverOptions(stats), Check: check, Stdout: toStdout}
	var results []driver.FormatResult
	run := func() error {
		var err error
		results, err = driver.FormatPaths(cmd.Context(), pathsOrCwd(args), opts)
		return err
	}
	if shouldUseTUI(env.ui, env.quiet) && !toStdout {
		err = runWithUI("fmt", &opts.Options, run)
	} else {
		err = run()
	}
	if err != nil {
		return err
	}

	var failed, changed bool
	err = trackPhase("render", func() error {
		for _, res := range results {
			switch {
			case res.Err != nil:
				failed = true
				warnf("fmt: %s: %v\n", res.Path, res.Err)
			case toStdout:
				if _, err := out.Write(res.Formatted); err != nil {
					return err
				}
			case res.Changed:
				changed = true
				if env.quiet {
					continue
				}
				if !check {
					fmt.Fprintf(out, "reformatted %s\n", res.Path)
					continue
				}
				if !showDiff {
					fmt.Fprintln(out, res.Path)
					continue
				}
				if err := diagfmt.FileDiff(out, res.Path, string(res.Original), string(res.Formatted), diagfmt.Opts{Color: env.color}); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	env.printTimings(cmd, stats)

	if failed || (check && changed) {
		return errFailed
	}
	return nil
}
