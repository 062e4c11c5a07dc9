package main

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"autocorrect/internal/config"
	"autocorrect/internal/diagfmt"
	"autocorrect/internal/driver"
	"autocorrect/internal/trace"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] [path...]",
	Short: "Lint again whenever a file or the config changes",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", config.DefaultDebounce, "quiet period before re-linting")
	watchCmd.Flags().String("format", "text", "output format (text|diff|json|rdjson)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}
	formatName, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	outFormat, err := diagfmt.ParseFormat(formatName)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths := pathsOrCwd(args)
	// снапшот конфига входит в ключ, так что перезагрузка сама инвалидирует кэш
	memo := driver.NewMemoCache(30 * time.Minute)
	lint := func(targets []string) {
		opts := env.driverOptions(nil)
		opts.Cache = memo
		results, err := driver.LintPaths(ctx, targets, opts)
		if err != nil {
			if ctx.Err() == nil {
				warnf("watch: %v\n", err)
			}
			return
		}
		render := diagfmt.Opts{Color: env.color && outFormat <= diagfmt.FormatDiff}
		if err := diagfmt.Render(cmd.OutOrStdout(), outFormat, lintFiles(results), render); err != nil {
			warnf("watch: %v\n", err)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fsw.Close()
	for _, p := range paths {
		if err := addWatchDirs(fsw, p); err != nil {
			return fmt.Errorf("watch: %w", err)
		}
	}

	var reloaded <-chan *config.Snapshot
	if env.configPath != "" {
		cw, err := config.NewWatcher(env.provider, env.configPath, debounce, env.tracer)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		if reloaded, err = cw.Start(); err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		defer func() { _ = cw.Stop() }()
	}

	lint(paths)
	warnf("watching %s (ctrl-c to stop)\n", strings.Join(paths, ", "))

	pending := make(map[string]struct{})
	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
				if ev.Op&fsnotify.Create != 0 {
					_ = addWatchDirs(fsw, ev.Name)
				}
				continue
			}
			if !driver.Supported(ev.Name, env.provider.Current()) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(debounce)

		case <-timer.C:
			targets := existing(pending)
			clear(pending)
			if len(targets) > 0 {
				lint(targets)
			}

		case s := <-reloaded:
			warnf("config reloaded from %s\n", s.Source())
			lint(paths)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			trace.Error(env.tracer, "watch", err, 0)
		}
	}
}

// addWatchDirs watches root and its non-hidden subdirectories. A file root
// watches its directory.
func addWatchDirs(w *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func existing(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for p := range set {
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
