package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"autocorrect/internal/config"
	"autocorrect/internal/dialect"
	"autocorrect/internal/driver"
	"autocorrect/internal/format"
	"autocorrect/internal/observ"
	"autocorrect/internal/prof"
	"autocorrect/internal/trace"
)

// runEnv is what every subcommand needs after flag parsing.
type runEnv struct {
	tracer     trace.Tracer
	provider   *config.Provider
	registry   *dialect.Registry
	configPath string // пусто, если работаем на встроенных правилах
	color      bool
	quiet      bool
	jobs       int
	ui         uiMode
	stdin      string
	timer      *observ.Timer
}

var (
	env     *runEnv
	cleanup func()
)

// skipConfig marks commands that must work without a valid config.
const skipConfig = "skip-config"

func setupRun(cmd *cobra.Command, _ []string) error {
	pf := cmd.Root().PersistentFlags()
	e := &runEnv{}

	colorMode, err := pf.GetString("color")
	if err != nil {
		return err
	}
	if e.color, err = readColorMode(colorMode); err != nil {
		return err
	}
	color.NoColor = !e.color

	if e.quiet, err = pf.GetBool("quiet"); err != nil {
		return err
	}
	if e.jobs, err = pf.GetInt("jobs"); err != nil {
		return err
	}
	if e.stdin, err = pf.GetString("stdin"); err != nil {
		return err
	}
	uiValue, err := pf.GetString("ui")
	if err != nil {
		return err
	}
	if e.ui, err = readUIMode(uiValue); err != nil {
		return err
	}
	timings, err := pf.GetBool("timings")
	if err != nil {
		return err
	}
	if timings {
		e.timer = observ.NewTimer()
	}

	session, err := startProfiles(cmd)
	if err != nil {
		return err
	}
	done, err := setupTracing(cmd)
	if err != nil {
		_ = session.Stop()
		return err
	}
	cleanup = func() {
		done()
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}
	e.tracer = trace.FromContext(cmd.Context())

	e.provider = config.NewProvider(nil)
	if cmd.Annotations[skipConfig] == "" {
		if err := loadConfig(cmd, e); err != nil {
			return err
		}
	}
	e.registry = dialect.NewRegistry(e.provider, format.WithTracer(e.tracer))
	env = e
	return nil
}

func cleanupRun() {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
}

func loadConfig(cmd *cobra.Command, e *runEnv) error {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return err
	}
	if path == "" {
		found, ok, err := config.Find(".")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		path = found
	}
	span := trace.Begin(e.tracer, trace.ScopeDriver, "config.load", 0).WithExtra("path", path)
	if _, err := e.provider.LoadFile(path); err != nil {
		span.End("failed")
		return err
	}
	span.End("")
	e.configPath = path
	return nil
}

func startProfiles(cmd *cobra.Command) (*prof.Session, error) {
	pf := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = pf.GetString("cpuprofile"); err != nil {
		return nil, err
	}
	if opts.Mem, err = pf.GetString("memprofile"); err != nil {
		return nil, err
	}
	if opts.Trace, err = pf.GetString("runtime-trace"); err != nil {
		return nil, err
	}
	if !opts.Enabled() {
		return nil, nil
	}
	return prof.Start(opts)
}

func readColorMode(value string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == "", nil
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
}

// driverOptions builds the common options of a lint or fmt run.
func (e *runEnv) driverOptions(stats *driver.Stats) driver.Options {
	return driver.Options{
		Registry: e.registry,
		Jobs:     e.jobs,
		Timer:    e.timer,
		Stats:    stats,
	}
}

func (e *runEnv) printTimings(cmd *cobra.Command, stats *driver.Stats) {
	if e.timer == nil || e.quiet {
		return
	}
	out := cmd.ErrOrStderr()
	fmt.Fprint(out, e.timer.Summary())
	if s := stats.String(); s != "" {
		fmt.Fprintf(out, "  %s\n", s)
	}
}
