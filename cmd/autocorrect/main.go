package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"autocorrect/internal/version"
)

// errFailed signals exit code 1 after the command already printed its report.
var errFailed = errors.New("autocorrect: failed")

var rootCmd = &cobra.Command{
	Use:   "autocorrect",
	Short: "Improve copywriting: spacing and punctuation between CJK and Latin text",
	Long: `autocorrect lints and formats mixed CJK/Latin text in documents and in the
comments and strings of source code.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
	PersistentPostRun: func(*cobra.Command, []string) { cleanupRun() },
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: .autocorrectrc or autocorrect.toml found upwards)")
	pf.Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.String("ui", "auto", "progress UI (auto|on|off)")
	pf.String("stdin", "", "read the document from stdin as this file type (e.g. md, go, html)")
	pf.String("trace", "", "trace output file ('-' for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "ring buffer size for trace-mode ring|both")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat trace events at this interval (0 = off)")
	pf.String("cpuprofile", "", "write a CPU profile to this file")
	pf.String("memprofile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime execution trace to this file")
}

func main() {
	err := rootCmd.Execute()
	cleanupRun()
	if err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
