package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"autocorrect/internal/dialect"
	"autocorrect/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] [file]",
	Short: "Print the regions a file is split into",
	Long: `tokenize shows how a document is split into text, comment, string and code
regions, and which regions are handed to another dialect. Reads stdin with
--stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	var (
		name = "<stdin>"
		src  []byte
		err  error
	)
	switch {
	case len(args) == 1:
		name = args[0]
		src, err = os.ReadFile(name)
	case env.stdin != "":
		src, err = io.ReadAll(cmd.InOrStdin())
	default:
		return fmt.Errorf("tokenize: expected a file or --stdin")
	}
	if err != nil {
		return fmt.Errorf("tokenize: %w", err)
	}

	id := env.stdin
	if id == "" {
		id = dialect.Detect(name, src, env.provider.Current()).ID
	}
	tok, ok := env.registry.Tokenizer(id)
	if !ok {
		warnf("tokenize: no tokenizer for %q, using text\n", id)
		id = dialect.Text
		if tok, ok = env.registry.Tokenizer(id); !ok {
			return fmt.Errorf("tokenize: no text tokenizer registered")
		}
	}
	root, err := tok.Tokenize(string(src))
	if err != nil {
		return fmt.Errorf("tokenize: %s: %w", name, err)
	}
	if !env.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", name, id)
	}
	return token.Dump(cmd.OutOrStdout(), root)
}
