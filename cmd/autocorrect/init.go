package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"autocorrect/internal/config"
)

var initCmd = &cobra.Command{
	Use:         "init [dir]",
	Short:       "Write a default .autocorrectrc",
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{skipConfig: "true"},
	RunE:        runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	path := filepath.Join(dir, config.FileNames[0])
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("init: %s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("init: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.Template()), 0o644); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if !env.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	}
	return nil
}
