package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"autocorrect/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Show build information",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch strings.ToLower(format) {
		case "pretty", "":
			_, err = fmt.Fprintln(out, version.String())
			return err
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(versionPayload{
				Tool:      "autocorrect",
				Version:   version.Version,
				GitCommit: strings.TrimSpace(version.GitCommit),
				BuildDate: strings.TrimSpace(version.BuildDate),
			})
		}
		return fmt.Errorf("unknown version format %q (expected pretty|json)", format)
	},
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}
