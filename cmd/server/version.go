package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func (a *app) newVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]string{
					"version":    a.info.Version,
					"build_date": a.info.BuildDate,
					"git_commit": a.info.GitCommit,
					"go_version": runtime.Version(),
				})
			}

			fmt.Fprintf(out, "StarMap Server\n")
			fmt.Fprintf(out, "Version:    %s\n", a.info.Version)
			fmt.Fprintf(out, "Build Date: %s\n", a.info.BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", a.info.GitCommit)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output version info as JSON")

	return cmd
}
