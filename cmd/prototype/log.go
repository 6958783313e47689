package main

import (
	"fmt"

	"github.com/fenilsonani/prototype/internal/core/objects"
	"github.com/spf13/cobra"
)

func newLogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show commit history",
		Long:  "Walks the first-parent chain from the current commit, most recent first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := openWorkDir()
			if err != nil {
				return err
			}

			parents := wd.Parents()
			if len(parents) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no commits yet")
				return nil
			}

			out := cmd.OutOrStdout()
			hash := parents[0]
			for {
				obj, err := wd.Transfer.Store.LoadObject(hash)
				if err != nil {
					return fmt.Errorf("log: %w", err)
				}
				commit, ok := obj.(*objects.Commit)
				if !ok {
					return fmt.Errorf("log: %s is not a commit", hash)
				}

				fmt.Fprintf(out, "commit %s\n\n    %s\n\n", hash, commit.Message)

				if len(commit.Parents) == 0 {
					break
				}
				hash = commit.Parents[0]
			}
			return nil
		},
	}
	return cmd
}
