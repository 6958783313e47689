package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCommitCommand() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record a commit over the working tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			if message == "" {
				return fmt.Errorf("commit: a message is required (-m)")
			}

			wd, err := openWorkDir()
			if err != nil {
				return err
			}

			branch, hash, err := wd.Commit(message)
			if err != nil {
				return fmt.Errorf("commit: %w", err)
			}

			out := cmd.OutOrStdout()
			if branch != "" {
				fmt.Fprintf(out, "[%s %s] %s\n", branch, hash.String()[:12], message)
			} else {
				fmt.Fprintf(out, "[detached HEAD %s] %s\n", hash.String()[:12], message)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	return cmd
}
