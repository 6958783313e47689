package main

import (
	"fmt"
	"path/filepath"

	"github.com/fenilsonani/prototype/pkg/workdir"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Initialize a new repository",
		Long:  "Create an object store and work dir state under the given path (default: current directory)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}

			wd, err := workdir.Init(absPath)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty prototype repository in %s\n",
				filepath.Join(wd.Path, workdir.RepoDirName))
			return nil
		},
	}
	return cmd
}
