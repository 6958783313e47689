package main

import (
	"fmt"
	"sort"

	"github.com/fenilsonani/prototype/internal/core/objects"
	"github.com/spf13/cobra"
)

func newBranchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch [<name> [<rev>]]",
		Short: "List, or create, branches",
		Long:  "With no arguments, lists known branches. With a name and rev, points that branch's ref at rev.",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := openWorkDir()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				names, err := wd.Transfer.Store.ListRefs()
				if err != nil {
					return fmt.Errorf("branch: %w", err)
				}
				sort.Strings(names)
				out := cmd.OutOrStdout()
				current, _ := wd.Branch()
				for _, name := range names {
					marker := "  "
					if name == current {
						marker = "* "
					}
					fmt.Fprintf(out, "%s%s\n", marker, name)
				}
				return nil
			}

			name := args[0]
			var hash objects.ObjectKey
			if len(args) == 2 {
				hash, err = wd.Transfer.Store.ResolveRev(args[1])
				if err != nil {
					return fmt.Errorf("branch: %w", err)
				}
			} else {
				parents := wd.Parents()
				if len(parents) == 0 {
					return fmt.Errorf("branch: no commits yet to branch from")
				}
				hash = parents[0]
			}
			if err := wd.Transfer.Store.UpdateRef(name, hash); err != nil {
				return fmt.Errorf("branch: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", name, hash)
			return nil
		},
	}
	return cmd
}
