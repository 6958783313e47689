package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newExtractObjectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract-object <rev> <path>",
		Short: "Extract a stored object onto the filesystem",
		Long:  "rev is either a literal 40-hex object hash or a branch name; path is the extraction destination.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := openWorkDir()
			if err != nil {
				return err
			}

			hash, err := wd.Transfer.Store.ResolveRev(args[0])
			if err != nil {
				return fmt.Errorf("extract-object: %w", err)
			}

			destPath, err := filepath.Abs(args[1])
			if err != nil {
				return fmt.Errorf("extract-object: %w", err)
			}

			if err := wd.Transfer.ExtractObject(hash, destPath); err != nil {
				return fmt.Errorf("extract-object: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Extracted %s to %s\n", hash, destPath)
			return nil
		},
	}
	return cmd
}
