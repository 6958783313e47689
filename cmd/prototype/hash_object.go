package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newHashObjectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-object <path>",
		Short: "Ingest a file or directory into the object store",
		Long:  "Hashes and stores path's content, printing the resulting object hash.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := openWorkDir()
			if err != nil {
				return err
			}

			absPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("hash-object: %w", err)
			}

			if verbose {
				if info, statErr := os.Stat(absPath); statErr == nil && !info.IsDir() {
					log.Printf("hash-object: %d bytes to hash in %s", info.Size(), args[0])
				}
			}

			hash, err := wd.Transfer.HashPath(absPath)
			if err != nil {
				return fmt.Errorf("hash-object: %w", err)
			}
			if hash == nil {
				return fmt.Errorf("hash-object: %s hashed to nothing (entirely ignored)", args[0])
			}

			fmt.Fprintln(cmd.OutOrStdout(), hash.String())
			return nil
		},
	}
	return cmd
}
