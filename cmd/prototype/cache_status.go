package main

import (
	"fmt"
	"path/filepath"

	"github.com/fenilsonani/prototype/internal/core/statcache"
	"github.com/spf13/cobra"
)

func newCacheStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache-status <path>",
		Short: "Report the stat cache's view of a file",
		Long:  "Checks whether path's (size, mtime) still matches the last hash recorded for it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := openWorkDir()
			if err != nil {
				return err
			}

			absPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("cache-status: %w", err)
			}
			dir, name := filepath.Dir(absPath), filepath.Base(absPath)

			stats, err := statcache.StatFile(dir, name)
			if err != nil {
				return fmt.Errorf("cache-status: %w", err)
			}

			status, err := wd.Transfer.Cache.For(dir).Check(name, stats)
			if err != nil {
				return fmt.Errorf("cache-status: %w", err)
			}

			out := cmd.OutOrStdout()
			switch status.Kind {
			case statcache.NotCached:
				fmt.Fprintf(out, "not-cached size=%d\n", status.Size)
			case statcache.Modified:
				fmt.Fprintf(out, "modified size=%d\n", status.Size)
			case statcache.Cached:
				fmt.Fprintf(out, "cached hash=%s\n", status.Hash)
			}
			return nil
		},
	}
	return cmd
}
