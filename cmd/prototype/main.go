package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "prototype",
		Short: "A content-addressed object store with a working-directory transfer layer",
		Long: `prototype tracks a working directory as a content-addressed object graph:
blobs and chunked blobs for file content, trees for directory snapshots, and
commits tying a tree to its history.`,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(
		newInitCommand(),
		newHashObjectCommand(),
		newShowObjectCommand(),
		newExtractObjectCommand(),
		newCacheStatusCommand(),
		newStatusCommand(),
		newCommitCommand(),
		newLogCommand(),
		newBranchCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		if verbose {
			log.Printf("prototype: %v", err)
		}
		os.Exit(1)
	}
}
