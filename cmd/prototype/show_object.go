package main

import (
	"fmt"

	"github.com/fenilsonani/prototype/internal/core/objects"
	"github.com/spf13/cobra"
)

func newShowObjectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show-object <rev>",
		Short: "Print an object's type and content summary",
		Long:  "rev is either a literal 40-hex object hash or a branch name.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := openWorkDir()
			if err != nil {
				return err
			}

			hash, err := wd.Transfer.Store.ResolveRev(args[0])
			if err != nil {
				return fmt.Errorf("show-object: %w", err)
			}

			obj, err := wd.Transfer.Store.LoadObject(hash)
			if err != nil {
				return fmt.Errorf("show-object: %w", err)
			}

			printObject(cmd, hash, obj)
			return nil
		},
	}
	return cmd
}

func printObject(cmd *cobra.Command, hash objects.ObjectKey, obj objects.Object) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "hash: %s\ntype: %s\n", hash, obj.Type())

	switch o := obj.(type) {
	case *objects.Blob:
		fmt.Fprintf(out, "size: %d\n", len(o.Content))
	case *objects.ChunkedBlob:
		fmt.Fprintf(out, "chunks: %d\n", len(o.Chunks))
		for _, c := range o.Chunks {
			fmt.Fprintf(out, "  %s offset=%d size=%d\n", c.Hash, c.Offset, c.Size)
		}
	case *objects.Tree:
		fmt.Fprintf(out, "entries: %d\n", o.Len())
		for _, e := range o.Entries() {
			fmt.Fprintf(out, "  %s %s\n", e.Hash, e.Name)
		}
	case *objects.Commit:
		fmt.Fprintf(out, "tree: %s\n", o.Tree)
		for _, p := range o.Parents {
			fmt.Fprintf(out, "parent: %s\n", p)
		}
		fmt.Fprintf(out, "\n%s\n", o.Message)
	}
}
