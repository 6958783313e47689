package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fenilsonani/prototype/internal/transfer"
	"github.com/spf13/cobra"
)

func newStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show working tree status",
		Long:  "Compares the working tree against the most recent commit, path by path.",
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := openWorkDir()
			if err != nil {
				return err
			}

			plan, err := wd.Status()
			if err != nil {
				return fmt.Errorf("status: %w", err)
			}

			out := cmd.OutOrStdout()
			if plan == nil {
				fmt.Fprintln(out, "nothing to report")
				return nil
			}
			printStatus(out, plan)
			return nil
		},
	}
	return cmd
}

func printStatus(out io.Writer, plan *transfer.HashPlan) {
	lines := collectStatusLines(plan)
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}

func collectStatusLines(plan *transfer.HashPlan) []string {
	var lines []string
	var walk func(p *transfer.HashPlan)
	walk = func(p *transfer.HashPlan) {
		if p == nil {
			return
		}
		if !p.IsDir && p.Status != transfer.StatusUnchanged {
			lines = append(lines, fmt.Sprintf("%-16s %s", statusLabel(p.Status), p.Path))
		}
		for _, child := range p.Children {
			walk(child)
		}
	}
	walk(plan)
	return lines
}

func statusLabel(s transfer.Status) string {
	return strings.ToUpper(s.String())
}
