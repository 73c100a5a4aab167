package main

import (
	"fmt"
	"io"

	"github.com/phanxgames/mindmap"
	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a document and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := mindmap.LoadFile(args[0], nil)
			if err != nil {
				Bad.Fprintf(cmd.OutOrStdout(), "  ✗ %s\n", args[0])
				return err
			}
			printSummary(cmd.OutOrStdout(), args[0], doc)
			return nil
		},
	}
}

func printSummary(w io.Writer, path string, doc *mindmap.Document) {
	g := doc.Graph
	roots := g.Roots()
	Good.Fprintf(w, "  ✓ %s\n", path)
	fmt.Fprintf(w, "    %-8s %d\n", "nodes", g.Len())
	fmt.Fprintf(w, "    %-8s %d\n", "edges", len(g.Edges()))
	fmt.Fprintf(w, "    %-8s %d\n", "depth", g.Depth())
	if orphans := len(roots) - 1; orphans > 0 {
		Warn.Fprintf(w, "    %-8s %d (detached subtrees)\n", "orphans", orphans)
	} else {
		fmt.Fprintf(w, "    %-8s %d\n", "orphans", 0)
	}
	if root := g.Node(g.Root()); root != nil {
		Subtle.Fprintf(w, "    root %q at (%.0f, %.0f), view zoom %.2f\n", root.Text, root.Position.X, root.Position.Y, doc.Zoom)
	}
}
