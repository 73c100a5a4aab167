package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/mindmap"
	"github.com/spf13/cobra"
)

func newCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "new <file>",
		Short: "Write a fresh one-root document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			g := mindmap.NewGraph(cfg.Editor.RootText, nil)
			cam := mindmap.NewCamera(float64(cfg.Window.Width), float64(cfg.Window.Height))
			if err := mindmap.SaveFile(path, g, cam); err != nil {
				return err
			}
			Good.Fprintf(cmd.OutOrStdout(), "  ✓ created %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}
