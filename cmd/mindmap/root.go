package main

import (
	"github.com/phanxgames/mindmap"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "mindmap",
	Short: "mindmap - a zoomable node-graph editor",
	Long: Brand.Sprint("mindmap") + " - sketch idea trees on an infinite canvas\n" +
		Subtle.Sprint("Add, drag, reparent and relabel nodes with the mouse"),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			mindmap.SetLogger(newVerboseLogger())
		}
	},
}

func init() {
	rootCmd.SetVersionTemplate("mindmap {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "mindmap.toml", "Path to the TOML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug diagnostics to stderr")

	rootCmd.AddCommand(
		editCmd(),
		checkCmd(),
		newCmd(),
	)
}

// Execute runs the root command, printing any error in colour.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		Bad.Fprintf(rootCmd.ErrOrStderr(), "mindmap: %v\n", err)
	}
	return err
}

func loadConfig() (*mindmap.Config, error) {
	return mindmap.LoadConfig(configPath)
}
