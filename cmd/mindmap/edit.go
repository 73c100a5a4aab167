package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/phanxgames/mindmap"
	"github.com/spf13/cobra"
)

func editCmd() *cobra.Command {
	var (
		scriptPath string
		savePath   string
		watch      bool
	)
	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Open the editor window",
		Long: "Open the editor window, loading a document if one is given.\n" +
			"With --save (or a document argument) the graph is written back when the window closes.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			opts, err := cfg.EditorOptions()
			if err != nil {
				return err
			}

			var editor *mindmap.Editor
			if len(args) == 1 {
				doc, err := mindmap.LoadFile(args[0], opts.Measurer)
				switch {
				case err == nil:
					editor = mindmap.NewEditorFromDocument(doc, opts)
				case errors.Is(err, fs.ErrNotExist):
					Warn.Printf("  %s does not exist yet, starting empty\n", args[0])
				default:
					return err
				}
				if savePath == "" {
					savePath = args[0]
				}
			}
			if editor == nil {
				editor = mindmap.NewEditor(opts)
			}

			var runner *mindmap.TestRunner
			if scriptPath != "" {
				data, err := os.ReadFile(scriptPath)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				if runner, err = mindmap.LoadTestScript(data); err != nil {
					return err
				}
				editor.SetTestRunner(runner)
			}

			rc := mindmap.RunConfig{
				Title:     cfg.Window.Title,
				Width:     cfg.Window.Width,
				Height:    cfg.Window.Height,
				Resizable: true,
			}
			if watch {
				cw, err := mindmap.WatchConfig(configPath)
				if err != nil {
					return err
				}
				defer cw.Close()
				rc.BeforeTick = applyReloads(cw.Updates())
				Subtle.Printf("  watching %s for changes\n", configPath)
			}

			err = mindmap.Run(editor, rc)
			if err != nil {
				return err
			}
			if runner != nil && runner.Err() != nil {
				Warn.Printf("  script: %v\n", runner.Err())
			}

			if savePath != "" {
				if err := mindmap.SaveFile(savePath, editor.Graph(), editor.Camera()); err != nil {
					return err
				}
				Good.Printf("  saved %d nodes to %s\n", editor.Graph().Len(), savePath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&scriptPath, "script", "", "Replay a JSON input script")
	cmd.Flags().StringVar(&savePath, "save", "", "Write the document here when the window closes")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload theme and editor settings when the config file changes")
	return cmd
}

// applyReloads returns a RunConfig.BeforeTick hook that applies any
// pending reloaded config without blocking the frame.
func applyReloads(updates <-chan *mindmap.Config) func(*mindmap.Editor) {
	return func(e *mindmap.Editor) {
		select {
		case cfg, ok := <-updates:
			if !ok {
				return
			}
			if err := e.ApplyConfig(cfg); err != nil {
				Warn.Printf("  config not applied: %v\n", err)
				return
			}
			Good.Println("  config reloaded")
		default:
		}
	}
}
