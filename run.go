package mindmap

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Resizable lets the user resize the window; the camera stays centered.
	Resizable bool
	// BeforeTick, if set, runs on the game goroutine before every Tick. Use
	// it to hand the editor work produced elsewhere, such as reloaded
	// configs from a ConfigWatcher.
	BeforeTick func(*Editor)
}

// game adapts an Editor to ebiten.Game.
type game struct {
	editor *Editor
	before func(*Editor)
	w, h   int
}

func (g *game) Update() error {
	if g.before != nil {
		g.before(g.editor)
	}
	g.editor.Tick()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.editor.Draw(screen)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	if outsideW != g.w || outsideH != g.h {
		g.w, g.h = outsideW, outsideH
		g.editor.Resize(float64(outsideW), float64(outsideH))
	}
	return outsideW, outsideH
}

// Run opens a window and drives the editor until the window closes.
// For full control, implement ebiten.Game yourself and call Editor.Tick
// and Editor.Draw directly.
func Run(e *Editor, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = int(e.opts.ViewportWidth)
	}
	if cfg.Height <= 0 {
		cfg.Height = int(e.opts.ViewportHeight)
	}
	if cfg.Title == "" {
		cfg.Title = "mindmap"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	logger().Info("editor starting", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height, "nodes", e.graph.Len())
	return ebiten.RunGame(&game{editor: e, before: cfg.BeforeTick})
}
