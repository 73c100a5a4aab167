package mindmap

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// statusRefresh is how often, in ticks, the overlay text is rebuilt.
const statusRefresh = 30

// statusOverlay caches the rendered status panel between refreshes.
type statusOverlay struct {
	img  *ebiten.Image
	last int64
}

// SetShowStatus toggles the FPS, zoom and node-count overlay.
func (e *Editor) SetShowStatus(show bool) {
	e.showStatus = show
}

func (e *Editor) statusText() string {
	mode := "idle"
	if ed, ok := e.edit.(Editing); ok {
		mode = fmt.Sprintf("editing %v (%d/%d)", ed.Node, ed.Buffer.Len(), ed.Buffer.Max())
	}
	return fmt.Sprintf("FPS: %.1f  TPS: %.1f\nzoom: %.2f  nodes: %d  roots: %d\n%s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), e.cam.Zoom, e.graph.Len(), len(e.graph.Roots()), mode)
}

func (e *Editor) drawStatus(screen *ebiten.Image) {
	s := &e.status
	if s.img == nil {
		// Wide enough for three lines of the debug font.
		s.img = ebiten.NewImage(260, 52)
		s.last = -statusRefresh
	}
	if t := ebiten.Tick(); t-s.last >= statusRefresh {
		s.last = t
		s.img.Clear()
		// Semi-transparent background for readability
		s.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(s.img, e.statusText())
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(8, 8)
	screen.DrawImage(s.img, op)
}
