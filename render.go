package mindmap

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Theme holds the colours used by Draw.
type Theme struct {
	Background Color
	Edge       Color
	Highlight  Color // hovered items, handles, affordances, drop targets
	Text       Color
	Levels     []Color // node fill by depth, cycled
}

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() *Theme {
	return &Theme{
		Background: Color{0.118, 0.122, 0.141, 1},
		Edge:       Color{0.541, 0.561, 0.596, 1},
		Highlight:  Color{0.949, 0.788, 0.298, 1},
		Text:       Color{0.063, 0.067, 0.078, 1},
		Levels: []Color{
			{0.435, 0.812, 0.592, 1},
			{0.337, 0.8, 0.949, 1},
			{0.733, 0.42, 0.851, 1},
			{0.949, 0.6, 0.29, 1},
		},
	}
}

// LevelColor returns the fill for a node at the given depth.
func (t *Theme) LevelColor(level int) Color {
	if len(t.Levels) == 0 {
		return ColorWhite
	}
	if level < 0 {
		level = 0
	}
	return t.Levels[level%len(t.Levels)]
}

const (
	edgeWidth     = 2.0 // screen pixels
	outlineWidth  = 3.0 // screen pixels around highlighted nodes
	caretBlinkTPS = 30  // ticks per caret phase
)

// Draw renders the current state onto screen. It never mutates the graph.
func (e *Editor) Draw(screen *ebiten.Image) {
	theme := e.opts.Theme
	screen.Fill(theme.Background.toRGBA())

	b := &e.shapes
	b.reset()
	view := e.cam.viewMatrix()

	for _, edge := range e.graph.Edges() {
		c := theme.Edge
		if e.hasHoverEdge && edge == e.hoverEdge {
			c = theme.Highlight
		}
		a, z := e.graph.Node(edge.Parent), e.graph.Node(edge.Child)
		b.line(screen, e.cam.WorldToScreen(a.Position), e.cam.WorldToScreen(z.Position), edgeWidth, c)
	}
	if e.drag.kind == dragReparent {
		if n := e.graph.Node(e.drag.node); n != nil {
			to := e.lastCursor
			if cand := e.graph.Node(e.drag.candidate); cand != nil {
				to = e.cam.WorldToScreen(cand.Position)
			}
			b.line(screen, e.cam.WorldToScreen(n.Position), to, edgeWidth, theme.Highlight)
		}
	}

	editing, _ := e.edit.(Editing)
	e.graph.Walk(func(n *Node) {
		h := n.HalfExtent().Scale(e.drawScale(n.ID))
		if n.ID == e.hoverNode || n.ID == editing.Node || (e.drag.kind == dragReparent && n.ID == e.drag.candidate) {
			grow := outlineWidth / e.cam.Zoom
			b.ellipse(screen, ellipseTransform(view, n.Position, Vec2{h.X + grow, h.Y + grow}), ellipseSegments, theme.Highlight)
		}
		b.ellipse(screen, ellipseTransform(view, n.Position, h), ellipseSegments, theme.LevelColor(n.Level))
	})

	if n := e.graph.Node(e.hoverNode); n != nil && e.drag.kind == dragNone {
		if _, idle := e.edit.(Idle); idle {
			for _, d := range Directions {
				b.circle(screen, e.cam.WorldToScreen(AffordancePoint(n, d)), affordanceRadius(n, e.cam)/2, theme.Highlight)
			}
		}
	}
	if e.hasHoverEdge {
		if pa, pc, ok := e.graph.HandlePoints(e.hoverEdge); ok {
			b.circle(screen, e.cam.WorldToScreen(pa), HandleRadius/2, theme.Highlight)
			b.circle(screen, e.cam.WorldToScreen(pc), HandleRadius/2, theme.Highlight)
		}
	}
	b.flush(screen)

	e.graph.Walk(func(n *Node) {
		label := n.Text
		if editing.Node == n.ID {
			label = editing.Buffer.String()
			if (ebiten.Tick()/caretBlinkTPS)%2 == 0 {
				label += "|"
			}
		}
		e.drawLabel(screen, n, label)
	})

	if e.showStatus {
		e.drawStatus(screen)
	}
}

// drawLabel centers label on n. TTF faces scale with the camera; the debug
// font is drawn at its native size.
func (e *Editor) drawLabel(screen *ebiten.Image, n *Node, label string) {
	if label == "" {
		return
	}
	center := e.cam.WorldToScreen(n.Position)
	if f, ok := e.graph.Measurer().(*TTFFont); ok {
		w, h := f.MeasureString(label)
		op := &text.DrawOptions{}
		op.LineSpacing = f.LineHeight()
		op.GeoM.Translate(-w/2, -h/2)
		op.GeoM.Scale(e.cam.Zoom, e.cam.Zoom)
		op.GeoM.Translate(center.X, center.Y)
		op.ColorScale.ScaleWithColor(e.opts.Theme.Text.toRGBA())
		text.Draw(screen, label, f.Face(), op)
		return
	}
	w, h := DebugFont{}.MeasureString(label)
	ebitenutil.DebugPrintAt(screen, label, int(center.X-w/2), int(center.Y-h/2))
}
