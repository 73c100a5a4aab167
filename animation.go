package mindmap

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const popSeconds = 0.25

// nodePop animates the drawn scale of a freshly added node from small to
// full size. It only affects drawing; hit-testing always uses the real size.
// If the node is deleted the pop stops immediately.
type nodePop struct {
	node  NodeID
	tween *gween.Tween
	scale float64
	done  bool
}

func newNodePop(id NodeID) *nodePop {
	return &nodePop{node: id, tween: gween.New(0.3, 1, popSeconds, ease.OutBack), scale: 0.3}
}

// update advances the tween by dt seconds.
func (p *nodePop) update(g *Graph, dt float32) {
	if p.done {
		return
	}
	if !g.Contains(p.node) {
		p.done = true
		return
	}
	val, finished := p.tween.Update(dt)
	p.scale = float64(val)
	p.done = finished
}

// updatePops advances every running pop and drops finished ones.
func (e *Editor) updatePops(dt float32) {
	live := e.pops[:0]
	for _, p := range e.pops {
		p.update(e.graph, dt)
		if !p.done {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(e.pops); i++ {
		e.pops[i] = nil
	}
	e.pops = live
}

// drawScale returns the current pop scale for id, 1 when not animating.
func (e *Editor) drawScale(id NodeID) float64 {
	for _, p := range e.pops {
		if p.node == id {
			return p.scale
		}
	}
	return 1
}
