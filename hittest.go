package mindmap

import "math"

// Hit-testing geometry. Node, edge and placement tests work in world space so
// they behave the same at any zoom; affordances and handles are sized in
// screen pixels so they stay grabbable when zoomed out.
const (
	HitTolerance              = 1.2 // node ellipse expansion for pointer hits
	DefaultEdgeHoverThreshold = 4.0 // world units of slack in the ellipse-collinearity test
	AffordanceRadius          = 8.0 // screen pixels
	HandleRadius              = 8.0 // screen pixels

	childDistanceMultiplier = 2.0
	childExtraOffset        = 40.0
	handleGap               = 12.0 // world units from a node's hit ellipse to its edge handle
)

// --- Hit shapes ---

// HitShape is a region that can be tested against a point.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitEllipse is an axis-aligned ellipse.
type HitEllipse struct {
	CenterX, CenterY, RadiusX, RadiusY float64
}

// Contains reports whether (x, y) lies inside or on the ellipse.
func (e HitEllipse) Contains(x, y float64) bool {
	if e.RadiusX <= 0 || e.RadiusY <= 0 {
		return false
	}
	dx := (x - e.CenterX) / e.RadiusX
	dy := (y - e.CenterY) / e.RadiusY
	return dx*dx+dy*dy <= 1
}

// HitCircle is a circular hit area.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// NodeHitShape returns the node's pointer region: its ellipse expanded by
// HitTolerance.
func NodeHitShape(n *Node) HitEllipse {
	h := n.HalfExtent()
	return HitEllipse{
		CenterX: n.Position.X, CenterY: n.Position.Y,
		RadiusX: h.X * HitTolerance, RadiusY: h.Y * HitTolerance,
	}
}

// --- Node search ---

// FindNodeAtPosition searches depth-first from root: the node itself first,
// then its children in insertion order. The first node whose hit shape
// contains p wins, so overlaps resolve by traversal order, not depth.
// Returns the zero NodeID when nothing is hit.
func FindNodeAtPosition(g *Graph, root NodeID, p Vec2) NodeID {
	return findNode(g, root, p, NodeID{})
}

func findNode(g *Graph, id NodeID, p Vec2, skip NodeID) NodeID {
	n := g.Node(id)
	if n == nil {
		return NodeID{}
	}
	if id != skip && NodeHitShape(n).Contains(p.X, p.Y) {
		return id
	}
	for _, c := range n.children {
		if found := findNode(g, c, p, skip); !found.IsZero() {
			return found
		}
	}
	return NodeID{}
}

// NodeAt searches every root in Roots order, the designated root first.
func (g *Graph) NodeAt(p Vec2) NodeID {
	return g.NodeAtExcluding(p, NodeID{})
}

// NodeAtExcluding is NodeAt with skip never matching. Descendants of skip are
// still searched; callers that must avoid cycles check ancestry themselves.
func (g *Graph) NodeAtExcluding(p Vec2, skip NodeID) NodeID {
	for _, r := range g.Roots() {
		if found := findNode(g, r, p, skip); !found.IsZero() {
			return found
		}
	}
	return NodeID{}
}

// --- Edges ---

// EdgeContains reports whether p is "on" segment ab: the sum of its
// distances to the endpoints exceeds the segment length by at most
// threshold.
func EdgeContains(a, b, p Vec2, threshold float64) bool {
	return p.Dist(a)+p.Dist(b)-a.Dist(b) <= threshold
}

// EdgeAt returns the first derived edge p lies on.
func (g *Graph) EdgeAt(p Vec2, threshold float64) (Edge, bool) {
	for _, e := range g.Edges() {
		a, b := g.Node(e.Parent), g.Node(e.Child)
		if EdgeContains(a.Position, b.Position, p, threshold) {
			return e, true
		}
	}
	return Edge{}, false
}

// HandlePoints returns the world positions of an edge's two drag handles.
// Each handle sits in the free stretch of the edge between the endpoints'
// hit ellipses, handleGap in from its own end or a quarter of the way in on
// short edges, so the two never coincide.
func (g *Graph) HandlePoints(e Edge) (parentEnd, childEnd Vec2, ok bool) {
	a, b := g.Node(e.Parent), g.Node(e.Child)
	if a == nil || b == nil {
		return Vec2{}, Vec2{}, false
	}
	d := b.Position.Sub(a.Position)
	length := d.Len()
	if length == 0 {
		return a.Position, b.Position, true
	}
	u := d.Scale(1 / length)
	ra, rb := hitReach(a, u), hitReach(b, u)
	free := length - ra - rb
	if free <= 0 {
		// Overlapping hit shapes: fall back to the thirds of the edge.
		return a.Position.Add(u.Scale(length / 3)), a.Position.Add(u.Scale(2 * length / 3)), true
	}
	inset := math.Min(handleGap, free/4)
	return a.Position.Add(u.Scale(ra + inset)), b.Position.Sub(u.Scale(rb + inset)), true
}

// hitReach is the distance from n's center to its hit ellipse along unit u.
func hitReach(n *Node, u Vec2) float64 {
	s := NodeHitShape(n)
	return 1 / math.Sqrt((u.X/s.RadiusX)*(u.X/s.RadiusX)+(u.Y/s.RadiusY)*(u.Y/s.RadiusY))
}

// HandleAt reports which endpoint handle of e lies under the screen point,
// returning that endpoint's node. The nearer handle wins; ties go to the
// child end.
func (g *Graph) HandleAt(e Edge, cam Camera, screen Vec2) (NodeID, bool) {
	pa, pc, ok := g.HandlePoints(e)
	if !ok {
		return NodeID{}, false
	}
	dp := cam.WorldToScreen(pa).Dist(screen)
	dc := cam.WorldToScreen(pc).Dist(screen)
	switch {
	case dc <= HandleRadius && dc <= dp:
		return e.Child, true
	case dp <= HandleRadius:
		return e.Parent, true
	}
	return NodeID{}, false
}

// --- Add-child affordances ---

// AffordancePoint returns the world position of the add-child marker for
// direction d, on the node's ellipse boundary.
func AffordancePoint(n *Node, d Direction) Vec2 {
	h := n.HalfExtent()
	u := d.Unit()
	return n.Position.Add(Vec2{u.X * h.X, u.Y * h.Y})
}

// AffordanceAt reports which add-child marker of n, if any, lies within
// the marker radius of the screen point.
func AffordanceAt(n *Node, cam Camera, screen Vec2) (Direction, bool) {
	r := affordanceRadius(n, cam)
	for _, d := range Directions {
		if cam.WorldToScreen(AffordancePoint(n, d)).Dist(screen) < r {
			return d, true
		}
	}
	return 0, false
}

// affordanceRadius is AffordanceRadius, shrunk at low zoom to half the
// node's smaller on-screen half-extent so the markers never cover its center.
func affordanceRadius(n *Node, cam Camera) float64 {
	h := n.HalfExtent()
	return math.Min(AffordanceRadius, math.Min(h.X, h.Y)*cam.Zoom/2)
}

// ChildPosition returns where a child added in direction d is placed: further
// out along d by twice the parent's half-extent plus a fixed offset.
func ChildPosition(n *Node, d Direction) Vec2 {
	h := n.HalfExtent()
	u := d.Unit()
	return n.Position.Add(Vec2{
		X: u.X * (h.X*childDistanceMultiplier + childExtraOffset),
		Y: u.Y * (h.Y*childDistanceMultiplier + childExtraOffset),
	})
}
