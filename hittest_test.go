package mindmap

import "testing"

// testLayout is root at the origin with A east at (140, 0) and B south at
// (0, 100), all 100x60, matching the positions the add-child affordances
// produce.
func testLayout(t *testing.T) (g *Graph, a, b NodeID) {
	t.Helper()
	g = NewGraph("Root", nil)
	root := g.Node(g.Root())
	var err error
	if a, err = g.AddChild(g.Root(), ChildPosition(root, DirEast), "A"); err != nil {
		t.Fatal(err)
	}
	if b, err = g.AddChild(g.Root(), ChildPosition(root, DirSouth), "B"); err != nil {
		t.Fatal(err)
	}
	return g, a, b
}

func TestHitEllipse(t *testing.T) {
	e := HitEllipse{CenterX: 10, CenterY: 10, RadiusX: 20, RadiusY: 10}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 10, true},
		{30, 10, true},  // on the boundary
		{10, 20, true},  // on the boundary
		{31, 10, false}, // just outside along X
		{25, 18, false}, // outside the curve, inside the box
		{-9, 10, true},
	}
	for _, tt := range tests {
		if got := e.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if (HitEllipse{RadiusX: 0, RadiusY: 5}).Contains(0, 0) {
		t.Error("degenerate ellipse should contain nothing")
	}
}

func TestHitCircle(t *testing.T) {
	c := HitCircle{CenterX: 0, CenterY: 0, Radius: 5}
	if !c.Contains(3, 4) {
		t.Error("(3,4) should be on the circle")
	}
	if c.Contains(4, 4) {
		t.Error("(4,4) should be outside")
	}
}

func TestNodeHitShapeUsesTolerance(t *testing.T) {
	g := NewGraph("Root", nil)
	n := g.Node(g.Root())
	s := NodeHitShape(n)
	assertNear(t, "RadiusX", s.RadiusX, 50*HitTolerance)
	assertNear(t, "RadiusY", s.RadiusY, 30*HitTolerance)
	// Outside the drawn ellipse, inside the expanded one.
	if !s.Contains(55, 0) {
		t.Error("expanded hit area should contain (55, 0)")
	}
	if s.Contains(61, 0) {
		t.Error("(61, 0) is beyond the expanded radius")
	}
}

func TestNodeAt(t *testing.T) {
	g, a, b := testLayout(t)
	tests := []struct {
		name string
		p    Vec2
		want NodeID
	}{
		{"root center", Vec2{0, 0}, g.Root()},
		{"A center", Vec2{140, 0}, a},
		{"B center", Vec2{0, 100}, b},
		{"between root and A", Vec2{70, 0}, NodeID{}},
		{"empty canvas", Vec2{500, 500}, NodeID{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.NodeAt(tt.p); got != tt.want {
				t.Errorf("NodeAt(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

// A returned node always contains the query point.
func TestNodeAtContainment(t *testing.T) {
	g, _, _ := testLayout(t)
	for x := -100.0; x <= 250; x += 7 {
		for y := -80.0; y <= 180; y += 7 {
			p := Vec2{x, y}
			id := g.NodeAt(p)
			if id.IsZero() {
				continue
			}
			if !NodeHitShape(g.Node(id)).Contains(p.X, p.Y) {
				t.Fatalf("NodeAt(%v) = %v, which does not contain the point", p, id)
			}
		}
	}
}

func TestNodeAtOverlapUsesTraversalOrder(t *testing.T) {
	g := NewGraph("Root", nil)
	child, _ := g.AddChild(g.Root(), Vec2{10, 0}, "overlapping")
	if got := g.NodeAt(Vec2{5, 0}); got != g.Root() {
		t.Errorf("overlap resolved to %v, want root (visited first)", got)
	}
	if got := g.NodeAtExcluding(Vec2{5, 0}, g.Root()); got != child {
		t.Errorf("excluding root = %v, want child", got)
	}
}

func TestNodeAtFindsOrphans(t *testing.T) {
	g, a, _ := testLayout(t)
	if err := g.Detach(a); err != nil {
		t.Fatal(err)
	}
	if got := g.NodeAt(Vec2{140, 0}); got != a {
		t.Errorf("NodeAt orphan = %v, want %v", got, a)
	}
}

func TestEdgeContains(t *testing.T) {
	a, b := Vec2{0, 0}, Vec2{100, 0}
	tests := []struct {
		p    Vec2
		want bool
	}{
		{Vec2{50, 0}, true},
		{Vec2{50, 10}, true},  // 2*sqrt(50^2+10^2)-100 ~ 1.98
		{Vec2{50, 20}, false}, // ~ 7.7
		{Vec2{-1, 0}, true},   // collinear overshoot of 2
		{Vec2{-3, 0}, false},  // collinear overshoot of 6
		{Vec2{150, 0}, false},
	}
	for _, tt := range tests {
		if got := EdgeContains(a, b, tt.p, DefaultEdgeHoverThreshold); got != tt.want {
			t.Errorf("EdgeContains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestEdgeAt(t *testing.T) {
	g, a, b := testLayout(t)
	e, ok := g.EdgeAt(Vec2{70, 1}, DefaultEdgeHoverThreshold)
	if !ok || e != (Edge{g.Root(), a}) {
		t.Errorf("EdgeAt = %v, %v; want root->A", e, ok)
	}
	e, ok = g.EdgeAt(Vec2{0, 50}, DefaultEdgeHoverThreshold)
	if !ok || e != (Edge{g.Root(), b}) {
		t.Errorf("EdgeAt = %v, %v; want root->B", e, ok)
	}
	if _, ok := g.EdgeAt(Vec2{70, 50}, DefaultEdgeHoverThreshold); ok {
		t.Error("EdgeAt off both edges should miss")
	}
}

func TestHandlePoints(t *testing.T) {
	g, a, b := testLayout(t)
	pa, pc, ok := g.HandlePoints(Edge{g.Root(), a})
	if !ok {
		t.Fatal("HandlePoints failed")
	}
	// Default spacing leaves 20 units between the hit ellipses of root and A;
	// each handle sits a quarter of that in from its own end.
	assertVec(t, "parent end", pa, Vec2{65, 0})
	assertVec(t, "child end", pc, Vec2{75, 0})
	pa, pc, _ = g.HandlePoints(Edge{g.Root(), b})
	assertVec(t, "parent end", pa, Vec2{0, 43})
	assertVec(t, "child end", pc, Vec2{0, 57})

	// Longer edge: handles sit just outside each hit ellipse.
	if err := g.Move(b, Vec2{0, 400}); err != nil {
		t.Fatal(err)
	}
	pa, pc, _ = g.HandlePoints(Edge{g.Root(), b})
	assertVec(t, "parent end", pa, Vec2{0, 30*HitTolerance + handleGap})
	assertVec(t, "child end", pc, Vec2{0, 400 - 30*HitTolerance - handleGap})

	if _, _, ok := g.HandlePoints(Edge{g.Root(), NodeID{}}); ok {
		t.Error("HandlePoints on a dead edge should fail")
	}
}

func TestHandleAtNearest(t *testing.T) {
	g, a, b := testLayout(t)
	cam := NewCamera(800, 600)
	root := g.Root()
	tests := []struct {
		name   string
		edge   Edge
		screen Vec2
		want   NodeID
		ok     bool
	}{
		{"child end", Edge{root, a}, Vec2{475, 300}, a, true},
		{"parent end", Edge{root, a}, Vec2{465, 300}, root, true},
		{"tie goes to child", Edge{root, a}, Vec2{470, 300}, a, true},
		{"south parent end", Edge{root, b}, Vec2{400, 343}, root, true},
		{"south child end", Edge{root, b}, Vec2{400, 357}, b, true},
		{"miss", Edge{root, a}, Vec2{470, 320}, NodeID{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := g.HandleAt(tt.edge, cam, tt.screen)
			if ok != tt.ok || id != tt.want {
				t.Errorf("HandleAt = %v, %v; want %v, %v", id, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestHandlesOverlappingNodes(t *testing.T) {
	g, a, _ := testLayout(t)
	if err := g.Move(a, Vec2{30, 0}); err != nil {
		t.Fatal(err)
	}
	pa, pc, _ := g.HandlePoints(Edge{g.Root(), a})
	assertVec(t, "parent end", pa, Vec2{10, 0})
	assertVec(t, "child end", pc, Vec2{20, 0})
}

func TestAffordances(t *testing.T) {
	g := NewGraph("Root", nil)
	n := g.Node(g.Root())
	cam := NewCamera(800, 600)

	want := map[Direction]Vec2{
		DirEast:  {50, 0},
		DirSouth: {0, 30},
		DirWest:  {-50, 0},
		DirNorth: {0, -30},
	}
	for d, p := range want {
		assertVec(t, "AffordancePoint "+d.String(), AffordancePoint(n, d), p)
		got, ok := AffordanceAt(n, cam, cam.WorldToScreen(p).Add(Vec2{3, -3}))
		if !ok || got != d {
			t.Errorf("AffordanceAt near %s = %v, %v", d, got, ok)
		}
	}
	if _, ok := AffordanceAt(n, cam, Vec2{400, 300}); ok {
		t.Error("node center is not an affordance")
	}
}

func TestAffordanceRadius(t *testing.T) {
	g := NewGraph("Root", nil)
	n := g.Node(g.Root())
	tests := []struct {
		zoom   float64
		radius float64 // screen pixels
	}{
		{1, AffordanceRadius},
		{2, AffordanceRadius},
		{0.2, 3}, // half of the 6px on-screen half-height
		{0.1, 1.5},
	}
	for _, tt := range tests {
		cam := NewCamera(800, 600)
		cam.SetZoom(tt.zoom)
		assertNear(t, "affordanceRadius", affordanceRadius(n, cam), tt.radius)
		east := cam.WorldToScreen(AffordancePoint(n, DirEast))
		if _, ok := AffordanceAt(n, cam, east.Add(Vec2{tt.radius * 0.9, 0})); !ok {
			t.Errorf("zoom %v: marker missed inside its radius", tt.zoom)
		}
		if _, ok := AffordanceAt(n, cam, east.Add(Vec2{tt.radius * 1.1, 0})); ok {
			t.Errorf("zoom %v: marker hit outside its radius", tt.zoom)
		}
		if _, ok := AffordanceAt(n, cam, Vec2{400, 300}); ok {
			t.Errorf("zoom %v: node center hit a marker", tt.zoom)
		}
	}
}

func TestChildPosition(t *testing.T) {
	g := NewGraph("Root", nil)
	n := g.Node(g.Root())
	tests := []struct {
		d    Direction
		want Vec2
	}{
		{DirEast, Vec2{140, 0}},
		{DirSouth, Vec2{0, 100}},
		{DirWest, Vec2{-140, 0}},
		{DirNorth, Vec2{0, -100}},
	}
	for _, tt := range tests {
		assertVec(t, "ChildPosition "+tt.d.String(), ChildPosition(n, tt.d), tt.want)
	}
}
