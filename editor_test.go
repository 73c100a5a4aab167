package mindmap

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// Screen positions for the default 800x600 editor, camera centered on the
// root at the world origin. Root, A and B are all 100x60.
var (
	rootCenter = Vec2{400, 300}
	rootEast   = Vec2{450, 300} // east add-child marker
	rootSouth  = Vec2{400, 330} // south add-child marker
	aCenter    = Vec2{540, 300} // child added east, world (140, 0)
	aEast      = Vec2{590, 300}
	bCenter    = Vec2{400, 400} // child added south, world (0, 100)
	rootAMid   = Vec2{470, 300} // midpoint of root->A, between its handles; picks A's end
	emptySpot  = Vec2{700, 520}
)

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	return NewEditor(Options{ViewportWidth: 800, ViewportHeight: 600})
}

func recordEvents(e *Editor) *[]GraphEvent {
	var got []GraphEvent
	e.On(func(ev GraphEvent) { got = append(got, ev) })
	return &got
}

func eventTypes(evs []GraphEvent) []EventType {
	out := make([]EventType, len(evs))
	for i, ev := range evs {
		out[i] = ev.Type
	}
	return out
}

// addAB adds A east and B south of the root through the pointer.
func addAB(t *testing.T, e *Editor) (a, b NodeID) {
	t.Helper()
	e.InjectClick(rootEast.X, rootEast.Y)
	e.InjectClick(rootSouth.X, rootSouth.Y)
	e.Flush()
	children := e.Graph().Children(e.Graph().Root())
	if len(children) != 2 {
		t.Fatalf("root children = %v, want 2", children)
	}
	return children[0], children[1]
}

// --- Add child ---

func TestEditorAddChildEast(t *testing.T) {
	e := newTestEditor(t)
	evs := recordEvents(e)

	e.InjectClick(rootEast.X, rootEast.Y)
	e.Flush()

	g := e.Graph()
	if g.Len() != 2 {
		t.Fatalf("Len = %d, want 2", g.Len())
	}
	child := g.Children(g.Root())[0]
	n := g.Node(child)
	if n.Position != (Vec2{140, 0}) {
		t.Errorf("child position = %v, want (140, 0)", n.Position)
	}
	if n.Level != 1 || n.Text != DefaultChildText {
		t.Errorf("child level=%d text=%q", n.Level, n.Text)
	}
	if len(*evs) != 1 || (*evs)[0].Type != EventNodeAdded || (*evs)[0].Node != child {
		t.Errorf("events = %+v", *evs)
	}
	assertValid(t, g)
}

func TestEditorAddChildAllDirections(t *testing.T) {
	e := newTestEditor(t)
	for _, p := range []Vec2{rootEast, rootSouth, {350, 300}, {400, 270}} {
		e.InjectClick(p.X, p.Y)
	}
	e.Flush()

	want := []Vec2{{140, 0}, {0, 100}, {-140, 0}, {0, -100}}
	children := e.Graph().Children(e.Graph().Root())
	if len(children) != len(want) {
		t.Fatalf("children = %d, want %d", len(children), len(want))
	}
	for i, id := range children {
		if got := e.Graph().Node(id).Position; got != want[i] {
			t.Errorf("child %d at %v, want %v", i, got, want[i])
		}
	}
}

func TestEditorAddOncePerPress(t *testing.T) {
	e := newTestEditor(t)
	e.InjectPress(rootEast.X, rootEast.Y)
	for i := 0; i < 5; i++ {
		e.InjectMove(rootEast.X, rootEast.Y)
	}
	e.InjectRelease(rootEast.X, rootEast.Y)
	e.Flush()
	if got := e.Graph().Len(); got != 2 {
		t.Errorf("Len = %d after one long press, want 2", got)
	}

	// The guard resets on the next press.
	e.InjectClick(rootEast.X, rootEast.Y)
	e.Flush()
	if got := e.Graph().Len(); got != 3 {
		t.Errorf("Len = %d after second click, want 3", got)
	}
}

func TestEditorAddChildAPI(t *testing.T) {
	e := newTestEditor(t)
	id, err := e.AddChild(e.Graph().Root(), DirWest)
	if err != nil {
		t.Fatal(err)
	}
	if got := e.Graph().Node(id).Position; got != (Vec2{-140, 0}) {
		t.Errorf("position = %v", got)
	}
	if _, err := e.AddChild(NodeID{}, DirWest); err == nil {
		t.Error("AddChild on a missing parent should fail")
	}
}

// --- Reparent ---

func TestEditorReparentByHandleDrag(t *testing.T) {
	e := newTestEditor(t)
	a, b := addAB(t, e)
	evs := recordEvents(e)

	e.InjectDrag(rootAMid.X, rootAMid.Y, bCenter.X, bCenter.Y, 6)
	e.Flush()

	g := e.Graph()
	if g.Parent(a) != b {
		t.Fatalf("Parent(A) = %v, want B %v", g.Parent(a), b)
	}
	if got := g.Children(g.Root()); len(got) != 1 || got[0] != b {
		t.Errorf("root children = %v, want [B]", got)
	}
	if g.Node(a).Level != 2 {
		t.Errorf("A level = %d, want 2", g.Node(a).Level)
	}
	if len(*evs) != 1 {
		t.Fatalf("events = %v", eventTypes(*evs))
	}
	ev := (*evs)[0]
	if ev.Type != EventNodeReparented || ev.Node != a || ev.Parent != b || ev.Previous != g.Root() {
		t.Errorf("event = %+v", ev)
	}
	assertValid(t, g)
}

func TestEditorReparentByParentEndHandle(t *testing.T) {
	e := newTestEditor(t)
	a, b := addAB(t, e)
	e.InjectClick(aEast.X, aEast.Y)
	e.Flush()
	g := e.Graph()
	c := g.Children(a)[0]
	assertVec(t, "C", g.Node(c).Position, Vec2{280, 0})

	// A->C leaves 20 world units between the hit ellipses; A's handle is 5 in.
	aEnd := Vec2{605, 300}
	e.InjectDrag(aEnd.X, aEnd.Y, bCenter.X, bCenter.Y, 6)
	e.Flush()

	if g.Parent(a) != b {
		t.Fatalf("Parent(A) = %v, want B %v", g.Parent(a), b)
	}
	if g.Parent(c) != a {
		t.Errorf("Parent(C) = %v, want A", g.Parent(c))
	}
	if g.Node(c).Level != 3 {
		t.Errorf("C level = %d, want 3", g.Node(c).Level)
	}
	assertValid(t, g)
}

func TestEditorReparentDropOnNothing(t *testing.T) {
	e := newTestEditor(t)
	a, _ := addAB(t, e)
	e.InjectDrag(rootAMid.X, rootAMid.Y, emptySpot.X, emptySpot.Y, 4)
	e.Flush()
	if e.Graph().Parent(a) != e.Graph().Root() {
		t.Error("dropping a handle on empty canvas changed the tree")
	}
	if e.Graph().Node(a).Position != (Vec2{140, 0}) {
		t.Error("handle drag moved the node")
	}
}

func TestEditorReparentCycleIgnored(t *testing.T) {
	e := newTestEditor(t)
	prev := logger()
	SetLogger(nil)
	defer SetLogger(prev)

	e.InjectClick(rootEast.X, rootEast.Y)
	e.Flush()
	a := e.Graph().Children(e.Graph().Root())[0]
	// Hover A, then add C east of A at world (280, 0).
	e.InjectHover(aCenter.X, aCenter.Y)
	e.InjectClick(aEast.X, aEast.Y)
	e.Flush()
	c := e.Graph().Children(a)
	if len(c) != 1 {
		t.Fatalf("A children = %v", c)
	}

	// Drag the A end of root->A onto C, A's own child.
	e.InjectDrag(rootAMid.X, rootAMid.Y, 680, 300, 4)
	e.Flush()
	if e.Graph().Parent(a) != e.Graph().Root() {
		t.Error("cycle-creating reparent was applied")
	}
	assertValid(t, e.Graph())
}

func TestEditorShiftDropReparents(t *testing.T) {
	e := newTestEditor(t)
	a, b := addAB(t, e)

	e.InjectDragMods(bCenter.X, bCenter.Y, aCenter.X, aCenter.Y, 5, ModShift)
	e.Flush()
	if e.Graph().Parent(b) != a {
		t.Errorf("Parent(B) = %v, want A", e.Graph().Parent(b))
	}
	assertValid(t, e.Graph())
}

// --- Move ---

func TestEditorMoveDrag(t *testing.T) {
	e := newTestEditor(t)
	a, _ := addAB(t, e)
	evs := recordEvents(e)

	// Grab A 10px right of its center; the offset is kept.
	e.InjectDrag(aCenter.X+10, aCenter.Y, aCenter.X+110, aCenter.Y-50, 5)
	e.Flush()

	if got := e.Graph().Node(a).Position; got != (Vec2{240, -50}) {
		t.Errorf("A position = %v, want (240, -50)", got)
	}
	if e.Graph().Parent(a) != e.Graph().Root() {
		t.Error("a plain move drag changed the parent")
	}
	if len(*evs) != 1 || (*evs)[0].Type != EventNodeMoved {
		t.Errorf("events = %v", eventTypes(*evs))
	}
}

// --- Delete and detach ---

func TestEditorRightClickDeletesSubtree(t *testing.T) {
	e := newTestEditor(t)
	a, _ := addAB(t, e)
	e.InjectHover(aCenter.X, aCenter.Y)
	e.InjectClick(aEast.X, aEast.Y)
	e.Flush()
	if e.Graph().Len() != 4 {
		t.Fatalf("Len = %d, want 4", e.Graph().Len())
	}
	evs := recordEvents(e)

	e.InjectRightClick(aCenter.X, aCenter.Y)
	e.Flush()

	if e.Graph().Contains(a) || e.Graph().Len() != 2 {
		t.Errorf("after delete: Contains(A)=%v Len=%d", e.Graph().Contains(a), e.Graph().Len())
	}
	if len(*evs) != 1 || (*evs)[0].Type != EventNodeDeleted || (*evs)[0].Removed != 2 {
		t.Errorf("events = %+v", *evs)
	}
	assertValid(t, e.Graph())
}

func TestEditorRightClickRootIgnored(t *testing.T) {
	e := newTestEditor(t)
	addAB(t, e)
	e.InjectRightClick(rootCenter.X, rootCenter.Y)
	e.InjectRightClick(emptySpot.X, emptySpot.Y)
	e.Flush()
	if e.Graph().Len() != 3 {
		t.Errorf("Len = %d, want 3", e.Graph().Len())
	}
}

func TestEditorRightClickEdgeOrphans(t *testing.T) {
	e := newTestEditor(t)
	a, _ := addAB(t, e)
	evs := recordEvents(e)

	e.InjectRightClick(rootAMid.X, rootAMid.Y)
	e.Flush()

	g := e.Graph()
	if g.Len() != 3 {
		t.Errorf("Len = %d, detaching must not delete", g.Len())
	}
	if !g.Parent(a).IsZero() {
		t.Errorf("Parent(A) = %v, want none", g.Parent(a))
	}
	if roots := g.Roots(); len(roots) != 2 || roots[1] != a {
		t.Errorf("Roots = %v", roots)
	}
	for _, edge := range g.Edges() {
		if edge.Child == a {
			t.Errorf("edge to A still derived: %v", edge)
		}
	}
	if len(*evs) != 1 || (*evs)[0].Type != EventEdgeDetached || (*evs)[0].Node != a {
		t.Errorf("events = %+v", *evs)
	}
	assertValid(t, g)

	// The orphan stays interactive: it can be deleted.
	e.InjectRightClick(aCenter.X, aCenter.Y)
	e.Flush()
	if g.Contains(a) {
		t.Error("orphan could not be deleted")
	}
}

// --- Inline editing ---

func TestEditorEditCommit(t *testing.T) {
	e := newTestEditor(t)
	a, _ := addAB(t, e)
	evs := recordEvents(e)

	e.InjectCtrlClick(aCenter.X, aCenter.Y)
	e.Flush()
	if !e.IsEditing(a) {
		t.Fatal("ctrl-click did not start editing")
	}
	e.InjectType("xyz")
	e.InjectKey(KeyBackspace)
	e.Flush()
	if got := e.Graph().Node(a).Text; got != DefaultChildText {
		t.Errorf("text changed before commit: %q", got)
	}
	e.InjectKey(KeyEnter)
	e.Flush()

	if _, idle := e.EditState().(Idle); !idle {
		t.Error("Enter should return to Idle")
	}
	if got, want := e.Graph().Node(a).Text, DefaultChildText+"xy"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
	want := []EventType{EventEditBegan, EventEditCommitted}
	if got := eventTypes(*evs); len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestEditorEditKeepsMultilineLabel(t *testing.T) {
	e := newTestEditor(t)
	a, _ := addAB(t, e)
	if err := e.Graph().SetText(a, "first line\nsecond line"); err != nil {
		t.Fatal(err)
	}

	e.InjectCtrlClick(aCenter.X, aCenter.Y)
	e.Flush()
	if !e.IsEditing(a) {
		t.Fatal("ctrl-click did not start editing")
	}
	e.InjectKey(KeyEnter)
	e.Flush()

	if got := e.Graph().Node(a).Text; got != "first line\nsecond line" {
		t.Errorf("text = %q, want both lines", got)
	}
}

func TestEditorEditCommitResizes(t *testing.T) {
	e := newTestEditor(t)
	root := e.Graph().Root()
	e.BeginEdit(root)
	e.InjectType(strings.Repeat("w", 40))
	e.InjectKey(KeyEnter)
	e.Flush()
	n := e.Graph().Node(root)
	if want := NodeSize(DebugFont{}, n.Text, 0); n.Size != want {
		t.Errorf("size = %v, want %v", n.Size, want)
	}
	if n.Size.X <= MinNodeWidth {
		t.Errorf("long label did not widen the node: %v", n.Size)
	}
}

func TestEditorEditCancel(t *testing.T) {
	e := newTestEditor(t)
	a, _ := addAB(t, e)
	e.InjectCtrlClick(aCenter.X, aCenter.Y)
	e.InjectType("garbage")
	e.InjectKey(KeyEscape)
	e.Flush()
	if _, idle := e.EditState().(Idle); !idle {
		t.Error("Escape should return to Idle")
	}
	if got := e.Graph().Node(a).Text; got != DefaultChildText {
		t.Errorf("text = %q after cancel", got)
	}
}

func TestEditorEditLengthBounded(t *testing.T) {
	e := NewEditor(Options{ViewportWidth: 800, ViewportHeight: 600, MaxTextLength: 10})
	root := e.Graph().Root()
	e.BeginEdit(root)
	e.InjectType(strings.Repeat("z", 50))
	e.InjectKey(KeyEnter)
	e.Flush()
	if got := e.Graph().Node(root).Text; len(got) != 10 {
		t.Errorf("text = %q, want 10 runes", got)
	}
}

func TestEditorEditExclusive(t *testing.T) {
	e := newTestEditor(t)
	a, b := addAB(t, e)

	e.InjectCtrlClick(aCenter.X, aCenter.Y)
	e.InjectType("!")
	e.InjectCtrlClick(bCenter.X, bCenter.Y)
	e.Flush()

	if e.IsEditing(a) || !e.IsEditing(b) {
		t.Fatalf("editing A=%v B=%v, want only B", e.IsEditing(a), e.IsEditing(b))
	}
	if got := e.Graph().Node(a).Text; got != DefaultChildText+"!" {
		t.Errorf("A text = %q, the switch should commit", got)
	}
}

func TestEditorPressWhileEditingCommitsThenActs(t *testing.T) {
	e := newTestEditor(t)
	a, _ := addAB(t, e)
	e.InjectCtrlClick(aCenter.X, aCenter.Y)
	e.InjectType("?")
	// Right-click on A: commit, then delete.
	e.InjectRightClick(aCenter.X, aCenter.Y)
	e.Flush()
	if _, idle := e.EditState().(Idle); !idle {
		t.Error("state should be Idle")
	}
	if e.Graph().Contains(a) {
		t.Error("the press after committing should still delete A")
	}
}

func TestEditorEditBlocksStructure(t *testing.T) {
	e := newTestEditor(t)
	root := e.Graph().Root()
	e.BeginEdit(root)
	// Typing and hovering while editing must not add children.
	e.InjectHover(rootEast.X, rootEast.Y)
	e.InjectType("abc")
	e.Flush()
	if e.Graph().Len() != 1 {
		t.Errorf("Len = %d while editing", e.Graph().Len())
	}
	if !e.HoveredNode().IsZero() {
		t.Error("hover is suppressed while editing")
	}
}

func TestEditorTypingWhileIdleIgnored(t *testing.T) {
	e := newTestEditor(t)
	e.InjectType("hello")
	e.InjectKey(KeyEnter)
	e.Flush()
	if got := e.Graph().Node(e.Graph().Root()).Text; got != DefaultRootText {
		t.Errorf("root text = %q", got)
	}
}

// --- Camera ---

func TestEditorPanEmptyCanvas(t *testing.T) {
	e := newTestEditor(t)
	e.InjectPress(emptySpot.X, emptySpot.Y)
	e.InjectMove(emptySpot.X-20, emptySpot.Y-10)
	e.InjectMove(emptySpot.X-50, emptySpot.Y-30)
	e.InjectRelease(emptySpot.X-50, emptySpot.Y-30)
	e.Flush()
	assertVec(t, "Target", e.Camera().Target, Vec2{50, 30})
}

func TestEditorMiddlePan(t *testing.T) {
	e := newTestEditor(t)
	in := Input{Cursor: rootCenter}
	in.Buttons[MouseButtonMiddle] = true
	e.Update(in)
	in.Cursor = rootCenter.Add(Vec2{20, 10})
	e.Update(in)
	in.Buttons[MouseButtonMiddle] = false
	e.Update(in)
	assertVec(t, "Target", e.Camera().Target, Vec2{-20, -10})
	if e.Graph().Len() != 1 {
		t.Error("middle drag over the root changed the graph")
	}
}

func TestEditorWheelZoomAtCursor(t *testing.T) {
	e := newTestEditor(t)
	anchor := Vec2{620, 180}
	before := e.Camera().ScreenToWorld(anchor)
	e.InjectWheel(anchor.X, anchor.Y, 2)
	e.Flush()
	assertNear(t, "Zoom", e.Camera().Zoom, 1.2)
	assertVec(t, "world under cursor", e.Camera().ScreenToWorld(anchor), before)

	for i := 0; i < 40; i++ {
		e.InjectWheel(anchor.X, anchor.Y, 1)
	}
	e.Flush()
	assertNear(t, "Zoom", e.Camera().Zoom, DefaultMaxZoom)
}

func TestEditorHitTestingFollowsZoom(t *testing.T) {
	e := newTestEditor(t)
	e.InjectWheel(rootCenter.X, rootCenter.Y, 10) // zoom 2 about the root
	// The east marker is now 100px right of center.
	e.InjectClick(500, 300)
	e.Flush()
	if e.Graph().Len() != 2 {
		t.Fatalf("Len = %d, want 2", e.Graph().Len())
	}
	child := e.Graph().Children(e.Graph().Root())[0]
	if got := e.Graph().Node(child).Position; got != (Vec2{140, 0}) {
		t.Errorf("child at %v, placement is world-space", got)
	}
}

func TestEditorZoomedOutNodeCenterStillEdits(t *testing.T) {
	e := newTestEditor(t)
	e.cam.SetZoom(0.2) // root is 20x12 on screen
	root := e.Graph().Root()

	e.InjectCtrlClick(rootCenter.X, rootCenter.Y)
	e.Flush()
	if e.Graph().Len() != 1 {
		t.Fatalf("Len = %d, ctrl-click on the center added a child", e.Graph().Len())
	}
	if !e.IsEditing(root) {
		t.Fatal("ctrl-click on the center did not start editing")
	}
	e.InjectKey(KeyEscape)
	e.Flush()

	e.InjectDrag(rootCenter.X, rootCenter.Y, rootCenter.X+20, rootCenter.Y, 4)
	e.Flush()
	if e.Graph().Len() != 1 {
		t.Fatalf("Len = %d, drag from the center added a child", e.Graph().Len())
	}
	assertVec(t, "root", e.Graph().Node(root).Position, Vec2{100, 0})
}

// --- Events and diagnostics ---

func TestCallbackHandleRemove(t *testing.T) {
	e := newTestEditor(t)
	var n1, n2 int
	h := e.On(func(GraphEvent) { n1++ })
	e.On(func(GraphEvent) { n2++ })

	e.InjectClick(rootEast.X, rootEast.Y)
	e.Flush()
	h.Remove()
	e.InjectClick(rootSouth.X, rootSouth.Y)
	e.Flush()

	if n1 != 1 || n2 != 2 {
		t.Errorf("calls = %d, %d; want 1, 2", n1, n2)
	}
	CallbackHandle{}.Remove() // zero handle is a no-op
}

type sinkRecorder struct{ events []GraphEvent }

func (s *sinkRecorder) EmitEvent(ev GraphEvent) { s.events = append(s.events, ev) }

func TestEventSinkReceivesEvents(t *testing.T) {
	e := newTestEditor(t)
	sink := &sinkRecorder{}
	e.SetEventSink(sink)
	addAB(t, e)
	if len(sink.events) != 2 {
		t.Errorf("sink got %d events, want 2", len(sink.events))
	}
}

func TestEditorDebugModeValidates(t *testing.T) {
	var buf bytes.Buffer
	prev := logger()
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(prev)

	e := newTestEditor(t)
	e.SetDebugMode(true)
	a, _ := addAB(t, e)
	e.InjectDrag(rootAMid.X, rootAMid.Y, bCenter.X, bCenter.Y, 4)
	e.InjectRightClick(bCenter.X, bCenter.Y)
	e.Flush()

	if e.Graph().Contains(a) {
		t.Error("A should have been deleted with B's subtree")
	}
	if strings.Contains(buf.String(), "invariant") {
		t.Errorf("unexpected invariant violation:\n%s", buf.String())
	}
}

func TestEditorFromDocumentRestoresView(t *testing.T) {
	g := NewGraph("Root", nil)
	e := NewEditorFromDocument(&Document{Graph: g, Target: Vec2{25, -5}, Zoom: 2}, Options{ViewportWidth: 800, ViewportHeight: 600})
	if e.Camera().Target != (Vec2{25, -5}) || e.Camera().Zoom != 2 {
		t.Errorf("camera = %+v", e.Camera())
	}
}

func TestEditorStatusText(t *testing.T) {
	e := newTestEditor(t)
	e.BeginEdit(e.Graph().Root())
	s := e.statusText()
	if !strings.Contains(s, "nodes: 1") || !strings.Contains(s, "editing") {
		t.Errorf("status = %q", s)
	}
}
