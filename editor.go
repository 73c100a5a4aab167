package mindmap

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Defaults for Options fields left at their zero value.
const (
	DefaultRootText     = "Root"
	DefaultChildText    = "New idea"
	DefaultEditModifier = ModCtrl

	focusScrollSeconds = 0.35
)

// Options configures an Editor. Zero fields take the defaults above.
type Options struct {
	ViewportWidth, ViewportHeight float64

	RootText      string
	DefaultText   string // label given to new children
	MaxTextLength int    // inline edit buffer limit in runes
	EditModifier  KeyModifiers
	EdgeThreshold float64 // world units, see EdgeContains

	ZoomStep         float64 // zoom change per wheel notch
	MinZoom, MaxZoom float64

	Measurer   TextMeasurer
	Theme      *Theme
	Debug      bool
	ShowStatus bool
}

func (o *Options) applyDefaults() {
	if o.ViewportWidth <= 0 {
		o.ViewportWidth = 800
	}
	if o.ViewportHeight <= 0 {
		o.ViewportHeight = 600
	}
	if o.RootText == "" {
		o.RootText = DefaultRootText
	}
	if o.DefaultText == "" {
		o.DefaultText = DefaultChildText
	}
	if o.MaxTextLength <= 0 {
		o.MaxTextLength = DefaultMaxTextLength
	}
	if o.EditModifier == 0 {
		o.EditModifier = DefaultEditModifier
	}
	if o.EdgeThreshold <= 0 {
		o.EdgeThreshold = DefaultEdgeHoverThreshold
	}
	if o.ZoomStep <= 0 {
		o.ZoomStep = DefaultZoomStep
	}
	if o.Measurer == nil {
		o.Measurer = DebugFont{}
	}
	if o.Theme == nil {
		o.Theme = DefaultTheme()
	}
}

// --- Drag state ---

type dragKind uint8

const (
	dragNone     dragKind = iota
	dragMove              // a node follows the pointer
	dragReparent          // an edge endpoint is carried toward a new parent
	dragPan               // the canvas follows the pointer
)

type dragState struct {
	kind      dragKind
	node      NodeID
	grab      Vec2 // pointer offset from the node center, world space
	start     Vec2 // node position when the drag began
	candidate NodeID
}

// Editor is the top-level controller. It owns the graph, the camera, the
// inline-edit state and all per-frame interaction state. Call Update once
// per frame, then Draw.
type Editor struct {
	graph *Graph
	cam   Camera
	edit  EditState
	opts  Options

	hoverNode    NodeID
	hoverEdge    Edge
	hasHoverEdge bool

	prevButtons [numMouseButtons]bool
	lastCursor  Vec2
	addGuard    bool
	drag        dragState
	panning     bool
	scroll      *cameraScroll

	handlers    handlerRegistry
	sink        EventSink
	injectQueue []Input
	lastInject  Vec2
	testRunner  *TestRunner
	charBuf     []rune
	debug       bool

	pops       []*nodePop
	shapes     shapeBatch
	status     statusOverlay
	showStatus bool
}

// NewEditor creates an editor around a fresh single-root graph.
func NewEditor(opts Options) *Editor {
	opts.applyDefaults()
	return NewEditorWithGraph(NewGraph(opts.RootText, opts.Measurer), opts)
}

// NewEditorWithGraph creates an editor for an existing graph, for example
// one returned by LoadDocument.
func NewEditorWithGraph(g *Graph, opts Options) *Editor {
	opts.applyDefaults()
	cam := NewCamera(opts.ViewportWidth, opts.ViewportHeight)
	if opts.MinZoom > 0 {
		cam.MinZoom = opts.MinZoom
	}
	if opts.MaxZoom > 0 {
		cam.MaxZoom = opts.MaxZoom
	}
	if root := g.Node(g.Root()); root != nil {
		cam.Target = root.Position
	}
	return &Editor{
		graph: g,
		cam:   cam,
		edit:  Idle{},
		opts:  opts,
		debug: opts.Debug,

		showStatus: opts.ShowStatus,
	}
}

// Graph returns the edited graph.
func (e *Editor) Graph() *Graph {
	return e.graph
}

// Camera returns a copy of the current camera.
func (e *Editor) Camera() Camera {
	return e.cam
}

// SetCamera replaces the camera and cancels any scroll animation.
func (e *Editor) SetCamera(c Camera) {
	e.cam = c
	e.scroll = nil
}

// Resize updates the viewport, keeping the camera target centered.
func (e *Editor) Resize(w, h float64) {
	e.opts.ViewportWidth, e.opts.ViewportHeight = w, h
	e.cam.Offset = Vec2{w / 2, h / 2}
}

// EditState returns the current inline-edit state (Idle or Editing).
func (e *Editor) EditState() EditState {
	return e.edit
}

// IsEditing reports whether id is the node currently being edited.
func (e *Editor) IsEditing(id NodeID) bool {
	ed, ok := e.edit.(Editing)
	return ok && ed.Node == id
}

// HoveredNode returns the node under the pointer as of the last Update.
func (e *Editor) HoveredNode() NodeID {
	return e.hoverNode
}

// HoveredEdge returns the edge under the pointer as of the last Update.
func (e *Editor) HoveredEdge() (Edge, bool) {
	return e.hoverEdge, e.hasHoverEdge
}

// SetDebugMode enables or disables invariant validation after every
// structural change, with violations logged.
func (e *Editor) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// ScrollTo animates the camera target to a world point.
func (e *Editor) ScrollTo(p Vec2, duration float32, easeFn ease.TweenFunc) {
	e.scroll = newCameraScroll(e.cam.Target, p, duration, easeFn)
}

// ResetView restores zoom 1 and scrolls back to the designated root.
func (e *Editor) ResetView() {
	e.cam.SetZoom(1)
	if root := e.graph.Node(e.graph.Root()); root != nil {
		e.ScrollTo(root.Position, focusScrollSeconds, ease.OutCubic)
	}
}

// --- Frame update ---

// Tick polls Ebitengine input (or the next injected frame) and runs Update.
func (e *Editor) Tick() {
	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	in, ok := e.nextInjected()
	if !ok {
		in = PollInput(e.charBuf)
		e.charBuf = in.Chars
	}
	e.Update(in)
}

// Update runs one frame of interaction against the given input snapshot.
func (e *Editor) Update(in Input) {
	var pressed, released [numMouseButtons]bool
	for b := range in.Buttons {
		pressed[b] = in.Buttons[b] && !e.prevButtons[b]
		released[b] = !in.Buttons[b] && e.prevButtons[b]
	}
	e.prevButtons = in.Buttons
	delta := in.Cursor.Sub(e.lastCursor)
	e.lastCursor = in.Cursor

	e.updateCamera(&in, delta, pressed, released)

	if e.updateEditing(&in, pressed) {
		e.hoverNode, e.hasHoverEdge = NodeID{}, false
		return
	}

	world := e.cam.ScreenToWorld(in.Cursor)
	e.updateHover(world, in.Cursor)
	if in.Keys[KeyCopy] {
		e.CopyLabel(e.hoverNode)
	}

	switch {
	case pressed[MouseButtonLeft]:
		e.leftPress(&in, world)
	case in.Buttons[MouseButtonLeft]:
		e.leftHeld(world, delta)
	case released[MouseButtonLeft]:
		e.leftRelease(&in, world)
	}
	if pressed[MouseButtonRight] {
		e.rightPress()
	}
}

func (e *Editor) updateCamera(in *Input, delta Vec2, pressed, released [numMouseButtons]bool) {
	dt := float32(1.0 / float64(ebiten.TPS()))
	if e.scroll != nil && e.scroll.update(&e.cam, dt) {
		e.scroll = nil
	}
	e.updatePops(dt)
	if in.Wheel != 0 {
		e.scroll = nil
		e.cam.ZoomAt(in.Cursor, in.Wheel*e.opts.ZoomStep)
	}
	switch {
	case pressed[MouseButtonMiddle]:
		e.panning = true
		e.scroll = nil
	case released[MouseButtonMiddle]:
		e.panning = false
	case e.panning && in.Buttons[MouseButtonMiddle]:
		e.cam.PanBy(delta)
	}
	if in.Keys[KeyReset] {
		if _, idle := e.edit.(Idle); idle {
			e.ResetView()
		}
	}
}

// updateEditing handles keyboard input while a node is being edited.
// A pointer press commits the edit and lets the press be evaluated as a
// fresh click. Reports whether the frame was consumed by the edit.
func (e *Editor) updateEditing(in *Input, pressed [numMouseButtons]bool) bool {
	ed, ok := e.edit.(Editing)
	if !ok {
		return false
	}
	if !e.graph.Contains(ed.Node) {
		e.edit = Idle{}
		return false
	}
	if pressed[MouseButtonLeft] || pressed[MouseButtonRight] {
		e.CommitEdit()
		return false
	}
	for _, r := range in.Chars {
		ed.Buffer.Insert(r)
	}
	if in.Keys[KeyPaste] {
		e.paste(ed.Buffer)
	}
	if in.Keys[KeyCopy] {
		e.copyText(ed.Buffer.String())
	}
	if in.Keys[KeyBackspace] {
		ed.Buffer.Backspace()
	}
	switch {
	case in.Keys[KeyEnter]:
		e.CommitEdit()
	case in.Keys[KeyEscape]:
		e.CancelEdit()
	}
	return true
}

func (e *Editor) updateHover(world, screen Vec2) {
	switch e.drag.kind {
	case dragMove, dragReparent:
		e.hoverNode = e.graph.NodeAtExcluding(world, e.drag.node)
	default:
		e.hoverNode = e.graph.NodeAt(world)
	}
	if !e.hoverNode.IsZero() || e.drag.kind != dragNone {
		e.hasHoverEdge = false
		return
	}
	// A pointer resting on a handle keeps its edge hovered.
	if e.hasHoverEdge && e.edgeLive(e.hoverEdge) {
		if _, ok := e.graph.HandleAt(e.hoverEdge, e.cam, screen); ok {
			return
		}
	}
	e.hoverEdge, e.hasHoverEdge = e.graph.EdgeAt(world, e.opts.EdgeThreshold)
}

func (e *Editor) edgeLive(edge Edge) bool {
	return e.graph.Contains(edge.Parent) && e.graph.Parent(edge.Child) == edge.Parent
}

// --- Left button ---

func (e *Editor) leftPress(in *Input, world Vec2) {
	e.addGuard = false

	if n := e.graph.Node(e.hoverNode); n != nil {
		if d, ok := AffordanceAt(n, e.cam, in.Cursor); ok {
			e.addChildAt(n, d)
			return
		}
	}
	if e.hasHoverEdge {
		if id, ok := e.graph.HandleAt(e.hoverEdge, e.cam, in.Cursor); ok {
			e.drag = dragState{kind: dragReparent, node: id}
			return
		}
	}
	if n := e.graph.Node(e.hoverNode); n != nil {
		if in.Mods&e.opts.EditModifier != 0 {
			e.BeginEdit(n.ID)
			return
		}
		e.drag = dragState{kind: dragMove, node: n.ID, grab: world.Sub(n.Position), start: n.Position}
		return
	}
	e.drag = dragState{kind: dragPan}
}

func (e *Editor) leftHeld(world, delta Vec2) {
	switch e.drag.kind {
	case dragMove:
		if err := e.graph.Move(e.drag.node, world.Sub(e.drag.grab)); err != nil {
			e.drag = dragState{}
		}
	case dragReparent:
		if !e.graph.Contains(e.drag.node) {
			e.drag = dragState{}
			return
		}
		e.drag.candidate = e.graph.NodeAtExcluding(world, e.drag.node)
	case dragPan:
		e.scroll = nil
		e.cam.PanBy(delta)
	}
}

func (e *Editor) leftRelease(in *Input, world Vec2) {
	d := e.drag
	e.drag = dragState{}
	e.addGuard = false

	switch d.kind {
	case dragReparent:
		if target := e.graph.NodeAtExcluding(world, d.node); !target.IsZero() {
			e.reparent(d.node, target)
		}
	case dragMove:
		if in.Mods&ModShift != 0 {
			if target := e.graph.NodeAtExcluding(world, d.node); !target.IsZero() {
				e.reparent(d.node, target)
				return
			}
		}
		if e.graph.Move(d.node, world.Sub(d.grab)) != nil {
			return
		}
		if n := e.graph.Node(d.node); n.Position != d.start {
			e.emit(GraphEvent{Type: EventNodeMoved, Node: d.node, Position: n.Position})
		}
	}
}

// --- Right button ---

func (e *Editor) rightPress() {
	if !e.hoverNode.IsZero() {
		if e.hoverNode == e.graph.Root() {
			return
		}
		e.DeleteNode(e.hoverNode)
		return
	}
	if e.hasHoverEdge {
		e.DetachEdge(e.hoverEdge)
	}
}

// --- Structural actions ---

// AddChild creates a child of parent in direction d, placed by ChildPosition.
func (e *Editor) AddChild(parent NodeID, d Direction) (NodeID, error) {
	n := e.graph.Node(parent)
	if n == nil {
		return NodeID{}, ErrNoNode
	}
	return e.addChild(n, d)
}

// addChildAt is the pointer path: one child per press, and never mid-edit.
func (e *Editor) addChildAt(n *Node, d Direction) {
	if e.addGuard {
		return
	}
	if _, idle := e.edit.(Idle); !idle {
		return
	}
	e.addGuard = true
	if _, err := e.addChild(n, d); err != nil {
		logger().Debug("add child rejected", "parent", n.ID, "err", err)
	}
}

func (e *Editor) addChild(n *Node, d Direction) (NodeID, error) {
	pos := ChildPosition(n, d)
	id, err := e.graph.AddChild(n.ID, pos, e.opts.DefaultText)
	if err != nil {
		return NodeID{}, err
	}
	e.afterMutation()
	e.pops = append(e.pops, newNodePop(id))
	e.emit(GraphEvent{Type: EventNodeAdded, Node: id, Parent: n.ID, Text: e.opts.DefaultText, Position: pos})
	if !e.cam.VisibleBounds(e.opts.ViewportWidth, e.opts.ViewportHeight).Contains(pos.X, pos.Y) {
		e.ScrollTo(pos, focusScrollSeconds, ease.OutCubic)
	}
	return id, nil
}

// DeleteNode removes a non-root node and its subtree. An edit on any
// removed node is dropped.
func (e *Editor) DeleteNode(id NodeID) {
	parent := e.graph.Parent(id)
	removed, err := e.graph.Delete(id)
	if err != nil {
		logger().Debug("delete rejected", "node", id, "err", err)
		return
	}
	if ed, ok := e.edit.(Editing); ok && !e.graph.Contains(ed.Node) {
		e.edit = Idle{}
	}
	e.hoverNode = NodeID{}
	e.afterMutation()
	e.emit(GraphEvent{Type: EventNodeDeleted, Node: id, Parent: parent, Removed: removed})
}

// DetachEdge severs edge, leaving its child as an orphan root.
func (e *Editor) DetachEdge(edge Edge) {
	if !e.edgeLive(edge) {
		return
	}
	if err := e.graph.Detach(edge.Child); err != nil {
		logger().Debug("detach rejected", "node", edge.Child, "err", err)
		return
	}
	e.hasHoverEdge = false
	e.afterMutation()
	e.emit(GraphEvent{Type: EventEdgeDetached, Node: edge.Child, Parent: edge.Parent})
}

func (e *Editor) reparent(child, target NodeID) {
	prev := e.graph.Parent(child)
	if err := e.graph.Reparent(child, target); err != nil {
		switch {
		case errors.Is(err, ErrCycle), errors.Is(err, ErrRootImmutable), errors.Is(err, ErrSelfParent):
			logger().Debug("reparent ignored", "node", child, "target", target, "err", err)
		default:
			logger().Warn("reparent failed", "node", child, "target", target, "err", err)
		}
		return
	}
	if prev == target {
		return
	}
	e.afterMutation()
	e.emit(GraphEvent{Type: EventNodeReparented, Node: child, Parent: target, Previous: prev})
}

func (e *Editor) afterMutation() {
	if !e.debug {
		return
	}
	if err := e.graph.Validate(); err != nil {
		logger().Error("graph invariant violated", "err", err)
	}
	debugCheckTreeDepth(e.graph)
	debugCheckChildCount(e.graph)
}

// --- Inline editing ---

// BeginEdit starts editing id, committing any edit already in progress.
func (e *Editor) BeginEdit(id NodeID) {
	n := e.graph.Node(id)
	if n == nil {
		return
	}
	if _, editing := e.edit.(Editing); editing {
		e.CommitEdit()
	}
	e.drag = dragState{}
	e.edit = Editing{Node: id, Buffer: NewTextBuffer(n.Text, e.opts.MaxTextLength)}
	e.emit(GraphEvent{Type: EventEditBegan, Node: id})
}

// CommitEdit writes the buffer to the edited node, recomputing its size,
// and returns to Idle. No-op when idle.
func (e *Editor) CommitEdit() {
	ed, ok := e.edit.(Editing)
	if !ok {
		return
	}
	e.edit = Idle{}
	text := ed.Buffer.String()
	if err := e.graph.SetText(ed.Node, text); err != nil {
		return
	}
	e.emit(GraphEvent{Type: EventEditCommitted, Node: ed.Node, Text: text})
}

// CancelEdit discards the buffer and returns to Idle.
func (e *Editor) CancelEdit() {
	ed, ok := e.edit.(Editing)
	if !ok {
		return
	}
	e.edit = Idle{}
	e.emit(GraphEvent{Type: EventEditCanceled, Node: ed.Node})
}
