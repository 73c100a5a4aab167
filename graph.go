package mindmap

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by structural mutations. Callers match them with
// errors.Is; the returned errors wrap them with the offending handle.
var (
	ErrNoNode        = errors.New("mindmap: no such node")
	ErrRootImmutable = errors.New("mindmap: the root node cannot be deleted or reparented")
	ErrCycle         = errors.New("mindmap: reparent would create a cycle")
	ErrSelfParent    = errors.New("mindmap: node cannot be its own parent")
	ErrNotChild      = errors.New("mindmap: node has no parent to detach from")
	ErrCorrupt       = errors.New("mindmap: tree invariant violated")
)

// --- Handles ---

// NodeID is a stable handle to a node in a Graph. The zero value means
// "no node". A handle whose node has been deleted is stale and resolves to
// nothing, even if the slot is later reused.
type NodeID struct {
	index uint32 // slot index + 1
	gen   uint32
}

// IsZero reports whether id is the "no node" handle.
func (id NodeID) IsZero() bool {
	return id.index == 0
}

func (id NodeID) slot() int {
	return int(id.index) - 1
}

func (id NodeID) String() string {
	if id.IsZero() {
		return "node(none)"
	}
	return fmt.Sprintf("node(%d.%d)", id.slot(), id.gen)
}

// Edge is a derived parent → child connection.
type Edge struct {
	Parent NodeID
	Child  NodeID
}

// --- Node ---

// Node is one editable element of the tree. Position is authoritative world
// space; Size is derived from Text and Level and is kept current by the Graph.
type Node struct {
	ID       NodeID
	Position Vec2
	Size     Vec2
	Level    int
	Text     string

	parent   NodeID
	children []NodeID
}

// Parent returns the parent handle, or the zero NodeID for a root.
func (n *Node) Parent() NodeID {
	return n.parent
}

// Children returns the ordered child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []NodeID {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// HalfExtent returns half the node's width and height (the ellipse radii).
func (n *Node) HalfExtent() Vec2 {
	return Vec2{n.Size.X / 2, n.Size.Y / 2}
}

// --- Graph ---

type slot struct {
	node *Node
	gen  uint32
}

// Graph is an arena of nodes addressed by NodeID handles. Parent/child links
// stored on the nodes are the only record of the tree shape; Edges derives
// the connection list on demand.
//
// Graph is not safe for concurrent use; the editor touches it only from the
// frame loop.
type Graph struct {
	slots    []slot
	free     []uint32
	root     NodeID
	count    int
	measurer TextMeasurer
}

// NewGraph creates a graph holding a single root node at the world origin.
// A nil measurer selects the built-in DebugFont metrics.
func NewGraph(rootText string, measurer TextMeasurer) *Graph {
	if measurer == nil {
		measurer = DebugFont{}
	}
	g := &Graph{measurer: measurer}
	g.root = g.alloc(Vec2{}, rootText, 0)
	return g
}

// Root returns the designated root handle. The root is never deleted.
func (g *Graph) Root() NodeID {
	return g.root
}

// Len returns the number of live nodes, orphans included.
func (g *Graph) Len() int {
	return g.count
}

// Measurer returns the text measurer used to size nodes.
func (g *Graph) Measurer() TextMeasurer {
	return g.measurer
}

// SetMeasurer replaces the text measurer and resizes every node.
func (g *Graph) SetMeasurer(m TextMeasurer) {
	if m == nil {
		m = DebugFont{}
	}
	g.measurer = m
	for _, s := range g.slots {
		if s.node != nil {
			g.resize(s.node)
		}
	}
}

// Node resolves a handle. Returns nil for the zero or a stale handle.
func (g *Graph) Node(id NodeID) *Node {
	i := id.slot()
	if i < 0 || i >= len(g.slots) {
		return nil
	}
	s := g.slots[i]
	if s.node == nil || s.gen != id.gen {
		return nil
	}
	return s.node
}

// Contains reports whether id resolves to a live node.
func (g *Graph) Contains(id NodeID) bool {
	return g.Node(id) != nil
}

// Parent returns the parent of id, or the zero NodeID.
func (g *Graph) Parent(id NodeID) NodeID {
	if n := g.Node(id); n != nil {
		return n.parent
	}
	return NodeID{}
}

// Children returns the child list of id. The returned slice MUST NOT be mutated.
func (g *Graph) Children(id NodeID) []NodeID {
	if n := g.Node(id); n != nil {
		return n.children
	}
	return nil
}

// IsAncestor reports whether candidate is id itself or one of its ancestors.
func (g *Graph) IsAncestor(candidate, id NodeID) bool {
	for p := id; !p.IsZero(); p = g.Parent(p) {
		if p == candidate {
			return true
		}
	}
	return false
}

// --- Mutation ---

// AddChild creates a node under parent at the given world position. The new
// node's level is parent.Level+1 and its size is computed from text.
func (g *Graph) AddChild(parent NodeID, pos Vec2, text string) (NodeID, error) {
	p := g.Node(parent)
	if p == nil {
		return NodeID{}, fmt.Errorf("add child under %v: %w", parent, ErrNoNode)
	}
	id := g.alloc(pos, text, p.Level+1)
	g.Node(id).parent = parent
	p.children = append(p.children, id)
	return id, nil
}

// Reparent moves child (and its subtree) under newParent, appending it to
// newParent's children. Levels and sizes of the moved subtree are recomputed.
// Reparenting the root, a node onto itself, or a node onto one of its own
// descendants is rejected.
func (g *Graph) Reparent(child, newParent NodeID) error {
	c := g.Node(child)
	if c == nil {
		return fmt.Errorf("reparent %v: %w", child, ErrNoNode)
	}
	np := g.Node(newParent)
	if np == nil {
		return fmt.Errorf("reparent %v onto %v: %w", child, newParent, ErrNoNode)
	}
	if child == g.root {
		return fmt.Errorf("reparent %v: %w", child, ErrRootImmutable)
	}
	if child == newParent {
		return fmt.Errorf("reparent %v: %w", child, ErrSelfParent)
	}
	if g.IsAncestor(child, newParent) {
		return fmt.Errorf("reparent %v onto %v: %w", child, newParent, ErrCycle)
	}
	// Already attached here; sibling order is kept.
	if c.parent == newParent {
		return nil
	}
	if old := g.Node(c.parent); old != nil {
		old.removeChild(child)
	}
	c.parent = newParent
	np.children = append(np.children, child)
	g.relevel(c, np.Level+1)
	return nil
}

// Detach severs the link between child and its parent. The child survives
// as an orphan root (see Roots) together with its subtree.
func (g *Graph) Detach(child NodeID) error {
	c := g.Node(child)
	if c == nil {
		return fmt.Errorf("detach %v: %w", child, ErrNoNode)
	}
	p := g.Node(c.parent)
	if p == nil {
		return fmt.Errorf("detach %v: %w", child, ErrNotChild)
	}
	p.removeChild(child)
	c.parent = NodeID{}
	return nil
}

// Delete removes id and its entire subtree, freeing every slot exactly once.
// Returns the number of nodes removed.
func (g *Graph) Delete(id NodeID) (int, error) {
	n := g.Node(id)
	if n == nil {
		return 0, fmt.Errorf("delete %v: %w", id, ErrNoNode)
	}
	if id == g.root {
		return 0, fmt.Errorf("delete %v: %w", id, ErrRootImmutable)
	}
	if p := g.Node(n.parent); p != nil {
		p.removeChild(id)
	}
	doomed := g.Subtree(id)
	for _, d := range doomed {
		g.release(d)
	}
	return len(doomed), nil
}

// SetText replaces a node's label and recomputes its size.
func (g *Graph) SetText(id NodeID, text string) error {
	n := g.Node(id)
	if n == nil {
		return fmt.Errorf("set text on %v: %w", id, ErrNoNode)
	}
	n.Text = text
	g.resize(n)
	return nil
}

// Move sets a node's world position.
func (g *Graph) Move(id NodeID, pos Vec2) error {
	n := g.Node(id)
	if n == nil {
		return fmt.Errorf("move %v: %w", id, ErrNoNode)
	}
	n.Position = pos
	return nil
}

// --- Traversal ---

// Roots returns the designated root followed by any orphan roots in slot order.
func (g *Graph) Roots() []NodeID {
	roots := []NodeID{g.root}
	for _, s := range g.slots {
		if s.node != nil && s.node.parent.IsZero() && s.node.ID != g.root {
			roots = append(roots, s.node.ID)
		}
	}
	return roots
}

// Subtree returns id and all its descendants in depth-first pre-order.
func (g *Graph) Subtree(id NodeID) []NodeID {
	var out []NodeID
	var visit func(NodeID)
	visit = func(cur NodeID) {
		n := g.Node(cur)
		if n == nil {
			return
		}
		out = append(out, cur)
		for _, c := range n.children {
			visit(c)
		}
	}
	visit(id)
	return out
}

// Walk calls fn for every node reachable from Roots in depth-first pre-order.
func (g *Graph) Walk(fn func(n *Node)) {
	for _, r := range g.Roots() {
		for _, id := range g.Subtree(r) {
			fn(g.Node(id))
		}
	}
}

// Edges derives the parent → child connection list by walking the tree.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	g.Walk(func(n *Node) {
		for _, c := range n.children {
			edges = append(edges, Edge{Parent: n.ID, Child: c})
		}
	})
	return edges
}

// Depth returns the length of the longest root-to-leaf path, counting nodes.
func (g *Graph) Depth() int {
	var depth func(NodeID) int
	depth = func(id NodeID) int {
		best := 0
		for _, c := range g.Children(id) {
			if d := depth(c); d > best {
				best = d
			}
		}
		return best + 1
	}
	deepest := 0
	for _, r := range g.Roots() {
		if d := depth(r); d > deepest {
			deepest = d
		}
	}
	return deepest
}

// --- Helpers ---

// alloc takes a slot from the free list (or grows the arena) and places a
// new parentless node in it.
func (g *Graph) alloc(pos Vec2, text string, level int) NodeID {
	var i uint32
	if n := len(g.free); n > 0 {
		i = g.free[n-1]
		g.free = g.free[:n-1]
	} else {
		g.slots = append(g.slots, slot{})
		i = uint32(len(g.slots) - 1)
	}
	s := &g.slots[i]
	if s.gen == 0 {
		s.gen = 1
	}
	id := NodeID{index: i + 1, gen: s.gen}
	n := &Node{ID: id, Position: pos, Text: text, Level: level}
	g.resize(n)
	s.node = n
	g.count++
	return id
}

// release frees the slot behind id and invalidates outstanding handles.
func (g *Graph) release(id NodeID) {
	i := id.slot()
	s := &g.slots[i]
	s.node.children = nil
	s.node.parent = NodeID{}
	s.node = nil
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	g.free = append(g.free, uint32(i))
	g.count--
}

// relevel assigns level to n and parent.Level+1 to each descendant,
// resizing every node it touches.
func (g *Graph) relevel(n *Node, level int) {
	n.Level = level
	g.resize(n)
	for _, c := range n.children {
		if cn := g.Node(c); cn != nil {
			g.relevel(cn, level+1)
		}
	}
}

func (g *Graph) resize(n *Node) {
	n.Size = NodeSize(g.measurer, n.Text, n.Level)
}

// removeChild removes child from n.children, preserving order.
// Uses copy+zero to avoid retaining a stale handle in the backing array.
func (n *Node) removeChild(child NodeID) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = NodeID{}
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
