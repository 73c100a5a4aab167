package mindmap

import (
	"errors"
	"fmt"
)

// Validate checks the arena's structural invariants: every parent link is
// mirrored by exactly one child entry, every child entry points back at its
// parent, levels follow parents, parent chains are acyclic, and every live
// node is reachable from Roots exactly once. All violations are returned
// joined, each wrapping ErrCorrupt.
func (g *Graph) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrCorrupt}, args...)...))
	}

	root := g.Node(g.root)
	switch {
	case root == nil:
		fail("root %v is not live", g.root)
	case !root.parent.IsZero():
		fail("root %v has parent %v", g.root, root.parent)
	}

	live := 0
	for i, s := range g.slots {
		n := s.node
		if n == nil {
			continue
		}
		live++
		if n.ID.slot() != i || n.ID.gen != s.gen {
			fail("slot %d holds node with handle %v", i, n.ID)
			continue
		}
		if !n.parent.IsZero() {
			p := g.Node(n.parent)
			if p == nil {
				fail("%v has dead parent %v", n.ID, n.parent)
			} else {
				if c := countOf(p.children, n.ID); c != 1 {
					fail("%v appears %d times among children of its parent %v", n.ID, c, n.parent)
				}
				if n.Level != p.Level+1 {
					fail("%v has level %d under parent at level %d", n.ID, n.Level, p.Level)
				}
			}
		}
		for _, c := range n.children {
			cn := g.Node(c)
			if cn == nil {
				fail("%v lists dead child %v", n.ID, c)
				continue
			}
			if cn.parent != n.ID {
				fail("%v lists child %v whose parent is %v", n.ID, c, cn.parent)
			}
		}
		// A parent chain longer than the arena must revisit a node.
		steps := 0
		for p := n.parent; !p.IsZero() && steps <= g.count; p = g.Parent(p) {
			steps++
		}
		if steps > g.count {
			fail("%v sits on a parent cycle", n.ID)
		}
	}
	if live != g.count {
		fail("count is %d but %d slots are live", g.count, live)
	}
	for _, i := range g.free {
		if int(i) >= len(g.slots) || g.slots[i].node != nil {
			fail("free list entry %d is in use", i)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	seen := make(map[NodeID]bool, g.count)
	for _, r := range g.Roots() {
		for _, id := range g.Subtree(r) {
			if seen[id] {
				fail("%v reachable more than once", id)
			}
			seen[id] = true
		}
	}
	if len(seen) != g.count {
		fail("%d of %d nodes reachable from roots", len(seen), g.count)
	}
	return errors.Join(errs...)
}

func countOf(ids []NodeID, id NodeID) int {
	n := 0
	for _, c := range ids {
		if c == id {
			n++
		}
	}
	return n
}

// debugCheckTreeDepth warns if the tree grows deeper than the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(g *Graph) {
	if d := g.Depth(); d > debugMaxTreeDepth {
		logger().Warn("tree depth exceeds threshold", "depth", d, "threshold", debugMaxTreeDepth)
	}
}

// debugCheckChildCount warns for every node with more children than the
// threshold.
const debugMaxChildCount = 1000

func debugCheckChildCount(g *Graph) {
	g.Walk(func(n *Node) {
		if len(n.children) > debugMaxChildCount {
			logger().Warn("node child count exceeds threshold",
				"node", n.ID, "text", n.Text, "children", len(n.children), "threshold", debugMaxChildCount)
		}
	})
}
