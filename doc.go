// Package mindmap is the core of a node-graph editor for [Ebitengine]: a
// tree of labelled ellipses on an infinite, zoomable canvas, edited with the
// mouse.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	editor := mindmap.NewEditor(mindmap.Options{ViewportWidth: 1280, ViewportHeight: 720})
//	mindmap.Run(editor, mindmap.RunConfig{Title: "Ideas", Width: 1280, Height: 720})
//
// For full control, implement [ebiten.Game] yourself and call [Editor.Tick]
// and [Editor.Draw] directly.
//
// # Graph
//
// A [Graph] is an arena of [Node] values addressed by [NodeID] handles.
// Handles carry a generation, so a handle to a deleted node stays invalid
// even after its slot is reused. Parent and child links are the only record
// of the tree; [Graph.Edges] derives connections on demand.
//
// Detaching an edge leaves its child as an orphan root. Orphans are drawn,
// hit-tested and editable, and appear after the designated root in
// [Graph.Roots]. Shift-dropping a dragged node onto another re-attaches it.
//
// # Interaction
//
//   - Hover a node to reveal four add-child markers; click one to add a child.
//   - Hover an edge to reveal its endpoint handles; drag a handle onto a node
//     to reparent that endpoint.
//   - Ctrl-click a node to edit its label; Enter commits, Escape cancels.
//   - Right-click a node to delete its subtree, or an edge to detach it.
//   - Drag empty canvas or hold the middle button to pan; the wheel zooms at
//     the cursor; R recentres the view.
//
// Structural changes are reported as [GraphEvent] values to callbacks
// registered with [Editor.On], and to an optional [EventSink] such as the
// Donburi bridge in mindmap/ecs.
//
// Scripted sessions use the Inject methods or a JSON [TestRunner]; documents
// are saved and loaded with [Save] and [Load].
//
// [Ebitengine]: https://ebitengine.org
package mindmap
