package mindmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// DocumentVersion is the only document format version understood by Load.
const DocumentVersion = 1

// ErrInvalidDocument is wrapped by every Load error caused by document
// content rather than I/O.
var ErrInvalidDocument = errors.New("mindmap: invalid document")

type docNode struct {
	ID     int     `json:"id"`
	Parent *int    `json:"parent"`
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Level  int     `json:"level,omitempty"` // kept for orphan roots only
}

type docCamera struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

type docFile struct {
	Version int       `json:"version"`
	Root    int       `json:"root"`
	Nodes   []docNode `json:"nodes"`
	Camera  docCamera `json:"camera"`
}

// Document is a loaded graph plus the saved camera view.
type Document struct {
	Graph  *Graph
	Target Vec2    // camera world target
	Zoom   float64 // camera zoom, 1 when absent
}

// Save writes g and the camera view as an indented JSON document. Nodes are
// numbered in Roots pre-order, so child order survives a round trip.
func Save(w io.Writer, g *Graph, cam Camera) error {
	index := make(map[NodeID]int, g.Len())
	doc := docFile{
		Version: DocumentVersion,
		Nodes:   make([]docNode, 0, g.Len()),
		Camera:  docCamera{X: cam.Target.X, Y: cam.Target.Y, Zoom: cam.Zoom},
	}
	g.Walk(func(n *Node) {
		i := len(doc.Nodes)
		index[n.ID] = i
		dn := docNode{ID: i, Text: n.Text, X: n.Position.X, Y: n.Position.Y}
		if p, ok := index[n.parent]; ok {
			dn.Parent = &p
		} else if n.ID != g.root {
			dn.Level = n.Level
		}
		doc.Nodes = append(doc.Nodes, dn)
	})
	doc.Root = index[g.root]

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// SaveFile writes the document to path, replacing any existing file.
func SaveFile(path string, g *Graph, cam Camera) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	if err := Save(f, g, cam); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save document %s: %w", path, err)
	}
	return nil
}

// Load reads a JSON document and rebuilds the graph, recomputing levels and
// sizes with measurer (nil selects DebugFont). Unknown parents, duplicate
// ids, a missing or parented root, and parent cycles are rejected with
// errors wrapping ErrInvalidDocument.
func Load(r io.Reader, measurer TextMeasurer) (*Document, error) {
	var doc docFile
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("load document: %w: %v", ErrInvalidDocument, err)
	}
	if doc.Version != DocumentVersion {
		return nil, fmt.Errorf("load document: %w: unsupported version %d", ErrInvalidDocument, doc.Version)
	}
	if measurer == nil {
		measurer = DebugFont{}
	}

	g := &Graph{measurer: measurer}
	ids := make(map[int]NodeID, len(doc.Nodes))
	for _, dn := range doc.Nodes {
		if _, dup := ids[dn.ID]; dup {
			return nil, fmt.Errorf("load document: %w: duplicate node id %d", ErrInvalidDocument, dn.ID)
		}
		ids[dn.ID] = g.alloc(Vec2{dn.X, dn.Y}, dn.Text, dn.Level)
	}
	root, ok := ids[doc.Root]
	if !ok {
		return nil, fmt.Errorf("load document: %w: root id %d not found", ErrInvalidDocument, doc.Root)
	}
	g.root = root

	for _, dn := range doc.Nodes {
		if dn.Parent == nil {
			continue
		}
		if dn.ID == doc.Root {
			return nil, fmt.Errorf("load document: %w: root has parent %d", ErrInvalidDocument, *dn.Parent)
		}
		pid, ok := ids[*dn.Parent]
		if !ok {
			return nil, fmt.Errorf("load document: %w: node %d has unknown parent %d", ErrInvalidDocument, dn.ID, *dn.Parent)
		}
		if *dn.Parent == dn.ID {
			return nil, fmt.Errorf("load document: %w: node %d is its own parent", ErrInvalidDocument, dn.ID)
		}
		id := ids[dn.ID]
		g.Node(id).parent = pid
		p := g.Node(pid)
		p.children = append(p.children, id)
	}

	// Nodes on a parent cycle are never reached from a parentless node.
	reached := 0
	for _, r := range g.Roots() {
		reached += len(g.Subtree(r))
	}
	if reached != g.Len() {
		return nil, fmt.Errorf("load document: %w: %d nodes sit on a parent cycle", ErrInvalidDocument, g.Len()-reached)
	}

	for _, r := range g.Roots() {
		n := g.Node(r)
		level := n.Level
		if r == g.root {
			level = 0
		}
		g.relevel(n, level)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("load document: %w: %w", ErrInvalidDocument, err)
	}

	zoom := doc.Camera.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return &Document{Graph: g, Target: Vec2{doc.Camera.X, doc.Camera.Y}, Zoom: zoom}, nil
}

// LoadFile opens and loads the document at path.
func LoadFile(path string, measurer TextMeasurer) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	defer f.Close()
	doc, err := Load(f, measurer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// NewEditorFromDocument creates an editor for a loaded document, restoring
// its camera view.
func NewEditorFromDocument(doc *Document, opts Options) *Editor {
	e := NewEditorWithGraph(doc.Graph, opts)
	e.cam.Target = doc.Target
	e.cam.SetZoom(doc.Zoom)
	return e
}
