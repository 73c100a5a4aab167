package mindmap

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default label color.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Direction is one of the four compass directions a child can be added in.
type Direction uint8

const (
	DirEast  Direction = iota // 0°
	DirSouth                  // 90° (Y grows downward)
	DirWest                   // 180°
	DirNorth                  // 270°
)

// Directions lists the add-child directions in affordance order.
var Directions = [4]Direction{DirEast, DirSouth, DirWest, DirNorth}

// Unit returns the unit vector for d.
func (d Direction) Unit() Vec2 {
	switch d {
	case DirEast:
		return Vec2{1, 0}
	case DirSouth:
		return Vec2{0, 1}
	case DirWest:
		return Vec2{-1, 0}
	default:
		return Vec2{0, -1}
	}
}

func (d Direction) String() string {
	switch d {
	case DirEast:
		return "east"
	case DirSouth:
		return "south"
	case DirWest:
		return "west"
	case DirNorth:
		return "north"
	}
	return "unknown"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)

	numMouseButtons
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Key identifies the handful of keys the editor reacts to.
type Key uint8

const (
	KeyEnter Key = iota
	KeyBackspace
	KeyEscape
	KeyReset // re-center the camera on the root
	KeyCopy  // copy a label (Ctrl/Cmd+C)
	KeyPaste // paste into the edit buffer (Ctrl/Cmd+V)

	numKeys
)

// EventType identifies a kind of graph event.
type EventType uint8

const (
	EventNodeAdded      EventType = iota // a child was created under a node
	EventNodeDeleted                     // a node and its subtree were removed
	EventNodeReparented                  // a node moved under a new parent
	EventEdgeDetached                    // a parent/child link was severed
	EventNodeMoved                       // a node was dragged to a new position
	EventEditBegan                       // inline editing started on a node
	EventEditCommitted                   // the edit buffer was written to the node
	EventEditCanceled                    // the edit buffer was discarded
)

func (t EventType) String() string {
	switch t {
	case EventNodeAdded:
		return "node-added"
	case EventNodeDeleted:
		return "node-deleted"
	case EventNodeReparented:
		return "node-reparented"
	case EventEdgeDetached:
		return "edge-detached"
	case EventNodeMoved:
		return "node-moved"
	case EventEditBegan:
		return "edit-began"
	case EventEditCommitted:
		return "edit-committed"
	case EventEditCanceled:
		return "edit-canceled"
	}
	return "unknown"
}
