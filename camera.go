package mindmap

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Zoom limits and wheel step used when a Camera leaves them unset.
const (
	DefaultMinZoom  = 0.1
	DefaultMaxZoom  = 3.0
	DefaultZoomStep = 0.1
)

// Camera maps between screen space (raw pointer coordinates) and world space
// (authoritative node coordinates):
//
//	world = (screen - Offset) / Zoom + Target
//
// Camera is a small value type. Functions that convert coordinates take it
// by value; only the Editor owns a mutable instance.
type Camera struct {
	// Target is the world point shown at Offset. Unbounded (infinite canvas).
	Target Vec2
	// Offset is the screen point Target maps to, normally the viewport center.
	Offset Vec2
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64

	// MinZoom and MaxZoom clamp Zoom. Zero selects the defaults.
	MinZoom, MaxZoom float64
}

// NewCamera returns a camera at the world origin, zoom 1, centered in a
// viewport of the given size.
func NewCamera(viewportW, viewportH float64) Camera {
	return Camera{
		Offset:  Vec2{viewportW / 2, viewportH / 2},
		Zoom:    1,
		MinZoom: DefaultMinZoom,
		MaxZoom: DefaultMaxZoom,
	}
}

// viewMatrix = Translate(Offset) * Scale(Zoom) * Translate(-Target)
func (c Camera) viewMatrix() affine {
	z := c.Zoom
	return affine{z, 0, 0, z, c.Offset.X - z*c.Target.X, c.Offset.Y - z*c.Target.Y}
}

// WorldToScreen converts a world point to screen coordinates.
func (c Camera) WorldToScreen(p Vec2) Vec2 {
	return c.viewMatrix().apply(p)
}

// ScreenToWorld converts a screen point to world coordinates.
func (c Camera) ScreenToWorld(p Vec2) Vec2 {
	return c.viewMatrix().inverse().apply(p)
}

// VisibleBounds returns the world-space rectangle covered by a viewport of
// the given size.
func (c Camera) VisibleBounds(viewportW, viewportH float64) Rect {
	tl := c.ScreenToWorld(Vec2{0, 0})
	br := c.ScreenToWorld(Vec2{viewportW, viewportH})
	return Rect{
		X: math.Min(tl.X, br.X), Y: math.Min(tl.Y, br.Y),
		Width: math.Abs(br.X - tl.X), Height: math.Abs(br.Y - tl.Y),
	}
}

func (c Camera) zoomLimits() (lo, hi float64) {
	lo, hi = c.MinZoom, c.MaxZoom
	if lo <= 0 {
		lo = DefaultMinZoom
	}
	if hi <= 0 {
		hi = DefaultMaxZoom
	}
	return lo, hi
}

// SetZoom sets Zoom clamped to [MinZoom, MaxZoom].
func (c *Camera) SetZoom(z float64) {
	lo, hi := c.zoomLimits()
	c.Zoom = math.Max(lo, math.Min(z, hi))
}

// ZoomAt changes Zoom by delta while keeping the world point under the
// screen point anchor fixed. Reports whether the zoom changed.
func (c *Camera) ZoomAt(anchor Vec2, delta float64) bool {
	before := c.ScreenToWorld(anchor)
	prev := c.Zoom
	c.SetZoom(c.Zoom + delta)
	if c.Zoom == prev {
		return false
	}
	after := c.ScreenToWorld(anchor)
	c.Target = c.Target.Add(before.Sub(after))
	return true
}

// PanBy moves the view by a screen-space delta, so content follows the pointer.
func (c *Camera) PanBy(screenDelta Vec2) {
	if c.Zoom == 0 {
		return
	}
	c.Target = c.Target.Sub(screenDelta.Scale(1 / c.Zoom))
}

// --- Scroll animation ---

// cameraScroll holds active scroll-to tweens for the camera target.
type cameraScroll struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

func newCameraScroll(from, to Vec2, duration float32, easeFn ease.TweenFunc) *cameraScroll {
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	return &cameraScroll{
		tweenX: gween.New(float32(from.X), float32(to.X), duration, easeFn),
		tweenY: gween.New(float32(from.Y), float32(to.Y), duration, easeFn),
	}
}

// update advances both tweens by dt seconds and writes the camera target.
// Reports whether the animation has finished.
func (s *cameraScroll) update(c *Camera, dt float32) bool {
	if !s.doneX {
		val, done := s.tweenX.Update(dt)
		c.Target.X = float64(val)
		s.doneX = done
	}
	if !s.doneY {
		val, done := s.tweenY.Update(dt)
		c.Target.Y = float64(val)
		s.doneY = done
	}
	return s.doneX && s.doneY
}
