package mindmap

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- White pixel singleton (no sync.Once, drawing is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Every untextured shape samples it; colour comes from the vertices.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

const (
	ellipseSegments = 40
	circleSegments  = 16
)

// shapeBatch accumulates untextured triangles in screen space and submits
// them with as few DrawTriangles calls as the 16-bit index limit allows.
type shapeBatch struct {
	verts []ebiten.Vertex
	inds  []uint16
}

func (b *shapeBatch) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

// flush draws everything queued so far onto dst and empties the batch.
func (b *shapeBatch) flush(dst *ebiten.Image) {
	if len(b.inds) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{
		AntiAlias:      true,
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha, // toRGBA premultiplies
	}
	dst.DrawTriangles(b.verts, b.inds, ensureWhitePixel(), op)
	b.reset()
}

func (b *shapeBatch) reserve(dst *ebiten.Image, nverts int) {
	if len(b.verts)+nverts > math.MaxUint16 {
		b.flush(dst)
	}
}

func vertex(p Vec2, c color.RGBA) ebiten.Vertex {
	return ebiten.Vertex{
		DstX: float32(p.X), DstY: float32(p.Y),
		// Untextured: sample the center of the white pixel.
		SrcX: 0.5, SrcY: 0.5,
		ColorR: float32(c.R) / 255, ColorG: float32(c.G) / 255,
		ColorB: float32(c.B) / 255, ColorA: float32(c.A) / 255,
	}
}

// polygonFan queues a convex polygon with fan triangulation: vertex 0 is
// the hub, giving N vertices and 3*(N-2) indices.
func (b *shapeBatch) polygonFan(dst *ebiten.Image, points []Vec2, c Color) {
	n := len(points)
	if n < 3 {
		return
	}
	b.reserve(dst, n)
	rgba := c.toRGBA()
	base := uint16(len(b.verts))
	for _, p := range points {
		b.verts = append(b.verts, vertex(p, rgba))
	}
	for i := 0; i < n-2; i++ {
		b.inds = append(b.inds, base, base+uint16(i+1), base+uint16(i+2))
	}
}

// ellipse queues a filled ellipse. m maps the unit circle to screen space
// (see ellipseTransform).
func (b *shapeBatch) ellipse(dst *ebiten.Image, m affine, segments int, c Color) {
	points := make([]Vec2, segments)
	for i := range points {
		a := 2 * math.Pi * float64(i) / float64(segments)
		points[i] = m.apply(Vec2{math.Cos(a), math.Sin(a)})
	}
	b.polygonFan(dst, points, c)
}

// circle queues a filled screen-space circle.
func (b *shapeBatch) circle(dst *ebiten.Image, center Vec2, radius float64, c Color) {
	b.ellipse(dst, ellipseTransform(identityAffine, center, Vec2{radius, radius}), circleSegments, c)
}

// line queues a screen-space segment of the given width as a quad.
func (b *shapeBatch) line(dst *ebiten.Image, from, to Vec2, width float64, c Color) {
	nx, ny := perpendicular(from, to)
	h := width / 2
	off := Vec2{nx * h, ny * h}
	b.polygonFan(dst, []Vec2{from.Add(off), to.Add(off), to.Sub(off), from.Sub(off)}, c)
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}
