package mindmap

import "math"

// Node size floors in world units. Nodes never shrink below these so short
// or empty labels stay clickable.
const (
	MinNodeWidth  = 100
	MinNodeHeight = 60

	nodePaddingX = 40
	nodePaddingY = 30
)

// SizeFactor returns the shrink factor applied to nodes at the given depth:
// 1.0 for the root, 0.85 for its children, and 0.95 of the previous level
// below that.
func SizeFactor(level int) float64 {
	switch {
	case level <= 0:
		return 1.0
	case level == 1:
		return 0.85
	}
	return 0.85 * math.Pow(0.95, float64(level-1))
}

// NodeSize computes the size of a node showing text at the given level.
func NodeSize(m TextMeasurer, text string, level int) Vec2 {
	w, h := m.MeasureString(text)
	f := SizeFactor(level)
	return Vec2{
		X: math.Max(MinNodeWidth, (w+nodePaddingX)*f),
		Y: math.Max(MinNodeHeight, (h+nodePaddingY)*f),
	}
}
