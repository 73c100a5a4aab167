package mindmap

import "math"

// affine is a 2D affine map [a b c d tx ty]:
// x' = a*x + c*y + tx, y' = b*x + d*y + ty.
type affine [6]float64

var identityAffine = affine{1, 0, 0, 1, 0, 0}

func (m affine) apply(p Vec2) Vec2 {
	return Vec2{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}

// compose returns the map that applies inner first, then m.
func (m affine) compose(inner affine) affine {
	t := m.apply(Vec2{inner[4], inner[5]})
	return affine{
		m[0]*inner[0] + m[2]*inner[1],
		m[1]*inner[0] + m[3]*inner[1],
		m[0]*inner[2] + m[2]*inner[3],
		m[1]*inner[2] + m[3]*inner[3],
		t.X, t.Y,
	}
}

// inverse returns the inverse map, or the identity when m is singular.
func (m affine) inverse() affine {
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < 1e-12 {
		return identityAffine
	}
	inv := affine{m[3] / det, -m[1] / det, -m[2] / det, m[0] / det, 0, 0}
	t := inv.apply(Vec2{m[4], m[5]})
	inv[4], inv[5] = -t.X, -t.Y
	return inv
}

// ellipseTransform maps the unit circle onto an ellipse with the given
// center and radii, then through view.
func ellipseTransform(view affine, center, radii Vec2) affine {
	return view.compose(affine{radii.X, 0, 0, radii.Y, center.X, center.Y})
}
