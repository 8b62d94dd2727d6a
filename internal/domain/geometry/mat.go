package geometry

import (
	"errors"
	"math"
)

// ErrSingularMatrix is returned when a transform cannot be inverted.
var ErrSingularMatrix = errors.New("transform matrix is singular")

// Mat4 is a 4x4 homogeneous transform in row-major order. Placement
// transforms are affine: the bottom row is always (0, 0, 0, 1).
type Mat4 [4][4]float64

// Identity returns the identity transform.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns m * n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i][k] * n[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// MulPoint applies m to p as a homogeneous point (w = 1).
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3],
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3],
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3],
	}
}

// MulDir applies only the rotation block of m to d (w = 0).
func (m Mat4) MulDir(d Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*d.X + m[0][1]*d.Y + m[0][2]*d.Z,
		Y: m[1][0]*d.X + m[1][1]*d.Y + m[1][2]*d.Z,
		Z: m[2][0]*d.X + m[2][1]*d.Y + m[2][2]*d.Z,
	}
}

// Inverse inverts an affine transform by inverting its 3x3 linear block
// and negating the mapped translation.
func (m Mat4) Inverse() (Mat4, error) {
	a, b, c := m[0][0], m[0][1], m[0][2]
	d, e, f := m[1][0], m[1][1], m[1][2]
	g, h, i := m[2][0], m[2][1], m[2][2]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if math.Abs(det) < Eps {
		return Mat4{}, ErrSingularMatrix
	}
	inv := 1 / det

	var r Mat4
	r[0][0] = (e*i - f*h) * inv
	r[0][1] = (c*h - b*i) * inv
	r[0][2] = (b*f - c*e) * inv
	r[1][0] = (f*g - d*i) * inv
	r[1][1] = (a*i - c*g) * inv
	r[1][2] = (c*d - a*f) * inv
	r[2][0] = (d*h - e*g) * inv
	r[2][1] = (b*g - a*h) * inv
	r[2][2] = (a*e - b*d) * inv

	t := Vec3{m[0][3], m[1][3], m[2][3]}
	r[0][3] = -(r[0][0]*t.X + r[0][1]*t.Y + r[0][2]*t.Z)
	r[1][3] = -(r[1][0]*t.X + r[1][1]*t.Y + r[1][2]*t.Z)
	r[2][3] = -(r[2][0]*t.X + r[2][1]*t.Y + r[2][2]*t.Z)
	r[3][3] = 1
	return r, nil
}
