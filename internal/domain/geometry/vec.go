// Package geometry provides the 3-D vector and homogeneous-transform math
// used to place products inside an IFC model's placement-frame hierarchy.
package geometry

import (
	"errors"
	"math"
)

// Eps is the tolerance below which a length or determinant is treated as zero.
const Eps = 1e-9

// ErrDegenerateVector is returned when a vector is too short to normalize.
var ErrDegenerateVector = errors.New("cannot normalize a zero-length vector")

// Vec3 is a point or direction in 3-D space.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product v x w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// XYNorm returns the length of v projected onto the XY plane.
func (v Vec3) XYNorm() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns v scaled to unit length, or ErrDegenerateVector when
// the length of v is below Eps.
func Normalize(v Vec3) (Vec3, error) {
	n := v.Norm()
	if n < Eps {
		return Vec3{}, ErrDegenerateVector
	}
	return v.Scale(1 / n), nil
}
