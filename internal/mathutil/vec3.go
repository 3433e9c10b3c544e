// Package mathutil provides the small value-type vector and matrix kit used by
// the 3D effects: vectors, axis rotations, matrices, quaternions, perspective
// projection and triangle meshes.
package mathutil

import "math"

// Vec3 is a 3-component vector (value type, stack-allocated).
type Vec3 [3]float64

func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

func (a Vec3) X() float64 { return a[0] }
func (a Vec3) Y() float64 { return a[1] }
func (a Vec3) Z() float64 { return a[2] }

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (a Vec3) Neg() Vec3 {
	return Vec3{-a[0], -a[1], -a[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Normalize returns the unit vector, or the zero vector for near-zero input.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// ApproxEq compares component-wise within eps.
func (a Vec3) ApproxEq(b Vec3, eps float64) bool {
	return math.Abs(a[0]-b[0]) < eps && math.Abs(a[1]-b[1]) < eps && math.Abs(a[2]-b[2]) < eps
}

// RotateX rotates around the X axis. Angle in radians.
func (v Vec3) RotateX(a float64) Vec3 {
	s, c := math.Sincos(a)
	return Vec3{v[0], v[1]*c - v[2]*s, v[1]*s + v[2]*c}
}

// RotateY rotates around the Y axis.
func (v Vec3) RotateY(a float64) Vec3 {
	s, c := math.Sincos(a)
	return Vec3{v[0]*c + v[2]*s, v[1], -v[0]*s + v[2]*c}
}

// RotateZ rotates around the Z axis.
func (v Vec3) RotateZ(a float64) Vec3 {
	s, c := math.Sincos(a)
	return Vec3{v[0]*c - v[1]*s, v[0]*s + v[1]*c, v[2]}
}

// RotateXYZ applies X, then Y, then Z rotations.
func (v Vec3) RotateXYZ(rx, ry, rz float64) Vec3 {
	return v.RotateX(rx).RotateY(ry).RotateZ(rz)
}

// Lerp interpolates a→b by t. t is not clamped, so values outside [0,1] extrapolate.
func Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}
