package mathutil

import "math"

// Mat3 is a row-major 3×3 rotation.
type Mat3 [9]float64

func Mat3Identity() Mat3 { return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1} }

func (m Mat3) MulVec3(v Vec3) Vec3 {
	var out Vec3
	for r := 0; r < 3; r++ {
		out[r] = m[r*3]*v[0] + m[r*3+1]*v[1] + m[r*3+2]*v[2]
	}
	return out
}

// RotX, RotY and RotZ turn by a radians about one axis, matching Vec3.RotateX and friends.
func RotX(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{1, 0, 0, 0, c, -s, 0, s, c}
}

func RotY(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{c, 0, s, 0, 1, 0, -s, 0, c}
}

func RotZ(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{c, -s, 0, s, c, 0, 0, 0, 1}
}

// Mat4 is a row-major affine transform: a rotation followed by a translation.
type Mat4 [16]float64

// FromMat3Translation places r in the upper-left block and t in the last column.
func FromMat3Translation(r Mat3, t Vec3) Mat4 {
	var m Mat4
	for row := 0; row < 3; row++ {
		copy(m[row*4:row*4+3], r[row*3:row*3+3])
		m[row*4+3] = t[row]
	}
	m[15] = 1
	return m
}

// MulPoint transforms v as a point (w = 1).
func (m Mat4) MulPoint(v Vec3) Vec3 {
	var out Vec3
	for r := 0; r < 3; r++ {
		out[r] = m[r*4]*v[0] + m[r*4+1]*v[1] + m[r*4+2]*v[2] + m[r*4+3]
	}
	return out
}
