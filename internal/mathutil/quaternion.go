package mathutil

import "math"

// Quat is a rotation quaternion stored as (x, y, z, w).
type Quat [4]float64

// AxisAngle builds a rotation of angle radians around axis.
func AxisAngle(axis Vec3, angle float64) Quat {
	a := axis.Normalize()
	s, c := math.Sincos(angle / 2)
	return Quat{a[0] * s, a[1] * s, a[2] * s, c}
}

// EulerToQuat composes rotations about X, then Y, then Z.
func EulerToQuat(rx, ry, rz float64) Quat {
	qx := AxisAngle(Vec3{1, 0, 0}, rx)
	qy := AxisAngle(Vec3{0, 1, 0}, ry)
	qz := AxisAngle(Vec3{0, 0, 1}, rz)
	return qz.Mul(qy).Mul(qx)
}

// Mul is the Hamilton product: the result applies r first, then q.
func (q Quat) Mul(r Quat) Quat {
	qv, rv := Vec3{q[0], q[1], q[2]}, Vec3{r[0], r[1], r[2]}
	v := rv.Scale(q[3]).Add(qv.Scale(r[3])).Add(qv.Cross(rv))
	return Quat{v[0], v[1], v[2], q[3]*r[3] - qv.Dot(rv)}
}

// Normalize returns q at unit length; a zero quaternion becomes the identity.
func (q Quat) Normalize() Quat {
	l := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if l < 1e-12 {
		return Quat{0, 0, 0, 1}
	}
	return Quat{q[0] / l, q[1] / l, q[2] / l, q[3] / l}
}

// QuatToMat3 expands a unit quaternion into a rotation matrix.
func QuatToMat3(q Quat) Mat3 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	return Mat3{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y),
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x),
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y),
	}
}
