package mathutil

import "math"

// Vec2 is a 2-component vector for screen-space work.
type Vec2 [2]float64

func (a Vec2) Add(b Vec2) Vec2       { return Vec2{a[0] + b[0], a[1] + b[1]} }
func (a Vec2) Sub(b Vec2) Vec2       { return Vec2{a[0] - b[0], a[1] - b[1]} }
func (a Vec2) Neg() Vec2             { return Vec2{-a[0], -a[1]} }
func (a Vec2) Scale(s float64) Vec2  { return Vec2{a[0] * s, a[1] * s} }
func (a Vec2) Dot(b Vec2) float64    { return a[0]*b[0] + a[1]*b[1] }
func (a Vec2) Len() float64          { return math.Hypot(a[0], a[1]) }
func (a Vec2) Perp() Vec2            { return Vec2{-a[1], a[0]} }
func (a Vec2) DistSq(b Vec2) float64 { return a.Sub(b).Dot(a.Sub(b)) }

// Normalize returns the unit vector, or the zero vector for zero input.
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a[0] / l, a[1] / l}
}

// ApproxEq compares component-wise within eps.
func (a Vec2) ApproxEq(b Vec2, eps float64) bool {
	return math.Abs(a[0]-b[0]) < eps && math.Abs(a[1]-b[1]) < eps
}

// Rotate rotates counter-clockwise in a Y-up frame (clockwise on screen).
func (a Vec2) Rotate(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{a[0]*c - a[1]*s, a[0]*s + a[1]*c}
}
