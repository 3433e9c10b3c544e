package mathutil

import "math"

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

// WrapAngle maps a radian angle into (−π, π].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, Tau)
	if a <= 0 {
		a += Tau
	}
	return a - math.Pi
}

// AngleDist returns the shortest angular distance between two radian angles, in [0, π].
func AngleDist(a, b float64) float64 {
	return math.Abs(WrapAngle(a - b))
}
