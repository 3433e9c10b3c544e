package effect

import (
	"math"

	"wallfacer/internal/raster"
)

const fractalPalette = 256

// escape iterates z ← z² + c from z0 until |z| > 2 or maxIter. Orbits that
// revisit a saved point within 1e-7 are periodic and report maxIter. The saved
// point moves every check iterations, check doubling up to 256.
func escape(zr, zi, cr, ci float32, maxIter int) (iter int, mod2 float32) {
	zr2, zi2 := zr*zr, zi*zi
	savedR, savedI := zr, zi
	period, check := 0, 8
	for zr2+zi2 <= 4 && iter < maxIter {
		zi = 2*zr*zi + ci
		zr = zr2 - zi2 + cr
		zr2, zi2 = zr*zr, zi*zi
		iter++

		if abs32(zr-savedR) < 1e-7 && abs32(zi-savedI) < 1e-7 {
			return maxIter, zr2 + zi2
		}
		period++
		if period >= check {
			savedR, savedI = zr, zi
			period = 0
			check = min(check*2, 256)
		}
	}
	return iter, zr2 + zi2
}

// smoothIndex maps an escaped orbit to a palette slot: n + 1 − log₂(ln|z|).
func smoothIndex(iter int, mod2 float32, shift int) int {
	modulus := math.Sqrt(float64(mod2))
	smooth := float64(iter) + 1 - math.Log(math.Log(modulus))/math.Ln2
	return (max(int(smooth*4), 0) + shift) % fractalPalette
}

func writeFractal(pix []uint8, c raster.RGB) {
	pix[0], pix[1], pix[2], pix[3] = 255, c.B, c.G, c.R
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
