package raster

import (
	"math"

	"wallfacer/internal/mathutil"
)

// FillTriangleDepth rasterizes one flat-shaded triangle against the depth plane.
// Vertices are screen-space (x, y) with view depth in z; smaller z is closer.
// The face color is scaled by lc's shade for normal and tone mapped. A nil lc
// draws the color unshaded. Buffers without a depth plane are left untouched.
//
// This is the hot path for depth-tested meshes: nothing in the pixel loop allocates.
func (b *Buffer) FillTriangleDepth(v0, v1, v2, normal mathutil.Vec3, r, g, bl uint8, lc *LightConfig) {
	if b.depth == nil {
		return
	}
	x0, y0, z0 := v0[0], v0[1], v0[2]
	x1, y1, z1 := v1[0], v1[1], v1[2]
	x2, y2, z2 := v2[0], v2[1], v2[2]
	for _, c := range [...]float64{x0, y0, z0, x1, y1, z1, x2, y2, z2} {
		if !finite(c) {
			return
		}
	}

	cr, cg, cb := r, g, bl
	if lc != nil {
		cr, cg, cb = lc.Shade(normal, r, g, bl)
	}

	// Bounding box
	minX := int(math.Max(math.Floor(math.Min(math.Min(x0, x1), x2)), 0))
	maxX := int(math.Min(math.Ceil(math.Max(math.Max(x0, x1), x2)), float64(b.width-1)))
	minY := int(math.Max(math.Floor(math.Min(math.Min(y0, y1), y2)), 0))
	maxY := int(math.Min(math.Ceil(math.Max(math.Max(y0, y1), y2)), float64(b.height-1)))
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * b.width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zi := rowOff + sx
			if z >= b.depth[zi] {
				continue
			}
			b.depth[zi] = z

			i := zi * 4
			writePixel(b.pix[i:i+4], cr, cg, cb)
		}
	}
}
