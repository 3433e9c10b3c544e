package raster

import "math"

// clipSpan orders and clips [x0, x1] to the buffer width. ok is false when empty.
func (b *Buffer) clipSpan(x0, x1 int) (int, int, bool) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 >= b.width {
		x1 = b.width - 1
	}
	return x0, x1, x0 <= x1
}

// HLine draws a horizontal run from x0 to x1 inclusive.
func (b *Buffer) HLine(x0, x1, y int, r, g, bl uint8) {
	if y < 0 || y >= b.height {
		return
	}
	x0, x1, ok := b.clipSpan(x0, x1)
	if !ok {
		return
	}
	i := b.offset(x0, y)
	for x := x0; x <= x1; x++ {
		writePixel(b.pix[i:i+4], r, g, bl)
		i += 4
	}
}

// HLineBlend draws a horizontal run with alpha blending.
func (b *Buffer) HLineBlend(x0, x1, y int, r, g, bl, a uint8) {
	if y < 0 || y >= b.height {
		return
	}
	x0, x1, ok := b.clipSpan(x0, x1)
	if !ok {
		return
	}
	alpha := uint16(a)
	i := b.offset(x0, y)
	for x := x0; x <= x1; x++ {
		b.pix[i] = 255
		b.pix[i+1] = blendChannel(bl, b.pix[i+1], alpha)
		b.pix[i+2] = blendChannel(g, b.pix[i+2], alpha)
		b.pix[i+3] = blendChannel(r, b.pix[i+3], alpha)
		i += 4
	}
}

// HLineAdditive draws a horizontal run with saturating add.
func (b *Buffer) HLineAdditive(x0, x1, y int, r, g, bl uint8) {
	if y < 0 || y >= b.height {
		return
	}
	x0, x1, ok := b.clipSpan(x0, x1)
	if !ok {
		return
	}
	i := b.offset(x0, y)
	for x := x0; x <= x1; x++ {
		b.pix[i+1] = addSat(b.pix[i+1], bl)
		b.pix[i+2] = addSat(b.pix[i+2], g)
		b.pix[i+3] = addSat(b.pix[i+3], r)
		i += 4
	}
}

func (b *Buffer) clipVSpan(y0, y1 int) (int, int, bool) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 >= b.height {
		y1 = b.height - 1
	}
	return y0, y1, y0 <= y1
}

// VLine draws a vertical run from y0 to y1 inclusive.
func (b *Buffer) VLine(x, y0, y1 int, r, g, bl uint8) {
	if x < 0 || x >= b.width {
		return
	}
	y0, y1, ok := b.clipVSpan(y0, y1)
	if !ok {
		return
	}
	stride := b.width * 4
	i := b.offset(x, y0)
	for y := y0; y <= y1; y++ {
		writePixel(b.pix[i:i+4], r, g, bl)
		i += stride
	}
}

// VLineBlend draws a vertical run with alpha blending.
func (b *Buffer) VLineBlend(x, y0, y1 int, r, g, bl, a uint8) {
	if x < 0 || x >= b.width {
		return
	}
	y0, y1, ok := b.clipVSpan(y0, y1)
	if !ok {
		return
	}
	for y := y0; y <= y1; y++ {
		b.BlendPixel(x, y, r, g, bl, a)
	}
}

// VLineAdditive draws a vertical run with saturating add.
func (b *Buffer) VLineAdditive(x, y0, y1 int, r, g, bl uint8) {
	if x < 0 || x >= b.width {
		return
	}
	y0, y1, ok := b.clipVSpan(y0, y1)
	if !ok {
		return
	}
	for y := y0; y <= y1; y++ {
		b.AddPixel(x, y, r, g, bl)
	}
}

// Line draws a Bresenham line after clipping it to the buffer.
func (b *Buffer) Line(x0, y0, x1, y1 int, r, g, bl uint8) {
	cx0, cy0, cx1, cy1, ok := b.clipLine(x0, y0, x1, y1)
	if !ok {
		return
	}

	dx := absInt(cx1 - cx0)
	dy := -absInt(cy1 - cy0)
	sx, sy := 1, 1
	if cx0 > cx1 {
		sx = -1
	}
	if cy0 > cy1 {
		sy = -1
	}
	err := dx + dy
	x, y := cx0, cy0
	for {
		i := b.offset(x, y)
		writePixel(b.pix[i:i+4], r, g, bl)
		if x == cx1 && y == cy1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

const (
	outInside = 0
	outLeft   = 1
	outRight  = 2
	outBottom = 4
	outTop    = 8

	// a valid segment converges in at most four clips
	maxClipIterations = 16
)

// clipLine is Cohen–Sutherland clipping against [0,W)×[0,H).
func (b *Buffer) clipLine(x0, y0, x1, y1 int) (int, int, int, int, bool) {
	w, h := b.width, b.height
	outcode := func(x, y int) int {
		code := outInside
		if x < 0 {
			code |= outLeft
		} else if x >= w {
			code |= outRight
		}
		if y < 0 {
			code |= outTop
		} else if y >= h {
			code |= outBottom
		}
		return code
	}

	c0 := outcode(x0, y0)
	c1 := outcode(x1, y1)
	for i := 0; i < maxClipIterations; i++ {
		if c0|c1 == 0 {
			return x0, y0, x1, y1, true
		}
		if c0&c1 != 0 {
			return 0, 0, 0, 0, false
		}

		out := c0
		if out == 0 {
			out = c1
		}
		dx := x1 - x0
		dy := y1 - y0
		var x, y int
		switch {
		case out&outBottom != 0:
			if dy == 0 {
				return 0, 0, 0, 0, false
			}
			x = x0 + dx*(h-1-y0)/dy
			y = h - 1
		case out&outTop != 0:
			if dy == 0 {
				return 0, 0, 0, 0, false
			}
			x = x0 + dx*(0-y0)/dy
			y = 0
		case out&outRight != 0:
			if dx == 0 {
				return 0, 0, 0, 0, false
			}
			y = y0 + dy*(w-1-x0)/dx
			x = w - 1
		default:
			if dx == 0 {
				return 0, 0, 0, 0, false
			}
			y = y0 + dy*(0-x0)/dx
			x = 0
		}

		if out == c0 {
			x0, y0 = x, y
			c0 = outcode(x0, y0)
		} else {
			x1, y1 = x, y
			c1 = outcode(x1, y1)
		}
	}
	return 0, 0, 0, 0, false
}

// LineAA draws an anti-aliased line (Xiaolin Wu) with alpha blending.
func (b *Buffer) LineAA(x0, y0, x1, y1 float64, r, g, bl uint8) {
	b.wuLine(x0, y0, x1, y1, func(x, y int, cov float64) {
		b.BlendPixel(x, y, r, g, bl, clamp255(cov*255))
	})
}

// LineAAAdditive draws an anti-aliased line (Xiaolin Wu) with additive blend.
func (b *Buffer) LineAAAdditive(x0, y0, x1, y1 float64, r, g, bl uint8) {
	b.wuLine(x0, y0, x1, y1, func(x, y int, cov float64) {
		b.AddPixel(x, y, scale8(r, cov), scale8(g, cov), scale8(bl, cov))
	})
}

// wuLine walks a Wu line and reports every covered pixel with its coverage.
func (b *Buffer) wuLine(x0, y0, x1, y1 float64, plot func(x, y int, cov float64)) {
	if !finite(x0) || !finite(y0) || !finite(x1) || !finite(y1) {
		return
	}
	// reject lines entirely outside with a margin so the walk stays bounded
	w, h := float64(b.width), float64(b.height)
	if (x0 < -1 && x1 < -1) || (y0 < -1 && y1 < -1) || (x0 > w && x1 > w) || (y0 > h && y1 > h) {
		return
	}

	steep := math.Abs(y1-y0) > math.Abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	put := func(x, y int, c float64) {
		if steep {
			plot(y, x, c)
		} else {
			plot(x, y, c)
		}
	}

	dx := x1 - x0
	dy := y1 - y0
	gradient := 1.0
	if math.Abs(dx) >= 0.001 {
		gradient = dy / dx
	}

	// first endpoint
	xend := math.Round(x0)
	yend := y0 + gradient*(xend-x0)
	xgap := 1 - fract(x0+0.5)
	xpx1 := int(xend)
	ypx1 := int(math.Floor(yend))
	f := fract(yend)
	put(xpx1, ypx1, (1-f)*xgap)
	put(xpx1, ypx1+1, f*xgap)
	intery := yend + gradient

	// second endpoint
	xend = math.Round(x1)
	yend = y1 + gradient*(xend-x1)
	xgap = fract(x1 + 0.5)
	xpx2 := int(xend)
	ypx2 := int(math.Floor(yend))
	f = fract(yend)
	put(xpx2, ypx2, (1-f)*xgap)
	put(xpx2, ypx2+1, f*xgap)

	// clamp the body walk to the buffer's major axis
	limit := b.width
	if steep {
		limit = b.height
	}
	start := xpx1 + 1
	if start < 0 {
		intery += gradient * float64(-start)
		start = 0
	}
	end := xpx2
	if end > limit {
		end = limit
	}
	for x := start; x < end; x++ {
		ip := math.Floor(intery)
		f := intery - ip
		put(x, int(ip), 1-f)
		put(x, int(ip)+1, f)
		intery += gradient
	}
}

func fract(v float64) float64 {
	return v - math.Floor(v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && math.Abs(v) < 1e9
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
