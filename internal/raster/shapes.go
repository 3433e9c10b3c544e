package raster

import "math"

// FillRect fills a w×h rectangle with its top-left corner at (x, y).
func (b *Buffer) FillRect(x, y, w, h int, r, g, bl uint8) {
	if w <= 0 || h <= 0 {
		return
	}
	y0, y1 := y, y+h-1
	if y0 < 0 {
		y0 = 0
	}
	if y1 >= b.height {
		y1 = b.height - 1
	}
	for row := y0; row <= y1; row++ {
		b.HLine(x, x+w-1, row, r, g, bl)
	}
}

// FillRectBlend fills a rectangle with alpha blending.
func (b *Buffer) FillRectBlend(x, y, w, h int, r, g, bl, a uint8) {
	if w <= 0 || h <= 0 {
		return
	}
	for row := y; row < y+h; row++ {
		if row < 0 || row >= b.height {
			continue
		}
		b.HLineBlend(x, x+w-1, row, r, g, bl, a)
	}
}

// circleRows is the inclusive row range of a circle clipped to [0, height).
func circleRows(cy, radius, height int) (int, int) {
	rf := float64(radius)
	y0 := math.Max(float64(cy)-rf, 0)
	y1 := math.Min(float64(cy)+rf, float64(height-1))
	return int(y0), int(y1)
}

// circleHalf is the rounded half-width of a circle dy rows from its centre,
// or -1 outside it. Widths are capped so huge radii stay in int range.
func circleHalf(radius, dy int) int {
	rf, df := float64(radius), float64(dy)
	d := rf*rf - df*df
	if d < 0 {
		return -1
	}
	return int(math.Min(math.Floor(math.Sqrt(d)+0.5), 1<<31))
}

// circleSpans reports one horizontal span per visible row of the circle.
// Only rows inside [0, height) are visited.
func circleSpans(cx, cy, radius, height int, span func(x0, x1, y int)) {
	y0, y1 := circleRows(cy, radius, height)
	for y := y0; y <= y1; y++ {
		if h := circleHalf(radius, y-cy); h >= 0 {
			span(cx-h, cx+h, y)
		}
	}
}

// circleVisible rejects circles that cannot touch the buffer.
func (b *Buffer) circleVisible(cx, cy, radius int) bool {
	x, y, r := float64(cx), float64(cy), float64(radius)
	return x+r >= 0 && x-r < float64(b.width) && y+r >= 0 && y-r < float64(b.height)
}

// FillCircle draws a filled circle using horizontal spans.
func (b *Buffer) FillCircle(cx, cy, radius int, r, g, bl uint8) {
	if radius <= 0 {
		if radius == 0 {
			b.SetPixel(cx, cy, r, g, bl)
		}
		return
	}
	if !b.circleVisible(cx, cy, radius) {
		return
	}
	circleSpans(cx, cy, radius, b.height, func(x0, x1, y int) {
		b.HLine(x0, x1, y, r, g, bl)
	})
}

// FillCircleBlend draws a filled circle with alpha blending.
func (b *Buffer) FillCircleBlend(cx, cy, radius int, r, g, bl, a uint8) {
	if radius <= 0 {
		if radius == 0 {
			b.BlendPixel(cx, cy, r, g, bl, a)
		}
		return
	}
	if !b.circleVisible(cx, cy, radius) {
		return
	}
	circleSpans(cx, cy, radius, b.height, func(x0, x1, y int) {
		b.HLineBlend(x0, x1, y, r, g, bl, a)
	})
}

// FillCircleAdditive draws a filled circle with saturating add.
func (b *Buffer) FillCircleAdditive(cx, cy, radius int, r, g, bl uint8) {
	if radius <= 0 {
		if radius == 0 {
			b.AddPixel(cx, cy, r, g, bl)
		}
		return
	}
	if !b.circleVisible(cx, cy, radius) {
		return
	}
	circleSpans(cx, cy, radius, b.height, func(x0, x1, y int) {
		b.HLineAdditive(x0, x1, y, r, g, bl)
	})
}

// DrawCircle draws a 1 px circle outline. Each row covers the run between
// its own half-width and the next row's outward, so the outline has no gaps.
func (b *Buffer) DrawCircle(cx, cy, radius int, r, g, bl uint8) {
	if radius < 0 || !b.circleVisible(cx, cy, radius) {
		return
	}
	y0, y1 := circleRows(cy, radius, b.height)
	for y := y0; y <= y1; y++ {
		dy := y - cy
		if dy < 0 {
			dy = -dy
		}
		outer := circleHalf(radius, dy)
		if outer < 0 {
			continue
		}
		inner := min(circleHalf(radius, dy+1)+1, outer)
		b.HLine(cx-outer, cx-inner, y, r, g, bl)
		b.HLine(cx+inner, cx+outer, y, r, g, bl)
	}
}

// FillCircleGradient adds a radial glow whose intensity is (1 − d/r)^falloff.
// falloff 1 is linear, 2 a natural glow, 0.5 a wide glow.
func (b *Buffer) FillCircleGradient(cx, cy, radius int, r, g, bl uint8, falloff float64) {
	if radius <= 0 || !b.circleVisible(cx, cy, radius) {
		return
	}
	rf := float64(radius)
	rsq := rf * rf

	y0, y1 := circleRows(cy, radius, b.height)
	x0 := int(math.Max(float64(cx)-rf, 0))
	x1 := int(math.Min(float64(cx)+rf, float64(b.width-1)))
	for y := y0; y <= y1; y++ {
		dy := float64(y - cy)
		dysq := dy * dy
		for x := x0; x <= x1; x++ {
			dx := float64(x - cx)
			d2 := dx*dx + dysq
			if d2 > rsq {
				continue
			}
			t := math.Pow(1-math.Sqrt(d2)/rf, falloff)
			i := b.offset(x, y)
			b.pix[i+1] = addSat(b.pix[i+1], uint8(float64(bl)*t))
			b.pix[i+2] = addSat(b.pix[i+2], uint8(float64(g)*t))
			b.pix[i+3] = addSat(b.pix[i+3], uint8(float64(r)*t))
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
