package raster

// BoxBlur is a separable sliding-window blur, O(W·H) regardless of radius.
// Edges clamp by repeating the border pixel.
func (b *Buffer) BoxBlur(radius int) {
	if radius <= 0 {
		return
	}
	w, h := b.width, b.height
	r := radius
	div := uint32(2*r + 1)

	if len(b.blur) != len(b.pix) {
		b.blur = make([]uint8, len(b.pix))
	}
	tmp := b.blur

	// horizontal pass: pix → tmp
	for y := 0; y < h; y++ {
		row := y * w
		var sr, sg, sb uint32
		for i := -r; i <= r; i++ {
			idx := (row + clampInt(i, 0, w-1)) * 4
			sr += uint32(b.pix[idx+3])
			sg += uint32(b.pix[idx+2])
			sb += uint32(b.pix[idx+1])
		}
		for x := 0; x < w; x++ {
			if x > 0 {
				li := (row + clampInt(x-1-r, 0, w-1)) * 4
				ei := (row + clampInt(x+r, 0, w-1)) * 4
				sr = sr - uint32(b.pix[li+3]) + uint32(b.pix[ei+3])
				sg = sg - uint32(b.pix[li+2]) + uint32(b.pix[ei+2])
				sb = sb - uint32(b.pix[li+1]) + uint32(b.pix[ei+1])
			}
			idx := (row + x) * 4
			tmp[idx] = 255
			tmp[idx+3] = uint8(sr / div)
			tmp[idx+2] = uint8(sg / div)
			tmp[idx+1] = uint8(sb / div)
		}
	}

	// vertical pass: tmp → pix
	for x := 0; x < w; x++ {
		var sr, sg, sb uint32
		for i := -r; i <= r; i++ {
			idx := (clampInt(i, 0, h-1)*w + x) * 4
			sr += uint32(tmp[idx+3])
			sg += uint32(tmp[idx+2])
			sb += uint32(tmp[idx+1])
		}
		for y := 0; y < h; y++ {
			if y > 0 {
				li := (clampInt(y-1-r, 0, h-1)*w + x) * 4
				ei := (clampInt(y+r, 0, h-1)*w + x) * 4
				sr = sr - uint32(tmp[li+3]) + uint32(tmp[ei+3])
				sg = sg - uint32(tmp[li+2]) + uint32(tmp[ei+2])
				sb = sb - uint32(tmp[li+1]) + uint32(tmp[ei+1])
			}
			idx := (y*w + x) * 4
			b.pix[idx] = 255
			b.pix[idx+3] = uint8(sr / div)
			b.pix[idx+2] = uint8(sg / div)
			b.pix[idx+1] = uint8(sb / div)
		}
	}
}

// Bloom extracts pixels whose mean channel exceeds threshold, blurs them twice
// at radius and adds them back scaled by intensity (capped at 2×).
func (b *Buffer) Bloom(threshold uint8, radius int, intensity float64) {
	if b.bright == nil || b.bright.width != b.width || b.bright.height != b.height {
		b.bright = New(b.width, b.height)
	}
	bright := b.bright
	bright.ClearRGBA(0, 0, 0, 0)

	t := uint16(threshold)
	for i := 0; i < len(b.pix); i += 4 {
		pr, pg, pb := b.pix[i+3], b.pix[i+2], b.pix[i+1]
		luma := (uint16(pr) + uint16(pg) + uint16(pb)) / 3
		if luma > t {
			bright.pix[i] = 255
			bright.pix[i+3] = pr
			bright.pix[i+2] = pg
			bright.pix[i+1] = pb
		}
	}

	// two box passes approximate a gaussian
	bright.BoxBlur(radius)
	bright.BoxBlur(radius)

	s := intensity * 256
	if s > 512 {
		s = 512
	}
	if s <= 0 || s != s {
		return
	}
	scale := uint32(s)
	for i := 0; i < len(b.pix); i += 4 {
		b.pix[i+3] = addSat(b.pix[i+3], sat8(uint32(bright.pix[i+3])*scale>>8))
		b.pix[i+2] = addSat(b.pix[i+2], sat8(uint32(bright.pix[i+2])*scale>>8))
		b.pix[i+1] = addSat(b.pix[i+1], sat8(uint32(bright.pix[i+1])*scale>>8))
	}
}

func sat8(v uint32) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
