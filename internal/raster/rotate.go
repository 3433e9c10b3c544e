package raster

// Rotation is a clockwise display rotation in degrees.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// ParseRotation accepts 0, 90, 180 or 270.
func ParseRotation(deg int) (Rotation, bool) {
	switch deg {
	case 0, 90, 180, 270:
		return Rotation(deg), true
	}
	return Rotate0, false
}

// Swaps reports whether the rotation exchanges width and height.
func (r Rotation) Swaps() bool { return r == Rotate90 || r == Rotate270 }

// Rotated writes b rotated clockwise by rot into dst and returns it. dst is
// reallocated when nil or of the wrong size, so callers can reuse it across frames.
func (b *Buffer) Rotated(rot Rotation, dst *Buffer) *Buffer {
	w, h := b.width, b.height
	dw, dh := w, h
	if rot.Swaps() {
		dw, dh = h, w
	}
	if dst == nil || dst.width != dw || dst.height != dh {
		dst = New(dw, dh)
	}

	switch rot {
	case Rotate90:
		// (x, y) → (h-1-y, x)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				si := b.offset(x, y)
				di := dst.offset(h-1-y, x)
				copy(dst.pix[di:di+4], b.pix[si:si+4])
			}
		}
	case Rotate180:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				si := b.offset(x, y)
				di := dst.offset(w-1-x, h-1-y)
				copy(dst.pix[di:di+4], b.pix[si:si+4])
			}
		}
	case Rotate270:
		// (x, y) → (y, w-1-x)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				si := b.offset(x, y)
				di := dst.offset(y, w-1-x)
				copy(dst.pix[di:di+4], b.pix[si:si+4])
			}
		}
	default:
		copy(dst.pix, b.pix)
	}
	return dst
}

// UnrotatePoint maps a point on the rotated (physical) display back to
// logical buffer coordinates of a w×h logical buffer.
func (r Rotation) UnrotatePoint(px, py, w, h int) (int, int) {
	switch r {
	case Rotate90:
		return py, h - 1 - px
	case Rotate180:
		return w - 1 - px, h - 1 - py
	case Rotate270:
		return w - 1 - py, px
	}
	return px, py
}
