package raster

import "math"

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Buffer is a W×H 32-bit raster stored as flat bytes for cache locality.
// Each pixel is [A, B, G, R]; every write stores A = 0xFF.
type Buffer struct {
	width  int
	height int
	pix    []uint8   // len = W*H*4
	depth  []float64 // len = W*H when allocated, smaller z is closer

	// scratch space reused by post-processing and polygon fills
	bright *Buffer
	blur   []uint8
	xs     []int
	gxs    []gouraudHit
	verts  [][2]float64
}

// New allocates a zeroed buffer. Non-positive sizes are clamped to 1×1.
func New(w, h int) *Buffer {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Buffer{
		width:  w,
		height: h,
		pix:    make([]uint8, w*h*4),
	}
}

// NewWithDepth allocates a buffer with a depth plane cleared to +Inf.
func NewWithDepth(w, h int) *Buffer {
	b := New(w, h)
	b.depth = make([]float64, b.width*b.height)
	b.ClearDepth()
	return b
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }
func (b *Buffer) Stride() int { return b.width * 4 }

// Bytes returns the backing pixel bytes. The slice aliases the buffer.
func (b *Buffer) Bytes() []uint8 { return b.pix }

// HasDepth reports whether a depth plane is allocated.
func (b *Buffer) HasDepth() bool { return b.depth != nil }

// ClearDepth resets every depth sample to +Inf.
func (b *Buffer) ClearDepth() {
	inf := math.Inf(1)
	for i := range b.depth {
		b.depth[i] = inf
	}
}

// DepthAt returns the stored depth, or +Inf outside the buffer or without a depth plane.
func (b *Buffer) DepthAt(x, y int) float64 {
	if b.depth == nil || !b.inBounds(x, y) {
		return math.Inf(1)
	}
	return b.depth[y*b.width+x]
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Buffer) offset(x, y int) int {
	return (y*b.width + x) * 4
}

func writePixel(p []uint8, r, g, bl uint8) {
	p[0] = 255
	p[1] = bl
	p[2] = g
	p[3] = r
}

// blendChannel computes src·a + dst·(255−a) divided by 255 with rounding.
func blendChannel(src, dst uint8, a uint16) uint8 {
	v := uint16(src)*a + uint16(dst)*(255-a)
	return uint8((v + 1 + (v >> 8)) >> 8)
}

func addSat(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

// Clear fills the buffer with a solid color.
func (b *Buffer) Clear(r, g, bl uint8) {
	b.ClearRGBA(r, g, bl, 255)
}

// ClearRGBA fills the buffer with a color and custom alpha byte (scratch buffers).
func (b *Buffer) ClearRGBA(r, g, bl, a uint8) {
	if len(b.pix) < 4 {
		return
	}
	b.pix[0], b.pix[1], b.pix[2], b.pix[3] = a, bl, g, r
	// doubling copy fills in O(log n) calls
	for n := 4; n < len(b.pix); n *= 2 {
		copy(b.pix[n:], b.pix[:n])
	}
}

// SetPixel replaces one pixel.
func (b *Buffer) SetPixel(x, y int, r, g, bl uint8) {
	if !b.inBounds(x, y) {
		return
	}
	i := b.offset(x, y)
	writePixel(b.pix[i:i+4], r, g, bl)
}

// SetPixelRGBA replaces one pixel including its alpha byte.
func (b *Buffer) SetPixelRGBA(x, y int, r, g, bl, a uint8) {
	if !b.inBounds(x, y) {
		return
	}
	i := b.offset(x, y)
	b.pix[i], b.pix[i+1], b.pix[i+2], b.pix[i+3] = a, bl, g, r
}

// Pixel reads one pixel. ok is false outside the buffer.
func (b *Buffer) Pixel(x, y int) (r, g, bl uint8, ok bool) {
	if !b.inBounds(x, y) {
		return 0, 0, 0, false
	}
	i := b.offset(x, y)
	return b.pix[i+3], b.pix[i+2], b.pix[i+1], true
}

// PixelRGBA reads one pixel including its alpha byte.
func (b *Buffer) PixelRGBA(x, y int) (r, g, bl, a uint8, ok bool) {
	if !b.inBounds(x, y) {
		return 0, 0, 0, 0, false
	}
	i := b.offset(x, y)
	return b.pix[i+3], b.pix[i+2], b.pix[i+1], b.pix[i], true
}

// BlendPixel composites a color over the pixel with source alpha a.
func (b *Buffer) BlendPixel(x, y int, r, g, bl, a uint8) {
	if !b.inBounds(x, y) {
		return
	}
	i := b.offset(x, y)
	alpha := uint16(a)
	b.pix[i] = 255
	b.pix[i+1] = blendChannel(bl, b.pix[i+1], alpha)
	b.pix[i+2] = blendChannel(g, b.pix[i+2], alpha)
	b.pix[i+3] = blendChannel(r, b.pix[i+3], alpha)
}

// AddPixel adds a color channel-wise, saturating at 255.
func (b *Buffer) AddPixel(x, y int, r, g, bl uint8) {
	if !b.inBounds(x, y) {
		return
	}
	i := b.offset(x, y)
	b.pix[i+1] = addSat(b.pix[i+1], bl)
	b.pix[i+2] = addSat(b.pix[i+2], g)
	b.pix[i+3] = addSat(b.pix[i+3], r)
}

// SetPixelDepth writes the pixel only if z is closer than the stored depth.
func (b *Buffer) SetPixelDepth(x, y int, z float64, r, g, bl uint8) {
	if b.depth == nil || !b.inBounds(x, y) {
		return
	}
	di := y*b.width + x
	if z >= b.depth[di] {
		return
	}
	b.depth[di] = z
	i := di * 4
	writePixel(b.pix[i:i+4], r, g, bl)
}

// SplatPixel distributes a subpixel point across four pixels with bilinear
// weights, additively, scaled by intensity.
func (b *Buffer) SplatPixel(x, y float64, r, g, bl uint8, intensity float64) {
	fx0 := math.Floor(x)
	fy0 := math.Floor(y)
	if fx0 < -2 || fy0 < -2 || fx0 > float64(b.width) || fy0 > float64(b.height) {
		return
	}
	ix, iy := int(fx0), int(fy0)
	fx := x - fx0
	fy := y - fy0

	w00 := (1 - fx) * (1 - fy) * intensity
	w10 := fx * (1 - fy) * intensity
	w01 := (1 - fx) * fy * intensity
	w11 := fx * fy * intensity

	b.AddPixel(ix, iy, scale8(r, w00), scale8(g, w00), scale8(bl, w00))
	b.AddPixel(ix+1, iy, scale8(r, w10), scale8(g, w10), scale8(bl, w10))
	b.AddPixel(ix, iy+1, scale8(r, w01), scale8(g, w01), scale8(bl, w01))
	b.AddPixel(ix+1, iy+1, scale8(r, w11), scale8(g, w11), scale8(bl, w11))
}

// scale8 multiplies a channel by f, clamped to [0, 255].
func scale8(c uint8, f float64) uint8 {
	return clamp255(float64(c) * f)
}

// CopyFrom copies src into b when dimensions match.
func (b *Buffer) CopyFrom(src *Buffer) {
	if src.width != b.width || src.height != b.height {
		return
	}
	copy(b.pix, src.pix)
}

// Fade multiplies every RGB byte by num/256, leaving alpha untouched.
func (b *Buffer) Fade(num uint16) {
	n := uint32(num)
	for i := 0; i < len(b.pix); i += 4 {
		b.pix[i+1] = uint8(uint32(b.pix[i+1]) * n >> 8)
		b.pix[i+2] = uint8(uint32(b.pix[i+2]) * n >> 8)
		b.pix[i+3] = uint8(uint32(b.pix[i+3]) * n >> 8)
	}
}

// Dim halves the R, G and B bytes of every pixel. Alpha stays 0xFF.
func (b *Buffer) Dim() {
	for i := 0; i < len(b.pix); i += 4 {
		b.pix[i] = 255
		b.pix[i+1] >>= 1
		b.pix[i+2] >>= 1
		b.pix[i+3] >>= 1
	}
}

// Blit copies src onto b at (x, y), clipping to b.
func (b *Buffer) Blit(src *Buffer, x, y int) {
	for sy := 0; sy < src.height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= b.height {
			continue
		}
		x0, x1 := x, x+src.width
		sx0 := 0
		if x0 < 0 {
			sx0 = -x0
			x0 = 0
		}
		if x1 > b.width {
			x1 = b.width
		}
		if x0 >= x1 {
			continue
		}
		si := (sy*src.width + sx0) * 4
		di := b.offset(x0, dy)
		copy(b.pix[di:di+(x1-x0)*4], src.pix[si:si+(x1-x0)*4])
	}
}

func clamp255(v float64) uint8 {
	if v < 0 || v != v {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Clamp255 converts a float channel to a byte, clamping to [0, 255].
func Clamp255(v float64) uint8 { return clamp255(v) }
