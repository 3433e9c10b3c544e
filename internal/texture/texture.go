// Package texture holds RGBA and palette-indexed textures, their mip chains,
// procedural generators, and the on-disk texture loader and cache.
package texture

import (
	"fmt"
	"math"
)

// Texture is an RGBA texture, 4 bytes per texel, row-major.
type Texture struct {
	W, H int
	Pix  []uint8
}

// New returns a zeroed w×h texture. Non-positive sizes become 1.
func New(w, h int) *Texture {
	w, h = max(w, 1), max(h, 1)
	return &Texture{W: w, H: h, Pix: make([]uint8, w*h*4)}
}

// FromRGBA wraps pix, which must hold exactly 4·w·h bytes.
func FromRGBA(w, h int, pix []uint8) (*Texture, error) {
	if w <= 0 || h <= 0 || len(pix) != w*h*4 {
		return nil, fmt.Errorf("texture: %dx%d needs %d bytes, got %d", w, h, max(w*h*4, 0), len(pix))
	}
	return &Texture{W: w, H: h, Pix: pix}, nil
}

// IsPow2 reports whether both dimensions are powers of two.
func (t *Texture) IsPow2() bool {
	return isPow2(t.W) && isPow2(t.H)
}

func isPow2(n int) bool { return n > 0 && n&(n-1) == 0 }

// SetPixel writes one texel; out of range is ignored.
func (t *Texture) SetPixel(x, y int, r, g, b, a uint8) {
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return
	}
	i := (y*t.W + x) * 4
	t.Pix[i] = r
	t.Pix[i+1] = g
	t.Pix[i+2] = b
	t.Pix[i+3] = a
}

// SampleTexel is a nearest sample in texel space wrapped by bitmask.
// Dimensions must be powers of two; negative coordinates wrap.
func (t *Texture) SampleTexel(tx, ty int) (r, g, b uint8) {
	x := uint(tx) & uint(t.W-1)
	y := uint(ty) & uint(t.H-1)
	i := (int(y)*t.W + int(x)) * 4
	return t.Pix[i], t.Pix[i+1], t.Pix[i+2]
}

// wrapIndex maps a normalized coordinate to a texel index with euclidean wrap.
func wrapIndex(u float64, n int) int {
	u -= math.Floor(u)
	if u != u {
		return 0
	}
	i := int(u * float64(n))
	if i >= n || i < 0 {
		return 0
	}
	return i
}

// Sample is a nearest sample of normalized (u, v), wrapping in both axes.
func (t *Texture) Sample(u, v float64) (r, g, b uint8) {
	i := (wrapIndex(v, t.H)*t.W + wrapIndex(u, t.W)) * 4
	return t.Pix[i], t.Pix[i+1], t.Pix[i+2]
}

// SampleRGBA is Sample including alpha.
func (t *Texture) SampleRGBA(u, v float64) (r, g, b, a uint8) {
	i := (wrapIndex(v, t.H)*t.W + wrapIndex(u, t.W)) * 4
	return t.Pix[i], t.Pix[i+1], t.Pix[i+2], t.Pix[i+3]
}

// SampleBilinear filters the four texels around (u, v), wrapping at the edges.
func (t *Texture) SampleBilinear(u, v float64) (r, g, b uint8) {
	fu := (u - math.Floor(u)) * float64(t.W)
	fv := (v - math.Floor(v)) * float64(t.H)
	if fu != fu || fv != fv {
		return t.Sample(0, 0)
	}

	x0 := int(fu) % t.W
	y0 := int(fv) % t.H
	x1 := (x0 + 1) % t.W
	y1 := (y0 + 1) % t.H
	fx := fu - math.Floor(fu)
	fy := fv - math.Floor(fv)

	i00 := (y0*t.W + x0) * 4
	i10 := (y0*t.W + x1) * 4
	i01 := (y1*t.W + x0) * 4
	i11 := (y1*t.W + x1) * 4

	ch := func(c int) uint8 {
		top := lerp(t.Pix[i00+c], t.Pix[i10+c], fx)
		bot := lerp(t.Pix[i01+c], t.Pix[i11+c], fx)
		v := top + (bot-top)*fy
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return ch(0), ch(1), ch(2)
}

func lerp(a, b uint8, t float64) float64 {
	return float64(a) + (float64(b)-float64(a))*t
}
