package texture

import (
	"math"

	"wallfacer/internal/raster"
)

// Checkerboard alternates c1 and c2 in tile×tile cells.
func Checkerboard(size, tile int, c1, c2 raster.RGB) *Texture {
	t := New(size, size)
	tile = max(tile, 1)
	for y := 0; y < t.H; y++ {
		for x := 0; x < t.W; x++ {
			c := c2
			if (x/tile+y/tile)%2 == 0 {
				c = c1
			}
			t.SetPixel(x, y, c.R, c.G, c.B, 255)
		}
	}
	return t
}

// XOR is the grey x^y pattern.
func XOR(size int) *Texture {
	t := New(size, size)
	for y := 0; y < t.H; y++ {
		for x := 0; x < t.W; x++ {
			v := uint8(x ^ y)
			t.SetPixel(x, y, v, v, v, 255)
		}
	}
	return t
}

// Plasma sums four sine fields that tile over size and maps them through pal.
func Plasma(size int, pal []raster.RGB) *Texture {
	t := New(size, size)
	if len(pal) == 0 {
		return t
	}
	scale := 2 * math.Pi / float64(t.W)
	for y := 0; y < t.H; y++ {
		for x := 0; x < t.W; x++ {
			fx := float64(x) * scale
			fy := float64(y) * scale
			v := math.Sin(fx*2) + math.Sin(fy*3) + math.Sin((fx+fy)*1.5) +
				math.Sin(math.Sqrt(fx*fx+fy*fy)*2)
			sum := (v + 4) / 8
			i := min(int(sum*float64(len(pal)-1)), len(pal)-1)
			c := pal[max(i, 0)]
			t.SetPixel(x, y, c.R, c.G, c.B, 255)
		}
	}
	return t
}

// BrickWall is a 256×256 grey brick pattern: 64×32 bricks in offset rows,
// 4 px mortar, per-brick brightness and darker brick edges.
func BrickWall() *Texture {
	const size, bw, bh = 256, 64, 32
	t := New(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			row := y / bh
			off := 0
			if row%2 == 1 {
				off = bw / 2
			}
			bx := (x + off) % bw
			by := y % bh

			v := 40
			if bx >= 4 && by >= 4 {
				id := (row*17 + ((x+off)/bw)*31) & 0xFF
				base := 130 + id&0x3F
				cx := min(absInt(bx-bw/2), bw)
				cy := min(absInt(by-bh/2), bh)
				v = min(base-min(cx/8+cy/4, base), 255)
			}
			t.SetPixel(x, y, uint8(v), uint8(v), uint8(v), 255)
		}
	}
	return t
}

// RaycasterBrick is a 64×64 warm brick pattern with 16×8 bricks and 1 px mortar.
func RaycasterBrick() *Texture {
	const size, bw, bh = 64, 16, 8
	t := New(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			row := y / bh
			off := 0
			if row%2 == 1 {
				off = bw / 2
			}
			bx := (x + off) % bw
			by := y % bh
			if bx < 1 || by < 1 {
				t.SetPixel(x, y, 40, 38, 35, 255)
				continue
			}
			id := (row*13 + ((x+off)/bw)*29) & 0xFF
			v := min(130+id&0x3F, 255)
			t.SetPixel(x, y, uint8(v), uint8(float64(v)*0.75), uint8(float64(v)*0.55), 255)
		}
	}
	return t
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
