package noise

import "math"

// Hash maps an integer lattice point to [0, 1).
func Hash(x, y, z int32, seed uint32) float64 {
	h := (seed + uint32(x)) * 374761393
	h = (h + uint32(y)) * 668265263
	h = (h + uint32(z)) * 2147483647
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h&0x7fff) / float64(0x8000)
}

// Hash2 is Hash with z = 0.
func Hash2(x, y int32, seed uint32) float64 { return Hash(x, y, 0, seed) }

// Smoothstep is 3t² − 2t³.
func Smoothstep(t float64) float64 { return t * t * (3 - 2*t) }

// SmoothstepQuintic is 6t⁵ − 15t⁴ + 10t³.
func SmoothstepQuintic(t float64) float64 { return t * t * t * (t*(t*6-15) + 10) }

func lattice(v float64) (int32, float64) {
	f := math.Floor(v)
	return int32(f), Smoothstep(v - f)
}

// Value3 is trilinear value noise in [0, 1].
func Value3(x, y, z float64, seed uint32) float64 {
	ix, fx := lattice(x)
	iy, fy := lattice(y)
	iz, fz := lattice(z)

	c000 := Hash(ix, iy, iz, seed)
	c100 := Hash(ix+1, iy, iz, seed)
	c010 := Hash(ix, iy+1, iz, seed)
	c110 := Hash(ix+1, iy+1, iz, seed)
	c001 := Hash(ix, iy, iz+1, seed)
	c101 := Hash(ix+1, iy, iz+1, seed)
	c011 := Hash(ix, iy+1, iz+1, seed)
	c111 := Hash(ix+1, iy+1, iz+1, seed)

	x0 := c000 + (c100-c000)*fx
	x1 := c010 + (c110-c010)*fx
	x2 := c001 + (c101-c001)*fx
	x3 := c011 + (c111-c011)*fx
	y0 := x0 + (x1-x0)*fy
	y1 := x2 + (x3-x2)*fy
	return y0 + (y1-y0)*fz
}

// Value2 is bilinear value noise in [0, 1].
func Value2(x, y float64, seed uint32) float64 {
	ix, fx := lattice(x)
	iy, fy := lattice(y)

	c00 := Hash2(ix, iy, seed)
	c10 := Hash2(ix+1, iy, seed)
	c01 := Hash2(ix, iy+1, seed)
	c11 := Hash2(ix+1, iy+1, seed)

	x0 := c00 + (c10-c00)*fx
	x1 := c01 + (c11-c01)*fx
	return x0 + (x1-x0)*fy
}

// Each octave doubles the frequency and halves the amplitude, starting at 0.5.

// FBM3 sums octaves of Value3.
func FBM3(x, y, z float64, octaves int, seed uint32) float64 {
	v, amp, freq := 0.0, 0.5, 1.0
	for i := 0; i < octaves; i++ {
		v += amp * Value3(x*freq, y*freq, z*freq, seed)
		amp *= 0.5
		freq *= 2
	}
	return v
}

// FBM2 sums octaves of Value2.
func FBM2(x, y float64, octaves int, seed uint32) float64 {
	v, amp, freq := 0.0, 0.5, 1.0
	for i := 0; i < octaves; i++ {
		v += amp * Value2(x*freq, y*freq, seed)
		amp *= 0.5
		freq *= 2
	}
	return v
}

// Turbulence3 sums |2·noise − 1| octaves for sharper, billowy patterns.
func Turbulence3(x, y, z float64, octaves int, seed uint32) float64 {
	v, amp, freq := 0.0, 0.5, 1.0
	for i := 0; i < octaves; i++ {
		v += amp * math.Abs(Value3(x*freq, y*freq, z*freq, seed)-0.5) * 2
		amp *= 0.5
		freq *= 2
	}
	return v
}

func Turbulence2(x, y float64, octaves int, seed uint32) float64 {
	v, amp, freq := 0.0, 0.5, 1.0
	for i := 0; i < octaves; i++ {
		v += amp * math.Abs(Value2(x*freq, y*freq, seed)-0.5) * 2
		amp *= 0.5
		freq *= 2
	}
	return v
}

// Ridged3 is ridged multifractal noise: each octave's signal (1 − |2n − 1|)²
// is weighted by the previous one.
func Ridged3(x, y, z float64, octaves int, seed uint32) float64 {
	v, amp, freq, weight := 0.0, 0.5, 1.0, 1.0
	for i := 0; i < octaves; i++ {
		s := 1 - math.Abs(Value3(x*freq, y*freq, z*freq, seed)-0.5)*2
		s = s * s * weight
		weight = min(max(s, 0), 1)
		v += amp * s
		amp *= 0.5
		freq *= 2
	}
	return v
}

func Ridged2(x, y float64, octaves int, seed uint32) float64 {
	v, amp, freq, weight := 0.0, 0.5, 1.0, 1.0
	for i := 0; i < octaves; i++ {
		s := 1 - math.Abs(Value2(x*freq, y*freq, seed)-0.5)*2
		s = s * s * weight
		weight = min(max(s, 0), 1)
		v += amp * s
		amp *= 0.5
		freq *= 2
	}
	return v
}
