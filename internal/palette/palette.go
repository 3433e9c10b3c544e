// Package palette builds the colour ramps shared by the effects.
package palette

import (
	"math"

	"wallfacer/internal/raster"
)

// HSV converts hue in degrees (any range, wrapped), saturation and value in
// [0, 1] to an RGB color.
func HSV(h, s, v float64) raster.RGB {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h != h {
		h = 0
	}
	c := v * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	m := v - c

	var r, g, b float64
	switch int(hp) {
	case 0:
		r, g, b = c, x, 0
	case 1:
		r, g, b = x, c, 0
	case 2:
		r, g, b = 0, c, x
	case 3:
		r, g, b = 0, x, c
	case 4:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return raster.RGB{R: raster.Clamp255((r + m) * 255), G: raster.Clamp255((g + m) * 255), B: raster.Clamp255((b + m) * 255)}
}

// Lerp blends a→b by t clamped to [0, 1].
func Lerp(a, b raster.RGB, t float64) raster.RGB {
	t = min(max(t, 0), 1)
	return raster.RGB{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}

// Scale multiplies each channel by f, saturating.
func Scale(c raster.RGB, f float64) raster.RGB {
	return raster.RGB{R: raster.Clamp255(float64(c.R) * f), G: raster.Clamp255(float64(c.G) * f), B: raster.Clamp255(float64(c.B) * f)}
}

// Gray is an RGB with all channels v.
func Gray(v uint8) raster.RGB { return raster.RGB{R: v, G: v, B: v} }

// Rainbow is n hues around the wheel at saturation 0.8, value 0.9.
func Rainbow(n int) []raster.RGB {
	return Hues(n, 0.8, 0.9)
}

// Hues is n evenly spaced hues at fixed saturation and value.
func Hues(n int, s, v float64) []raster.RGB {
	p := make([]raster.RGB, n)
	for i := range p {
		p[i] = HSV(float64(i)/float64(n)*360, s, v)
	}
	return p
}

// Fire is the 256-entry black → red → yellow → white ramp.
func Fire() []raster.RGB {
	p := make([]raster.RGB, 256)
	for i := range p {
		t := float64(i) / 255
		r := min(t*3, 1)
		g := min(max((t-0.33)*3, 0), 1)
		b := min(max((t-0.66)*3, 0), 1)
		p[i] = raster.RGB{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255)}
	}
	return p
}
