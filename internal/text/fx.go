package text

import (
	"math"

	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
)

// Per-character effects are pure functions of the character index and time.
// Offsets return a pixel displacement, colors a color, visibilities a
// brightness in [0, 1].

// fract keeps the sign of v, so the result lies in (−1, 1).
func fract(v float64) float64 { return v - math.Trunc(v) }

// Wave is the classic sine scroller bob.
func Wave(i int, t, amplitude, frequency float64) (dx, dy int) {
	phase := float64(i)*0.5 + t*frequency
	return 0, int(math.Sin(phase) * amplitude)
}

// Wobble is a hash-driven jitter of up to amount pixels.
func Wobble(i int, t, amount float64) (dx, dy int) {
	s1 := math.Sin(float64(i)*127.1+t*43.7) * 43758.5453
	s2 := math.Sin(float64(i)*269.5+t*183.3) * 43758.5453
	return int((fract(s1) - 0.5) * 2 * amount), int((fract(s2) - 0.5) * 2 * amount)
}

// Bounce lifts each character by |sin|, like a bouncing ball.
func Bounce(i int, t, height, speed float64) (dx, dy int) {
	phase := float64(i)*0.3 + t*speed
	return 0, -int(math.Abs(math.Sin(phase)) * height)
}

// Spread pushes characters apart by up to amount pixels each.
func Spread(i int, amount, t float64) (dx, dy int) {
	extra := int(amount * math.Abs(math.Sin(t)))
	return i * extra, 0
}

// Orbit moves each character around a small circle.
func Orbit(i int, t, radius, speed float64) (dx, dy int) {
	phase := float64(i)*0.4 + t*speed
	return int(math.Cos(phase) * radius), int(math.Sin(phase) * radius)
}

// Rainbow cycles full-saturation hues along the string.
func Rainbow(i int, t, speed float64) raster.RGB {
	hue := math.Abs(math.Mod(float64(i)*30+t*speed*100, 360))
	return palette.HSV(hue, 1, 1)
}

// Gradient interpolates from c1 at the first character to c2 at the last.
func Gradient(i, n int, c1, c2 raster.RGB) raster.RGB {
	if n <= 1 {
		return c1
	}
	return palette.Lerp(c1, c2, float64(i)/float64(n-1))
}

// FadeColor scales c toward black; amount is clamped to [0, 1].
func FadeColor(c raster.RGB, amount float64) raster.RGB {
	amount = min(max(amount, 0), 1)
	return raster.RGB{R: uint8(float64(c.R) * amount), G: uint8(float64(c.G) * amount), B: uint8(float64(c.B) * amount)}
}

// PulseColor breathes c between minBrightness and full.
func PulseColor(c raster.RGB, t, speed, minBrightness float64) raster.RGB {
	k := math.Sin(t*speed)*0.5 + 0.5
	return FadeColor(c, minBrightness+(1-minBrightness)*k)
}

// Blink is a square wave: on for the first half of each 1/rate period.
func Blink(t, rate float64) float64 {
	if math.Mod(t*rate, 1) < 0.5 {
		return 1
	}
	return 0
}

// Pulse is a smooth sine breathing in [0, 1].
func Pulse(t, rate float64) float64 {
	return math.Sin(t*rate*2*math.Pi)*0.5 + 0.5
}

// Strobe is Blink at four times the rate.
func Strobe(t, rate float64) float64 { return Blink(t, rate*4) }

// Flash is 1 at start, fading linearly to 0 after duration.
func Flash(t, start, duration float64) float64 {
	e := t - start
	if e < 0 || e > duration {
		return 0
	}
	return 1 - e/duration
}

// BlinkSequential delays each character's blink by delay seconds.
func BlinkSequential(i int, t, rate, delay float64) float64 {
	ot := t - float64(i)*delay
	if ot < 0 {
		return 0
	}
	return Blink(ot, rate)
}

// BlinkRandom hides about 30% of characters, re-rolled rate times a second.
func BlinkRandom(i int, t, rate float64) float64 {
	s := math.Sin(float64(i)*127.1+math.Floor(t*rate)*311.7) * 43758.5453
	if fract(s) > 0.3 {
		return 1
	}
	return 0
}

// FadeIn ramps from 0 at start to 1 after duration.
func FadeIn(t, start, duration float64) float64 {
	return min(max((t-start)/duration, 0), 1)
}

func FadeOut(t, start, duration float64) float64 { return 1 - FadeIn(t, start, duration) }
