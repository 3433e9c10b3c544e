package effect

import (
	"math"

	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const (
	numBobs    = 16
	bobRadius  = 20.0 // at 480 rows
	trailDecay = 245  // /256 per frame
)

type bob struct {
	x, y, vx, vy float64
	hue, phase   float64
}

// Bobs bounces blitter objects around the screen, each leaving a fading
// additive trail.
type Bobs struct {
	time  float64
	bobs  []bob
	trail *raster.Buffer
}

func NewBobs() *Bobs {
	bobs := make([]bob, numBobs)
	for i := range bobs {
		t := float64(i) / numBobs
		angle, speed := t*2*math.Pi, 150+t*100
		bobs[i] = bob{
			x:     320,
			y:     240,
			vx:    math.Cos(angle) * speed,
			vy:    math.Sin(angle) * speed,
			hue:   t * 360,
			phase: t * 2 * math.Pi,
		}
	}
	return &Bobs{bobs: bobs}
}

func (b *bob) bounce(lo, hi float64, pos, vel *float64) {
	switch {
	case *pos < lo:
		*pos, *vel = lo, math.Abs(*vel)
	case *pos > hi:
		*pos, *vel = hi, -math.Abs(*vel)
	default:
		return
	}
	b.hue = math.Mod(b.hue+30, 360)
}

func (bs *Bobs) Update(dt float64, width, height int, _ *region.Scene) {
	bs.time += dt
	if bs.trail == nil || bs.trail.Width() != width || bs.trail.Height() != height {
		bs.trail = raster.New(width, height)
	}
	radius := math.Round(bobRadius * float64(min(width, height)) / 480)
	w, h := float64(width), float64(height)
	sx, sy := w/640, h/480

	for i := range bs.bobs {
		b := &bs.bobs[i]
		b.x += b.vx * dt * sx
		b.y += b.vy * dt * sy
		b.bounce(radius, w-radius, &b.x, &b.vx)
		b.bounce(radius, h-radius, &b.y, &b.vy)

		wobble := math.Sin(bs.time*2+b.phase) * 0.02
		speed := math.Hypot(b.vx, b.vy)
		angle := math.Atan2(b.vy, b.vx) + wobble
		b.vx, b.vy = math.Cos(angle)*speed, math.Sin(angle)*speed
	}

	bs.trail.Fade(trailDecay)
	for _, b := range bs.bobs {
		c := palette.HSV(b.hue, 0.9, 1)
		bs.trail.FillCircleGradient(int(b.x), int(b.y), int(radius), c.R, c.G, c.B, 2)
	}
}

func (bs *Bobs) Render(buf *raster.Buffer) {
	if bs.trail == nil || bs.trail.Width() != buf.Width() || bs.trail.Height() != buf.Height() {
		buf.Clear(0, 0, 0)
		return
	}
	buf.CopyFrom(bs.trail)
}

func (bs *Bobs) RegionColor() raster.RGB { return raster.RGB{} }
func (bs *Bobs) Name() string            { return "Bobs" }
