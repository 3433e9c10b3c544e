package effect

import (
	"math"

	"wallfacer/internal/noise"
	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const (
	vortexParticles = 3000
	vortexWobble    = 20.0
	vortexFade      = 235 // ≈ 92%
)

type vortexParticle struct {
	x, y, angle, radius float64
	speed, hue, bright  float64
}

// Vortex spirals particles into a wandering centre. Render fades the
// previous frame instead of clearing it, so particles leave trails.
type Vortex struct {
	particles []vortexParticle
	rng       *noise.Rng
	time      float64
	cx, cy    float64
	maxR      float64
	w, h      int
}

func NewVortex() *Vortex {
	return &Vortex{rng: noise.NewRng(0x01234567)}
}

func (v *Vortex) init() {
	v.particles = v.particles[:0]
	for range vortexParticles {
		angle := v.rng.Float64() * 2 * math.Pi
		radius := math.Sqrt(v.rng.Float64()) * v.maxR
		v.particles = append(v.particles, vortexParticle{
			x:      v.cx + math.Cos(angle)*radius,
			y:      v.cy + math.Sin(angle)*radius,
			angle:  angle,
			radius: radius,
			speed:  0.3 + v.rng.Float64()*0.7,
			hue:    v.rng.Float64() * 360,
			bright: 0.5 + v.rng.Float64()*0.5,
		})
	}
}

func (v *Vortex) Update(dt float64, width, height int, _ *region.Scene) {
	if width != v.w || height != v.h {
		v.w, v.h = width, height
		v.cx, v.cy = float64(width)/2, float64(height)/2
		v.maxR = float64(max(width, height)) * 0.6
		v.init()
	}
	v.time += dt
	v.cx = float64(width)/2 + math.Sin(v.time*0.3)*vortexWobble
	v.cy = float64(height)/2 + math.Cos(v.time*0.4)*vortexWobble

	for i := range v.particles {
		p := &v.particles[i]
		// faster near the centre
		p.angle += p.speed * (1 + 3/(p.radius/50+1)) * dt
		p.radius -= dt * 15 * p.speed
		if p.radius < 5 {
			p.radius = v.maxR
			p.angle = v.rng.Float64() * 2 * math.Pi
			p.hue = math.Mod(p.hue+30, 360)
		}
		p.x = v.cx + math.Cos(p.angle)*p.radius
		p.y = v.cy + math.Sin(p.angle)*p.radius
		p.hue = math.Mod(p.hue+dt*20, 360)
	}
}

func (v *Vortex) Render(buf *raster.Buffer) {
	buf.Fade(vortexFade)
	for _, p := range v.particles {
		glow := 1 - math.Min(p.radius/math.Max(v.maxR, 1), 1)
		c := palette.Scale(palette.HSV(p.hue, 0.9, p.bright), 0.5+glow*0.5)
		px, py := int(p.x), int(p.y)
		buf.SetPixel(px, py, c.R, c.G, c.B)
		if glow > 0.5 {
			buf.SetPixel(px+1, py, c.R/2, c.G/2, c.B/2)
			buf.SetPixel(px, py+1, c.R/2, c.G/2, c.B/2)
		}
	}
	// core brightens inward
	cx, cy := int(v.cx), int(v.cy)
	for r := 7; r >= 0; r-- {
		i := uint8(255 - r*25)
		buf.FillCircle(cx, cy, r, i, i, 255)
	}
}

func (v *Vortex) RegionColor() raster.RGB { return rgb(20, 0, 40) }
func (v *Vortex) Name() string            { return "Vortex" }
