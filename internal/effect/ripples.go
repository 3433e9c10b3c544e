package effect

import (
	"math"

	"wallfacer/internal/noise"
	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const (
	rippleCell     = 3
	rippleDamping  = 0.995
	rippleSpeed    = 0.4
	rippleSteps    = 3
	rippleMinGap   = 0.8
	rippleMaxGap   = 2.5
	rippleStrength = 80.0
	rippleRadius   = 3
)

// Ripples drops stones along region edges into a damped wave grid.
type Ripples struct {
	height, vel []float64
	gw, gh      int
	frames      []frame
	next        []float64
	rng         *noise.Rng
	time        float64
	sim         stepper
	watch       sceneWatch
}

func NewRipples() *Ripples {
	return &Ripples{rng: noise.NewRng(0xD20F)}
}

func (r *Ripples) rebuild(w, h int, scene *region.Scene) {
	r.gw = (w + rippleCell - 1) / rippleCell
	r.gh = (h + rippleCell - 1) / rippleCell
	r.height = make([]float64, r.gw*r.gh)
	r.vel = make([]float64, r.gw*r.gh)
	r.frames = sceneFrames(scene)
	r.next = make([]float64, len(r.frames))
	for i := range r.next {
		r.next[i] = r.rng.Range(0, 0.5)
	}
}

// drop adds a cone-shaped impulse centered on world point (x, y).
func (r *Ripples) drop(x, y, strength float64) {
	gx, gy := int(x/rippleCell), int(y/rippleCell)
	for dy := -rippleRadius; dy <= rippleRadius; dy++ {
		for dx := -rippleRadius; dx <= rippleRadius; dx++ {
			px, py := gx+dx, gy+dy
			if px < 0 || px >= r.gw || py < 0 || py >= r.gh {
				continue
			}
			d := math.Sqrt(float64(dx*dx + dy*dy))
			if d <= rippleRadius {
				r.height[py*r.gw+px] += strength * (1 - d/rippleRadius)
			}
		}
	}
}

func (r *Ripples) step() {
	gw := r.gw
	for y := 1; y < r.gh-1; y++ {
		for x := 1; x < gw-1; x++ {
			i := y*gw + x
			lap := (r.height[i-1]+r.height[i+1]+r.height[i-gw]+r.height[i+gw])*0.25 - r.height[i]
			r.vel[i] = (r.vel[i] + lap*rippleSpeed) * rippleDamping
		}
	}
	for i := range r.height {
		r.height[i] += r.vel[i]
	}
}

func (r *Ripples) Update(dt float64, w, h int, scene *region.Scene) {
	if r.watch.changed(scene, w, h) {
		r.rebuild(w, h, scene)
	}
	r.time += dt

	for i := range r.frames {
		r.next[i] -= dt
		if r.next[i] > 0 {
			continue
		}
		t := r.rng.Float64()
		x, y := r.frames[i].edgePoint(r.rng.Uint32(), t)
		sign := 1.0
		if r.rng.Float64() >= 0.5 {
			sign = -1
		}
		r.drop(x, y, rippleStrength*sign)
		r.next[i] = r.rng.Range(rippleMinGap, rippleMaxGap)
	}

	for range r.sim.advance(dt) * rippleSteps {
		r.step()
	}
}

func (r *Ripples) Render(buf *raster.Buffer) {
	buf.Clear(4, 4, 12)
	if r.gw == 0 || r.gh == 0 {
		return
	}
	for py := 0; py < buf.Height(); py++ {
		gy := min(py/rippleCell, r.gh-1)
		for px := 0; px < buf.Width(); px++ {
			v := r.height[gy*r.gw+min(px/rippleCell, r.gw-1)]
			switch {
			case v > 0.5:
				t := min(v/40, 1)
				buf.AddPixel(px, py, uint8(t*180), uint8(t*200), uint8(80+t*175))
			case v < -0.5:
				t := min(-v/40, 1)
				buf.AddPixel(px, py, uint8(t*60), uint8(t*20), uint8(t*100))
			}
		}
	}

	n := len(r.frames)
	for i, f := range r.frames {
		hue := 240.0
		if n > 1 {
			hue = float64(i)/float64(n-1)*120 + 200
		}
		pulse := math.Sin(r.time*1.2+float64(i))*0.15 + 0.3
		c := palette.HSV(hue, 0.5, pulse)
		buf.FillCircleGradient(int(f.cx), int(f.cy), int(f.size()*0.4), c.R, c.G, c.B, 2)
	}
	buf.Bloom(30, 3, 0.4)
}

func (r *Ripples) RegionColor() raster.RGB { return rgb(4, 4, 12) }
func (r *Ripples) Name() string            { return "Shockwave Ripples" }
