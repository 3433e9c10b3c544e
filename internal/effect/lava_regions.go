package effect

import (
	"math"

	"wallfacer/internal/noise"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const (
	maxEmbers     = 200
	emberRate     = 30.0 // per region per second
	emberBuoyancy = 20.0
)

type ember struct {
	x, y, vx, vy  float64
	life, maxLife float64
	size          float64
}

// lavaSource is where a region sheds embers: the top edge of a polygon's
// bounding box, or the upper arc of a circle.
type lavaSource struct {
	circle                bool
	minX, maxX, top       float64
	cx, cy, r             float64
	glowX, glowY, glowRad float64
}

// LavaRegions fills every region with churning molten colour and lets
// embers rise from their upper edges.
type LavaRegions struct {
	embers  []ember
	sources []lavaSource
	rng     *noise.Rng
	time    float64
	sim     stepper
	watch   sceneWatch
}

func NewLavaRegions() *LavaRegions {
	return &LavaRegions{
		embers: make([]ember, 0, maxEmbers),
		rng:    noise.NewRng(0xE8B55678),
	}
}

// lavaColor maps heat in [0, 1] through dark red, orange and yellow to white.
func lavaColor(t float64) raster.RGB {
	t = clampf(t, 0, 1)
	switch {
	case t < 0.3:
		k := t / 0.3
		return rgb(uint8(80+k*175), uint8(k*30), 0)
	case t < 0.6:
		k := (t - 0.3) / 0.3
		return rgb(255, uint8(30+k*130), 0)
	case t < 0.85:
		k := (t - 0.6) / 0.25
		return rgb(255, uint8(160+k*95), uint8(k*100))
	}
	k := (t - 0.85) / 0.15
	return rgb(255, 255, uint8(100+k*155))
}

func lavaSources(scene *region.Scene) []lavaSource {
	if scene == nil {
		return nil
	}
	var out []lavaSource
	for i := range scene.Regions {
		switch sh := scene.Regions[i].Shape.(type) {
		case *region.Polygon:
			minX, minY, maxX, maxY, ok := sh.Bounds()
			if !ok || !sh.IsClosed() {
				continue
			}
			c, _ := sh.Centroid()
			out = append(out, lavaSource{
				minX: minX, maxX: maxX, top: minY,
				glowX: c.X, glowY: c.Y, glowRad: math.Max(maxX-minX, maxY-minY) * 0.7,
			})
		case *region.Circle:
			out = append(out, lavaSource{
				circle: true, cx: sh.Center.X, cy: sh.Center.Y, r: sh.Radius,
				glowX: sh.Center.X, glowY: sh.Center.Y, glowRad: sh.Radius * 1.4,
			})
		}
	}
	return out
}

func (l *LavaRegions) spawn(x, y float64) {
	if len(l.embers) >= maxEmbers {
		copy(l.embers, l.embers[1:])
		l.embers = l.embers[:len(l.embers)-1]
	}
	life := 1.5 + l.rng.Float64()*2
	l.embers = append(l.embers, ember{
		x: x, y: y,
		vx:      (l.rng.Float64() - 0.5) * 30,
		vy:      -50 - l.rng.Float64()*80,
		life:    life,
		maxLife: life,
		size:    1 + l.rng.Float64()*2,
	})
}

func (l *LavaRegions) Update(dt float64, width, height int, scene *region.Scene) {
	if l.watch.changed(scene, width, height) {
		l.sources = lavaSources(scene)
	}
	l.time += dt
	for range l.sim.advance(dt) {
		l.step(simStep)
	}
}

func (l *LavaRegions) step(dt float64) {
	live := l.embers[:0]
	for _, e := range l.embers {
		e.life -= dt
		if e.life <= 0 {
			continue
		}
		e.vx *= 0.99
		e.vy = e.vy*0.98 - emberBuoyancy*dt
		e.x += e.vx * dt
		e.y += e.vy * dt
		live = append(live, e)
	}
	l.embers = live

	for i := range l.sources {
		if !l.rng.Chance(dt * emberRate) {
			continue
		}
		s := &l.sources[i]
		if s.circle {
			a := -math.Pi/2 + (l.rng.Float64()-0.5)*math.Pi*0.6
			l.spawn(s.cx+math.Cos(a)*s.r, s.cy+math.Sin(a)*s.r)
			continue
		}
		l.spawn(s.minX+l.rng.Float64()*(s.maxX-s.minX), s.top)
	}
}

func (l *LavaRegions) Render(buf *raster.Buffer) {
	buf.Clear(15, 5, 5)
	w, h := buf.Width(), buf.Height()

	// heat haze around each region, flickering on value noise
	for i, s := range l.sources {
		heat := noise.FBM2(l.time*0.7, float64(i)*3.1, 3, 0x1A7A)
		c := lavaColor(0.2 + heat*0.4)
		k := 0.25 + heat*0.25
		buf.FillCircleGradient(int(s.glowX), int(s.glowY), int(s.glowRad),
			uint8(float64(c.R)*k), uint8(float64(c.G)*k), uint8(float64(c.B)*k), 2)
	}

	for _, e := range l.embers {
		lr := e.life / e.maxLife
		c := lavaColor(0.7 + lr*0.3)
		r, g, bl := uint8(float64(c.R)*lr), uint8(float64(c.G)*lr), uint8(float64(c.B)*lr)
		size := int(e.size * lr)
		if size < 1 {
			buf.AddPixel(int(e.x), int(e.y), r, g, bl)
			continue
		}
		buf.FillCircleAdditive(int(e.x), int(e.y), size, r, g, bl)
	}

	// ambient glow along the bottom quarter
	start := h * 3 / 4
	span := max(h-start, 1)
	for y := start; y < h; y++ {
		glow := float64(y-start) / float64(span) * 0.3
		buf.HLineAdditive(0, w-1, y, uint8(60*glow), uint8(20*glow), 0)
	}
}

func (l *LavaRegions) RegionColor() raster.RGB {
	t := math.Sin(l.time*0.5)*0.5 + 0.5
	return lavaColor(0.4 + t*0.3)
}

func (l *LavaRegions) Name() string { return "Lava Regions" }
