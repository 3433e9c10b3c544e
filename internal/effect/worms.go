package effect

import (
	"math"

	"wallfacer/internal/geometry"
	"wallfacer/internal/noise"
	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const (
	maxWorms        = 24
	maxWormSegments = 800
	wormSegment     = 4.0
	wormPush        = 6.0
	wormGrowTime    = 5.0
	wormInitial     = 8
	wormPopulation  = 12
	wormSpawnEvery  = 1.5
)

// worm keeps its body tail first; the last element is the head.
type worm struct {
	body      [][2]float64
	hx, hy    float64
	travelled float64
	dir, turn float64
	speed     float64
	hue       float64
	hueSpeed  float64
	age, life float64
	length    int
	alive     bool
}

func newWorm(x, y float64, rng *noise.Rng) *worm {
	return &worm{
		body:     [][2]float64{{x, y}},
		hx:       x,
		hy:       y,
		dir:      rng.Float64() * 2 * math.Pi,
		speed:    40 + rng.Float64()*60,
		life:     20 + rng.Float64()*30,
		length:   400 + int(rng.Float64()*(maxWormSegments-400)),
		hue:      rng.Float64() * 360,
		hueSpeed: 20 + rng.Float64()*40,
		alive:    true,
	}
}

func (wm *worm) trim(n int) {
	n = max(n, 1)
	if len(wm.body) > n {
		wm.body = wm.body[len(wm.body)-n:]
	}
}

// fade is 1 until 80% of the lifespan and then falls linearly to 0.
func (wm *worm) fade() float64 {
	if p := wm.age / wm.life; p > 0.8 {
		return math.Max(1-(p-0.8)/0.2, 0)
	}
	return 1
}

func (wm *worm) update(dt, w, h, scale float64, obstacles [][][2]float64, rng *noise.Rng) {
	if !wm.alive {
		wm.body = wm.body[:max(len(wm.body)-3, 0)]
		return
	}
	wm.age += dt
	if wm.age >= wm.life {
		wm.alive = false
		return
	}
	wm.hue = math.Mod(wm.hue+wm.hueSpeed*dt, 360)
	if rng.Chance(0.02) {
		wm.turn = (rng.Float64() - 0.5) * 4
	}
	wm.dir += wm.turn * dt

	seg := wormSegment * scale
	nx := wm.hx + math.Cos(wm.dir)*wm.speed*dt*scale
	ny := wm.hy + math.Sin(wm.dir)*wm.speed*dt*scale
	bounced := false

	lo, hiX, hiY := seg, w-seg, h-seg
	switch {
	case nx < lo:
		nx, wm.dir, bounced = 2*lo-nx, math.Pi-wm.dir, true
	case nx > hiX:
		nx, wm.dir, bounced = 2*hiX-nx, math.Pi-wm.dir, true
	}
	switch {
	case ny < lo:
		ny, wm.dir, bounced = 2*lo-ny, -wm.dir, true
	case ny > hiY:
		ny, wm.dir, bounced = 2*hiY-ny, -wm.dir, true
	}

	head := seg + 1
	for _, verts := range obstacles {
		c, ok := geometry.RectPolygonCollision(nx-head/2, ny-head/2, head, head, verts)
		if !ok {
			continue
		}
		dx, dy := geometry.Reflect(math.Cos(wm.dir), math.Sin(wm.dir), c.NX, c.NY)
		wm.dir = math.Atan2(dy, dx)
		nx += c.NX * (c.Depth + wormPush)
		ny += c.NY * (c.Depth + wormPush)
		bounced = true
		break
	}
	if bounced {
		wm.turn = (rng.Float64() - 0.5) * 3
	}

	wm.travelled += math.Hypot(nx-wm.hx, ny-wm.hy)
	wm.hx, wm.hy = nx, ny
	// segments are laid at a fixed spacing so body length is frame-rate independent
	spacing := seg * 0.5
	for spacing > 0 && wm.travelled >= spacing {
		wm.travelled -= spacing
		wm.body = append(wm.body, [2]float64{nx, ny})
	}
	wm.body[len(wm.body)-1] = [2]float64{nx, ny}

	target := wm.length
	if wm.age < wormGrowTime {
		target = int(wm.age / wormGrowTime * float64(wm.length))
	}
	wm.trim(int(float64(target) * wm.fade()))
}

func (wm *worm) render(buf *raster.Buffer, seg int) {
	n := len(wm.body)
	if n == 0 {
		return
	}
	fade := wm.fade()
	for i := 0; i < n; i++ {
		p := wm.body[n-1-i] // i counts from the head
		c := palette.Scale(palette.HSV(math.Mod(wm.hue+float64(i)*3, 360), 0.9, 0.95),
			fade*(1-float64(i)/float64(n)*0.6))
		size := seg + 1
		if i > 0 {
			size = seg - i*seg/n/2
		}
		buf.FillCircle(int(p[0]), int(p[1]), max(size, 2), c.R, c.G, c.B)
	}
}

// Worms are glowing hue-cycling worms that grow, slither, bounce off the
// screen edges and regions, and shrink away at the end of their life.
type Worms struct {
	worms     []*worm
	rng       *noise.Rng
	spawn     float64
	w, h      float64
	scale     float64
	seeded    bool
	watch     sceneWatch
	obstacles [][][2]float64
}

func NewWorms() *Worms {
	return &Worms{rng: noise.NewRng(42), w: 640, h: 480, scale: 1}
}

func (ws *Worms) spawnWorm() {
	if len(ws.worms) >= maxWorms {
		return
	}
	var x, y float64
	switch ws.rng.Intn(0, 3) {
	case 0:
		x, y = ws.rng.Range(0, ws.w), 10
	case 1:
		x, y = ws.rng.Range(0, ws.w), ws.h-10
	case 2:
		x, y = 10, ws.rng.Range(0, ws.h)
	default:
		x, y = ws.w-10, ws.rng.Range(0, ws.h)
	}
	ws.worms = append(ws.worms, newWorm(x, y, ws.rng))
}

func (ws *Worms) Update(dt float64, width, height int, scene *region.Scene) {
	if ws.watch.changed(scene, width, height) {
		ws.obstacles = regionVerts(scene, circleSegs)
	}
	ws.w, ws.h = float64(width), float64(height)
	ws.scale = float64(min(width, height)) / 480

	if !ws.seeded {
		ws.seeded = true
		const margin = 50.0
		for range wormInitial {
			x := margin + ws.rng.Float64()*(ws.w-2*margin)
			y := margin + ws.rng.Float64()*(ws.h-2*margin)
			ws.worms = append(ws.worms, newWorm(x, y, ws.rng))
		}
	}

	for _, wm := range ws.worms {
		wm.update(dt, ws.w, ws.h, ws.scale, ws.obstacles, ws.rng)
	}

	kept := ws.worms[:0]
	for _, wm := range ws.worms {
		if wm.alive || len(wm.body) > 0 {
			kept = append(kept, wm)
		}
	}
	died := len(ws.worms) - len(kept)
	clear(ws.worms[len(kept):])
	ws.worms = kept
	for range died {
		ws.spawnWorm()
	}

	ws.spawn += dt
	if ws.spawn > wormSpawnEvery && len(ws.worms) < wormPopulation {
		ws.spawn = 0
		ws.spawnWorm()
	}
}

func (ws *Worms) Render(buf *raster.Buffer) {
	buf.Clear(5, 5, 15)
	seg := max(int(math.Round(wormSegment*ws.scale)), 2)
	for _, wm := range ws.worms {
		wm.render(buf, seg)
	}
}

func (ws *Worms) RegionColor() raster.RGB { return rgb(0, 40, 10) }
func (ws *Worms) Name() string            { return "Worms" }
