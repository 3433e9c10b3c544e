package effect

import (
	"math"

	"wallfacer/internal/noise"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const (
	maxBolts        = 16
	boltMinInterval = 0.3
	boltMaxInterval = 1.5
	boltLifetime    = 0.45
	boltLevels      = 5 // 32 segments per bolt
	branchChance    = 0.3
	offsetScale     = 0.25
	chainStagger    = 0.06
	stainFactor     = 244 // 0.955 in 8.8 fixed point
	stainDeposit    = 50
	sparkRate       = 8.0 // per region per second
)

type boltPath struct {
	points [][2]float64
	bright float64 // 1 for the main channel
}

type bolt struct {
	paths    []boltPath
	age      float64 // negative while a chain link waits its turn
	lifetime float64
}

// Lightning arcs fractal bolts between neighbouring regions, left to right,
// and leaves a fading purple stain where they struck.
type Lightning struct {
	bolts  []bolt
	frames []frame
	stain  []uint8
	sw, sh int
	rng    *noise.Rng
	time   float64
	next   float64
	sparks float64
	watch  sceneWatch
}

func NewLightning() *Lightning {
	return &Lightning{rng: noise.NewRng(0xB017), next: 0.5}
}

func (l *Lightning) rebuild(w, h int, scene *region.Scene) {
	if l.sw != w || l.sh != h {
		l.stain = make([]uint8, w*h)
		l.sw, l.sh = w, h
	}
	l.frames = sceneFrames(scene)
	l.bolts = l.bolts[:0]
}

// midpointPath subdivides start→end levels times, displacing each new
// midpoint perpendicular to its segment by up to len·0.25/1.4^level.
func midpointPath(start, end [2]float64, levels int, rng *noise.Rng) [][2]float64 {
	pts := [][2]float64{start, end}
	for level := 0; level < levels; level++ {
		scale := offsetScale / math.Pow(1.4, float64(level))
		next := make([][2]float64, 0, len(pts)*2)
		for i := 0; i < len(pts)-1; i++ {
			a, b := pts[i], pts[i+1]
			dx, dy := b[0]-a[0], b[1]-a[1]
			l := math.Max(math.Hypot(dx, dy), 0.001)
			off := rng.Range(-1, 1) * l * scale
			next = append(next, a, [2]float64{
				(a[0]+b[0])*0.5 - dy/l*off,
				(a[1]+b[1])*0.5 + dx/l*off,
			})
		}
		pts = append(next, pts[len(pts)-1])
	}
	return pts
}

func branches(main [][2]float64, rng *noise.Rng) []boltPath {
	var out []boltPath
	if len(main) < 6 {
		return out
	}
	for i := 2; i < len(main)-2; i += 4 {
		if rng.Float64() > branchChance {
			continue
		}
		p, prev := main[i], main[i-1]
		base := math.Atan2(p[1]-prev[1], p[0]-prev[0])
		side := 1.0
		if rng.Float64() >= 0.5 {
			side = -1
		}
		angle := base + side*rng.Range(0.35, 1)
		length := rng.Range(30, 100)
		end := [2]float64{p[0] + math.Cos(angle)*length, p[1] + math.Sin(angle)*length}
		out = append(out, boltPath{points: midpointPath(p, end, 3, rng), bright: rng.Range(0.3, 0.6)})
	}
	return out
}

// chain fires one bolt per adjacent pair of regions, staggered in time.
func (l *Lightning) chain() {
	for seg := 0; seg+1 < len(l.frames) && len(l.bolts) < maxBolts; seg++ {
		a, b := &l.frames[seg], &l.frames[seg+1]
		sx, sy := a.facing(b, l.rng.Float64())
		ex, ey := b.facing(a, l.rng.Float64())
		main := midpointPath([2]float64{sx, sy}, [2]float64{ex, ey}, boltLevels, l.rng)
		paths := append([]boltPath{{points: main, bright: 1}}, branches(main, l.rng)...)
		l.bolts = append(l.bolts, bolt{
			paths:    paths,
			age:      -float64(seg) * chainStagger,
			lifetime: boltLifetime + l.rng.Range(-0.05, 0.1),
		})
	}
}

func (l *Lightning) spark() {
	if len(l.frames) == 0 || len(l.bolts) >= maxBolts {
		return
	}
	f := &l.frames[int(l.rng.Uint32()%uint32(len(l.frames)))]
	t := l.rng.Float64()
	sx, sy := f.edgePoint(l.rng.Uint32(), t)
	angle := l.rng.Range(0, 2*math.Pi)
	length := l.rng.Range(15, 50)
	pts := midpointPath([2]float64{sx, sy}, [2]float64{sx + math.Cos(angle)*length, sy + math.Sin(angle)*length}, 3, l.rng)
	l.bolts = append(l.bolts, bolt{
		paths:    []boltPath{{points: pts, bright: l.rng.Range(0.3, 0.6)}},
		lifetime: l.rng.Range(0.1, 0.2),
	})
}

// boltFlash ramps up over the first 10% of life and fades quadratically.
func boltFlash(age, lifetime float64) float64 {
	t := age / lifetime
	if t < 0.1 {
		return t / 0.1
	}
	f := (t - 0.1) / 0.9
	return math.Max(1-f*f, 0)
}

func (l *Lightning) Update(dt float64, w, h int, scene *region.Scene) {
	if l.watch.changed(scene, w, h) {
		l.rebuild(w, h, scene)
	}
	l.time += dt

	l.next -= dt
	if l.next <= 0 && len(l.frames) >= 2 {
		l.chain()
		l.next = l.rng.Range(boltMinInterval, boltMaxInterval)
	}
	if len(l.frames) > 0 {
		l.sparks += sparkRate * float64(len(l.frames)) * dt
		for l.sparks >= 1 {
			l.spark()
			l.sparks--
		}
	}

	for i := 0; i < len(l.bolts); {
		b := &l.bolts[i]
		b.age += dt
		if b.age > b.lifetime {
			l.bolts[i] = l.bolts[len(l.bolts)-1]
			l.bolts = l.bolts[:len(l.bolts)-1]
			continue
		}
		if b.age >= 0 {
			if amt := uint8(stainDeposit * boltFlash(b.age, b.lifetime)); amt > 0 {
				pts := b.paths[0].points
				for pi := 0; pi < len(pts); pi += 2 {
					l.deposit(pts[pi][0], pts[pi][1], amt)
				}
			}
		}
		i++
	}

	for i, s := range l.stain {
		l.stain[i] = uint8(uint16(s) * stainFactor >> 8)
	}
}

func (l *Lightning) deposit(x, y float64, amt uint8) {
	px, py := int(x), int(y)
	if x < 0 || y < 0 || px >= l.sw || py >= l.sh {
		return
	}
	i := py*l.sw + px
	l.stain[i] = uint8(min(int(l.stain[i])+int(amt), 255))
}

func (l *Lightning) Render(buf *raster.Buffer) {
	w, h := buf.Width(), buf.Height()
	for row := 0; row < h; row++ {
		t := float64(row) / float64(h)
		buf.HLine(0, w-1, row, uint8(3+t*5), uint8(3+t*4), uint8(8+t*10))
	}

	if l.sw == w && l.sh == h {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if s := l.stain[y*w+x]; s > 2 {
					buf.AddPixel(x, y, uint8(uint16(s)*2/5), s/6, uint8(uint16(s)*3/4))
				}
			}
		}
	}

	pulse := math.Sin(l.time*0.8)*0.1 + 0.15
	for i := range l.frames {
		f := &l.frames[i]
		buf.FillCircleGradient(int(f.cx), int(f.cy), int(f.size()*0.5),
			uint8(30*pulse), uint8(20*pulse), uint8(80*pulse), 2)
	}

	for i := range l.bolts {
		l.renderBolt(buf, &l.bolts[i])
	}
	buf.Bloom(40, 3, 0.6)
}

func (l *Lightning) renderBolt(buf *raster.Buffer, b *bolt) {
	if b.age < 0 {
		return
	}
	flash := boltFlash(b.age, b.lifetime)
	if flash < 0.01 {
		return
	}
	core := math.Min(flash*2, 1) // white when fresh, blue as it fades
	for _, p := range b.paths {
		k := flash * p.bright
		r := raster.Clamp255(180*k + 75*core*k)
		g := raster.Clamp255(190*k + 65*core*k)
		bl := raster.Clamp255(255 * k)
		for i := 0; i+1 < len(p.points); i++ {
			a, c := p.points[i], p.points[i+1]
			buf.LineAAAdditive(a[0], a[1], c[0], c[1], r, g, bl)
			if p.bright < 0.9 {
				continue
			}
			// main channel gets two half-bright side strands
			dx, dy := c[0]-a[0], c[1]-a[1]
			ln := math.Max(math.Hypot(dx, dy), 0.001)
			nx, ny := -dy/ln*0.8, dx/ln*0.8
			buf.LineAAAdditive(a[0]+nx, a[1]+ny, c[0]+nx, c[1]+ny, r/2, g/2, bl/2)
			buf.LineAAAdditive(a[0]-nx, a[1]-ny, c[0]-nx, c[1]-ny, r/2, g/2, bl/2)
		}
	}

	if b.age >= 0.08 {
		return
	}
	main := b.paths[0].points
	start, end := main[0], main[len(main)-1]
	fi := uint8((1 - b.age/0.08) * 200)
	for i := range l.frames {
		f := &l.frames[i]
		for _, p := range [2][2]float64{start, end} {
			if f.near(p[0], p[1], 5) {
				buf.FillCircleGradient(int(f.cx), int(f.cy), int(f.size()*0.4), fi/2, fi/3, fi, 2.5)
			}
		}
	}
}

func (l *Lightning) RegionColor() raster.RGB { return rgb(4, 4, 10) }
func (l *Lightning) Name() string            { return "Lightning Storm" }
