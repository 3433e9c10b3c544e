package effect

import (
	"cmp"
	"math"
	"slices"

	"wallfacer/internal/mathutil"
	"wallfacer/internal/noise"
	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const (
	pipeGrid     = 50.0
	pipeRadius   = 12.0
	pipeMaxSegs  = 40
	pipeInterval = 0.12
	numPipes     = 4
	pipeStrips   = 8 // across the visible half of the cylinder
	pipeCameraZ  = 500.0
)

var pipeDirs = [6]mathutil.Vec3{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

type pipeSegment struct {
	a, b, dir mathutil.Vec3
	hue       float64
}

type pipe struct {
	segs     []pipeSegment
	pos, dir mathutil.Vec3
	hue      float64
}

// projectedPipe is one segment ready to draw: screen endpoints, the screen
// perpendicular and projected radius at each end.
type projectedPipe struct {
	ax, ay, bx, by float64
	nx, ny         float64
	ra, rb         float64
	light, hue, z  float64
	bend           bool
	jointR         float64
}

// Pipes grows pipes through a 3D grid the way the old screensaver did,
// turning at random and restarting elsewhere once long enough.
type Pipes struct {
	time  float64
	pipes []pipe
	grow  float64
	rot   mathutil.Vec3
	rng   *noise.Rng
	light mathutil.Vec3
	drawn []projectedPipe
}

func gridPoint(rng *noise.Rng, n int) mathutil.Vec3 {
	return mathutil.Vec3{
		float64(rng.Intn(-n, n)) * pipeGrid,
		float64(rng.Intn(-n, n)) * pipeGrid,
		float64(rng.Intn(-n, n)) * pipeGrid,
	}
}

func NewPipes() *Pipes {
	rng := noise.NewRng(42)
	p := &Pipes{rng: rng, light: mathutil.Vec3{0.4, -0.6, -0.7}.Normalize()}
	for i := range numPipes {
		p.pipes = append(p.pipes, pipe{pos: gridPoint(rng, 3), dir: pipeDirs[i%6], hue: float64(i) * 80})
	}
	return p
}

func (p *Pipes) growPipe(pp *pipe) {
	from := pp.pos
	pp.pos = from.Add(pp.dir.Scale(pipeGrid))
	pp.segs = append(pp.segs, pipeSegment{a: from, b: pp.pos, dir: pp.dir, hue: pp.hue})

	if p.rng.Chance(0.5) {
		back := pp.dir.Neg()
		for {
			d := pipeDirs[p.rng.Uint32()%6]
			if d != back {
				pp.dir = d
				break
			}
		}
	}
	if len(pp.segs) >= pipeMaxSegs {
		pp.segs = pp.segs[:0]
		pp.pos = gridPoint(p.rng, 4)
		pp.hue = math.Mod(pp.hue+60, 360)
	}
}

func (p *Pipes) Update(dt float64, _, _ int, _ *region.Scene) {
	p.time += dt
	p.rot[0] += dt * 0.08
	p.rot[1] += dt * 0.12
	p.grow += dt
	for p.grow >= pipeInterval {
		p.grow -= pipeInterval
		for i := range p.pipes {
			p.growPipe(&p.pipes[i])
		}
	}
}

func (p *Pipes) project(w, h float64) {
	cx, cy := w/2, h/2
	fov := 500 * math.Min(w, h) / 480
	cam := mathutil.Vec3{0, 0, pipeCameraZ}

	p.drawn = p.drawn[:0]
	for _, pp := range p.pipes {
		for si, s := range pp.segs {
			a := s.a.RotateX(p.rot[0]).RotateY(p.rot[1]).Add(cam)
			b := s.b.RotateX(p.rot[0]).RotateY(p.rot[1]).Add(cam)
			if a[2] <= 1 || b[2] <= 1 {
				continue
			}
			ax, ay, _ := mathutil.Project(a, fov, cx, cy)
			bx, by, _ := mathutil.Project(b, fov, cx, cy)
			dx, dy := bx-ax, by-ay
			l := math.Max(math.Hypot(dx, dy), 0.001)
			p.drawn = append(p.drawn, projectedPipe{
				ax:     ax,
				ay:     ay,
				bx:     bx,
				by:     by,
				nx:     -dy / l,
				ny:     dx / l,
				ra:     pipeRadius * fov / a[2],
				rb:     pipeRadius * fov / b[2],
				light:  0.2 + 0.6*math.Abs(b.Sub(a).Normalize().Dot(p.light)),
				hue:    s.hue,
				z:      (a[2] + b[2]) / 2,
				bend:   si+1 >= len(pp.segs) || pp.segs[si+1].dir != s.dir,
				jointR: pipeRadius * 1.4 * fov / b[2],
			})
		}
	}
	slices.SortStableFunc(p.drawn, func(a, b projectedPipe) int { return cmp.Compare(b.z, a.z) })
}

func (p *Pipes) Render(buf *raster.Buffer) {
	buf.Clear(5, 5, 12)
	p.project(float64(buf.Width()), float64(buf.Height()))

	quad := make([][2]float64, 4)
	for _, s := range p.drawn {
		// cosine falloff across the strips, brightest facing the viewer
		for i := range pipeStrips {
			t0 := math.Pi * float64(i) / pipeStrips
			t1 := math.Pi * float64(i+1) / pipeStrips
			o0, o1 := math.Cos(t0), math.Cos(t1)
			facing := math.Sin((t0 + t1) / 2)
			c := palette.HSV(s.hue, 0.55+0.15*facing, math.Min(s.light*(0.3+0.7*facing), 1))
			quad[0] = [2]float64{s.ax + s.nx*s.ra*o0, s.ay + s.ny*s.ra*o0}
			quad[1] = [2]float64{s.bx + s.nx*s.rb*o0, s.by + s.ny*s.rb*o0}
			quad[2] = [2]float64{s.bx + s.nx*s.rb*o1, s.by + s.ny*s.rb*o1}
			quad[3] = [2]float64{s.ax + s.nx*s.ra*o1, s.ay + s.ny*s.ra*o1}
			buf.FillPolygon(quad, c.R, c.G, c.B)
		}
		if s.bend {
			c := palette.HSV(s.hue, 0.5, math.Min(s.light*0.9, 1))
			buf.FillCircleGradient(int(s.bx), int(s.by), int(s.jointR), c.R, c.G, c.B, 1.8)
		}
	}
}

func (p *Pipes) RegionColor() raster.RGB { return raster.RGB{} }
func (p *Pipes) Name() string            { return "3D Pipes" }
