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
	gballCount    = 12
	gballGravity  = 400.0
	gballDamping  = 0.85
	gballTrail    = 20
	gballMinSpeed = 25.0
)

type gball struct {
	x, y, vx, vy float64
	radius       float64
	hue          float64
	trail        [][2]float64
}

type circleObstacle struct {
	x, y, r float64
}

// GravityBalls drops a dozen balls under gravity. They bounce off the
// screen edges and every region, and a ball that comes to rest is thrown
// back in from the top.
type GravityBalls struct {
	balls    []gball
	polys    [][][2]float64
	circles  []circleObstacle
	rng      *noise.Rng
	sw, sh   int
	sim      stepper
	watch    sceneWatch
	hasBalls bool
}

func NewGravityBalls() *GravityBalls {
	return &GravityBalls{rng: noise.NewRng(0xBA115678)}
}

func (g *GravityBalls) spawn(w, h int) {
	g.sw, g.sh = w, h
	g.balls = g.balls[:0]
	minDim := float64(min(w, h))
	fw, fh := float64(w), float64(h)
	for i := range gballCount {
		r := minDim * (0.02 + float64(g.rng.Uint8())/255*0.03)
		g.balls = append(g.balls, gball{
			x:      r + g.rng.Float64()*math.Max(fw-2*r, 0),
			y:      r + g.rng.Float64()*fh*0.5,
			vx:     (g.rng.Float64() - 0.5) * 200,
			vy:     (g.rng.Float64() - 0.5) * 100,
			radius: r,
			hue:    float64(i) / gballCount * 360,
			trail:  make([][2]float64, 0, gballTrail),
		})
	}
	g.hasBalls = true
}

func (g *GravityBalls) obstacles(scene *region.Scene) {
	g.polys = g.polys[:0]
	g.circles = g.circles[:0]
	if scene == nil {
		return
	}
	for i := range scene.Regions {
		switch sh := scene.Regions[i].Shape.(type) {
		case *region.Polygon:
			if sh.IsClosed() {
				g.polys = append(g.polys, sh.AsTuples(nil))
			}
		case *region.Circle:
			g.circles = append(g.circles, circleObstacle{sh.Center.X, sh.Center.Y, sh.Radius})
		}
	}
}

func (g *GravityBalls) Update(dt float64, width, height int, scene *region.Scene) {
	if !g.hasBalls || width != g.sw || height != g.sh {
		g.spawn(width, height)
	}
	if g.watch.changed(scene, width, height) {
		g.obstacles(scene)
	}
	for range g.sim.advance(dt) {
		g.step(simStep, float64(width), float64(height))
	}
}

// bounce pushes b out along the collision normal and reflects its velocity.
func bounce(b *gball, c geometry.Collision) {
	b.x += c.NX * c.Depth
	b.y += c.NY * c.Depth
	vx, vy := geometry.Reflect(b.vx, b.vy, c.NX, c.NY)
	b.vx, b.vy = vx*gballDamping, vy*gballDamping
}

func (g *GravityBalls) step(dt, w, h float64) {
	for i := range g.balls {
		b := &g.balls[i]
		if len(b.trail) == gballTrail {
			copy(b.trail, b.trail[1:])
			b.trail = b.trail[:gballTrail-1]
		}
		b.trail = append(b.trail, [2]float64{b.x, b.y})

		b.vy += gballGravity * dt
		b.x += b.vx * dt
		b.y += b.vy * dt

		if b.x < b.radius {
			b.x, b.vx = b.radius, -b.vx*gballDamping
		} else if b.x > w-b.radius {
			b.x, b.vx = w-b.radius, -b.vx*gballDamping
		}
		if b.y < b.radius {
			b.y, b.vy = b.radius, -b.vy*gballDamping
		} else if b.y > h-b.radius {
			b.y, b.vy = h-b.radius, -b.vy*gballDamping
			// a little sideways kick keeps floor bounces from repeating
			b.vx += (g.rng.Float64() - 0.5) * 20
		}

		for _, verts := range g.polys {
			if c, ok := geometry.CirclePolygonCollision(b.x, b.y, b.radius, verts); ok {
				c.Depth++
				bounce(b, c)
			}
		}
		for _, o := range g.circles {
			if c, ok := geometry.CircleCircleCollision(b.x, b.y, b.radius, o.x, o.y, o.r); ok {
				bounce(b, c)
			}
		}

		b.hue = math.Mod(b.hue+dt*30, 360)
	}

	for i := range g.balls {
		b := &g.balls[i]
		if geometry.Length(b.vx, b.vy) >= gballMinSpeed {
			continue
		}
		b.x = g.rng.Float64() * w
		b.y = g.rng.Float64() * h * 0.3
		b.vx = (g.rng.Float64() - 0.5) * 300
		b.vy = g.rng.Float64() * 100
		b.trail = b.trail[:0]
	}
}

func (g *GravityBalls) Render(buf *raster.Buffer) {
	buf.Clear(10, 10, 20)
	for _, b := range g.balls {
		c := palette.HSV(b.hue, 0.8, 1)
		for i, p := range b.trail {
			a := float64(i) / gballTrail
			tc := palette.Scale(c, a*0.5)
			buf.FillCircle(int(p[0]), int(p[1]), int(b.radius*0.5*a), tc.R, tc.G, tc.B)
		}
	}
	for _, b := range g.balls {
		c := palette.HSV(b.hue, 0.8, 1)
		cx, cy, r := int(b.x), int(b.y), int(b.radius)
		rim := palette.Scale(c, 0.6)
		buf.FillCircle(cx, cy, r, rim.R, rim.G, rim.B)
		core := palette.Scale(c, 0.4)
		buf.FillCircleGradient(cx, cy, r, core.R, core.G, core.B, 1)
		buf.FillCircle(cx-r/3, cy-r/3, r/4, 255, 255, 255)
	}
}

func (g *GravityBalls) RegionColor() raster.RGB { return rgb(40, 40, 60) }
func (g *GravityBalls) Name() string            { return "Gravity Balls" }
