package effect

import (
	"math"

	"wallfacer/internal/geometry"
	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
	"wallfacer/internal/text"
)

const (
	dvdText      = "DVD"
	dvdScale     = 4
	dvdTrailLen  = 15
	dvdTrailStep = 8.0
	dvdPush      = 15.0
	rapidWindow  = 0.5
	rapidCalm    = 1.5
	rapidBoost   = 4
	rapidCap     = 6
	maxResolves  = 8
	circleSegs   = 32
)

type trailPoint struct {
	x, y, hue float64
}

// Dvd bounces the DVD logo off the screen edges and every region. Bounces
// against regions that come in quick succession grow a counter that doubles
// the escape push, so the logo cannot wedge itself into a concave corner.
type Dvd struct {
	x, y, vx, vy float64
	hue          float64
	w, h         float64
	trail        []trailPoint

	rapid     int
	sinceHit  float64
	watch     sceneWatch
	obstacles [][][2]float64
}

func NewDvd() *Dvd {
	return &Dvd{
		x:        100,
		y:        100,
		vx:       120,
		vy:       80,
		w:        float64(text.TextWidth(dvdText, dvdScale)),
		h:        float64(text.TextHeight(dvdScale)),
		sinceHit: rapidCalm,
	}
}

func (d *Dvd) changeColor() {
	d.hue = math.Mod(d.hue+45+math.Abs(d.vx)*0.5, 360)
}

func (d *Dvd) pushTrail() {
	if n := len(d.trail); n > 0 {
		l := d.trail[n-1]
		if geometry.DistanceSquared(d.x, d.y, l.x, l.y) < dvdTrailStep*dvdTrailStep {
			return
		}
	}
	if len(d.trail) >= dvdTrailLen {
		d.trail = append(d.trail[:0], d.trail[1:]...)
	}
	d.trail = append(d.trail, trailPoint{d.x, d.y, d.hue})
}

// collide returns the first region the logo's box overlaps.
func (d *Dvd) collide() (geometry.Collision, bool) {
	for _, verts := range d.obstacles {
		if c, ok := geometry.RectPolygonCollision(d.x, d.y, d.w, d.h, verts); ok {
			return c, true
		}
	}
	return geometry.Collision{}, false
}

func (d *Dvd) Update(dt float64, width, height int, scene *region.Scene) {
	if d.watch.changed(scene, width, height) {
		d.obstacles = regionVerts(scene, circleSegs)
	}
	d.pushTrail()

	nx, ny := d.x+d.vx*dt, d.y+d.vy*dt
	sw, sh := float64(width), float64(height)
	bounced := false

	switch {
	case nx <= 0:
		d.x, d.vx, bounced = 0, math.Abs(d.vx), true
	case nx+d.w >= sw:
		d.x, d.vx, bounced = sw-d.w, -math.Abs(d.vx), true
	default:
		d.x = nx
	}
	switch {
	case ny <= 0:
		d.y, d.vy, bounced = 0, math.Abs(d.vy), true
	case ny+d.h >= sh:
		d.y, d.vy, bounced = sh-d.h, -math.Abs(d.vy), true
	default:
		d.y = ny
	}

	d.sinceHit += dt
	if d.sinceHit > rapidCalm {
		d.rapid = 0
	}

	hit := false
	for i := 0; i < maxResolves; i++ {
		c, ok := d.collide()
		if !ok {
			break
		}
		if !hit {
			if d.sinceHit < rapidWindow {
				d.rapid = min(d.rapid+1, rapidCap)
			}
			d.sinceHit = 0
			hit = true
		}
		// reflect only while still heading into the surface
		if d.vx*c.NX+d.vy*c.NY < 0 {
			d.vx, d.vy = geometry.Reflect(d.vx, d.vy, c.NX, c.NY)
		}
		push := c.Depth + dvdPush
		if d.rapid >= rapidBoost {
			push *= 2
		}
		d.x += c.NX * push
		d.y += c.NY * push
	}
	if hit {
		bounced = true
	}
	if bounced {
		d.changeColor()
	}
}

func (d *Dvd) Render(buf *raster.Buffer) {
	buf.Clear(0, 0, 0)
	for i, p := range d.trail {
		a := float64(i) / float64(len(d.trail)) * 0.3
		c := palette.HSV(p.hue, 0.9, a)
		text.DrawText(buf, int(p.x), int(p.y), dvdText, c.R, c.G, c.B, dvdScale)
	}

	x, y := int(d.x), int(d.y)
	glow := palette.HSV(d.hue, 0.5, 0.4)
	for _, o := range [...][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		text.DrawText(buf, x+o[0], y+o[1], dvdText, glow.R, glow.G, glow.B, dvdScale)
	}
	c := palette.HSV(d.hue, 0.9, 1)
	text.DrawText(buf, x, y, dvdText, c.R, c.G, c.B, dvdScale)
}

func (d *Dvd) RegionColor() raster.RGB { return palette.HSV(d.hue, 0.8, 0.15) }
func (d *Dvd) Name() string            { return "DVD Bounce" }
