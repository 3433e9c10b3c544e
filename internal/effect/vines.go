package effect

import (
	"math"

	"wallfacer/internal/noise"
	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const (
	maxVineSegments = 8000
	vineSpeed       = 40.0 // px/s
	vineGrowthRate  = 12.0 // tip extensions per second
	vineBranch      = 0.02
	vineMaxBranches = 3 // new tips per growth step
	vineMaxDepth    = 4
	vineRoots       = 8
	vineNodeGlow    = 4
	vineConnect     = 15.0
	pulseSpeed      = 200.0
	pulseLifetime   = 3.0
	maxPulses       = 20
)

type vineSegment struct {
	x0, y0, x1, y1 float64
	frame          int
	depth          int
	bright         float64
}

type vineTip struct {
	x, y, angle float64
	speed       float64 // 0 marks a dead tip
	frame       int
	depth       int
}

type vinePulse struct {
	x, y, radius, age, hue float64
}

// Vines grows glowing tendrils out of every region. Tendrils drift toward
// the nearest other region and fire expanding light pulses where two
// networks meet.
type Vines struct {
	segments []vineSegment
	tips     []vineTip
	pulses   []vinePulse
	frames   []frame
	rng      *noise.Rng
	time     float64
	growth   float64
	watch    sceneWatch
}

func NewVines() *Vines {
	return &Vines{rng: noise.NewRng(0x71AE)}
}

func (v *Vines) rebuild(scene *region.Scene) {
	v.frames = sceneFrames(scene)
	v.segments = v.segments[:0]
	v.tips = v.tips[:0]
	v.pulses = v.pulses[:0]
	for fi := range v.frames {
		f := &v.frames[fi]
		for range vineRoots {
			t := v.rng.Float64()
			x, y := f.edgePoint(v.rng.Uint32(), t)
			v.tips = append(v.tips, vineTip{
				x:     x,
				y:     y,
				angle: math.Atan2(y-f.cy, x-f.cx) + v.rng.Range(-0.3, 0.3),
				speed: vineSpeed * v.rng.Range(0.8, 1.2),
				frame: fi,
			})
		}
	}
}

func (v *Vines) insideFrame(x, y float64) bool {
	for i := range v.frames {
		if v.frames[i].near(x, y, 0) {
			return true
		}
	}
	return false
}

// steer turns a tip gently toward the centre of the closest other frame.
func (v *Vines) steer(tip *vineTip) {
	if len(v.frames) < 2 {
		return
	}
	best := math.MaxFloat64
	tx, ty := tip.x, tip.y
	for fi := range v.frames {
		if fi == tip.frame {
			continue
		}
		f := &v.frames[fi]
		if d := (f.cx-tip.x)*(f.cx-tip.x) + (f.cy-tip.y)*(f.cy-tip.y); d < best {
			best, tx, ty = d, f.cx, f.cy
		}
	}
	diff := math.Remainder(math.Atan2(ty-tip.y, tx-tip.x)-tip.angle, 2*math.Pi)
	tip.angle += diff * 0.02
}

func (v *Vines) grow(w, h float64) {
	var born []vineTip
	for i := range v.tips {
		tip := &v.tips[i]
		tip.angle += v.rng.Range(-0.15, 0.15)
		v.steer(tip)

		ox, oy := tip.x, tip.y
		step := tip.speed / vineGrowthRate
		tip.x += math.Cos(tip.angle) * step
		tip.y += math.Sin(tip.angle) * step
		if tip.x < -10 || tip.x > w+10 || tip.y < -10 || tip.y > h+10 || v.insideFrame(tip.x, tip.y) {
			tip.speed = 0
			continue
		}

		v.segments = append(v.segments, vineSegment{
			x0:     ox,
			y0:     oy,
			x1:     tip.x,
			y1:     tip.y,
			frame:  tip.frame,
			depth:  tip.depth,
			bright: 1 / (1 + float64(tip.depth)*0.3),
		})

		if tip.depth < vineMaxDepth && v.rng.Float64() < vineBranch && len(born) < vineMaxBranches {
			side := 1.0
			if v.rng.Float64() >= 0.5 {
				side = -1
			}
			born = append(born, vineTip{
				x:     tip.x,
				y:     tip.y,
				angle: tip.angle + v.rng.Range(0.4, 1)*side,
				speed: tip.speed * v.rng.Range(0.7, 0.9),
				frame: tip.frame,
				depth: tip.depth + 1,
			})
		}
	}

	alive := v.tips[:0]
	for _, t := range v.tips {
		if t.speed > 0 {
			alive = append(alive, t)
		}
	}
	v.tips = append(alive, born...)
}

// touchesOther samples at most ~200 segment tips for one from another frame
// within vineConnect of (x, y).
func (v *Vines) touchesOther(x, y float64, own int) bool {
	step := max(len(v.segments)/200, 1)
	for i := 0; i < len(v.segments); i += step {
		s := &v.segments[i]
		if s.frame == own {
			continue
		}
		if dx, dy := x-s.x1, y-s.y1; dx*dx+dy*dy < vineConnect*vineConnect {
			return true
		}
	}
	return false
}

func (v *Vines) Update(dt float64, w, h int, scene *region.Scene) {
	if v.watch.changed(scene, w, h) {
		v.rebuild(scene)
	}
	v.time += dt

	v.growth += vineGrowthRate * dt
	steps := int(v.growth)
	v.growth -= float64(steps)
	for range steps {
		if len(v.segments) >= maxVineSegments {
			break
		}
		v.grow(float64(w), float64(h))
	}

	if len(v.frames) >= 2 {
		for i := range v.tips {
			t := &v.tips[i]
			if len(v.pulses) < maxPulses && v.touchesOther(t.x, t.y, t.frame) {
				v.pulses = append(v.pulses, vinePulse{x: t.x, y: t.y, hue: v.rng.Range(150, 300)})
			}
		}
	}

	alive := v.pulses[:0]
	for _, p := range v.pulses {
		p.age += dt
		p.radius += pulseSpeed * dt
		if p.age < pulseLifetime {
			alive = append(alive, p)
		}
	}
	v.pulses = alive
}

// frameHue spreads frames across green to violet, left to right.
func (v *Vines) frameHue(fi int) float64 {
	if len(v.frames) <= 1 {
		return 160
	}
	return float64(fi)/float64(len(v.frames)-1)*120 + 100
}

func (v *Vines) Render(buf *raster.Buffer) {
	buf.Clear(3, 5, 3)

	for i := range v.segments {
		s := &v.segments[i]
		boost := 0.0
		for _, p := range v.pulses {
			ring := math.Abs(math.Hypot(s.x1-p.x, s.y1-p.y) - p.radius)
			if ring < 20 {
				boost += (1 - p.age/pulseLifetime) * (1 - ring/20) * 0.8
			}
		}
		boost = math.Min(boost, 1)
		c := palette.HSV(v.frameHue(s.frame), 0.6+boost*0.3, math.Min(s.bright*0.4+boost*0.6, 1))
		buf.LineAAAdditive(s.x0, s.y0, s.x1, s.y1, c.R, c.G, c.B)
		if s.depth != 0 {
			continue
		}
		dx, dy := s.x1-s.x0, s.y1-s.y0
		l := math.Max(math.Hypot(dx, dy), 0.001)
		nx, ny := -dy/l*0.6, dx/l*0.6
		buf.LineAAAdditive(s.x0+nx, s.y0+ny, s.x1+nx, s.y1+ny, c.R/2, c.G/2, c.B/2)
		buf.LineAAAdditive(s.x0-nx, s.y0-ny, s.x1-nx, s.y1-ny, c.R/2, c.G/2, c.B/2)
	}

	for i := 0; i < len(v.segments); i += 12 {
		s := &v.segments[i]
		c := palette.HSV(v.frameHue(s.frame), 0.5, s.bright*0.3)
		buf.FillCircleGradient(int(s.x1), int(s.y1), vineNodeGlow, c.R, c.G, c.B, 2)
	}

	for fi := range v.frames {
		f := &v.frames[fi]
		pulse := math.Sin(v.time+float64(fi)*1.5)*0.15 + 0.25
		c := palette.HSV(v.frameHue(fi), 0.5, pulse)
		buf.FillCircleGradient(int(f.cx), int(f.cy), int(f.size()*0.5), c.R, c.G, c.B, 2)
	}

	for _, p := range v.pulses {
		if p.radius <= 2 {
			continue
		}
		c := palette.HSV(p.hue, 0.6, math.Max(1-p.age/pulseLifetime, 0)*0.5)
		buf.FillCircleGradient(int(p.x), int(p.y), int(p.radius), c.R/3, c.G/3, c.B/3, 3)
	}
	buf.Bloom(20, 2, 0.3)
}

func (v *Vines) RegionColor() raster.RGB { return rgb(3, 5, 3) }
func (v *Vines) Name() string            { return "Bioluminescent Vines" }
