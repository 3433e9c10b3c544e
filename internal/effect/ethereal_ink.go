package effect

import (
	"math"

	"wallfacer/internal/noise"
	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const (
	inkFieldW     = 80
	inkFieldH     = 60
	maxTendrils   = 600
	inkSpawnRate  = 80.0  // tendrils per second across every segment
	inkSpeed      = 120.0 // px/s
	inkMaxAge     = 8.0
	inkSteer      = 3.0
	inkPull       = 80.0 // px/s² toward the next frame
	inkPullPerPx  = 0.4
	inkStainFade  = 253 // 0.988 in 8.8 fixed point
	inkStainDepos = 25
)

type tendril struct {
	x, y, vx, vy float64
	px, py       float64
	age          float64
	hue          float64
	segment      int
}

// EtherealInk lets tendrils of light crawl along a noise flow field from
// each region to its right-hand neighbour, staining the wall as they go.
// A single region sheds tendrils outward.
type EtherealInk struct {
	tendrils []tendril
	fieldX   []float64
	fieldY   []float64
	stain    []uint8
	frames   []frame
	sw, sh   int
	rng      *noise.Rng
	time     float64
	spawnAcc float64
	sim      stepper
	watch    sceneWatch
}

func NewEtherealInk() *EtherealInk {
	return &EtherealInk{
		tendrils: make([]tendril, 0, maxTendrils),
		fieldX:   make([]float64, inkFieldW*inkFieldH),
		fieldY:   make([]float64, inkFieldW*inkFieldH),
		rng:      noise.NewRng(0xE1F0),
	}
}

func (e *EtherealInk) rebuild(w, h int, scene *region.Scene) {
	if e.sw != w || e.sh != h {
		e.stain = make([]uint8, w*h)
		e.sw, e.sh = w, h
	}
	e.frames = sceneFrames(scene)
	e.tendrils = e.tendrils[:0]
}

// updateField recomputes the unit flow vectors from two FBM layers, one for
// heading and one for speed.
func (e *EtherealInk) updateField() {
	t := e.time * 0.15
	for gy := range inkFieldH {
		for gx := range inkFieldW {
			nx, ny := float64(gx)*0.08, float64(gy)*0.08
			angle := noise.FBM3(nx, ny, t, 3, 42) * 4 * math.Pi
			speed := 0.3 + noise.FBM3(nx+100, ny+100, t, 2, 99)*0.7
			vx, vy := math.Cos(angle)*speed, math.Sin(angle)*speed
			l := math.Max(math.Hypot(vx, vy), 0.001)
			i := gy*inkFieldW + gx
			e.fieldX[i], e.fieldY[i] = vx/l, vy/l
		}
	}
}

// sampleField bilinearly interpolates the flow at screen position (x, y).
func (e *EtherealInk) sampleField(x, y float64) (float64, float64) {
	gx := x/float64(e.sw)*inkFieldW - 0.5
	gy := y/float64(e.sh)*inkFieldH - 0.5
	ix := clampInt(int(math.Floor(gx)), 0, inkFieldW-2)
	iy := clampInt(int(math.Floor(gy)), 0, inkFieldH-2)
	fx, fy := gx-float64(ix), gy-float64(iy)

	i00 := iy*inkFieldW + ix
	i10, i01 := i00+1, i00+inkFieldW
	i11 := i01 + 1
	w00, w10 := (1-fx)*(1-fy), fx*(1-fy)
	w01, w11 := (1-fx)*fy, fx*fy
	vx := e.fieldX[i00]*w00 + e.fieldX[i10]*w10 + e.fieldX[i01]*w01 + e.fieldX[i11]*w11
	vy := e.fieldY[i00]*w00 + e.fieldY[i10]*w10 + e.fieldY[i01]*w01 + e.fieldY[i11]*w11
	return vx, vy
}

func (e *EtherealInk) spawn(seg int) {
	if len(e.tendrils) >= maxTendrils || seg >= len(e.frames) {
		return
	}
	src := &e.frames[seg]
	x, y := src.edgePoint(e.rng.Uint32(), e.rng.Float64())

	var dx, dy float64
	if seg+1 < len(e.frames) {
		dx, dy = e.frames[seg+1].cx-x, e.frames[seg+1].cy-y
	} else {
		dx, dy = x-src.cx, y-src.cy
	}
	d := math.Max(math.Hypot(dx, dy), 1)
	speed := e.rng.Range(inkSpeed*0.7, inkSpeed*1.3)
	e.tendrils = append(e.tendrils, tendril{
		x: x, y: y, px: x, py: y,
		vx:      dx / d * speed,
		vy:      dy / d * speed,
		hue:     e.rng.Float64(),
		segment: seg,
	})
}

func (e *EtherealInk) deposit(x, y float64, v uint8) {
	px, py := int(x), int(y)
	for sy := py - 1; sy <= py+1; sy++ {
		if sy < 0 || sy >= e.sh {
			continue
		}
		for sx := px - 1; sx <= px+1; sx++ {
			if sx < 0 || sx >= e.sw {
				continue
			}
			i := sy*e.sw + sx
			e.stain[i] = sat8add(e.stain[i], v)
		}
	}
}

func (e *EtherealInk) Update(dt float64, width, height int, scene *region.Scene) {
	if e.watch.changed(scene, width, height) {
		e.rebuild(width, height, scene)
	}
	e.time += dt
	steps := e.sim.advance(dt)
	if steps == 0 {
		return
	}
	e.updateField()
	for range steps {
		e.step(simStep)
	}
}

func (e *EtherealInk) step(dt float64) {
	w, h := float64(e.sw), float64(e.sh)
	for i := 0; i < len(e.tendrils); {
		t := &e.tendrils[i]
		fvx, fvy := e.sampleField(t.x, t.y)
		t.px, t.py = t.x, t.y
		t.age += dt
		t.vx += (fvx*inkSpeed - t.vx) * inkSteer * dt
		t.vy += (fvy*inkSpeed - t.vy) * inkSteer * dt

		// pull grows with distance so far tendrils still arrive
		var target *frame
		if t.segment+1 < len(e.frames) {
			target = &e.frames[t.segment+1]
			dx, dy := target.cx-t.x, target.cy-t.y
			d := math.Max(math.Hypot(dx, dy), 1)
			pull := inkPull + d*inkPullPerPx
			t.vx += dx / d * pull * dt
			t.vy += dy / d * pull * dt
		}
		t.x += t.vx * dt
		t.y += t.vy * dt

		dead := t.age > inkMaxAge || t.x < -20 || t.x > w+20 || t.y < -20 || t.y > h+20
		if !dead && target != nil {
			dead = t.x >= target.minX && t.x <= target.maxX && t.y >= target.minY && t.y <= target.maxY
		}
		if dead {
			last := len(e.tendrils) - 1
			e.tendrils[i] = e.tendrils[last]
			e.tendrils = e.tendrils[:last]
			continue
		}
		e.deposit(t.x, t.y, uint8(inkStainDepos*(1-t.age/inkMaxAge)))
		i++
	}

	for i, v := range e.stain {
		e.stain[i] = uint8(uint16(v) * inkStainFade >> 8)
	}

	segments := len(e.frames) - 1
	if len(e.frames) == 1 {
		segments = 1
	}
	if segments <= 0 {
		return
	}
	e.spawnAcc += inkSpawnRate * dt
	for e.spawnAcc >= 1 && len(e.tendrils) < maxTendrils {
		e.spawn(int(e.rng.Uint32() % uint32(segments)))
		e.spawnAcc--
	}
}

func (e *EtherealInk) Render(buf *raster.Buffer) {
	buf.Clear(5, 5, 12)
	w, h := buf.Width(), buf.Height()

	if e.sw == w && e.sh == h {
		for y := range h {
			row := e.stain[y*w : (y+1)*w]
			for x, v := range row {
				if v > 2 {
					buf.AddPixel(x, y, uint8(uint16(v)*2/3), v/3, v)
				}
			}
		}
	}

	n := len(e.frames)
	for i, f := range e.frames {
		hue := 0.0
		if n > 1 {
			hue = float64(i) / float64(n-1) * 180
		}
		fi := float64(i)
		pulse := math.Sin(e.time*(1.5+fi*0.3)+fi*1.2)*0.25 + 0.65
		size := math.Max(f.maxX-f.minX, f.maxY-f.minY) * 0.7
		c := palette.HSV(math.Mod(220+hue, 360), 0.6, pulse)
		buf.FillCircleGradient(int(f.cx), int(f.cy), int(size), c.R, c.G, c.B, 2)
	}

	for _, t := range e.tendrils {
		frac := t.age / inkMaxAge
		bright := math.Min(1-frac*0.6, 1)
		if bright < 0.02 {
			continue
		}
		segHue := 0.0
		if n > 1 {
			segHue = float64(t.segment) / float64(n-1) * 120
		}
		hue := math.Mod(t.hue*360+segHue+e.time*25+frac*120, 360)
		c := palette.HSV(hue, 0.7, bright)

		dx, dy := t.x-t.px, t.y-t.py
		l := math.Max(math.Hypot(dx, dy), 0.001)
		nx, ny := -dy/l*1.2, dx/l*1.2
		buf.LineAAAdditive(t.px, t.py, t.x, t.y, c.R, c.G, c.B)
		side := palette.Scale(c, 0.75)
		buf.LineAAAdditive(t.px+nx, t.py+ny, t.x+nx, t.y+ny, side.R, side.G, side.B)
		buf.LineAAAdditive(t.px-nx, t.py-ny, t.x-nx, t.y-ny, side.R, side.G, side.B)

		if frac < 0.3 {
			hr, hg, hb := sat8add(c.R, 80), sat8add(c.G, 80), sat8add(c.B, 80)
			x, y := int(t.x), int(t.y)
			buf.AddPixel(x, y, hr, hg, hb)
			for _, o := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				buf.AddPixel(x+o[0], y+o[1], hr/2, hg/2, hb/2)
			}
		}
	}

	buf.Bloom(60, 4, 0.8)
}

func (e *EtherealInk) RegionColor() raster.RGB { return rgb(5, 5, 12) }
func (e *EtherealInk) Name() string            { return "Ethereal Ink" }
