package effect

import (
	"bytes"
	"math"
	"testing"

	"wallfacer/internal/geometry"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const frameDt = 1.0 / 60.0

func squareScene() *region.Scene {
	s := region.NewScene("wall")
	s.Add(region.NewPolygonRegion("region_1", region.NewPolygon(
		[2]float64{200, 200}, [2]float64{440, 200}, [2]float64{440, 280}, [2]float64{200, 280})))
	return s
}

func mixedScene() *region.Scene {
	s := squareScene()
	s.Add(region.NewCircleRegion("clock", region.NewCircle(100, 120, 40)))
	return s
}

func TestStepperAdvance(t *testing.T) {
	tests := []struct {
		name    string
		deltas  []float64
		want    int
		wantAcc float64
	}{
		{"zero", []float64{0}, 0, 0},
		{"negative ignored", []float64{-1}, 0, 0},
		{"one step", []float64{simStep}, 1, 0},
		{"half step carries", []float64{simStep / 2}, 0, simStep / 2},
		{"cap drops remainder", []float64{1}, maxSimSteps, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s stepper
			n := 0
			for _, dt := range tt.deltas {
				n = s.advance(dt)
			}
			if n != tt.want {
				t.Errorf("steps = %d, want %d", n, tt.want)
			}
			if math.Abs(s.acc-tt.wantAcc) > 1e-9 {
				t.Errorf("acc = %v, want %v", s.acc, tt.wantAcc)
			}
		})
	}
}

func TestSceneWatch(t *testing.T) {
	var sw sceneWatch
	s := squareScene()
	if !sw.changed(s, 640, 480) {
		t.Fatal("first call should report a change")
	}
	if sw.changed(s, 640, 480) {
		t.Error("same scene and size reported as changed")
	}
	if !sw.changed(s, 320, 240) {
		t.Error("resize not detected")
	}
	s.Add(region.NewCircleRegion("c", region.NewCircle(10, 10, 5)))
	if !sw.changed(s, 320, 240) {
		t.Error("added region not detected")
	}
}

func TestDvdEscapesRegion(t *testing.T) {
	scene := squareScene()
	verts := regionVerts(scene, circleSegs)[0]
	d := NewDvd()
	d.x, d.y, d.vx, d.vy = 220, 210, 120, 80

	for i := 0; i < 100; i++ {
		d.Update(frameDt, 640, 480, scene)
		if c, ok := geometry.RectPolygonCollision(d.x, d.y, d.w, d.h, verts); ok && c.Depth > 1e-6 {
			t.Fatalf("frame %d: logo at (%.1f,%.1f) overlaps region by %.2f", i, d.x, d.y, c.Depth)
		}
		if d.rapid > rapidCap {
			t.Fatalf("frame %d: rapid bounce count %d", i, d.rapid)
		}
		if d.x < 0 || d.y < 0 || d.x+d.w > 640 || d.y+d.h > 480 {
			t.Fatalf("frame %d: logo left the screen at (%.1f,%.1f)", i, d.x, d.y)
		}
	}
}

func TestMandelbrotCenterInside(t *testing.T) {
	m := NewMandelbrot()
	buf := raster.New(320, 240)
	m.Render(buf)
	i := (120*320 + 160) * 4
	if got := buf.Bytes()[i : i+4]; !bytes.Equal(got, []byte{255, 0, 0, 0}) {
		t.Errorf("center pixel = %v, want [255 0 0 0]", got)
	}
}

func TestFireAccumulator(t *testing.T) {
	f := NewFire()
	buf := raster.New(640, 480)

	f.Update(0, 640, 480, nil)
	f.Render(buf)
	for x := 0; x < f.grid.w; x++ {
		if f.grid.heat[x] != 0 {
			t.Fatalf("top row heat[%d] = %d on first frame", x, f.grid.heat[x])
		}
	}
	for _, dt := range []float64{1, 1} {
		f.Update(dt, 640, 480, nil)
		f.Render(buf)
		if f.sim.acc > simStep {
			t.Errorf("after dt=%v accumulator = %v", dt, f.sim.acc)
		}
	}
	if f.grid.w != 160 || f.grid.h != 120 {
		t.Errorf("grid = %dx%d, want 160x120", f.grid.w, f.grid.h)
	}
}

func TestLivingWallObstacles(t *testing.T) {
	scene := region.NewScene("wall")
	scene.Add(region.NewCircleRegion("clock", region.NewCircle(320, 240, 50)))
	lw := NewLivingWall()
	for range 60 {
		lw.Update(frameDt, 640, 480, scene)
	}

	circle := region.NewCircle(320, 240, 50)
	outside := false
	for gy := 0; gy < lw.gh; gy++ {
		for gx := 0; gx < lw.gw; gx++ {
			i := gy*lw.gw + gx
			cx := float64(gx*lwCell) + lwCell/2.0
			cy := float64(gy*lwCell) + lwCell/2.0
			if circle.Contains(cx, cy) {
				if lw.u[i] != 1 || lw.v[i] != 0 {
					t.Fatalf("cell (%d,%d) inside region has U=%v V=%v", gx, gy, lw.u[i], lw.v[i])
				}
				continue
			}
			if lw.v[i] > 0 {
				outside = true
			}
		}
	}
	if !outside {
		t.Error("no V chemical outside the region")
	}
}

func TestSnowfallSettles(t *testing.T) {
	s := NewSnowfall()
	scene := squareScene()
	buf := raster.New(640, 480)
	for range 600 {
		s.Update(frameDt, 640, 480, scene)
	}
	s.Render(buf)
	if s.active == 0 {
		t.Error("no falling flakes after ten seconds")
	}
	onTop := 0
	for x := 200; x < 440; x++ {
		onTop += s.onRegion[x]
	}
	if onTop == 0 {
		t.Error("no snow piled on the region")
	}
	for x := 0; x < 200; x++ {
		if s.onRegion[x] != 0 {
			t.Fatalf("column %d outside the region holds %d", x, s.onRegion[x])
		}
	}
}

func TestDeterministic(t *testing.T) {
	a, b := NewRegistry(nil), NewRegistry(nil)
	scene := mixedScene()
	for i := 0; i < a.Len(); i++ {
		ea, eb := a.At(i), b.At(i)
		t.Run(ea.Name(), func(t *testing.T) {
			ba, bb := raster.New(160, 120), raster.New(160, 120)
			for range 10 {
				ea.Update(frameDt, 160, 120, scene)
				eb.Update(frameDt, 160, 120, scene)
			}
			ea.Render(ba)
			eb.Render(bb)
			if !bytes.Equal(ba.Bytes(), bb.Bytes()) {
				t.Error("two instances rendered different frames")
			}
		})
	}
}

func TestEffectsSurviveResize(t *testing.T) {
	r := NewRegistry(nil)
	scene := mixedScene()
	all := []Effect{NewTestPattern(), NewCheckerRotozoomer(), NewPlasmaRotozoomer()}
	for i := 0; i < r.Len(); i++ {
		all = append(all, r.At(i))
	}
	sizes := [][2]int{{64, 48}, {320, 240}, {97, 61}}
	for _, e := range all {
		t.Run(e.Name(), func(t *testing.T) {
			for _, sz := range sizes {
				buf := raster.New(sz[0], sz[1])
				for range 3 {
					e.Update(frameDt, sz[0], sz[1], scene)
					e.Render(buf)
				}
				e.Update(0.25, sz[0], sz[1], nil)
				e.Render(buf)
			}
			if e.Name() == "" {
				t.Error("empty name")
			}
		})
	}
}

func TestMaskRegionsIdempotent(t *testing.T) {
	scene := mixedScene()
	e := NewPlasma()
	e.Update(frameDt, 640, 480, scene)
	buf := raster.New(640, 480)
	e.Render(buf)
	buf.MaskRegions(scene, e.RegionColor())
	once := append([]byte(nil), buf.Bytes()...)
	buf.MaskRegions(scene, e.RegionColor())
	if !bytes.Equal(once, buf.Bytes()) {
		t.Error("masking twice changed the frame")
	}
}

func TestRegistryWrap(t *testing.T) {
	r := NewRegistry(nil)
	if r.Len() != 30 {
		t.Fatalf("Len = %d, want 30", r.Len())
	}
	if r.Index() != 0 {
		t.Fatalf("initial index = %d", r.Index())
	}

	r.Prev()
	if r.Index() != TestPatternIndex {
		t.Errorf("Prev from 0 = %d, want test pattern", r.Index())
	}
	if r.Current().Name() != "Test Pattern" {
		t.Errorf("Current = %q", r.Current().Name())
	}
	r.Prev()
	if r.Index() != r.Len()-1 {
		t.Errorf("Prev from test pattern = %d, want %d", r.Index(), r.Len()-1)
	}
	r.Next()
	if r.Index() != TestPatternIndex {
		t.Errorf("Next from last = %d, want test pattern", r.Index())
	}
	r.Next()
	if r.Index() != 0 {
		t.Errorf("Next from test pattern = %d, want 0", r.Index())
	}

	if r.Select(r.Len()) {
		t.Error("Select past the end succeeded")
	}
	if !r.Select(6) || r.Current().Name() != "DVD Bounce" {
		t.Errorf("Select(6) = %q", r.Current().Name())
	}
	r.SelectTestPattern()
	if r.Index() != TestPatternIndex {
		t.Errorf("SelectTestPattern index = %d", r.Index())
	}
}

func TestEmptyRegistry(t *testing.T) {
	r := NewRegistryOf(NewTestPattern())
	if r.Index() != TestPatternIndex {
		t.Fatalf("index = %d", r.Index())
	}
	r.Next()
	r.Prev()
	if r.Index() != TestPatternIndex {
		t.Errorf("index after wrap = %d", r.Index())
	}
}

func TestSlotForKey(t *testing.T) {
	tests := []struct {
		key  rune
		want int
		ok   bool
	}{
		{'1', 0, true},
		{'0', 9, true},
		{'-', 10, true},
		{'=', 11, true},
		{'[', 12, true},
		{']', 13, true},
		{'a', -1, false},
	}
	for _, tt := range tests {
		got, ok := SlotForKey(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("SlotForKey(%q) = %d, %v", tt.key, got, ok)
		}
	}
}

func TestMipLevel(t *testing.T) {
	tests := []struct {
		zoom   float64
		levels int
		want   int
	}{
		{4, 9, 0},
		{1, 9, 0},
		{0.5, 9, 1},
		{0.25, 9, 2},
		{0.001, 3, 2},
	}
	for _, tt := range tests {
		if got := mipLevel(tt.zoom, tt.levels); got != tt.want {
			t.Errorf("mipLevel(%v, %d) = %d, want %d", tt.zoom, tt.levels, got, tt.want)
		}
	}
}

func TestGravityBallsBounceOffRegions(t *testing.T) {
	scene := squareScene()
	scene.Add(region.NewCircleRegion("clock", region.NewCircle(320, 400, 40)))
	square := regionVerts(squareScene(), circleSegs)[0]
	g := NewGravityBalls()
	moved := false
	for i := 0; i < 600; i++ {
		g.Update(frameDt, 640, 480, scene)
		if len(g.balls) != gballCount {
			t.Fatalf("frame %d: %d balls", i, len(g.balls))
		}
		for j, b := range g.balls {
			if geometry.PointInPolygon(b.x, b.y, square) {
				t.Fatalf("frame %d: ball %d centre (%.1f,%.1f) inside the square", i, j, b.x, b.y)
			}
			if geometry.DistanceSquared(b.x, b.y, 320, 400) < 40*40 {
				t.Fatalf("frame %d: ball %d centre (%.1f,%.1f) inside the circle", i, j, b.x, b.y)
			}
			if len(b.trail) > gballTrail {
				t.Fatalf("trail length %d", len(b.trail))
			}
			if len(b.trail) > 0 && (b.trail[0][0] != b.x || b.trail[0][1] != b.y) {
				moved = true
			}
		}
	}
	if !moved {
		t.Error("no ball moved")
	}
}

func TestGravityBallsRespawnOnResize(t *testing.T) {
	g := NewGravityBalls()
	g.Update(frameDt, 640, 480, nil)
	g.Update(frameDt, 200, 100, nil)
	for i, b := range g.balls {
		if b.radius > 0.05*100 {
			t.Errorf("ball %d radius %.1f not rescaled", i, b.radius)
		}
	}
}

func TestLavaColor(t *testing.T) {
	tests := []struct {
		heat float64
		want raster.RGB
	}{
		{-1, raster.RGB{R: 80}},
		{0, raster.RGB{R: 80}},
		{0.45, raster.RGB{R: 255, G: 95}},
		{1, raster.RGB{R: 255, G: 255, B: 255}},
		{2, raster.RGB{R: 255, G: 255, B: 255}},
	}
	for _, tt := range tests {
		if got := lavaColor(tt.heat); got != tt.want {
			t.Errorf("lavaColor(%v) = %v, want %v", tt.heat, got, tt.want)
		}
	}
}

func TestLavaEmbersRise(t *testing.T) {
	l := NewLavaRegions()
	scene := squareScene()
	for range 120 {
		l.Update(frameDt, 640, 480, scene)
		if c := l.RegionColor(); c.R != 255 {
			t.Fatalf("region colour %v is not molten", c)
		}
	}
	if len(l.embers) == 0 {
		t.Fatal("no embers after two seconds")
	}
	for _, e := range l.embers {
		if e.vy >= 0 || e.y > 200 {
			t.Fatalf("ember at y=%.1f moving %.1f", e.y, e.vy)
		}
	}

	crowded := region.NewScene("wall")
	for i := range 8 {
		x := float64(20 + i*70)
		crowded.Add(region.NewPolygonRegion("r", region.NewPolygon(
			[2]float64{x, 300}, [2]float64{x + 60, 300}, [2]float64{x + 60, 360})))
	}
	for range 600 {
		l.Update(frameDt, 640, 480, crowded)
	}
	if len(l.embers) > maxEmbers {
		t.Errorf("%d embers, cap is %d", len(l.embers), maxEmbers)
	}
}

func TestEtherealInkFlowsBetweenRegions(t *testing.T) {
	scene := region.NewScene("wall")
	scene.Add(region.NewPolygonRegion("right", region.NewPolygon(
		[2]float64{480, 200}, [2]float64{560, 200}, [2]float64{560, 280}, [2]float64{480, 280})))
	scene.Add(region.NewPolygonRegion("left", region.NewPolygon(
		[2]float64{80, 200}, [2]float64{160, 200}, [2]float64{160, 280}, [2]float64{80, 280})))
	e := NewEtherealInk()
	buf := raster.New(640, 480)
	for range 180 {
		e.Update(frameDt, 640, 480, scene)
	}
	e.Render(buf)

	if len(e.frames) != 2 || e.frames[0].cx > e.frames[1].cx {
		t.Fatalf("frames not ordered left to right: %+v", e.frames)
	}
	if len(e.tendrils) == 0 || len(e.tendrils) > maxTendrils {
		t.Fatalf("%d live tendrils", len(e.tendrils))
	}
	for _, td := range e.tendrils {
		if td.segment != 0 {
			t.Fatalf("tendril on segment %d with two regions", td.segment)
		}
		if td.x >= 480 && td.x <= 560 && td.y >= 200 && td.y <= 280 {
			t.Fatalf("tendril at (%.1f,%.1f) survived inside its target", td.x, td.y)
		}
	}
	stained := false
	for _, v := range e.stain {
		if v > 0 {
			stained = true
			break
		}
	}
	if !stained {
		t.Error("no stain left behind")
	}
}

func TestEtherealInkNeedsRegions(t *testing.T) {
	e := NewEtherealInk()
	for range 60 {
		e.Update(frameDt, 320, 240, region.NewScene("empty"))
	}
	if len(e.tendrils) != 0 {
		t.Errorf("%d tendrils without regions", len(e.tendrils))
	}

	single := region.NewScene("one")
	single.Add(region.NewCircleRegion("clock", region.NewCircle(160, 120, 30)))
	for range 30 {
		e.Update(frameDt, 320, 240, single)
	}
	if len(e.tendrils) == 0 {
		t.Error("a lone region shed no tendrils")
	}
}

// One long frame must advance the same number of fixed steps as the
// equivalent run of short frames.
func TestLivingWallFollowsDt(t *testing.T) {
	scene := squareScene()
	a, b := NewLivingWall(), NewLivingWall()
	a.Update(simStep, 640, 480, scene)
	a.Update(simStep, 640, 480, scene)
	b.Update(2*simStep, 640, 480, scene)
	for i := range a.v {
		if a.v[i] != b.v[i] || a.u[i] != b.u[i] {
			t.Fatalf("cell %d differs: %v/%v vs %v/%v", i, a.u[i], a.v[i], b.u[i], b.v[i])
		}
	}

	before := append([]float64(nil), a.v...)
	a.Update(0, 640, 480, scene)
	for i := range before {
		if a.v[i] != before[i] {
			t.Fatal("zero dt advanced the reaction")
		}
	}
}

func TestRipplesPauseAtZeroDt(t *testing.T) {
	r := NewRipples()
	scene := mixedScene()
	r.Update(frameDt, 640, 480, scene)
	before := append([]float64(nil), r.height...)
	r.Update(0, 640, 480, scene)
	for i := range before {
		if r.height[i] != before[i] {
			t.Fatal("zero dt moved the water")
		}
	}
}

func TestGlenzCoreIsDepthTested(t *testing.T) {
	g := NewGlenz()
	buf := raster.New(320, 240)
	g.Update(frameDt, 320, 240, nil)
	g.Render(buf)
	if d := g.zbuf.DepthAt(160, 120); d >= glenzCameraZ {
		t.Errorf("centre depth = %v, want the core in front of %v", d, glenzCameraZ)
	}
	if d := g.zbuf.DepthAt(0, 0); !math.IsInf(d, 1) {
		t.Errorf("corner depth = %v, want +Inf", d)
	}
	if r, gr, bl, _ := buf.Pixel(160, 120); r == 0 && gr == 0 && bl == 0 {
		t.Error("core not blitted to the frame")
	}
}

func TestVectorBallsDepth(t *testing.T) {
	vb := NewVectorBalls()
	buf := raster.New(320, 240)
	vb.Update(frameDt, 320, 240, nil)
	vb.Render(buf)
	if len(vb.balls) == 0 {
		t.Fatal("no balls projected")
	}
	for i, b := range vb.balls {
		if d := vb.zbuf.DepthAt(int(b.x), int(b.y)); d > b.z {
			t.Errorf("ball %d: depth %v behind its centre %v", i, d, b.z)
		}
	}
}
