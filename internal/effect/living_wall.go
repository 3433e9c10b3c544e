package effect

import (
	"wallfacer/internal/noise"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

// Gray–Scott parameters; these give mitosis-like spots.
const (
	lwCell  = 2
	lwDu    = 0.16
	lwDv    = 0.08
	lwFeed  = 0.035
	lwKill  = 0.065
	lwSteps = 8 // reaction steps per fixed simulation step
	lwSeed  = 8 // cells around each region bounding box that may be seeded
)

// LivingWall grows reaction-diffusion patterns around the regions. Region
// cells are obstacles pinned at U=1, V=0 that reflect the Laplacian, and the
// outer border is held at the same values.
type LivingWall struct {
	u, v         []float64
	uNext, vNext []float64
	obstacle     []bool
	gw, gh       int
	rng          *noise.Rng
	time         float64
	sim          stepper
	watch        sceneWatch
}

func NewLivingWall() *LivingWall {
	return &LivingWall{rng: noise.NewRng(0xAC1D)}
}

func (lw *LivingWall) rebuild(w, h int, scene *region.Scene) {
	lw.gw = (w + lwCell - 1) / lwCell
	lw.gh = (h + lwCell - 1) / lwCell
	n := lw.gw * lw.gh
	lw.u = fill(make([]float64, n), 1)
	lw.v = make([]float64, n)
	lw.uNext = fill(make([]float64, n), 1)
	lw.vNext = make([]float64, n)
	lw.obstacle = obstacleGrid(scene, lw.gw, lw.gh, lwCell)

	for _, b := range regionBoxes(scene) {
		gx0 := clampInt((b.minX-lwSeed*lwCell)/lwCell, 0, lw.gw-1)
		gx1 := clampInt((b.maxX+lwSeed*lwCell+1)/lwCell+1, 0, lw.gw)
		gy0 := clampInt((b.minY-lwSeed*lwCell)/lwCell, 0, lw.gh-1)
		gy1 := clampInt((b.maxY+lwSeed*lwCell+1)/lwCell+1, 0, lw.gh)
		for gy := gy0; gy < gy1; gy++ {
			for gx := gx0; gx < gx1; gx++ {
				i := gy*lw.gw + gx
				if !lw.obstacle[i] && lw.rng.Float64() < 0.15 {
					lw.v[i] = lw.rng.Range(0.15, 0.3)
					lw.u[i] = 0.5
				}
			}
		}
	}
}

func (lw *LivingWall) step() {
	gw, gh := lw.gw, lw.gh
	for y := 1; y < gh-1; y++ {
		for x := 1; x < gw-1; x++ {
			i := y*gw + x
			if lw.obstacle[i] {
				lw.uNext[i], lw.vNext[i] = 1, 0
				continue
			}
			u, v := lw.u[i], lw.v[i]
			var su, sv float64
			for _, j := range [4]int{i - 1, i + 1, i - gw, i + gw} {
				if lw.obstacle[j] {
					su += u
					sv += v
				} else {
					su += lw.u[j]
					sv += lw.v[j]
				}
			}
			uvv := u * v * v
			lw.uNext[i] = clampf(u+lwDu*(su-4*u)-uvv+lwFeed*(1-u), 0, 1)
			lw.vNext[i] = clampf(v+lwDv*(sv-4*v)+uvv-(lwFeed+lwKill)*v, 0, 1)
		}
	}
	lw.u, lw.uNext = lw.uNext, lw.u
	lw.v, lw.vNext = lw.vNext, lw.v
}

func (lw *LivingWall) Update(dt float64, w, h int, scene *region.Scene) {
	if lw.watch.changed(scene, w, h) {
		lw.rebuild(w, h, scene)
	}
	lw.time += dt
	for range lw.sim.advance(dt) * lwSteps {
		lw.step()
	}
}

func (lw *LivingWall) Render(buf *raster.Buffer) {
	buf.Clear(5, 5, 8)
	if lw.gw == 0 || lw.gh == 0 {
		return
	}
	for py := 0; py < buf.Height(); py++ {
		gy := min(py/lwCell, lw.gh-1)
		for px := 0; px < buf.Width(); px++ {
			gi := gy*lw.gw + min(px/lwCell, lw.gw-1)
			v := lw.v[gi]
			if lw.obstacle[gi] || v <= 0.01 {
				continue
			}
			u := lw.u[gi]
			t := min(v, 0.5) * 2
			buf.SetPixel(px, py,
				raster.Clamp255(5+t*120+(1-u)*40),
				raster.Clamp255(5+t*180*u),
				raster.Clamp255(8+t*140+(1-u)*60))
		}
	}
	buf.Bloom(25, 2, 0.3)
}

func (lw *LivingWall) RegionColor() raster.RGB { return rgb(5, 5, 8) }
func (lw *LivingWall) Name() string            { return "Living Wall" }

func fill(s []float64, v float64) []float64 {
	for i := range s {
		s[i] = v
	}
	return s
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
