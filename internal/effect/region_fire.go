package effect

import (
	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

// RegionFire burns on top of the scene's regions. Each column is seeded at
// the topmost region cell and flames climb from there; cells inside regions
// hold no heat. Columns without a region burn from the bottom edge.
type RegionFire struct {
	grid    heatGrid
	pal     []raster.RGB
	time    float64
	sim     stepper
	watch   sceneWatch
	blocked []bool
	surface []int
}

func NewRegionFire() *RegionFire {
	return &RegionFire{grid: newHeatGrid(0xF1E3ABCD), pal: palette.Fire()}
}

func (f *RegionFire) rebuild(scene *region.Scene) {
	g := &f.grid
	f.blocked = obstacleGrid(scene, g.w, g.h, fireCell)
	f.surface = make([]int, g.w)
	for x := range f.surface {
		f.surface[x] = g.h - 1
		for y := 0; y < g.h; y++ {
			if f.blocked[y*g.w+x] {
				f.surface[x] = y - 1
				break
			}
		}
	}
}

func (f *RegionFire) Update(dt float64, w, h int, scene *region.Scene) {
	resized := f.grid.resize(w, h)
	if f.watch.changed(scene, w, h) || resized {
		f.rebuild(scene)
	}
	f.time += dt

	g := &f.grid
	for n := f.sim.advance(dt); n > 0; n-- {
		for x, y := range f.surface {
			if y >= 0 {
				g.seed(x, y, f.time)
			}
		}
		g.propagate(f.time)
		for i, b := range f.blocked {
			if b {
				g.heat[i] = 0
			}
		}
	}
}

func (f *RegionFire) Render(buf *raster.Buffer) {
	buf.Clear(5, 2, 0)
	g := &f.grid
	if len(f.blocked) != len(g.heat) {
		return
	}
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			if f.blocked[i] || g.heat[i] == 0 {
				continue
			}
			c := f.pal[g.heat[i]]
			buf.FillRect(x*fireCell, y*fireCell, fireCell, fireCell, c.R, c.G, c.B)
		}
	}
}

func (f *RegionFire) RegionColor() raster.RGB { return rgb(5, 2, 0) }
func (f *RegionFire) Name() string            { return "Region Fire" }
