// Package effect holds the animated wall effects and the registry that
// orders them by keyboard slot.
//
// Every effect is updated once per frame with the elapsed time, the logical
// viewport and the current scene, then rendered into a raster.Buffer. Render
// never reads the scene: anything derived from regions is computed in Update.
package effect

import (
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

// Effect is one animated visual.
type Effect interface {
	// Update advances the simulation by dt seconds for a width×height viewport.
	Update(dt float64, width, height int, scene *region.Scene)
	// Render draws the current state into buf.
	Render(buf *raster.Buffer)
	// RegionColor is the backdrop used to mask scene regions.
	RegionColor() raster.RGB
	Name() string
}

const (
	simStep     = 1.0 / 60.0
	maxSimSteps = 4
)

// stepper turns variable frame deltas into a bounded number of fixed
// simulation steps. When the cap is hit the remaining time is dropped.
type stepper struct {
	acc float64
}

// advance adds dt and returns how many fixed steps to run this frame.
func (s *stepper) advance(dt float64) int {
	if dt > 0 {
		s.acc += dt
	}
	n := 0
	for s.acc >= simStep && n < maxSimSteps {
		s.acc -= simStep
		n++
	}
	if n >= maxSimSteps {
		s.acc = 0
	}
	return n
}

// sceneWatch remembers the last scene fingerprint and viewport an effect
// built derived state for.
type sceneWatch struct {
	fp    uint64
	w, h  int
	valid bool
}

// changed reports whether the scene or viewport differs from the last call
// and records the new values.
func (sw *sceneWatch) changed(scene *region.Scene, w, h int) bool {
	fp := scene.Fingerprint()
	if sw.valid && sw.fp == fp && sw.w == w && sw.h == h {
		return false
	}
	sw.fp, sw.w, sw.h, sw.valid = fp, w, h, true
	return true
}

// depthTarget returns a depth-tested scratch buffer sized to buf, reusing
// cur when it already fits. The colour plane is cleared to black and the
// depth plane to +Inf.
func depthTarget(cur, buf *raster.Buffer) *raster.Buffer {
	if cur == nil || !cur.HasDepth() || cur.Width() != buf.Width() || cur.Height() != buf.Height() {
		cur = raster.NewWithDepth(buf.Width(), buf.Height())
	}
	cur.Clear(0, 0, 0)
	cur.ClearDepth()
	return cur
}

// regionVerts returns the polygon outline of every region. Circles are
// approximated with segs-sided polygons.
func regionVerts(scene *region.Scene, segs int) [][][2]float64 {
	if scene == nil {
		return nil
	}
	out := make([][][2]float64, 0, len(scene.Regions))
	for i := range scene.Regions {
		switch sh := scene.Regions[i].Shape.(type) {
		case *region.Polygon:
			if sh.IsClosed() {
				out = append(out, sh.AsTuples(nil))
			}
		case *region.Circle:
			out = append(out, circleVerts(sh.Center.X, sh.Center.Y, sh.Radius, segs))
		}
	}
	return out
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func rgb(r, g, b uint8) raster.RGB { return raster.RGB{R: r, G: g, B: b} }
