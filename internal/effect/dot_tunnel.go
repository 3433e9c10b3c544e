package effect

import (
	"math"
	"slices"

	"wallfacer/internal/mathutil"
	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const (
	tunnelRings  = 40
	dotsPerRing  = 16
	tunnelNearZ  = 50.0
	tunnelFarZ   = 800.0
	tunnelSpeed  = 200.0
	dotTunnelFov = 300.0
)

// DotTunnel flies through twisting rings of dots whose radius breathes with
// depth and time.
type DotTunnel struct {
	time  float64
	rings []float64 // ring depths
	order []float64
}

func NewDotTunnel() *DotTunnel {
	rings := make([]float64, tunnelRings)
	spacing := (tunnelFarZ - tunnelNearZ) / tunnelRings
	for i := range rings {
		rings[i] = tunnelNearZ + float64(i)*spacing
	}
	return &DotTunnel{rings: rings}
}

func (d *DotTunnel) Update(dt float64, _, _ int, _ *region.Scene) {
	d.time += dt
	for i := range d.rings {
		d.rings[i] -= tunnelSpeed * dt
		if d.rings[i] < 1 {
			d.rings[i] += tunnelFarZ - tunnelNearZ
		}
	}
}

func (d *DotTunnel) Render(buf *raster.Buffer) {
	w, h := float64(buf.Width()), float64(buf.Height())
	cx, cy := w/2, h/2
	scale := math.Min(w, h) / 480
	fov := dotTunnelFov * scale
	buf.Clear(0, 0, 0)

	// far rings first so near dots overdraw them
	d.order = append(d.order[:0], d.rings...)
	slices.Sort(d.order)
	slices.Reverse(d.order)

	t := d.time
	for _, z := range d.order {
		twist := z*0.008 + t*0.5
		radius := 120 + 40*math.Sin(z*0.015+t*1.5) + 20*math.Cos(z*0.025-t*0.8)
		hue := math.Mod(z*0.5+t*40, 360)
		for k := range dotsPerRing {
			a := twist + float64(k)*2*math.Pi/dotsPerRing
			pos := mathutil.Vec3{radius * math.Cos(a), radius * math.Sin(a), z}
			sx, sy, near, ok := mathutil.ProjectWithDepth(pos, fov, cx, cy, tunnelFarZ)
			if !ok {
				continue
			}
			c := palette.HSV(hue, 0.8, 0.3+near*0.7)
			if size := (2 + near*6) * scale; size > 1.5 {
				buf.FillCircle(int(sx), int(sy), int(size), c.R, c.G, c.B)
			} else {
				buf.SplatPixel(sx, sy, c.R, c.G, c.B, near)
			}
		}
	}
}

func (d *DotTunnel) RegionColor() raster.RGB { return raster.RGB{} }
func (d *DotTunnel) Name() string            { return "Dot Tunnel" }
