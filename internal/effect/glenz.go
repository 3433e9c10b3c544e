package effect

import (
	"math"

	"wallfacer/internal/mathutil"
	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const (
	glenzFov     = 400.0
	glenzCameraZ = 350.0
	glenzCore    = 60.0
)

var glenzCoreAxis = mathutil.Vec3{1, 2, 0.5}

// Glenz spins a translucent mesh whose faces are painted additively back
// to front, so overlapping faces glow where they stack. A small solid core
// tumbles inside it, depth tested and lit.
type Glenz struct {
	time     float64
	mesh     *mathutil.Mesh
	core     *mathutil.Mesh
	rot, spd mathutil.Vec3
	view     []mathutil.Vec3
	coreView []mathutil.Vec3
	order    []faceDepth
	light    raster.LightConfig
	zbuf     *raster.Buffer
}

func NewGlenz() *Glenz {
	return &Glenz{
		mesh:  mathutil.Cube(150),
		core:  mathutil.Cube(glenzCore),
		spd:   mathutil.Vec3{0.7, 1.1, 0.5},
		light: raster.DefaultLightConfig(),
	}
}

// SetShape switches between "cube" and "sphere". Unknown names select the cube.
func (g *Glenz) SetShape(shape string) {
	switch shape {
	case "sphere":
		g.mesh = mathutil.Sphere(120, 1)
	default:
		g.mesh = mathutil.Cube(150)
	}
}

func (g *Glenz) Update(dt float64, _, _ int, _ *region.Scene) {
	g.time += dt
	g.rot = g.rot.Add(g.spd.Scale(dt))
}

func (g *Glenz) Render(buf *raster.Buffer) {
	cx, cy := float64(buf.Width())/2, float64(buf.Height())/2
	g.zbuf = depthTarget(g.zbuf, buf)
	g.renderCore(g.zbuf, cx, cy)
	buf.Blit(g.zbuf, 0, 0)

	orient := mathutil.QuatToMat3(mathutil.EulerToQuat(g.rot[0], g.rot[1], g.rot[2]))
	g.view = g.mesh.Transform(mathutil.FromMat3Translation(orient, mathutil.Vec3{0, 0, glenzCameraZ}), g.view)
	g.order = paintOrder(g.view, g.mesh.Faces, g.order)
	for _, fd := range g.order {
		f := g.mesh.Faces[fd.face]
		pts, ok := projectFace(g.view, f, glenzFov, cx, cy)
		if !ok {
			continue
		}
		n := mathutil.FaceNormalOf(g.view[f[0]], g.view[f[1]], g.view[f[2]])
		hue := math.Mod(float64(fd.face)*30+g.time*50, 360)
		c := palette.HSV(hue, 0.6, 0.4+math.Abs(n[2])*0.4)
		buf.FillPolygonAdditive(pts, c.R, c.G, c.B)
	}
}

// renderCore draws the solid inner cube into a depth-tested target.
func (g *Glenz) renderCore(dst *raster.Buffer, cx, cy float64) {
	orient := mathutil.QuatToMat3(mathutil.AxisAngle(glenzCoreAxis, -g.time*1.3))
	g.coreView = g.core.Transform(mathutil.FromMat3Translation(orient, mathutil.Vec3{0, 0, glenzCameraZ}), g.coreView)
	var tri [3]mathutil.Vec3
	for _, f := range g.core.Faces {
		n := mathutil.FaceNormalOf(g.coreView[f[0]], g.coreView[f[1]], g.coreView[f[2]])
		if n[2] >= 0 {
			continue
		}
		ok := true
		for k, vi := range f {
			v := g.coreView[vi]
			sx, sy, vis := mathutil.Project(v, glenzFov, cx, cy)
			if !vis {
				ok = false
				break
			}
			tri[k] = mathutil.Vec3{sx, sy, v[2]}
		}
		if ok {
			dst.FillTriangleDepth(tri[0], tri[1], tri[2], n, 90, 110, 200, &g.light)
		}
	}
}

func (g *Glenz) RegionColor() raster.RGB { return raster.RGB{} }
func (g *Glenz) Name() string            { return "Glenz Vectors" }
