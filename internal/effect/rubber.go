package effect

import (
	"math"

	"wallfacer/internal/mathutil"
	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
)

const rubberCameraZ = 400.0

// Rubber wobbles a Gouraud shaded cube whose corners drift independently.
type Rubber struct {
	time     float64
	base     []mathutil.Vec3
	mesh     *mathutil.Mesh
	rot, spd mathutil.Vec3
	orient   mathutil.Mat3
	light    raster.LightConfig

	deformed, view []mathutil.Vec3
	order          []faceDepth
}

func NewRubber() *Rubber {
	mesh := mathutil.Cube(160)
	lc := raster.DefaultLightConfig()
	lc.LightDir = mathutil.Vec3{0.5, 0.7, 0.5}.Normalize()
	return &Rubber{
		base:  append([]mathutil.Vec3(nil), mesh.Vertices...),
		mesh:  mesh,
		spd:   mathutil.Vec3{0.6, 0.9, 0.4},
		light: lc,
	}
}

// deform displaces every corner on its own per-axis sines plus a radial pulse.
func (r *Rubber) deform() {
	r.deformed = r.deformed[:0]
	t := r.time
	for i, v := range r.base {
		fi := float64(i)
		wobble := mathutil.Vec3{
			math.Sin(t*2.3+fi*0.8) * 25,
			math.Sin(t*1.7+fi*1.2) * 25,
			math.Sin(t*3.1+fi*0.5) * 25,
		}
		radial := math.Sin(t*2+fi*0.9) * 20
		r.deformed = append(r.deformed, v.Add(wobble).Add(v.Normalize().Scale(radial)))
	}
}

func (r *Rubber) Update(dt float64, _, _ int, _ *region.Scene) {
	r.time += dt
	r.rot = r.rot.Add(r.spd.Scale(dt))
}

func (r *Rubber) rotate(v mathutil.Vec3) mathutil.Vec3 {
	return r.orient.MulVec3(v)
}

func (r *Rubber) Render(buf *raster.Buffer) {
	w, h := float64(buf.Width()), float64(buf.Height())
	cx, cy := w/2, h/2
	fov := 400 * math.Min(w, h) / 480
	buf.Clear(0, 0, 0)

	r.orient = mathutil.QuatToMat3(mathutil.EulerToQuat(r.rot[0], r.rot[1], r.rot[2]))
	r.deform()
	r.view = r.view[:0]
	for _, v := range r.deformed {
		r.view = append(r.view, r.rotate(v).Add(mathutil.Vec3{0, 0, rubberCameraZ}))
	}

	r.order = r.order[:0]
	for i, f := range r.mesh.Faces {
		// facing the camera, which looks down +Z
		if mathutil.FaceNormalOf(r.view[f[0]], r.view[f[1]], r.view[f[2]])[2] < 0 {
			r.order = append(r.order, faceDepth{face: i})
		}
	}
	for i := range r.order {
		f := r.mesh.Faces[r.order[i].face]
		r.order[i].z = (r.view[f[0]][2] + r.view[f[1]][2] + r.view[f[2]][2]) / 3
	}
	sortFar(r.order)

	var verts [3]raster.GouraudVertex
	for _, fd := range r.order {
		f := r.mesh.Faces[fd.face]
		n := mathutil.FaceNormalOf(r.view[f[0]], r.view[f[1]], r.view[f[2]])
		hue := math.Mod(float64(fd.face)*30+r.time*25, 360)
		base := palette.HSV(hue, 0.7, 0.5+r.light.Lambert(n)*0.5)

		ok := true
		for k, vi := range f {
			sx, sy, vis := mathutil.Project(r.view[vi], fov, cx, cy)
			if !vis {
				ok = false
				break
			}
			vn := r.rotate(r.deformed[vi].Normalize())
			c := palette.Scale(base, math.Min(r.light.Lambert(vn)*0.4+0.6, 1))
			verts[k] = raster.GouraudVertex{X: sx, Y: sy, R: c.R, G: c.G, B: c.B}
		}
		if ok {
			buf.FillPolygonGouraud(verts[:])
		}
	}
}

func (r *Rubber) RegionColor() raster.RGB { return raster.RGB{} }
func (r *Rubber) Name() string            { return "Rubber Cube" }
