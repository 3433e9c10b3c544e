package mathutil

import "math"

// Mesh is a triangle mesh: vertices plus faces of three vertex indices.
type Mesh struct {
	Vertices []Vec3
	Faces    [][3]int
}

// Cube returns an axis-aligned cube of edge size centered on the origin,
// 8 vertices and 12 outward-wound faces.
func Cube(size float64) *Mesh {
	h := size / 2
	return &Mesh{
		Vertices: []Vec3{
			{-h, -h, -h}, // 0 back-bottom-left
			{h, -h, -h},  // 1 back-bottom-right
			{h, h, -h},   // 2 back-top-right
			{-h, h, -h},  // 3 back-top-left
			{-h, -h, h},  // 4 front-bottom-left
			{h, -h, h},   // 5 front-bottom-right
			{h, h, h},    // 6 front-top-right
			{-h, h, h},   // 7 front-top-left
		},
		Faces: [][3]int{
			{4, 5, 6}, {4, 6, 7}, // front
			{1, 0, 3}, {1, 3, 2}, // back
			{0, 4, 7}, {0, 7, 3}, // left
			{5, 1, 2}, {5, 2, 6}, // right
			{7, 6, 2}, {7, 2, 3}, // top
			{0, 1, 5}, {0, 5, 4}, // bottom
		},
	}
}

// Sphere returns an icosphere: an icosahedron subdivided subdiv times with
// every vertex pushed onto the sphere of the given radius.
func Sphere(radius float64, subdiv int) *Mesh {
	t := (1 + math.Sqrt(5)) / 2
	base := []Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	m := &Mesh{Vertices: make([]Vec3, len(base))}
	for i, v := range base {
		m.Vertices[i] = v.Normalize().Scale(radius)
	}
	m.Faces = [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	for s := 0; s < subdiv; s++ {
		cache := make(map[[2]int]int)
		mid := func(a, b int) int {
			key := [2]int{a, b}
			if b < a {
				key = [2]int{b, a}
			}
			if idx, ok := cache[key]; ok {
				return idx
			}
			p := Lerp(m.Vertices[a], m.Vertices[b], 0.5).Normalize().Scale(radius)
			idx := len(m.Vertices)
			m.Vertices = append(m.Vertices, p)
			cache[key] = idx
			return idx
		}
		faces := make([][3]int, 0, len(m.Faces)*4)
		for _, f := range m.Faces {
			a := mid(f[0], f[1])
			b := mid(f[1], f[2])
			c := mid(f[2], f[0])
			faces = append(faces,
				[3]int{f[0], a, c},
				[3]int{f[1], b, a},
				[3]int{f[2], c, b},
				[3]int{a, b, c},
			)
		}
		m.Faces = faces
	}
	return m
}

// Rotate applies RotateXYZ to every vertex in place.
func (m *Mesh) Rotate(rx, ry, rz float64) {
	for i, v := range m.Vertices {
		m.Vertices[i] = v.RotateXYZ(rx, ry, rz)
	}
}

// Scale multiplies every vertex in place.
func (m *Mesh) Scale(f float64) {
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Scale(f)
	}
}

// Translate offsets every vertex in place.
func (m *Mesh) Translate(off Vec3) {
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Add(off)
	}
}

// Transform writes every vertex of m through tr into dst, reusing its storage.
func (m *Mesh) Transform(tr Mat4, dst []Vec3) []Vec3 {
	dst = dst[:0]
	for _, v := range m.Vertices {
		dst = append(dst, tr.MulPoint(v))
	}
	return dst
}

// FaceCenter returns the mean of a face's vertices, used for depth sorting.
func (m *Mesh) FaceCenter(i int) Vec3 {
	f := m.Faces[i]
	return FaceCenterOf(m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]])
}

// FaceNormal returns the unit normal (v1−v0)×(v2−v0).
func (m *Mesh) FaceNormal(i int) Vec3 {
	f := m.Faces[i]
	return FaceNormalOf(m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]])
}

func FaceCenterOf(a, b, c Vec3) Vec3 {
	return a.Add(b).Add(c).Scale(1.0 / 3)
}

func FaceNormalOf(a, b, c Vec3) Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}
