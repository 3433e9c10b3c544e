package effect

import (
	"cmp"
	"slices"

	"wallfacer/internal/mathutil"
)

type faceDepth struct {
	face int
	z    float64
}

// paintOrder returns face indices sorted far to near by mean view depth,
// reusing dst.
func paintOrder(verts []mathutil.Vec3, faces [][3]int, dst []faceDepth) []faceDepth {
	dst = dst[:0]
	for i, f := range faces {
		z := (verts[f[0]][2] + verts[f[1]][2] + verts[f[2]][2]) / 3
		dst = append(dst, faceDepth{i, z})
	}
	sortFar(dst)
	return dst
}

func sortFar(fs []faceDepth) {
	slices.SortStableFunc(fs, func(a, b faceDepth) int { return cmp.Compare(b.z, a.z) })
}

// projectFace projects the three corners of a face; ok is false when any
// corner is behind the camera.
func projectFace(verts []mathutil.Vec3, f [3]int, fov, cx, cy float64) ([][2]float64, bool) {
	out := make([][2]float64, 3)
	for i, vi := range f {
		x, y, ok := mathutil.Project(verts[vi], fov, cx, cy)
		if !ok {
			return nil, false
		}
		out[i] = [2]float64{x, y}
	}
	return out, true
}
