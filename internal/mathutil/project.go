package mathutil

// Project maps a camera-space point to screen coordinates. fov is the distance
// from the eye to the projection plane. Points with z ≤ 0 are behind the camera.
func Project(p Vec3, fov, cx, cy float64) (x, y float64, ok bool) {
	if p[2] <= 0 {
		return 0, 0, false
	}
	s := fov / p[2]
	return cx + p[0]*s, cy + p[1]*s, true
}

// ProjectWithDepth is Project plus a proximity factor 1 − min(z/maxZ, 1):
// 1 at the camera, 0 at maxZ or beyond.
func ProjectWithDepth(p Vec3, fov, cx, cy, maxZ float64) (x, y, proximity float64, ok bool) {
	if p[2] <= 0 {
		return 0, 0, 0, false
	}
	s := fov / p[2]
	r := p[2] / maxZ
	if r > 1 {
		r = 1
	}
	return cx + p[0]*s, cy + p[1]*s, 1 - r, true
}
