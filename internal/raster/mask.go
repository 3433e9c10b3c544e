package raster

import "wallfacer/internal/region"

// MaskRegions fills every region of scene with c. Polygons use the scanline
// fill, circles the row-clipped circle fill. Applying it twice is a no-op.
func (b *Buffer) MaskRegions(scene *region.Scene, c RGB) {
	if scene == nil {
		return
	}
	for i := range scene.Regions {
		b.FillShape(scene.Regions[i].Shape, c)
	}
}

// FillShape fills a single region shape with a solid color.
func (b *Buffer) FillShape(s region.Shape, c RGB) {
	switch sh := s.(type) {
	case *region.Polygon:
		if !sh.IsClosed() {
			return
		}
		b.verts = sh.AsTuples(b.verts[:0])
		b.FillPolygon(b.verts, c.R, c.G, c.B)
	case *region.Circle:
		if !finite(sh.Center.X) || !finite(sh.Center.Y) || !finite(sh.Radius) {
			return
		}
		b.FillCircle(coord(sh.Center.X), coord(sh.Center.Y), coord(sh.Radius), c.R, c.G, c.B)
	}
}

// coord converts a finite coordinate to int, saturating far outside any
// buffer so the conversion is defined.
func coord(v float64) int {
	return int(max(min(v, 1<<30), -(1 << 30)))
}
