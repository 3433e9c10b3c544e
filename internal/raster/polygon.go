package raster

import (
	"cmp"
	"math"
	"slices"
)

// GouraudVertex is a screen-space vertex carrying its own color.
type GouraudVertex struct {
	X, Y    float64
	R, G, B uint8
}

type gouraudHit struct {
	x, r, g, b float64
}

// rowRange returns the clipped scanline range covered by ys.
func (b *Buffer) rowRange(minY, maxY float64) (int, int, bool) {
	if !finite(minY) || !finite(maxY) {
		return 0, 0, false
	}
	lo := math.Max(minY, 0)
	hi := math.Min(maxY, float64(b.height-1))
	if lo > hi {
		return 0, 0, false
	}
	return int(lo), int(hi), true
}

// spanX converts an edge intersection to a pixel column, saturating far outside the buffer.
func (b *Buffer) spanX(x float64) int {
	limit := float64(b.width + 1)
	if x < -1 || x != x {
		return -1
	}
	if x > limit {
		return int(limit)
	}
	return int(x)
}

// scanPolygon collects, per scanline at pixel centers, the sorted edge crossings of
// verts and reports each inside span.
func (b *Buffer) scanPolygon(verts [][2]float64, span func(x0, x1, y int)) {
	n := len(verts)
	if n < 3 {
		return
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, v := range verts {
		minY = math.Min(minY, v[1])
		maxY = math.Max(maxY, v[1])
	}
	y0, y1, ok := b.rowRange(minY, maxY)
	if !ok {
		return
	}

	for y := y0; y <= y1; y++ {
		xs := b.xs[:0]
		yf := float64(y) + 0.5
		for i := 0; i < n; i++ {
			p, q := verts[i], verts[(i+1)%n]
			if (p[1] <= yf && q[1] > yf) || (q[1] <= yf && p[1] > yf) {
				x := p[0] + (yf-p[1])/(q[1]-p[1])*(q[0]-p[0])
				xs = append(xs, b.spanX(x))
			}
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			span(xs[i], xs[i+1], y)
		}
		b.xs = xs
	}
}

// FillPolygon fills a polygon using a scanline at pixel centers.
func (b *Buffer) FillPolygon(verts [][2]float64, r, g, bl uint8) {
	b.scanPolygon(verts, func(x0, x1, y int) {
		b.HLine(x0, x1, y, r, g, bl)
	})
}

// FillPolygonBlend fills a polygon with alpha blending.
func (b *Buffer) FillPolygonBlend(verts [][2]float64, r, g, bl, a uint8) {
	b.scanPolygon(verts, func(x0, x1, y int) {
		b.HLineBlend(x0, x1, y, r, g, bl, a)
	})
}

// FillPolygonAdditive fills a polygon with saturating add.
func (b *Buffer) FillPolygonAdditive(verts [][2]float64, r, g, bl uint8) {
	b.scanPolygon(verts, func(x0, x1, y int) {
		b.HLineAdditive(x0, x1, y, r, g, bl)
	})
}

// HLineGouraud draws a horizontal run whose color is interpolated from
// (r0,g0,b0) at x0 to (r1,g1,b1) at x1. Spans narrower than one pixel
// take the first color.
func (b *Buffer) HLineGouraud(x0, x1, y int, r0, g0, b0, r1, g1, b1 float64) {
	if y < 0 || y >= b.height {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		r0, g0, b0, r1, g1, b1 = r1, g1, b1, r0, g0, b0
	}
	start := maxInt(x0, 0)
	end := minInt(x1, b.width-1)
	if start > end {
		return
	}

	span := float64(x1 - x0)
	if span < 1 {
		b.HLine(start, end, y, clamp255(r0), clamp255(g0), clamp255(b0))
		return
	}
	inv := 1 / span
	dr := (r1 - r0) * inv
	dg := (g1 - g0) * inv
	db := (b1 - b0) * inv

	off := float64(start - x0)
	cr := r0 + dr*off
	cg := g0 + dg*off
	cb := b0 + db*off

	i := b.offset(start, y)
	for x := start; x <= end; x++ {
		writePixel(b.pix[i:i+4], clamp255(cr), clamp255(cg), clamp255(cb))
		cr += dr
		cg += dg
		cb += db
		i += 4
	}
}

// FillPolygonGouraud fills a polygon interpolating per-vertex colors along
// each edge and then across each scanline.
func (b *Buffer) FillPolygonGouraud(verts []GouraudVertex) {
	n := len(verts)
	if n < 3 {
		return
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, v := range verts {
		minY = math.Min(minY, v.Y)
		maxY = math.Max(maxY, v.Y)
	}
	y0, y1, ok := b.rowRange(minY, maxY)
	if !ok {
		return
	}

	for y := y0; y <= y1; y++ {
		hits := b.gxs[:0]
		yf := float64(y) + 0.5
		for i := 0; i < n; i++ {
			p, q := verts[i], verts[(i+1)%n]
			if (p.Y <= yf && q.Y > yf) || (q.Y <= yf && p.Y > yf) {
				t := (yf - p.Y) / (q.Y - p.Y)
				hits = append(hits, gouraudHit{
					x: p.X + t*(q.X-p.X),
					r: float64(p.R) + t*(float64(q.R)-float64(p.R)),
					g: float64(p.G) + t*(float64(q.G)-float64(p.G)),
					b: float64(p.B) + t*(float64(q.B)-float64(p.B)),
				})
			}
		}
		slices.SortFunc(hits, func(a, c gouraudHit) int { return cmp.Compare(a.x, c.x) })
		for i := 0; i+1 < len(hits); i += 2 {
			l, r := hits[i], hits[i+1]
			b.HLineGouraud(b.spanX(l.x), b.spanX(r.x), y, l.r, l.g, l.b, r.r, r.g, r.b)
		}
		b.gxs = hits
	}
}
