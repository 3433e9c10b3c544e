package effect

import (
	"cmp"
	"math"
	"slices"

	"wallfacer/internal/region"
)

// circleVerts approximates a circle with an n-sided polygon.
func circleVerts(cx, cy, r float64, n int) [][2]float64 {
	n = max(n, 3)
	out := make([][2]float64, n)
	for i := range out {
		a := float64(i) / float64(n) * 2 * math.Pi
		out[i] = [2]float64{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	return out
}

// regionBox is a region's integer bounding box together with its shape,
// cached so per-pixel containment tests do not touch the scene.
type regionBox struct {
	minX, minY, maxX, maxY int
	shape                  region.Shape
}

func regionBoxes(scene *region.Scene) []regionBox {
	if scene == nil {
		return nil
	}
	out := make([]regionBox, 0, len(scene.Regions))
	for i := range scene.Regions {
		sh := scene.Regions[i].Shape
		if sh == nil {
			continue
		}
		minX, minY, maxX, maxY, ok := sh.Bounds()
		if !ok {
			continue
		}
		out = append(out, regionBox{
			minX: int(math.Floor(minX)), minY: int(math.Floor(minY)),
			maxX: int(math.Ceil(maxX)), maxY: int(math.Ceil(maxY)),
			shape: sh.Clone(),
		})
	}
	return out
}

// insideAny reports whether (x, y) lies in any of boxes.
func insideAny(boxes []regionBox, x, y float64) bool {
	for i := range boxes {
		b := &boxes[i]
		if x < float64(b.minX) || x > float64(b.maxX+1) || y < float64(b.minY) || y > float64(b.maxY+1) {
			continue
		}
		if b.shape.Contains(x, y) {
			return true
		}
	}
	return false
}

// obstacleGrid marks every cell of a cols×rows grid of cell-sized squares
// whose center lies inside a region.
func obstacleGrid(scene *region.Scene, cols, rows, cell int) []bool {
	grid := make([]bool, cols*rows)
	boxes := regionBoxes(scene)
	if len(boxes) == 0 {
		return grid
	}
	half := float64(cell) / 2
	for gy := 0; gy < rows; gy++ {
		for gx := 0; gx < cols; gx++ {
			if insideAny(boxes, float64(gx*cell)+half, float64(gy*cell)+half) {
				grid[gy*cols+gx] = true
			}
		}
	}
	return grid
}

// frame is a region reduced to its bounding box and centroid.
type frame struct {
	cx, cy                 float64
	minX, minY, maxX, maxY float64
}

// sceneFrames returns the frames of every bounded region ordered left to right.
func sceneFrames(scene *region.Scene) []frame {
	if scene == nil {
		return nil
	}
	var out []frame
	for i := range scene.Regions {
		sh := scene.Regions[i].Shape
		if sh == nil {
			continue
		}
		minX, minY, maxX, maxY, ok := sh.Bounds()
		if !ok {
			continue
		}
		c, ok := sh.Centroid()
		if !ok {
			continue
		}
		out = append(out, frame{cx: c.X, cy: c.Y, minX: minX, minY: minY, maxX: maxX, maxY: maxY})
	}
	slices.SortStableFunc(out, func(a, b frame) int { return cmp.Compare(a.cx, b.cx) })
	return out
}

// edgePoint returns the point at fraction t along one side of the box:
// 0 top, 1 bottom, 2 left, 3 right.
func (f *frame) edgePoint(side uint32, t float64) (float64, float64) {
	switch side % 4 {
	case 0:
		return f.minX + t*(f.maxX-f.minX), f.minY
	case 1:
		return f.minX + t*(f.maxX-f.minX), f.maxY
	case 2:
		return f.minX, f.minY + t*(f.maxY-f.minY)
	}
	return f.maxX, f.minY + t*(f.maxY-f.minY)
}

// facing returns a random point on the side of f that faces o.
func (f *frame) facing(o *frame, t float64) (float64, float64) {
	dx, dy := o.cx-f.cx, o.cy-f.cy
	switch {
	case math.Abs(dx) > math.Abs(dy) && dx > 0:
		return f.edgePoint(3, t)
	case math.Abs(dx) > math.Abs(dy):
		return f.edgePoint(2, t)
	case dy > 0:
		return f.edgePoint(1, t)
	}
	return f.edgePoint(0, t)
}

func (f *frame) size() float64 { return math.Max(f.maxX-f.minX, f.maxY-f.minY) }

// near reports whether (x, y) lies within pad of the box.
func (f *frame) near(x, y, pad float64) bool {
	return x >= f.minX-pad && x <= f.maxX+pad && y >= f.minY-pad && y <= f.maxY+pad
}
