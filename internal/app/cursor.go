package app

import "wallfacer/internal/raster"

// arrow is the software cursor bitmap, tip at (0, 0).
var arrow = [...][2]int{
	{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}, {0, 5}, {0, 6}, {0, 7}, {0, 8}, {0, 9},
	{1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5}, {1, 6}, {1, 7}, {1, 8},
	{2, 2}, {2, 3}, {2, 4}, {2, 5}, {2, 6}, {2, 7},
	{3, 3}, {3, 4}, {3, 5}, {3, 6},
	{4, 4}, {4, 5}, {4, 6}, {4, 7},
	{5, 5}, {5, 6}, {5, 7}, {5, 8},
	{6, 6}, {6, 7}, {6, 8}, {6, 9},
	{7, 7}, {7, 8},
	{8, 8},
}

// drawCursor paints a white arrow with a black outline at (x, y). Rotated
// displays hide the system pointer, so calibration needs its own.
func drawCursor(buf *raster.Buffer, x, y int) {
	for _, p := range arrow {
		px, py := x+p[0], y+p[1]
		buf.SetPixel(px-1, py, 0, 0, 0)
		buf.SetPixel(px+1, py, 0, 0, 0)
		buf.SetPixel(px, py-1, 0, 0, 0)
		buf.SetPixel(px, py+1, 0, 0, 0)
	}
	for _, p := range arrow {
		buf.SetPixel(x+p[0], y+p[1], 255, 255, 255)
	}
}
