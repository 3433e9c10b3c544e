package present

import (
	"image"
	"strconv"
	"strings"

	"golang.org/x/image/draw"

	"wallfacer/internal/snapshot"
)

// upperHalf draws the top pixel of a cell as foreground and the bottom one as
// background, giving two pixels per terminal row.
const upperHalf = '▀'

// downsample scales a w×h ABGR frame to cols×(rows·2) pixels for a
// half-block character grid.
func downsample(pix []byte, w, h, cols, rows int, dst *image.NRGBA) *image.NRGBA {
	r := image.Rect(0, 0, max(cols, 1), max(rows, 1)*2)
	if dst == nil || dst.Bounds() != r {
		dst = image.NewNRGBA(r)
	}
	src := snapshot.ToNRGBA(pix, w, h)
	draw.ApproxBiLinear.Scale(dst, r, src, src.Bounds(), draw.Src, nil)
	return dst
}

// cellColors returns the top and bottom pixel colors of cell (col, row).
func cellColors(img *image.NRGBA, col, row int) (top, bottom [3]uint8) {
	i := img.PixOffset(col, row*2)
	j := img.PixOffset(col, row*2+1)
	top = [3]uint8{img.Pix[i], img.Pix[i+1], img.Pix[i+2]}
	bottom = [3]uint8{img.Pix[j], img.Pix[j+1], img.Pix[j+2]}
	return top, bottom
}

// cellToPixel maps a character cell to the frame pixel under its center.
func cellToPixel(col, row, cols, rows, w, h int) (int, int) {
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	x := (2*col + 1) * w / (2 * cols)
	y := (2*row + 1) * h / (2 * rows)
	return min(max(x, 0), w-1), min(max(y, 0), h-1)
}

// writeANSI renders img as 24-bit color half-block rows, one line per row,
// starting at the top-left corner.
func writeANSI(sb *strings.Builder, img *image.NRGBA) {
	b := img.Bounds()
	rows := b.Dy() / 2
	sb.WriteString("\x1b[H")
	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteString("\r\n")
		}
		var last [2][3]uint8
		for col := 0; col < b.Dx(); col++ {
			top, bottom := cellColors(img, col, row)
			if col == 0 || last != [2][3]uint8{top, bottom} {
				writeSGR(sb, top, bottom)
				last = [2][3]uint8{top, bottom}
			}
			sb.WriteRune(upperHalf)
		}
		sb.WriteString("\x1b[0m")
	}
}

func writeSGR(sb *strings.Builder, fg, bg [3]uint8) {
	sb.WriteString("\x1b[38;2;")
	writeRGB(sb, fg)
	sb.WriteString(";48;2;")
	writeRGB(sb, bg)
	sb.WriteByte('m')
}

func writeRGB(sb *strings.Builder, c [3]uint8) {
	sb.WriteString(strconv.Itoa(int(c[0])))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c[1])))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c[2])))
}
