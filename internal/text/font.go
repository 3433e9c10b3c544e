// Package text draws bitmap text into a raster.Buffer and provides the
// per-character effects and scrollers used by the text-based effects.
package text

import (
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"wallfacer/internal/raster"
)

// Glyph cell size in pixels at scale 1.
const (
	GlyphWidth  = 7
	GlyphHeight = 13
)

// glyph holds one bit row per scanline; bit c is column c from the left.
type glyph [GlyphHeight]uint8

// glyphs is extracted once from basicfont.Face7x13 for every rune it covers.
var glyphs = sync.OnceValue(func() map[rune]*glyph {
	face := basicfont.Face7x13
	table := make(map[rune]*glyph)
	dot := fixed.P(0, face.Ascent)
	for _, rg := range face.Ranges {
		for r := rg.Low; r < rg.High; r++ {
			dr, mask, mp, _, ok := face.Glyph(dot, r)
			if !ok {
				continue
			}
			var g glyph
			for y := 0; y < dr.Dy() && y < GlyphHeight; y++ {
				for x := 0; x < dr.Dx() && x < GlyphWidth; x++ {
					_, _, _, a := mask.At(mp.X+x, mp.Y+y).RGBA()
					if a > 0x7fff {
						g[dr.Min.Y+y] |= 1 << (dr.Min.X + x)
					}
				}
			}
			table[r] = &g
		}
	}
	return table
})

// glyphFor returns the bitmap for r, falling back to '?'.
func glyphFor(r rune) *glyph {
	t := glyphs()
	if g, ok := t[r]; ok {
		return g
	}
	return t['?']
}

// TextWidth is the advance of s in pixels at scale.
func TextWidth(s string, scale int) int {
	return utf8.RuneCountInString(s) * GlyphWidth * max(scale, 1)
}

// TextHeight is the cell height at scale.
func TextHeight(scale int) int { return GlyphHeight * max(scale, 1) }

func drawGlyph(buf *raster.Buffer, x, y int, g *glyph, r, gr, b uint8, scale int, flipped bool) {
	for row := 0; row < GlyphHeight; row++ {
		bits := g[row]
		if bits == 0 {
			continue
		}
		dy := row
		if flipped {
			dy = GlyphHeight - 1 - row
		}
		for col := 0; col < GlyphWidth; col++ {
			if bits&(1<<col) == 0 {
				continue
			}
			if scale == 1 {
				buf.SetPixel(x+col, y+dy, r, gr, b)
			} else {
				buf.FillRect(x+col*scale, y+dy*scale, scale, scale, r, gr, b)
			}
		}
	}
}

// DrawChar draws one rune with its top-left at (x, y).
func DrawChar(buf *raster.Buffer, x, y int, ch rune, r, g, b uint8, scale int) {
	drawGlyph(buf, x, y, glyphFor(ch), r, g, b, max(scale, 1), false)
}

// DrawCharFlipped draws ch upside down, for reflections.
func DrawCharFlipped(buf *raster.Buffer, x, y int, ch rune, r, g, b uint8, scale int) {
	drawGlyph(buf, x, y, glyphFor(ch), r, g, b, max(scale, 1), true)
}

// DrawText draws s left to right from (x, y). Spaces advance without drawing.
func DrawText(buf *raster.Buffer, x, y int, s string, r, g, b uint8, scale int) {
	scale = max(scale, 1)
	cw := GlyphWidth * scale
	for _, ch := range s {
		if ch != ' ' && x+cw > 0 && x < buf.Width() {
			drawGlyph(buf, x, y, glyphFor(ch), r, g, b, scale, false)
		}
		x += cw
	}
}

// DrawTextFlipped draws s with every glyph upside down.
func DrawTextFlipped(buf *raster.Buffer, x, y int, s string, r, g, b uint8, scale int) {
	scale = max(scale, 1)
	cw := GlyphWidth * scale
	for _, ch := range s {
		if ch != ' ' {
			drawGlyph(buf, x, y, glyphFor(ch), r, g, b, scale, true)
		}
		x += cw
	}
}

// DrawTextCentered centers s horizontally in the buffer.
func DrawTextCentered(buf *raster.Buffer, y int, s string, r, g, b uint8, scale int) {
	DrawText(buf, (buf.Width()-TextWidth(s, scale))/2, y, s, r, g, b, scale)
}

// DrawTextShadowed draws the shadow at (x+dx, y+dy) and the text on top.
func DrawTextShadowed(buf *raster.Buffer, x, y int, s string, c, shadow raster.RGB, scale, dx, dy int) {
	DrawText(buf, x+dx, y+dy, s, shadow.R, shadow.G, shadow.B, scale)
	DrawText(buf, x, y, s, c.R, c.G, c.B, scale)
}

var outlineOffsets = [8][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}

// DrawTextOutlined draws s over a one-pixel outline in all eight directions.
func DrawTextOutlined(buf *raster.Buffer, x, y int, s string, c, outline raster.RGB, scale int) {
	for _, o := range outlineOffsets {
		DrawText(buf, x+o[0], y+o[1], s, outline.R, outline.G, outline.B, scale)
	}
	DrawText(buf, x, y, s, c.R, c.G, c.B, scale)
}

// DrawTextReflected draws s and, gap pixels below it, a flipped copy faded by fade.
func DrawTextReflected(buf *raster.Buffer, x, y int, s string, c raster.RGB, scale, gap int, fade float64) {
	DrawText(buf, x, y, s, c.R, c.G, c.B, scale)
	f := FadeColor(c, fade)
	DrawTextFlipped(buf, x, y+TextHeight(scale)+gap, s, f.R, f.G, f.B, scale)
}
