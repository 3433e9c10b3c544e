package effect

import (
	"math"

	"wallfacer/internal/raster"
	"wallfacer/internal/region"
	"wallfacer/internal/texture"
)

// RotozoomTexture is the resolver name checked for a texture override.
const RotozoomTexture = "rotozoom"

// Rotozoomer rotates and zooms a tiled texture over the whole screen,
// stepping texel coordinates incrementally along each scanline.
type Rotozoomer struct {
	time     float64
	mip      *texture.MipTexture
	rotSpeed float64
	zoomRate float64
	zoomBase float64
	zoomSpan float64
}

// NewRotozoomer uses the resolver's "rotozoom" texture when it has one and
// the XOR pattern otherwise. res may be nil.
func NewRotozoomer(res texture.Resolver) *Rotozoomer {
	var tex *texture.Texture
	if res != nil {
		tex = res.Resolve(RotozoomTexture)
	}
	if tex != nil {
		tex = texture.ToPow2(tex)
	} else {
		tex = texture.XOR(256)
	}
	return &Rotozoomer{mip: texture.NewMip(tex), rotSpeed: 0.5, zoomRate: 0.3, zoomBase: 1.5, zoomSpan: 1}
}

// NewCheckerRotozoomer zooms an orange and blue checkerboard.
func NewCheckerRotozoomer() *Rotozoomer {
	tex := texture.Checkerboard(256, 32, rgb(255, 100, 50), rgb(50, 100, 255))
	return &Rotozoomer{mip: texture.NewMip(tex), rotSpeed: 0.4, zoomRate: 0.25, zoomBase: 2, zoomSpan: 1.5}
}

// NewPlasmaRotozoomer zooms a tiling plasma.
func NewPlasmaRotozoomer() *Rotozoomer {
	pal := make([]raster.RGB, 256)
	for i := range pal {
		t := float64(i) / 255 * 2 * math.Pi
		pal[i] = rgb(
			uint8((math.Sin(t*2)*0.5+0.5)*255),
			uint8((math.Sin(t*3+1)*0.5+0.5)*255),
			uint8((math.Sin(t*5+2)*0.5+0.5)*255),
		)
	}
	return &Rotozoomer{mip: texture.NewMip(texture.Plasma(256, pal)), rotSpeed: 0.3, zoomRate: 0.2, zoomBase: 1, zoomSpan: 0.5}
}

func (r *Rotozoomer) Update(dt float64, _, _ int, _ *region.Scene) { r.time += dt }

// mipLevel picks -log2(zoom) when zoomed out so the texture does not alias.
func mipLevel(zoom float64, levels int) int {
	if zoom >= 1 {
		return 0
	}
	return int(math.Min(-math.Log2(zoom), float64(levels-1)))
}

func (r *Rotozoomer) Render(buf *raster.Buffer) {
	w, h := buf.Width(), buf.Height()
	cx, cy := float64(w)/2, float64(h)/2
	angle := r.time * r.rotSpeed
	zoom := r.zoomBase + math.Sin(r.time*r.zoomRate)*r.zoomSpan
	level := mipLevel(zoom, r.mip.LevelCount())

	// texel space, level 0 dimensions
	scale := float64(r.mip.Level(0).W) * 0.01
	cos := math.Cos(angle) / zoom * scale
	sin := math.Sin(angle) / zoom * scale

	uRow := -cx*cos + cy*sin
	vRow := -cx*sin - cy*cos
	pix := buf.Bytes()
	i := 0
	for y := 0; y < h; y++ {
		u, v := uRow, vRow
		for x := 0; x < w; x++ {
			cr, cg, cb := r.mip.SampleMipped(int(u), int(v), level)
			pix[i], pix[i+1], pix[i+2], pix[i+3] = 255, cb, cg, cr
			i += 4
			u += cos
			v += sin
		}
		uRow -= sin
		vRow += cos
	}
}

func (r *Rotozoomer) RegionColor() raster.RGB { return raster.RGB{} }
func (r *Rotozoomer) Name() string            { return "Rotozoomer" }
