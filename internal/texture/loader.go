package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	xdraw "golang.org/x/image/draw"
)

// Load reads a TGA, PNG or JPEG file into a Texture. The decoder is chosen
// by extension; TGA has no magic number to sniff.
func Load(path string) (*Texture, error) {
	var decode func(io.Reader) (image.Image, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".tga":
		decode = tga.Decode
	case ".png":
		decode = png.Decode
	case ".jpg", ".jpeg":
		decode = jpeg.Decode
	default:
		return nil, fmt.Errorf("texture: unknown extension: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return FromImage(img), nil
}

// FromImage copies any image into a Texture, converting to non-premultiplied RGBA.
func FromImage(src image.Image) *Texture {
	n := toNRGBA(src)
	b := n.Bounds()
	t := New(b.Dx(), b.Dy())
	for y := 0; y < t.H; y++ {
		off := n.PixOffset(b.Min.X, b.Min.Y+y)
		copy(t.Pix[y*t.W*4:(y+1)*t.W*4], n.Pix[off:off+t.W*4])
	}
	return t
}

// Image returns a copy of t as an *image.NRGBA.
func (t *Texture) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.W, t.H))
	copy(img.Pix, t.Pix)
	return img
}

// ToPow2 resamples t to the nearest power-of-two size not larger than its
// own, so it can be sampled with bitmask wrapping. Power-of-two input is
// returned unchanged.
func ToPow2(t *Texture) *Texture {
	if t.IsPow2() {
		return t
	}
	w, h := floorPow2(t.W), floorPow2(t.H)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), t.Image(), image.Rect(0, 0, t.W, t.H), draw.Src, nil)
	return FromImage(dst)
}

func floorPow2(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}

// toNRGBA converts any image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	switch src.(type) {
	case *image.YCbCr, *image.Gray:
		// no alpha: draw and force opaque
		draw.Draw(dst, b, src, b.Min, draw.Src)
		for i := 3; i < len(dst.Pix); i += 4 {
			dst.Pix[i] = 255
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}
