// Package snapshot exports rendered frames as WebP: single screenshots and a
// background recorder that encodes a frame sequence on a worker pool.
package snapshot

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// ToNRGBA converts a w×h frame of [A, B, G, R] pixels into an opaque image.
func ToNRGBA(pix []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := min(len(pix), w*h*4)
	for i := 0; i+3 < n; i += 4 {
		img.Pix[i] = pix[i+3]
		img.Pix[i+1] = pix[i+2]
		img.Pix[i+2] = pix[i+1]
		img.Pix[i+3] = 255
	}
	return img
}

// Downscale fits img inside maxW×maxH keeping its aspect ratio. Frames have
// no transparency, so CatmullRom runs directly on the straight colors.
func Downscale(img *image.NRGBA, maxW, maxH int) *image.NRGBA {
	b := img.Bounds()
	if maxW <= 0 || maxH <= 0 || (b.Dx() <= maxW && b.Dy() <= maxH) {
		return img
	}
	scale := min(float64(maxW)/float64(b.Dx()), float64(maxH)/float64(b.Dy()))
	w := max(int(float64(b.Dx())*scale+0.5), 1)
	h := max(int(float64(b.Dy())*scale+0.5), 1)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WriteWebP encodes img losslessly to path, creating parent directories.
func WriteWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("snapshot: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: create %s: %w", path, err)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot: close %s: %w", path, err)
	}
	return nil
}

// Screenshot writes one frame to dir as shot-NNNN.webp and returns the path.
func Screenshot(dir string, seq int, pix []byte, w, h int) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("shot-%04d.webp", seq))
	if err := WriteWebP(path, ToNRGBA(pix, w, h)); err != nil {
		return "", err
	}
	return path, nil
}
