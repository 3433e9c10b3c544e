package main

import (
	"fmt"
	"os"
	"path/filepath"

	"wallfacer/internal/palette"
	"wallfacer/internal/raster"
	"wallfacer/internal/snapshot"
	"wallfacer/internal/texture"
)

type texEntry struct {
	name string
	tex  *texture.Texture
}

// dumpTexture writes every mip level of t as name_mipN.webp under dir.
func dumpTexture(dir string, e texEntry) error {
	mip := texture.NewMip(e.tex)
	for l := 0; l < mip.LevelCount(); l++ {
		level := mip.Level(l)
		dst := filepath.Join(dir, fmt.Sprintf("%s_mip%d.webp", e.name, l))
		if err := snapshot.WriteWebP(dst, level.Image()); err != nil {
			return fmt.Errorf("%s level %d: %w", e.name, l, err)
		}
	}
	fmt.Printf("OK  %-16s %dx%d  (%d levels)\n", e.name, e.tex.W, e.tex.H, mip.LevelCount())
	return nil
}

func main() {
	out := "texdump"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	textures := []texEntry{
		{"xor", texture.XOR(256)},
		{"checker", texture.Checkerboard(256, 32, raster.RGB{R: 255, G: 255, B: 255}, raster.RGB{R: 40, G: 40, B: 40})},
		{"plasma", texture.Plasma(256, palette.Rainbow(256))},
		{"plasma_fire", texture.Plasma(256, palette.Fire())},
		{"brick", texture.BrickWall()},
		{"raycaster_brick", texture.RaycasterBrick()},
	}

	errors := 0
	for _, e := range textures {
		if err := dumpTexture(out, e); err != nil {
			fmt.Fprintf(os.Stderr, "ERR %v\n", err)
			errors++
		}
	}
	if errors > 0 {
		fmt.Printf("\nDone with %d error(s).\n", errors)
		os.Exit(1)
	}
	fmt.Printf("\nDone. Textures written to %s\n", out)
}
