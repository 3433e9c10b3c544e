package texture

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"wallfacer/internal/raster"
)

func TestFromRGBA(t *testing.T) {
	if _, err := FromRGBA(2, 2, make([]uint8, 15)); err == nil {
		t.Fatal("short buffer accepted")
	}
	tex, err := FromRGBA(2, 2, make([]uint8, 16))
	if err != nil || tex.W != 2 || tex.H != 2 {
		t.Fatalf("FromRGBA: %v %+v", err, tex)
	}
}

func TestSampleTexelWraps(t *testing.T) {
	tex := New(4, 4)
	tex.SetPixel(3, 3, 10, 20, 30, 255)
	tests := []struct{ x, y int }{{3, 3}, {-1, -1}, {7, 7}, {-5, 3}}
	for _, tt := range tests {
		if r, g, b := tex.SampleTexel(tt.x, tt.y); r != 10 || g != 20 || b != 30 {
			t.Errorf("SampleTexel(%d,%d) = %d,%d,%d", tt.x, tt.y, r, g, b)
		}
	}
}

func TestSampleEuclidWrap(t *testing.T) {
	tex := New(4, 4)
	tex.SetPixel(0, 0, 1, 1, 1, 255)
	tex.SetPixel(3, 3, 200, 100, 50, 128)
	tests := []struct {
		name string
		u, v float64
		want uint8
	}{
		{"origin", 0, 0, 1},
		{"last texel", 0.9, 0.9, 200},
		{"negative wraps", -0.1, -0.1, 200},
		{"above one", 1.0, 2.0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if r, _, _ := tex.Sample(tt.u, tt.v); r != tt.want {
				t.Fatalf("got %d want %d", r, tt.want)
			}
		})
	}
	if _, _, _, a := tex.SampleRGBA(-0.1, -0.1); a != 128 {
		t.Fatalf("alpha %d", a)
	}
}

func TestSampleBilinear(t *testing.T) {
	tex := New(2, 1)
	tex.SetPixel(0, 0, 0, 0, 0, 255)
	tex.SetPixel(1, 0, 200, 100, 50, 255)
	// halfway between the texel origins
	r, g, b := tex.SampleBilinear(0.25, 0)
	if r != 100 || g != 50 || b != 25 {
		t.Fatalf("got %d,%d,%d", r, g, b)
	}
	// exactly on a texel
	if r, _, _ := tex.SampleBilinear(0.5, 0); r != 200 {
		t.Fatalf("on texel r=%d", r)
	}
}

func TestMipChain(t *testing.T) {
	tests := []struct {
		w, h   int
		levels int
		topW   int
		topH   int
	}{
		{64, 64, 7, 1, 1},
		{256, 64, 7, 4, 1},
		{1, 1, 1, 1, 1},
	}
	for _, tt := range tests {
		m := NewMip(New(tt.w, tt.h))
		if m.LevelCount() != tt.levels {
			t.Fatalf("%dx%d: %d levels, want %d", tt.w, tt.h, m.LevelCount(), tt.levels)
		}
		for l := 1; l < m.LevelCount(); l++ {
			prev, cur := m.Level(l-1), m.Level(l)
			if cur.W != prev.W/2 || cur.H != prev.H/2 {
				t.Fatalf("level %d is %dx%d after %dx%d", l, cur.W, cur.H, prev.W, prev.H)
			}
		}
		top := m.Level(99)
		if top.W != tt.topW || top.H != tt.topH {
			t.Fatalf("top %dx%d", top.W, top.H)
		}
	}
}

func TestMipAverages(t *testing.T) {
	src := Checkerboard(4, 1, raster.RGB{R: 200, G: 0, B: 100}, raster.RGB{R: 0, G: 200, B: 0})
	m := NewMip(src)
	if r, g, b := m.SampleMipped(0, 0, 1); r != 100 || g != 100 || b != 50 {
		t.Fatalf("level 1 = %d,%d,%d", r, g, b)
	}
	// level-0 coordinates are shifted to the level
	if r, _, _ := m.SampleMipped(3, 3, 1); r != 100 {
		t.Fatalf("shifted sample r=%d", r)
	}
}

func TestIndexed(t *testing.T) {
	it := FromGrayscale(XOR(8))
	if it.SampleIndex(3, 5) != 3^5 {
		t.Fatalf("index %d", it.SampleIndex(3, 5))
	}
	if it.SampleIndex(-1, 0) != 7 {
		t.Fatalf("wrapped index %d", it.SampleIndex(-1, 0))
	}
	m := NewIndexedMip(it)
	if m.LevelCount() != 4 {
		t.Fatalf("levels %d", m.LevelCount())
	}
	// 2×2 block (0,0),(1,0),(0,1),(1,1) of x^y = 0,1,1,0
	if v := m.SampleIndexMipped(0, 0, 1); v != 0 {
		t.Fatalf("mipped %d", v)
	}
	if m.Level(-3) != it {
		t.Fatal("Level does not clamp low")
	}
}

func TestProcedural(t *testing.T) {
	bw := BrickWall()
	if bw.W != 256 || bw.H != 256 {
		t.Fatalf("brick wall %dx%d", bw.W, bw.H)
	}
	if r, _, _ := bw.SampleTexel(0, 0); r != 40 {
		t.Fatalf("mortar %d", r)
	}
	if r, g, b := bw.SampleTexel(32, 16); r != g || g != b || r <= 40 {
		t.Fatalf("brick face %d,%d,%d", r, g, b)
	}

	rb := RaycasterBrick()
	if r, g, b := rb.SampleTexel(5, 4); !(r > g && g > b) {
		t.Fatalf("raycaster brick not warm: %d,%d,%d", r, g, b)
	}

	pal := []raster.RGB{{R: 0}, {R: 255}}
	p := Plasma(32, pal)
	for i := 0; i < len(p.Pix); i += 4 {
		if p.Pix[i] != 0 && p.Pix[i] != 255 {
			t.Fatalf("plasma texel outside palette: %d", p.Pix[i])
		}
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(0, 0, color.NRGBA{R: 9, G: 8, B: 7, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestCacheResolve(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "walls")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(sub, "Wall.png"), 4, 4)
	if err := os.WriteFile(filepath.Join(dir, "wall.jpg"), []byte("not a jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	idx := BuildIndex(dir)
	if idx.Len() != 2 {
		t.Fatalf("index has %d entries", idx.Len())
	}
	c := NewCache(idx)

	tex := c.Resolve("textures\\WALL.tga")
	if tex == nil {
		t.Fatal("wall not resolved")
	}
	if tex.W != 4 || tex.Pix[0] != 9 || tex.Pix[3] != 255 {
		t.Fatalf("decoded %dx%d %v", tex.W, tex.H, tex.Pix[:4])
	}
	if again := c.Resolve("wall"); again != tex {
		t.Fatal("second resolve not cached")
	}
	if c.Resolve("broken") != nil {
		t.Fatal("undecodable texture resolved")
	}
	if c.Resolve("missing") != nil {
		t.Fatal("missing texture resolved")
	}
	var nilCache *Cache
	if nilCache.Resolve("wall") != nil {
		t.Fatal("nil cache resolved")
	}
}

func TestLoadFormats(t *testing.T) {
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "a.png")
	writePNG(t, pngPath, 3, 2)

	jpgPath := filepath.Join(dir, "b.JPG")
	f, err := os.Create(jpgPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(f, image.NewGray(image.Rect(0, 0, 5, 4)), nil); err != nil {
		t.Fatal(err)
	}
	f.Close()

	// Uncompressed 24-bit true-color, 2×1, top-left origin: one red, one blue pixel.
	tgaPath := filepath.Join(dir, "c.tga")
	header := []byte{0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 0, 1, 0, 24, 0x20}
	pixels := []byte{0, 0, 255, 255, 0, 0}
	if err := os.WriteFile(tgaPath, append(header, pixels...), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		w, h int
		r    uint8
	}{
		{pngPath, 3, 2, 9},
		{jpgPath, 5, 4, 0},
		{tgaPath, 2, 1, 255},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			tex, err := Load(tt.path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if tex.W != tt.w || tex.H != tt.h {
				t.Fatalf("size %dx%d, want %dx%d", tex.W, tex.H, tt.w, tt.h)
			}
			if tex.Pix[0] != tt.r || tex.Pix[3] != 255 {
				t.Errorf("first texel %v", tex.Pix[:4])
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "d.bmp")); err == nil {
		t.Error("unknown extension accepted")
	}
}

func TestToPow2(t *testing.T) {
	src := New(100, 30)
	if got := ToPow2(src); got.W != 64 || got.H != 16 {
		t.Fatalf("ToPow2 %dx%d", got.W, got.H)
	}
	p := New(32, 32)
	if ToPow2(p) != p {
		t.Fatal("pow2 texture copied")
	}
}
