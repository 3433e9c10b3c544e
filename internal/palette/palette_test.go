package palette

import (
	"testing"

	"wallfacer/internal/raster"
)

func TestHSV(t *testing.T) {
	tests := []struct {
		h, s, v float64
		want    raster.RGB
	}{
		{0, 1, 1, raster.RGB{R: 255}},
		{120, 1, 1, raster.RGB{G: 255}},
		{240, 1, 1, raster.RGB{B: 255}},
		{360, 1, 1, raster.RGB{R: 255}},
		{-120, 1, 1, raster.RGB{B: 255}},
		{77, 0, 1, raster.RGB{R: 255, G: 255, B: 255}},
		{200, 1, 0, raster.RGB{}},
	}
	for _, tt := range tests {
		if got := HSV(tt.h, tt.s, tt.v); got != tt.want {
			t.Errorf("HSV(%v,%v,%v) = %+v want %+v", tt.h, tt.s, tt.v, got, tt.want)
		}
	}
}

func TestLerpClamps(t *testing.T) {
	a, b := raster.RGB{R: 0, G: 100, B: 200}, raster.RGB{R: 200, G: 100, B: 0}
	if got := Lerp(a, b, 0.5); got != (raster.RGB{R: 100, G: 100, B: 100}) {
		t.Fatalf("mid %+v", got)
	}
	if Lerp(a, b, -1) != a || Lerp(a, b, 3) != b {
		t.Fatal("t not clamped")
	}
}

func TestFireRamp(t *testing.T) {
	p := Fire()
	if len(p) != 256 || p[0] != (raster.RGB{}) || p[255] != (raster.RGB{R: 255, G: 255, B: 255}) {
		t.Fatalf("fire ends %+v %+v", p[0], p[255])
	}
	for i := 1; i < 256; i++ {
		if p[i].R < p[i-1].R || p[i].G < p[i-1].G || p[i].B < p[i-1].B {
			t.Fatalf("fire ramp not monotonic at %d", i)
		}
	}
	if len(Rainbow(64)) != 64 {
		t.Fatal("rainbow size")
	}
}
