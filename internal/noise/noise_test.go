package noise

import (
	"math"
	"testing"
)

func TestRngDeterministic(t *testing.T) {
	a, b := NewRng(0x1234ABCD), NewRng(0x1234ABCD)
	for i := 0; i < 1000; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatalf("diverged at %d", i)
		}
	}
	z := NewRng(0)
	one := NewRng(1)
	if z.Uint64() != one.Uint64() {
		t.Fatal("seed 0 not coerced to 1")
	}
}

func TestRngRanges(t *testing.T) {
	r := NewRng(42)
	seen := map[int]bool{}
	for i := 0; i < 10000; i++ {
		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64 %v", f)
		}
		v := r.Range(-3, 5)
		if v < -3 || v >= 5 {
			t.Fatalf("Range %v", v)
		}
		n := r.Intn(-2, 2)
		if n < -2 || n > 2 {
			t.Fatalf("Intn %d", n)
		}
		seen[n] = true
	}
	if len(seen) != 5 {
		t.Fatalf("Intn inclusive bounds not reached: %v", seen)
	}
	if r.Intn(7, 3) != 7 {
		t.Fatal("inverted Intn")
	}
}

func TestHashRange(t *testing.T) {
	for x := int32(-50); x < 50; x++ {
		for y := int32(-50); y < 50; y++ {
			v := Hash(x, y, x*y, 12345)
			if v < 0 || v >= 1 {
				t.Fatalf("Hash(%d,%d) = %v", x, y, v)
			}
		}
	}
	if Hash(10, 20, 30, 42) != Hash(10, 20, 30, 42) {
		t.Fatal("Hash not deterministic")
	}
}

func TestSmoothstep(t *testing.T) {
	for _, f := range []func(float64) float64{Smoothstep, SmoothstepQuintic} {
		if f(0) != 0 || f(1) != 1 || math.Abs(f(0.5)-0.5) > 1e-12 {
			t.Fatal("smoothstep endpoints")
		}
	}
}

func TestValueNoise(t *testing.T) {
	// lattice points return the hash itself
	if v, h := Value2(3, -4, 7), Hash2(3, -4, 7); v != h {
		t.Fatalf("Value2 at lattice %v, hash %v", v, h)
	}
	for i := 0; i < 200; i++ {
		x := float64(i) * 0.1
		a := Value3(x, 0.3, -1.7, 999)
		b := Value3(x+0.01, 0.3, -1.7, 999)
		if a < 0 || a > 1 || math.Abs(a-b) > 0.1 {
			t.Fatalf("Value3 discontinuity at %v: %v → %v", x, a, b)
		}
	}
}

func TestOctaveSums(t *testing.T) {
	tests := []struct {
		name string
		f    func(x, y float64) float64
	}{
		{"fbm2", func(x, y float64) float64 { return FBM2(x, y, 5, 1) }},
		{"fbm3", func(x, y float64) float64 { return FBM3(x, y, 0.5, 5, 1) }},
		{"turbulence2", func(x, y float64) float64 { return Turbulence2(x, y, 5, 1) }},
		{"turbulence3", func(x, y float64) float64 { return Turbulence3(x, y, 0.5, 5, 1) }},
		{"ridged2", func(x, y float64) float64 { return Ridged2(x, y, 5, 1) }},
		{"ridged3", func(x, y float64) float64 { return Ridged3(x, y, 0.5, 5, 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				v := tt.f(float64(i)*0.37, float64(i)*-0.21)
				// amplitudes 0.5 + 0.25 + ... stay below 1
				if v < 0 || v >= 1 {
					t.Fatalf("sample %d = %v", i, v)
				}
			}
		})
	}
	if FBM2(1.5, 2.5, 0, 1) != 0 {
		t.Fatal("zero octaves should sum to zero")
	}
}
