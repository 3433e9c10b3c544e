package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestResolveDefaults(t *testing.T) {
	var c Config
	if err := c.Resolve(Flags{}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if c.Width != 640 || c.Height != 480 {
		t.Errorf("size = %dx%d", c.Width, c.Height)
	}
	if c.NoVSync || c.Backend != BackendWindow || c.Scene != "scene.json" || c.Socket != DefaultSocket {
		t.Errorf("defaults = %+v", c)
	}
	if c.Workers != runtime.NumCPU() || c.RecordEvery != 1 {
		t.Errorf("workers %d every %d", c.Workers, c.RecordEvery)
	}
}

func TestResolveOverrides(t *testing.T) {
	tests := []struct {
		name  string
		file  Config
		flags Flags
		check func(t *testing.T, c Config)
	}{
		{
			name:  "resolution wins over width",
			flags: Flags{Width: 800, Resolution: "1920x1080"},
			check: func(t *testing.T, c Config) {
				if c.Width != 1920 || c.Height != 1080 {
					t.Errorf("size = %dx%d", c.Width, c.Height)
				}
			},
		},
		{
			name:  "flag beats file",
			file:  Config{Width: 320, Backend: BackendTerminal, Effect: 4},
			flags: Flags{Width: 1024, Effect: intPtr(0)},
			check: func(t *testing.T, c Config) {
				if c.Width != 1024 || c.Height != 480 || c.Effect != 0 || c.Backend != BackendTerminal {
					t.Errorf("got %+v", c)
				}
			},
		},
		{
			name:  "benchmark disables vsync",
			flags: Flags{Benchmark: 3},
			check: func(t *testing.T, c Config) {
				if !c.NoVSync || c.Benchmark != 3 {
					t.Errorf("vsync off %v benchmark %v", c.NoVSync, c.Benchmark)
				}
			},
		},
		{
			name:  "test pattern start",
			flags: Flags{Effect: intPtr(-1), Rotate: intPtr(270)},
			check: func(t *testing.T, c Config) {
				if c.Effect != -1 || c.Rotate != 270 {
					t.Errorf("effect %d rotate %d", c.Effect, c.Rotate)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.file
			if err := c.Resolve(tt.flags); err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			tt.check(t, c)
		})
	}
}

func TestResolveRejects(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
	}{
		{"rotation", Flags{Rotate: intPtr(45)}},
		{"backend", Flags{Backend: "opengl"}},
		{"resolution", Flags{Resolution: "big"}},
		{"effect", Flags{Effect: intPtr(-5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			if err := c.Resolve(tt.flags); err == nil {
				t.Errorf("Resolve(%+v) accepted", tt.flags)
			}
		})
	}
}

func TestParseResolution(t *testing.T) {
	tests := []struct {
		in   string
		w, h int
		ok   bool
	}{
		{"1920x1080", 1920, 1080, true},
		{" 800X600 ", 800, 600, true},
		{"800", 0, 0, false},
		{"0x600", 0, 0, false},
		{"axb", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := ParseResolution(tt.in)
			if (err == nil) != tt.ok || w != tt.w || h != tt.h {
				t.Errorf("ParseResolution(%q) = %d, %d, %v", tt.in, w, h, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"width": 1280, "height": 720, "rotate": 90, "ssh_addr": ":2222"}`), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Width != 1280 || c.Height != 720 || c.Rotate != 90 || c.SSHAddr != ":2222" {
		t.Errorf("loaded %+v", c)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file accepted")
	}
	os.WriteFile(path, []byte("{"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("malformed file accepted")
	}
}
