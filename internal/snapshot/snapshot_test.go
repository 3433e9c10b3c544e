package snapshot

import (
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestToNRGBAByteOrder(t *testing.T) {
	// one pixel: A=255 B=30 G=20 R=10
	img := ToNRGBA([]byte{255, 30, 20, 10}, 1, 1)
	if got := img.Pix[:4]; got[0] != 10 || got[1] != 20 || got[2] != 30 || got[3] != 255 {
		t.Errorf("RGBA = %v", got)
	}
}

func TestDownscale(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		maxW, maxH   int
		wantW, wantH int
	}{
		{"fits", 64, 48, 128, 128, 64, 48},
		{"landscape", 640, 480, 320, 320, 320, 240},
		{"portrait", 480, 640, 320, 320, 240, 320},
		{"disabled", 640, 480, 0, 0, 640, 480},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewNRGBA(image.Rect(0, 0, tt.w, tt.h))
			got := Downscale(img, tt.maxW, tt.maxH).Bounds()
			if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", got.Dx(), got.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestScreenshot(t *testing.T) {
	dir := t.TempDir()
	pix := make([]byte, 8*4*4)
	path, err := Screenshot(dir, 3, pix, 8, 4)
	if err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
	if filepath.Base(path) != "shot-0003.webp" {
		t.Errorf("path = %s", path)
	}
	if st, err := os.Stat(path); err != nil || st.Size() == 0 {
		t.Errorf("stat %s: %v", path, err)
	}
}

func TestRecorder(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRecorder(RecorderConfig{Dir: dir, Workers: 2, Every: 2, MaxWidth: 8, MaxHeight: 8})
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	pix := make([]byte, 16*16*4)
	kept := 0
	for range 6 {
		if r.Add(pix, 16, 16) {
			kept++
		}
	}
	results, err := r.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(results) != kept || kept+r.Dropped() != 3 {
		t.Fatalf("%d results, %d kept, %d dropped", len(results), kept, r.Dropped())
	}
	for i := 1; i < len(results); i++ {
		if results[i].Index <= results[i-1].Index {
			t.Errorf("results out of order: %v", results)
		}
	}
	for _, res := range results {
		if res.Error != "" {
			t.Errorf("frame %d: %s", res.Index, res.Error)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if len(m.Frames) != kept {
		t.Errorf("manifest lists %d frames, want %d", len(m.Frames), kept)
	}
	if r.Add(pix, 16, 16) {
		t.Error("Add after Close accepted a frame")
	}
}
