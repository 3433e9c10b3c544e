package region

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func sampleScene() *Scene {
	s := NewScene("wall")
	s.Add(NewPolygonRegion("region_1", NewPolygon([2]float64{100, 100}, [2]float64{300, 100}, [2]float64{300, 200}, [2]float64{100, 200})))
	s.Add(NewCircleRegion("clock", NewCircle(320, 240, 50)).WithTag("chyron_top"))
	s.Add(NewPolygonRegion("tri", NewPolygon([2]float64{400, 300}, [2]float64{500, 310}, [2]float64{450, 420})).WithTag("a").WithTag("b"))
	return s
}

func TestSceneRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	want := sampleScene()
	if err := want.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch\n got %+v\nwant %+v", got, want)
	}
}

func TestSceneJSONLayout(t *testing.T) {
	data, err := json.Marshal(sampleScene())
	if err != nil {
		t.Fatal(err)
	}
	var raw struct {
		Name    string `json:"name"`
		Regions []struct {
			Name  string         `json:"name"`
			Shape map[string]any `json:"shape"`
			Tags  []string       `json:"tags"`
		} `json:"regions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw.Regions[0].Shape["type"] != "polygon" {
		t.Errorf("regions[0].shape.type = %v, want polygon", raw.Regions[0].Shape["type"])
	}
	if verts, _ := raw.Regions[0].Shape["vertices"].([]any); len(verts) != 4 {
		t.Errorf("regions[0] has %d vertices, want 4", len(verts))
	}
	if raw.Regions[1].Shape["type"] != "circle" || raw.Regions[1].Shape["radius"] != 50.0 {
		t.Errorf("regions[1].shape = %v", raw.Regions[1].Shape)
	}
	if raw.Regions[0].Tags == nil {
		t.Error("tags should encode as an empty list")
	}
}

func TestLoadLegacyPolygon(t *testing.T) {
	legacy := `{
  "name": "old",
  "regions": [
    {"name": "frame", "polygon": {"vertices": [{"x": 1, "y": 2}, {"x": 30, "y": 2}, {"x": 30, "y": 40}]}, "tags": []}
  ]
}`
	path := filepath.Join(t.TempDir(), "legacy.json")
	if err := os.WriteFile(path, []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(s.Regions))
	}
	p, ok := s.Regions[0].Polygon()
	if !ok {
		t.Fatalf("shape is %T, want *Polygon", s.Regions[0].Shape)
	}
	want := []Point{{1, 2}, {30, 2}, {30, 40}}
	if !reflect.DeepEqual(p.Vertices, want) {
		t.Errorf("vertices = %v, want %v", p.Vertices, want)
	}
}

func TestLoadCapitalizedType(t *testing.T) {
	var r Region
	err := json.Unmarshal([]byte(`{"name":"c","shape":{"type":"Circle","center":{"x":5,"y":6},"radius":12}}`), &r)
	if err != nil {
		t.Fatal(err)
	}
	c, ok := r.Circle()
	if !ok || c.Radius != 12 || c.Center != (Point{5, 6}) {
		t.Errorf("got %+v", r.Shape)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for a missing file")
	}
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"name":"x","regions":[{"name":"r"}]}`), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("expected error for a region without a shape")
	}
}

func TestContainsAndBounds(t *testing.T) {
	s := sampleScene()
	tests := []struct {
		name string
		x, y float64
		want int
	}{
		{"inside rectangle", 150, 150, 0},
		{"inside circle", 320, 260, 1},
		{"circle edge", 370, 240, 1},
		{"empty space", 10, 10, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.RegionAt(tt.x, tt.y); got != tt.want {
				t.Errorf("RegionAt(%v, %v) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}

	minX, minY, maxX, maxY, ok := s.Regions[1].Shape.Bounds()
	if !ok || minX != 270 || minY != 190 || maxX != 370 || maxY != 290 {
		t.Errorf("circle bounds = %v %v %v %v", minX, minY, maxX, maxY)
	}
	if _, _, _, _, ok := (&Polygon{}).Bounds(); ok {
		t.Error("empty polygon should have no bounds")
	}
	c, _ := s.Regions[0].Shape.Centroid()
	if c != (Point{200, 150}) {
		t.Errorf("centroid = %v, want {200 150}", c)
	}
}

func TestRemoveAtAndTags(t *testing.T) {
	s := sampleScene()
	if _, ok := s.RemoveAt(7); ok {
		t.Error("RemoveAt out of range should report false")
	}
	if _, ok := s.RemoveAt(-1); ok {
		t.Error("RemoveAt(-1) should report false")
	}
	if got := s.RegionsWithTag("chyron_top"); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("RegionsWithTag = %v", got)
	}
	r, ok := s.RemoveAt(0)
	if !ok || r.Name != "region_1" || len(s.Regions) != 2 {
		t.Errorf("RemoveAt(0) = %v, %v; %d left", r.Name, ok, len(s.Regions))
	}
}

func TestFingerprint(t *testing.T) {
	a := sampleScene()
	b := a.Clone()
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("clone should share the fingerprint")
	}
	c, _ := b.Regions[1].Circle()
	c.Radius += 1
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("resizing a circle should change the fingerprint")
	}
	b.RemoveAt(0)
	if NewScene("x").Fingerprint() != 0 {
		t.Error("empty scene fingerprint should be 0")
	}
	if b.Fingerprint() == a.Fingerprint() {
		t.Error("removing a region should change the fingerprint")
	}
}

func TestLoadSanitizes(t *testing.T) {
	tests := []struct {
		name    string
		regions string
		wantErr bool
	}{
		{"two vertices", `[{"name":"r","shape":{"type":"polygon","vertices":[{"x":0,"y":0},{"x":5,"y":5}]}}]`, true},
		{"empty polygon", `[{"name":"r","shape":{"type":"polygon"}}]`, true},
		{"huge vertex", `[{"name":"r","shape":{"type":"polygon","vertices":[{"x":0,"y":0},{"x":1e300,"y":5},{"x":5,"y":9}]}}]`, true},
		{"huge radius", `[{"name":"c","shape":{"type":"circle","center":{"x":5,"y":6},"radius":1e300}}]`, true},
		{"huge center", `[{"name":"c","shape":{"type":"circle","center":{"x":-1e12,"y":6},"radius":20}}]`, true},
		{"legacy two vertices", `[{"name":"r","polygon":{"vertices":[{"x":1,"y":2},{"x":3,"y":4}]}}]`, true},
		{"small radius", `[{"name":"c","shape":{"type":"circle","center":{"x":5,"y":6},"radius":2}}]`, false},
	}
	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			if err := os.WriteFile(path, []byte(`{"name":"x","regions":`+tt.regions+`}`), 0644); err != nil {
				t.Fatal(err)
			}
			s, err := Load(path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Load accepted %s", tt.regions)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			c, ok := s.Regions[0].Circle()
			if !ok || c.Radius != MinCircleRadius {
				t.Errorf("got %+v, want radius %v", s.Regions[0].Shape, MinCircleRadius)
			}
		})
	}
}

func TestSaveDoesNotMutate(t *testing.T) {
	s := &Scene{Name: "bare"}
	path := filepath.Join(t.TempDir(), "bare.json")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if s.Regions != nil {
		t.Error("Save replaced the nil region list")
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Regions == nil || len(got.Regions) != 0 {
		t.Errorf("regions = %#v, want an empty list", got.Regions)
	}
}
