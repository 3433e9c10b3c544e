package region

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
)

// DefaultSceneName is used for new scenes.
const DefaultSceneName = "untitled"

// Region is a named shape with optional tags.
type Region struct {
	Name  string
	Shape Shape
	Tags  []string
}

// NewPolygonRegion wraps p in a region.
func NewPolygonRegion(name string, p *Polygon) Region {
	return Region{Name: name, Shape: p}
}

// NewCircleRegion wraps c in a region.
func NewCircleRegion(name string, c *Circle) Region {
	return Region{Name: name, Shape: c}
}

// WithTag returns r with tag appended.
func (r Region) WithTag(tag string) Region {
	r.Tags = append(append([]string(nil), r.Tags...), tag)
	return r
}

// HasTag reports whether r carries tag.
func (r *Region) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (r *Region) Contains(x, y float64) bool {
	return r.Shape != nil && r.Shape.Contains(x, y)
}

// Polygon returns the polygon shape, if r is one.
func (r *Region) Polygon() (*Polygon, bool) {
	p, ok := r.Shape.(*Polygon)
	return p, ok
}

// Circle returns the circle shape, if r is one.
func (r *Region) Circle() (*Circle, bool) {
	c, ok := r.Shape.(*Circle)
	return c, ok
}

// Clone deep-copies the region.
func (r Region) Clone() Region {
	out := Region{Name: r.Name, Tags: append([]string(nil), r.Tags...)}
	if r.Shape != nil {
		out.Shape = r.Shape.Clone()
	}
	return out
}

type shapeJSON struct {
	Type     string  `json:"type"`
	Vertices []Point `json:"vertices,omitempty"`
	Center   *Point  `json:"center,omitempty"`
	Radius   float64 `json:"radius,omitempty"`
}

type regionJSON struct {
	Name  string     `json:"name"`
	Shape *shapeJSON `json:"shape,omitempty"`
	// Polygon is the legacy pre-circle layout, read but never written.
	Polygon *Polygon `json:"polygon,omitempty"`
	Tags    []string `json:"tags"`
}

func (r Region) MarshalJSON() ([]byte, error) {
	out := regionJSON{Name: r.Name, Tags: r.Tags}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	switch s := r.Shape.(type) {
	case *Polygon:
		out.Shape = &shapeJSON{Type: KindPolygon, Vertices: s.Vertices}
		if out.Shape.Vertices == nil {
			out.Shape.Vertices = []Point{}
		}
	case *Circle:
		c := s.Center
		out.Shape = &shapeJSON{Type: KindCircle, Center: &c, Radius: s.Radius}
	case nil:
		return nil, fmt.Errorf("region: marshal %q: no shape", r.Name)
	default:
		return nil, fmt.Errorf("region: marshal %q: unknown shape %T", r.Name, s)
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts both the tagged shape layout and the legacy layout
// carrying "polygon" directly, migrating the latter in memory.
func (r *Region) UnmarshalJSON(data []byte) error {
	var in regionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	r.Name = in.Name
	r.Tags = nil
	if len(in.Tags) > 0 {
		r.Tags = in.Tags
	}

	switch {
	case in.Shape != nil:
		switch strings.ToLower(in.Shape.Type) {
		case KindPolygon:
			r.Shape = &Polygon{Vertices: in.Shape.Vertices}
		case KindCircle:
			if in.Shape.Center == nil {
				return fmt.Errorf("region: %q: circle without center", in.Name)
			}
			r.Shape = &Circle{Center: *in.Shape.Center, Radius: in.Shape.Radius}
		default:
			return fmt.Errorf("region: %q: unknown shape type %q", in.Name, in.Shape.Type)
		}
	case in.Polygon != nil:
		r.Shape = in.Polygon
	default:
		return fmt.Errorf("region: %q: missing shape", in.Name)
	}
	return nil
}

// Scene is a named, ordered list of regions. Only the calibration editor mutates it.
type Scene struct {
	Name    string   `json:"name"`
	Regions []Region `json:"regions"`
}

// NewScene returns an empty scene.
func NewScene(name string) *Scene {
	return &Scene{Name: name, Regions: []Region{}}
}

func (s *Scene) Add(r Region) {
	s.Regions = append(s.Regions, r)
}

// RemoveAt deletes the region at i. Out-of-range indexes are ignored.
func (s *Scene) RemoveAt(i int) (Region, bool) {
	if i < 0 || i >= len(s.Regions) {
		return Region{}, false
	}
	r := s.Regions[i]
	s.Regions = append(s.Regions[:i], s.Regions[i+1:]...)
	return r, true
}

// RegionAt returns the index of the first region containing (x, y), or -1.
func (s *Scene) RegionAt(x, y float64) int {
	for i := range s.Regions {
		if s.Regions[i].Contains(x, y) {
			return i
		}
	}
	return -1
}

// RegionsWithTag returns the indexes of every region carrying tag.
func (s *Scene) RegionsWithTag(tag string) []int {
	var out []int
	for i := range s.Regions {
		if s.Regions[i].HasTag(tag) {
			out = append(out, i)
		}
	}
	return out
}

// Clone deep-copies the scene.
func (s *Scene) Clone() *Scene {
	out := &Scene{Name: s.Name, Regions: make([]Region, len(s.Regions))}
	for i, r := range s.Regions {
		out.Regions[i] = r.Clone()
	}
	return out
}

// Fingerprint hashes the region count and every region's bounding box so
// effects can detect scene edits. Shapes without bounds contribute nothing.
func (s *Scene) Fingerprint() uint64 {
	if s == nil {
		return 0
	}
	h := uint64(len(s.Regions))
	for i := range s.Regions {
		sh := s.Regions[i].Shape
		if sh == nil {
			continue
		}
		minX, minY, maxX, maxY, ok := sh.Bounds()
		if !ok {
			continue
		}
		for _, v := range [...]float64{minX, minY, maxX, maxY} {
			h = h*31 + math.Float64bits(v)
		}
	}
	return h
}

// Save writes the scene as indented JSON. s is not modified.
func (s *Scene) Save(path string) error {
	out := *s
	if out.Regions == nil {
		out.Regions = []Region{}
	}
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("region: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("region: write %s: %w", path, err)
	}
	return nil
}

// Load reads a scene file, migrating legacy regions.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("region: read %s: %w", path, err)
	}
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("region: parse %s: %w", path, err)
	}
	if s.Regions == nil {
		s.Regions = []Region{}
	}
	for i := range s.Regions {
		if err := s.Regions[i].sanitize(); err != nil {
			return nil, fmt.Errorf("region: load %s: %w", path, err)
		}
	}
	return &s, nil
}

// MaxCoord bounds every loaded coordinate and radius.
const MaxCoord = 1 << 20

func validCoord(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && math.Abs(v) <= MaxCoord
}

// sanitize rejects shapes that cannot be drawn and lifts undersized circles
// to MinCircleRadius.
func (r *Region) sanitize() error {
	switch sh := r.Shape.(type) {
	case *Polygon:
		if len(sh.Vertices) < 3 {
			return fmt.Errorf("%q: polygon has %d vertices, need 3", r.Name, len(sh.Vertices))
		}
		for _, v := range sh.Vertices {
			if !validCoord(v.X) || !validCoord(v.Y) {
				return fmt.Errorf("%q: vertex (%v, %v) out of range", r.Name, v.X, v.Y)
			}
		}
	case *Circle:
		if !validCoord(sh.Center.X) || !validCoord(sh.Center.Y) || !validCoord(sh.Radius) {
			return fmt.Errorf("%q: circle (%v, %v) r=%v out of range", r.Name, sh.Center.X, sh.Center.Y, sh.Radius)
		}
		sh.Radius = max(sh.Radius, MinCircleRadius)
	}
	return nil
}
