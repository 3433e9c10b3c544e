package raster

import (
	"math"

	"wallfacer/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters for flat-shaded faces.
type LightConfig struct {
	LightDir mathutil.Vec3
	RimDir   mathutil.Vec3
	ViewDir  mathutil.Vec3
	HalfMain mathutil.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient  float64
	Hemi     float64
	Direct   float64
	Rim      float64
	SpecInt  float64
	SpecPow  float64
	Exposure float64
}

// DefaultLightConfig returns a key light from the upper left front with a
// rim light from behind. Directions are the way light travels; the camera
// looks down +Z and screen Y grows downward.
func DefaultLightConfig() LightConfig {
	lightDir := mathutil.Vec3{0.5, 0.7, 0.6}.Normalize()
	rimDir := mathutil.Vec3{-0.6, -0.3, -0.8}.Normalize()
	viewDir := mathutil.Vec3{0, 0, 1}

	halfMain := lightDir.Add(viewDir).Normalize()

	return LightConfig{
		LightDir: lightDir,
		RimDir:   rimDir,
		ViewDir:  viewDir,
		HalfMain: halfMain,
		Ambient:  0.12,
		Hemi:     0.10,
		Direct:   0.85,
		Rim:      0.25,
		SpecInt:  0.35,
		SpecPow:  16.0,
		Exposure: 1.4,
	}
}

// Lambert returns max(0, n·-L), the diffuse term for a face normal.
func (lc *LightConfig) Lambert(normal mathutil.Vec3) float64 {
	d := -normal.Dot(lc.LightDir)
	if d < 0 {
		return 0
	}
	return d
}

// ComputeShade returns the combined lighting scalar for a face normal.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float64 {
	ndlMain := lc.Lambert(normal)
	ndlRim := math.Abs(normal.Dot(lc.RimDir))

	// Hemisphere fill
	hemi := (1.0-math.Abs(normal[1]))*0.5 + 0.5
	hemiLight := hemi * lc.Hemi

	// Blinn-Phong specular
	ndh := -normal.Dot(lc.HalfMain)
	if ndh < 0 {
		ndh = 0
	}
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemiLight + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// Shade lights a base color for normal and tone maps the result back to bytes.
func (lc *LightConfig) Shade(normal mathutil.Vec3, r, g, bl uint8) (uint8, uint8, uint8) {
	s := lc.ComputeShade(normal) * lc.Exposure
	return toneByte(r, s), toneByte(g, s), toneByte(bl, s)
}

func toneByte(c uint8, shade float64) uint8 {
	return clamp255(ACESTonemap(float64(c)/255*shade) * 255)
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}
