package material

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Material holds the appearance shared by value among surfaces
type Material struct {
	Ambient      core.Vec3 // Base color, conventionally in [0,1] but not clamped
	Reflectivity float64   // Blend weight of the mirror term in [0,1]
}

// New creates a material from an ambient color and reflectivity
func New(ambient core.Vec3, reflectivity float64) Material {
	return Material{Ambient: ambient, Reflectivity: reflectivity}
}

// IsReflective reports whether shading should cast a reflection ray
func (m Material) IsReflective() bool {
	return m.Reflectivity > 0
}

// Lighting holds the fixed local illumination coefficients of a surface kind
type Lighting struct {
	Diffuse   float64 // Grey diffuse weight on max(0, n·l)
	Specular  float64 // Grey specular weight on max(0, n·h)^Shininess
	Shininess float64 // Highlight exponent; 1 keeps the term linear
}

// SurfacePoint is the shading input a surface reports for a point on it
type SurfacePoint struct {
	Point  core.Vec3 // World-space position
	Normal core.Vec3 // Unit surface normal
	Color  core.Vec3 // Ambient color after any procedural pattern
}
