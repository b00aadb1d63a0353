package geometry

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// Surface is a shadeable primitive in the scene
type Surface interface {
	// Hit returns the ray parameter of the nearest intersection with tMin < t < tMax
	Hit(ray core.Ray, tMin, tMax float64) (float64, bool)

	// SurfaceAt reports the normal and patterned color at a point on the surface
	SurfaceAt(point core.Vec3) material.SurfacePoint

	// Material returns the surface's material
	Material() material.Material

	// Lighting returns the local illumination coefficients for this kind of surface
	Lighting() material.Lighting
}
