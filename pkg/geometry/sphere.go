package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// SphereLighting is the local illumination used by every sphere
var SphereLighting = material.Lighting{Diffuse: 0.35, Specular: 0.35, Shininess: 1.5}

// Sphere represents a sphere shape
type Sphere struct {
	Center        core.Vec3
	RadiusSquared float64 // Cached for the quadratic solve
	material      material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:        center,
		RadiusSquared: radius * radius,
		material:      mat,
	}
}

// Radius returns the sphere radius
func (s *Sphere) Radius() float64 {
	return math.Sqrt(s.RadiusSquared)
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (float64, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.RadiusSquared

	discriminant := b*b - 4.0*a*c
	if discriminant < 0 || a == 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	far := (-b + sqrtD) / (2.0 * a)
	near := (-b - sqrtD) / (2.0 * a)

	return nearestRoot(near, far, tMin, tMax)
}

// nearestRoot picks the smaller of two roots when both lie strictly inside
// (tMin, tMax), otherwise whichever single root does
func nearestRoot(p, q, tMin, tMax float64) (float64, bool) {
	pIn := p > tMin && p < tMax
	qIn := q > tMin && q < tMax

	switch {
	case pIn && qIn:
		return min(p, q), true
	case pIn:
		return p, true
	case qIn:
		return q, true
	default:
		return 0, false
	}
}

// SurfaceAt returns the outward normal at point
func (s *Sphere) SurfaceAt(point core.Vec3) material.SurfacePoint {
	return material.SurfacePoint{
		Point:  point,
		Normal: point.Subtract(s.Center).Normalize(),
		Color:  s.material.Ambient,
	}
}

// Material returns the sphere's material
func (s *Sphere) Material() material.Material {
	return s.material
}

// Lighting returns SphereLighting
func (s *Sphere) Lighting() material.Lighting {
	return SphereLighting
}
