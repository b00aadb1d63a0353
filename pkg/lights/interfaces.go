package lights

import "github.com/df07/go-recursive-raytracer/pkg/core"

// Occluder answers visibility queries for shadow rays
type Occluder interface {
	// Occluded reports whether anything intersects ray with tMin < t < tMax
	Occluded(ray core.Ray, tMin, tMax float64) bool
}

// LightSample contains information about a sampled point on a light
type LightSample struct {
	Point     core.Vec3 // Point on the light volume
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to light
}
