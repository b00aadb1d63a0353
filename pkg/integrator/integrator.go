package integrator

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color seen along ray with depth reflection bounces left.
	// sampler must be owned by the calling goroutine.
	RayColor(ray core.Ray, depth int, sampler core.Sampler) core.Vec3
}
