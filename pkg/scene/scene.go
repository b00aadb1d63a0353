package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
)

// Scene is an ordered, read-only collection of surfaces lit by one light.
// Nothing mutates a Scene once NewScene returns, so render workers share it
// without locking.
type Scene struct {
	surfaces []geometry.Surface
	light    core.Vec3
}

// Pose is the per-frame camera and light placement
type Pose struct {
	Eye    core.Vec3
	LookAt core.Vec3
	Light  core.Vec3
}

// NewScene creates a scene from surfaces in scan order
func NewScene(light core.Vec3, surfaces ...geometry.Surface) *Scene {
	owned := make([]geometry.Surface, len(surfaces))
	copy(owned, surfaces)
	return &Scene{
		surfaces: owned,
		light:    light,
	}
}

// Light returns the light position
func (s *Scene) Light() core.Vec3 {
	return s.light
}

// Len returns the number of surfaces
func (s *Scene) Len() int {
	return len(s.surfaces)
}

// Surfaces returns a copy of the surfaces in scan order
func (s *Scene) Surfaces() []geometry.Surface {
	out := make([]geometry.Surface, len(s.surfaces))
	copy(out, s.surfaces)
	return out
}

// ClosestHit scans every surface and returns the one with the smallest
// ray parameter in (tMin, tMax)
func (s *Scene) ClosestHit(ray core.Ray, tMin, tMax float64) (geometry.Surface, float64, bool) {
	var closest geometry.Surface
	closestSoFar := tMax

	for _, surface := range s.surfaces {
		if t, isHit := surface.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = t
			closest = surface
		}
	}

	if closest == nil {
		return nil, 0, false
	}
	return closest, closestSoFar, true
}

// Occluded reports whether any surface intersects ray in (tMin, tMax)
func (s *Scene) Occluded(ray core.Ray, tMin, tMax float64) bool {
	for _, surface := range s.surfaces {
		if _, isHit := surface.Hit(ray, tMin, tMax); isHit {
			return true
		}
	}
	return false
}
