package lights

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// AreaLight is a cube-shaped light volume centered at Position. Shadows are
// estimated by jittering shadow ray targets inside the cube.
type AreaLight struct {
	Position core.Vec3
	Radius   float64 // Half extent of the cube along each axis
	Samples  int     // Shadow rays per estimate
}

// NewAreaLight creates an area light
func NewAreaLight(position core.Vec3, radius float64, samples int) AreaLight {
	return AreaLight{
		Position: position,
		Radius:   radius,
		Samples:  samples,
	}
}

// Direction returns the unit direction from point to the light center
func (l AreaLight) Direction(point core.Vec3) core.Vec3 {
	return l.Position.Subtract(point).Normalize()
}

// Sample picks a uniform point in the light volume as seen from point
func (l AreaLight) Sample(point core.Vec3, sampler core.Sampler) LightSample {
	target := l.Position.Add(core.SampleInCube(sampler.Get3D(), l.Radius))
	toLight := target.Subtract(point)
	distance := toLight.Length()

	return LightSample{
		Point:     target,
		Direction: toLight.Normalize(),
		Distance:  distance,
	}
}

// Shadow returns the fraction of shadow rays from point that hit anything,
// in [0, 1]. Any hit in (tMin, tMax) counts, regardless of its distance.
func (l AreaLight) Shadow(point core.Vec3, occluder Occluder, sampler core.Sampler, tMin, tMax float64) float64 {
	if l.Samples <= 0 {
		return 0
	}

	occluded := 0
	for i := 0; i < l.Samples; i++ {
		sample := l.Sample(point, sampler)
		if occluder.Occluded(core.NewRay(point, sample.Direction), tMin, tMax) {
			occluded++
		}
	}

	return float64(occluded) / float64(l.Samples)
}
