package scene

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

const sphereGridSize = 5

// SphereGridPose frames the grid from above and in front
func SphereGridPose() Pose {
	return Pose{
		Eye:    core.NewVec3(2, 4.5, -5),
		LookAt: core.NewVec3(2, 0.4, 2),
		Light:  core.NewVec3(-10, 20, -15),
	}
}

// NewSphereGridScene creates a grid of rainbow spheres whose reflectivity
// grows from front to back, standing on a checkered floor
func NewSphereGridScene(light core.Vec3) *Scene {
	const radius = 0.4
	const spacing = 1.0

	surfaces := geometry.NewGroundQuad(core.NewVec3(2, 0, 2), 20, Floor, true)

	for row := 0; row < sphereGridSize; row++ {
		reflectivity := float64(row) / float64(sphereGridSize-1) * 0.8
		for col := 0; col < sphereGridSize; col++ {
			hue := float64(row*sphereGridSize+col) / float64(sphereGridSize*sphereGridSize) * 360.0
			color := oklchToRGB(0.7, 0.15, hue)
			center := core.NewVec3(float64(col)*spacing, radius, float64(row)*spacing)
			surfaces = append(surfaces, geometry.NewSphere(center, radius, material.New(color, reflectivity)))
		}
	}

	// A brass block at the back for the reflections to pick up
	surfaces = append(surfaces, geometry.NewAxisAlignedBox(
		core.NewVec3(2, 0.75, 6), core.NewVec3(2.5, 0.75, 0.25), Brass)...)

	return NewScene(light, surfaces...)
}
