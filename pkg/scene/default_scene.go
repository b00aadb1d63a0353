package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// DefaultPose is the snowman scene's reference camera and light
func DefaultPose() Pose {
	return Pose{
		Eye:    core.NewVec3(0, 2.5, -1),
		LookAt: core.NewVec3(1, 1, 3),
		Light:  core.NewVec3(25, 25, -10),
	}
}

// Snowman scene materials
var (
	Blue   = material.New(core.NewVec3(0, 0, 1), 0)
	Green  = material.New(core.NewVec3(0, 1, 0), 0.35)
	Red    = material.New(core.NewVec3(1, 0, 0), 0)
	Mirror = material.New(core.NewVec3(0.15, 0.15, 0.15), 0.9)
	Floor  = material.New(core.NewVec3(0.25, 0.56725, 0.20725), 0.085)
	Brass  = material.New(core.NewVec3(0.329412, 0.223529, 0.027451), 0)
)

// NewSnowmanScene creates the default scene: a three-sphere snowman, a mirror
// sphere, a brass cube and a checkered floor
func NewSnowmanScene(light core.Vec3) *Scene {
	floor := [4]core.Vec3{
		core.NewVec3(-10, 0, -10),
		core.NewVec3(-10, 0, 10),
		core.NewVec3(10, 0, 10),
		core.NewVec3(10, 0, -10),
	}

	cube := [8]core.Vec3{
		core.NewVec3(1, 0, 1.5), // 0
		core.NewVec3(1, 0, 0.5), // 1
		core.NewVec3(2, 0, 0.5), // 2
		core.NewVec3(2, 0, 1.5), // 3
		core.NewVec3(1, 1, 1.5), // 4
		core.NewVec3(1, 1, 0.5), // 5
		core.NewVec3(2, 1, 0.5), // 6
		core.NewVec3(2, 1, 1.5), // 7
	}

	surfaces := []geometry.Surface{
		// Snowman
		geometry.NewSphere(core.NewVec3(0, 0.5, 3), 1.0, Blue),
		geometry.NewSphere(core.NewVec3(0, 1.85, 3), 0.75, Green),
		geometry.NewSphere(core.NewVec3(0, 2.65, 3), 0.55, Red),

		// Mirror sphere
		geometry.NewSphere(core.NewVec3(3.5, 1, 3.5), 1.0, Mirror),

		// Checkered floor
		geometry.NewTriangle(floor[0], floor[1], floor[2], Floor, true),
		geometry.NewTriangle(floor[0], floor[2], floor[3], Floor, true),

		// Brass cube, open at the bottom
		geometry.NewTriangle(cube[0], cube[5], cube[1], Brass, false),
		geometry.NewTriangle(cube[0], cube[4], cube[5], Brass, false),
		geometry.NewTriangle(cube[0], cube[4], cube[3], Brass, false),
		geometry.NewTriangle(cube[4], cube[7], cube[3], Brass, false),
		geometry.NewTriangle(cube[4], cube[7], cube[5], Brass, false),
		geometry.NewTriangle(cube[5], cube[7], cube[6], Brass, false),
		geometry.NewTriangle(cube[5], cube[2], cube[6], Brass, false),
		geometry.NewTriangle(cube[5], cube[1], cube[2], Brass, false),
		geometry.NewTriangle(cube[6], cube[7], cube[3], Brass, false),
		geometry.NewTriangle(cube[6], cube[3], cube[2], Brass, false),
	}

	return NewScene(light, surfaces...)
}

// NewSingleSphereScene creates a unit sphere at the origin over nothing
func NewSingleSphereScene(light core.Vec3, ambient core.Vec3) *Scene {
	return NewScene(light, geometry.NewSphere(core.NewVec3(0, 0, 0), 1.0, material.New(ambient, 0)))
}

// SingleSpherePose looks straight at the origin with the light behind the eye
func SingleSpherePose() Pose {
	return Pose{
		Eye:    core.NewVec3(0, 0, -5),
		LookAt: core.NewVec3(0, 0, 0),
		Light:  core.NewVec3(0, 0, -20),
	}
}
