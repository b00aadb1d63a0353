package animation

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Path yields the camera and light placement for each frame of a render.
// Poses are computed independently per frame; no state carries between frames.
type Path interface {
	Frames() int
	Pose(frame int) scene.Pose
}

// Static holds one pose for every frame
type Static struct {
	pose   scene.Pose
	frames int
}

// NewStatic creates a path that never moves
func NewStatic(pose scene.Pose, frames int) Static {
	return Static{pose: pose, frames: max(frames, 1)}
}

func (s Static) Frames() int { return s.frames }

func (s Static) Pose(frame int) scene.Pose { return s.pose }

// Orbit circles the eye around the look-at point about the up axis, keeping
// its height and distance from the axis. The light stays fixed.
type Orbit struct {
	start  scene.Pose
	up     core.Vec3
	frames int
}

// NewOrbit creates a full revolution starting at start over frames frames
func NewOrbit(start scene.Pose, up core.Vec3, frames int) Orbit {
	return Orbit{
		start:  start,
		up:     up.Normalize(),
		frames: max(frames, 1),
	}
}

func (o Orbit) Frames() int { return o.frames }

// Angle returns the rotation in radians applied at frame
func (o Orbit) Angle(frame int) float64 {
	return 2 * math.Pi * float64(frame) / float64(o.frames)
}

// Pose returns the pose for frame, frame 0 being the start pose
func (o Orbit) Pose(frame int) scene.Pose {
	offset := o.start.Eye.Subtract(o.start.LookAt)
	return scene.Pose{
		Eye:    o.start.LookAt.Add(rotate(offset, o.up, o.Angle(frame))),
		LookAt: o.start.LookAt,
		Light:  o.start.Light,
	}
}

// rotate turns v about the unit axis by angle radians (Rodrigues' formula)
func rotate(v, axis core.Vec3, angle float64) core.Vec3 {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return v.Multiply(cos).
		Add(axis.Cross(v).Multiply(sin)).
		Add(axis.Multiply(axis.Dot(v) * (1 - cos)))
}
