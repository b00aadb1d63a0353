package material

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Checkerboard darkens alternate unit cells of the world (x,z) plane
type Checkerboard struct {
	Offset    float64   // Shift applied before the modulo so negative coordinates tile cleanly
	Period    float64   // Size of one light+dark cell pair
	DarkShift core.Vec3 // Subtracted from the color in dark cells
}

// NewFloorCheckerboard returns the pattern used by the builtin floors
func NewFloorCheckerboard() Checkerboard {
	return Checkerboard{
		Offset:    10.0,
		Period:    2.0,
		DarkShift: core.NewVec3(0.2, 0.2, 0.2),
	}
}

// IsDark reports whether the world point falls in a darkened cell.
// Cells on exact boundaries stay light.
func (c Checkerboard) IsDark(point core.Vec3) bool {
	half := c.Period / 2
	tx := math.Mod(point.X+c.Offset, c.Period)
	tz := math.Mod(point.Z+c.Offset, c.Period)
	return (tx < half && tz < half) || (tx > half && tz > half)
}

// Apply returns color shifted for the cell that contains point
func (c Checkerboard) Apply(color, point core.Vec3) core.Vec3 {
	if c.IsDark(point) {
		return color.Subtract(c.DarkShift)
	}
	return color
}
