package renderer

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// ViewBasis maps working-buffer pixels to primary rays. It is built once per
// frame and shared read-only by every worker.
type ViewBasis struct {
	Eye        core.Vec3
	U          core.Vec3 // Right
	V          core.Vec3 // True up
	W          core.Vec3 // Toward the view plane
	Near       float64   // Distance from eye to view plane along W
	PixelScale float64   // View-plane width of one pixel, 2/dimension
}

// NewViewBasis builds an orthonormal camera basis for a square image of
// dimension pixels looking from eye toward lookAt
func NewViewBasis(eye, lookAt, up core.Vec3, dimension int, near float64) ViewBasis {
	forward := r3.Unit(r3.Sub(toR3(eye), toR3(lookAt)))
	u := r3.Unit(r3.Cross(forward, toR3(up)))
	v := r3.Unit(r3.Cross(u, forward))
	w := r3.Unit(r3.Cross(u, v))

	return ViewBasis{
		Eye:        eye,
		U:          fromR3(u),
		V:          fromR3(v),
		W:          fromR3(w),
		Near:       near,
		PixelScale: 2.0 / float64(dimension),
	}
}

// GetRay returns the primary ray through the center of pixel (x, y), with y
// growing upward
func (b ViewBasis) GetRay(x, y int) core.Ray {
	us := -1 + b.PixelScale*(float64(x)+0.5)
	vs := -1 + b.PixelScale*(float64(y)+0.5)

	target := b.Eye.
		Add(b.U.Multiply(us)).
		Add(b.V.Multiply(vs)).
		Add(b.W.Multiply(b.Near))

	return core.NewRay(b.Eye, target.Subtract(b.Eye).Normalize())
}

func toR3(v core.Vec3) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func fromR3(v r3.Vec) core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}
