package geometry

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// NewQuad splits the parallelogram corner, corner+u, corner+u+v, corner+v into
// two triangles whose face normal is u × v
func NewQuad(corner, u, v core.Vec3, mat material.Material, pattern bool) []Surface {
	p0 := corner
	p1 := corner.Add(u)
	p2 := corner.Add(u).Add(v)
	p3 := corner.Add(v)
	return []Surface{
		NewTriangle(p0, p1, p2, mat, pattern),
		NewTriangle(p0, p2, p3, mat, pattern),
	}
}

// NewGroundQuad creates a square floor of the given size centered at center with
// normal pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, mat material.Material, pattern bool) []Surface {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z+size/2)
	u := core.NewVec3(size, 0, 0)
	v := core.NewVec3(0, 0, -size)
	return NewQuad(corner, u, v, mat, pattern)
}
