package geometry

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// boxFace is one side of the unit box [-1,1]^3 as a corner plus two edges with
// u × v pointing outward
type boxFace struct {
	corner, u, v core.Vec3
}

var unitBoxFaces = [6]boxFace{
	// front (Z+)
	{core.NewVec3(-1, -1, 1), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0)},
	// back (Z-)
	{core.NewVec3(1, -1, -1), core.NewVec3(-2, 0, 0), core.NewVec3(0, 2, 0)},
	// right (X+)
	{core.NewVec3(1, -1, 1), core.NewVec3(0, 0, -2), core.NewVec3(0, 2, 0)},
	// left (X-)
	{core.NewVec3(-1, -1, -1), core.NewVec3(0, 0, 2), core.NewVec3(0, 2, 0)},
	// top (Y+)
	{core.NewVec3(-1, 1, 1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, -2)},
	// bottom (Y-)
	{core.NewVec3(-1, -1, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2)},
}

// NewAxisAlignedBox creates the 12 triangles of a box.
// halfSize holds half-extents, so (1,1,1) creates a 2x2x2 box.
func NewAxisAlignedBox(center, halfSize core.Vec3, mat material.Material) []Surface {
	surfaces := make([]Surface, 0, 12)
	for _, face := range unitBoxFaces {
		corner := face.corner.MultiplyVec(halfSize).Add(center)
		u := face.u.MultiplyVec(halfSize)
		v := face.v.MultiplyVec(halfSize)
		surfaces = append(surfaces, NewQuad(corner, u, v, mat, false)...)
	}
	return surfaces
}
