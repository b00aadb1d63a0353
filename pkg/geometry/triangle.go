package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// TriangleLighting is the local illumination used by every triangle
var TriangleLighting = material.Lighting{Diffuse: 0.25, Specular: 0.3, Shininess: 1.2}

// degenerateDeterminant is the |det| below which a ray counts as parallel to the plane
const degenerateDeterminant = 1e-12

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	A, B, C  core.Vec3 // The three vertices
	Pattern  bool      // Apply the world-space checkerboard when shading
	normal   core.Vec3 // Cached face normal
	material material.Material
	checker  material.Checkerboard
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(a, b, c core.Vec3, mat material.Material, pattern bool) *Triangle {
	t := &Triangle{
		A:        a,
		B:        b,
		C:        c,
		Pattern:  pattern,
		material: mat,
		checker:  material.NewFloorCheckerboard(),
	}
	t.computeNormal()
	return t
}

// computeNormal calculates and caches the triangle's face normal
func (t *Triangle) computeNormal() {
	t.normal = t.A.Subtract(t.B).Cross(t.A.Subtract(t.C)).Normalize()
}

// Hit solves origin + t·dir = A + β(B−A) + γ(C−A) for (β, γ, t) with Cramer's rule
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (float64, bool) {
	// Columns of M: (A−B), (A−C), dir
	a := t.A.X - t.B.X
	b := t.A.X - t.C.X
	c := ray.Direction.X
	d := t.A.Y - t.B.Y
	e := t.A.Y - t.C.Y
	f := ray.Direction.Y
	g := t.A.Z - t.B.Z
	h := t.A.Z - t.C.Z
	i := ray.Direction.Z

	// Right hand side: A − origin
	j := t.A.X - ray.Origin.X
	k := t.A.Y - ray.Origin.Y
	l := t.A.Z - ray.Origin.Z

	dheg := d*h - e*g
	eihf := e*i - h*f
	kilf := k*i - l*f
	digf := d*i - f*g
	dlgk := d*l - g*k
	elhk := e*l - h*k

	det := a*eihf - b*digf + c*dheg

	// Ray parallel to the plane, or a zero-area triangle
	if math.Abs(det) < degenerateDeterminant {
		return 0, false
	}

	tHit := (a*elhk - b*dlgk + j*dheg) / det
	if math.IsNaN(tHit) || tHit <= tMin || tHit >= tMax {
		return 0, false
	}

	gamma := (a*kilf - j*digf + c*dlgk) / det
	if gamma < 0 || gamma > 1 {
		return 0, false
	}

	beta := (j*eihf - b*kilf - c*elhk) / det
	if beta < 0 || beta > 1-gamma {
		return 0, false
	}

	return tHit, true
}

// SurfaceAt returns the face normal and, for patterned triangles, the checkered color
func (t *Triangle) SurfaceAt(point core.Vec3) material.SurfacePoint {
	color := t.material.Ambient
	if t.Pattern {
		color = t.checker.Apply(color, point)
	}
	return material.SurfacePoint{
		Point:  point,
		Normal: t.normal,
		Color:  color,
	}
}

// Material returns the triangle's material
func (t *Triangle) Material() material.Material {
	return t.material
}

// Lighting returns TriangleLighting
func (t *Triangle) Lighting() material.Lighting {
	return TriangleLighting
}

// Normal returns the triangle's cached face normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}
