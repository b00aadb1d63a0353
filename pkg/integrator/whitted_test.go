package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

const tolerance = 1e-9

// zPlane is an infinite plane z = Z that counts how often it is shaded
type zPlane struct {
	Z      float64
	normal core.Vec3
	mat    material.Material
	shaded *int
}

func (p *zPlane) Hit(ray core.Ray, tMin, tMax float64) (float64, bool) {
	if ray.Direction.Z == 0 {
		return 0, false
	}
	t := (p.Z - ray.Origin.Z) / ray.Direction.Z
	if t <= tMin || t >= tMax {
		return 0, false
	}
	return t, true
}

func (p *zPlane) SurfaceAt(point core.Vec3) material.SurfacePoint {
	*p.shaded++
	return material.SurfacePoint{Point: point, Normal: p.normal, Color: p.mat.Ambient}
}

func (p *zPlane) Material() material.Material { return p.mat }

func (p *zPlane) Lighting() material.Lighting { return geometry.TriangleLighting }

// neverHit is a surface no ray reaches
type neverHit struct {
	shaded int
}

func (n *neverHit) Hit(ray core.Ray, tMin, tMax float64) (float64, bool) { return 0, false }

func (n *neverHit) SurfaceAt(point core.Vec3) material.SurfacePoint {
	n.shaded++
	return material.SurfacePoint{}
}

func (n *neverHit) Material() material.Material { return material.New(core.NewVec3(1, 1, 1), 0) }

func (n *neverHit) Lighting() material.Lighting { return geometry.SphereLighting }

func vecClose(a, b core.Vec3) bool {
	return math.Abs(a.X-b.X) < tolerance && math.Abs(a.Y-b.Y) < tolerance && math.Abs(a.Z-b.Z) < tolerance
}

// singleSphere sets up a unit sphere at the origin seen from -z with the light behind the eye
func singleSphere(ambient core.Vec3, reflectivity float64) (*scene.Scene, core.Ray) {
	sc := scene.NewScene(core.NewVec3(0, 0, -20),
		geometry.NewSphere(core.NewVec3(0, 0, 0), 1.0, material.New(ambient, reflectivity)))
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	return sc, ray
}

func TestWhitted_MissReturnsBackground(t *testing.T) {
	config := core.DefaultRenderConfig()
	surface := &neverHit{}
	integrator := NewWhittedIntegrator(config, scene.NewScene(core.NewVec3(0, 10, 0), surface))

	for depth := 0; depth <= config.MaxDepth; depth++ {
		color := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), depth, core.NewSeededSampler(1))
		if color != config.Background {
			t.Errorf("Depth %d: expected background %v, got %v", depth, config.Background, color)
		}
	}

	if surface.shaded != 0 {
		t.Errorf("Expected no shading on a miss, surface was shaded %d times", surface.shaded)
	}
}

func TestWhitted_LocalTermOnly(t *testing.T) {
	config := core.DefaultRenderConfig()
	sc, ray := singleSphere(core.NewVec3(1, 0, 0), 0)
	integrator := NewWhittedIntegrator(config, sc)

	// The hit faces the light head on: n·l = n·h = 1, and shadow rays leave the sphere
	highlight := geometry.SphereLighting.Diffuse + geometry.SphereLighting.Specular
	expected := core.NewVec3(1+highlight, highlight, highlight).Multiply(config.LightIntensity)

	color := integrator.RayColor(ray, config.MaxDepth, core.NewSeededSampler(42))
	if !vecClose(color, expected) {
		t.Errorf("Expected local color %v, got %v", expected, color)
	}
}

func TestWhitted_SpecularExponent(t *testing.T) {
	config := core.DefaultRenderConfig()
	config.LightRadius = 0
	config.ShadowSamples = 1

	ambient := core.NewVec3(0.5, 0.2, 0.1)
	normal := core.NewVec3(0, 0, -1)
	lightPos := core.NewVec3(0, 5, -5)
	shaded := 0
	sc := scene.NewScene(lightPos,
		&zPlane{Z: 0, normal: normal, mat: material.New(ambient, 0), shaded: &shaded})
	integrator := NewWhittedIntegrator(config, sc)

	// Light 45 degrees off the view axis, so 0 < n·h < 1
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	point := ray.At(5 - config.Epsilon)
	toLight := lightPos.Subtract(point).Normalize()
	halfway := toLight.Subtract(ray.Direction).Normalize()
	nl, nh := normal.Dot(toLight), normal.Dot(halfway)
	if nh <= 0 || nh >= 1 {
		t.Fatalf("Expected 0 < n·h < 1, got %f", nh)
	}

	lighting := geometry.TriangleLighting
	shade := func(specular float64) core.Vec3 {
		highlight := lighting.Diffuse*nl + lighting.Specular*specular
		return ambient.Add(core.NewVec3(highlight, highlight, highlight)).Multiply(config.LightIntensity)
	}
	expected := shade(math.Pow(nh, lighting.Shininess))
	linear := shade(nh)

	color := integrator.RayColor(ray, config.MaxDepth, core.NewSeededSampler(1))
	if !vecClose(color, expected) {
		t.Errorf("Expected %v with the exponent applied, got %v", expected, color)
	}
	if vecClose(color, linear) {
		t.Errorf("Color %v matches the linear specular term", color)
	}
}

func TestWhitted_DepthZeroReturnsAmbient(t *testing.T) {
	ambient := core.NewVec3(0.2, 0.4, 0.6)
	sc, ray := singleSphere(ambient, 0.5)
	integrator := NewWhittedIntegrator(core.DefaultRenderConfig(), sc)

	color := integrator.RayColor(ray, 0, core.NewSeededSampler(42))
	if color != ambient {
		t.Errorf("Expected ambient %v at depth 0, got %v", ambient, color)
	}

	surfaces := sc.Surfaces()
	color = integrator.Shade(ray, surfaces[0], 4, 0, core.NewSeededSampler(42))
	if color != ambient {
		t.Errorf("Expected Shade at depth 0 to return ambient %v, got %v", ambient, color)
	}
}

func TestWhitted_ReflectionMissBlendsBackground(t *testing.T) {
	config := core.DefaultRenderConfig()
	const reflectivity = 0.5

	matte, ray := singleSphere(core.NewVec3(1, 0, 0), 0)
	mirror, _ := singleSphere(core.NewVec3(1, 0, 0), reflectivity)

	local := NewWhittedIntegrator(config, matte).RayColor(ray, config.MaxDepth, core.NewSeededSampler(42))
	blended := NewWhittedIntegrator(config, mirror).RayColor(ray, config.MaxDepth, core.NewSeededSampler(42))

	// The mirror ray points back at the eye and leaves the scene
	expected := core.Mix(local, config.Background, reflectivity)
	if !vecClose(blended, expected) {
		t.Errorf("Expected blend %v, got %v", expected, blended)
	}
}

func TestWhitted_DepthDecreasesPerBounce(t *testing.T) {
	front := core.NewVec3(1, 0, 0)
	back := core.NewVec3(0, 0, 1)

	tests := []struct {
		name     string
		depth    int
		expected core.Vec3
	}{
		{"One bounce", 1, back},
		{"Odd depth", 5, back},
		{"Even depth", 4, front},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shaded := 0
			sc := scene.NewScene(core.NewVec3(0, 0, 5),
				&zPlane{Z: 10, normal: core.NewVec3(0, 0, -1), mat: material.New(front, 1), shaded: &shaded},
				&zPlane{Z: 0, normal: core.NewVec3(0, 0, 1), mat: material.New(back, 1), shaded: &shaded},
			)
			config := core.DefaultRenderConfig()
			config.LightRadius = 0
			config.ShadowSamples = 1
			integrator := NewWhittedIntegrator(config, sc)

			ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1))
			color := integrator.RayColor(ray, tt.depth, core.NewSeededSampler(1))

			// Perfect mirrors pass through the ambient of the surface reached at depth 0
			if color != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
			if shaded != tt.depth {
				t.Errorf("Expected %d shaded bounces, got %d", tt.depth, shaded)
			}
		})
	}
}
