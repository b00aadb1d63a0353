package integrator

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// WhittedIntegrator shades hits with a local diffuse and specular term, soft
// shadows from one area light and recursive mirror reflection
type WhittedIntegrator struct {
	config core.RenderConfig
	scene  *scene.Scene
	light  lights.AreaLight
}

// NewWhittedIntegrator creates an integrator for one frame. The scene is only read.
func NewWhittedIntegrator(config core.RenderConfig, sc *scene.Scene) *WhittedIntegrator {
	return &WhittedIntegrator{
		config: config,
		scene:  sc,
		light:  lights.NewAreaLight(sc.Light(), config.LightRadius, config.ShadowSamples),
	}
}

// RayColor returns the background for a miss and the shaded color of the
// closest surface otherwise
func (w *WhittedIntegrator) RayColor(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	surface, t, isHit := w.scene.ClosestHit(ray, w.config.TMin, w.config.TMax)
	if !isHit {
		return w.config.Background
	}
	return w.Shade(ray, surface, t, depth, sampler)
}

// Shade computes the color of surface where ray hits it at parameter t
func (w *WhittedIntegrator) Shade(ray core.Ray, surface geometry.Surface, t float64, depth int, sampler core.Sampler) core.Vec3 {
	mat := surface.Material()
	if depth <= 0 {
		return mat.Ambient
	}

	// Pull the point back toward the eye so secondary rays don't re-hit the surface
	point := ray.At(t - w.config.Epsilon)
	sp := surface.SurfaceAt(point)

	color := w.localColor(ray, sp, surface)

	shadow := w.light.Shadow(point, w.scene, sampler, w.config.TMin, w.config.TMax)
	color = color.Multiply((1 - shadow) * w.config.LightIntensity)

	if !mat.IsReflective() {
		return color
	}

	reflected := core.NewRay(point, core.Reflect(ray.Direction, sp.Normal).Normalize())
	return core.Mix(color, w.RayColor(reflected, depth-1, sampler), mat.Reflectivity)
}

// localColor adds the grey diffuse and specular highlights to the surface color
func (w *WhittedIntegrator) localColor(ray core.Ray, sp material.SurfacePoint, surface geometry.Surface) core.Vec3 {
	lighting := surface.Lighting()
	toLight := w.light.Direction(sp.Point)

	diffuse := math.Max(0, sp.Normal.Dot(toLight)) * lighting.Diffuse

	halfway := toLight.Subtract(ray.Direction).Normalize()
	specular := math.Pow(math.Max(0, sp.Normal.Dot(halfway)), lighting.Shininess) * lighting.Specular

	highlight := diffuse + specular
	return sp.Color.Add(core.NewVec3(highlight, highlight, highlight))
}
