package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Color        [3]float64             `json:"color"` // Surface color after the floor pattern
	Distance     float64                `json:"distance"`
	Material     map[string]interface{} `json:"material,omitempty"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// extractMaterialInfo describes the material for the inspector
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	return map[string]interface{}{
		"ambient":      toArray(mat.Ambient),
		"reflectivity": mat.Reflectivity,
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(surface geometry.Surface) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := surface.(type) {
	case *geometry.Sphere:
		properties["center"] = toArray(geom.Center)
		properties["radius"] = geom.Radius()
		return "sphere", properties

	case *geometry.Triangle:
		properties["a"] = toArray(geom.A)
		properties["b"] = toArray(geom.B)
		properties["c"] = toArray(geom.C)
		properties["pattern"] = geom.Pattern
		return "triangle", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the primary ray through the center of output pixel
// (x, y), with y counted from the top of the image
func inspectPixel(req *RenderRequest, sc *scene.Scene, x, y int) InspectResponse {
	dim := req.Config.Dimension
	basis := renderer.NewViewBasis(req.Pose.Eye, req.Pose.LookAt, req.Config.Up, dim, req.Config.Near)
	ray := basis.GetRay(x, dim-1-y)

	surface, t, isHit := sc.ClosestHit(ray, req.Config.TMin, req.Config.TMax)
	if !isHit {
		return InspectResponse{Hit: false, Color: toArray(req.Config.Background)}
	}

	sp := surface.SurfaceAt(ray.At(t))
	geometryType, properties := extractGeometryInfo(surface)

	return InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        toArray(sp.Point),
		Normal:       toArray(sp.Normal),
		Color:        toArray(sp.Color),
		Distance:     t,
		Material:     extractMaterialInfo(surface.Material()),
		Properties:   properties,
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()

	// Parse common scene parameters using shared function
	req, err := parseRenderRequest(values)
	if errors.Is(err, scene.ErrUnknownScene) {
		return jsonError(c, http.StatusNotFound, err.Error())
	}
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
	}

	// Parse pixel coordinates
	dim := req.Config.Dimension
	if values.Get("x") == "" || values.Get("y") == "" {
		return jsonError(c, http.StatusBadRequest, "x and y are required")
	}
	pixelX, err := parseIntParam(values, "x", 0, 0, dim-1)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	pixelY, err := parseIntParam(values, "y", 0, 0, dim-1)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	sceneObj := req.Scene.Build(req.Pose.Light)
	return c.JSON(http.StatusOK, inspectPixel(req, sceneObj, pixelX, pixelY))
}
