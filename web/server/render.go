package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/df07/go-recursive-raytracer/pkg/animation"
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// RenderRequest is a fully resolved render: scene, pose and frame parameters
type RenderRequest struct {
	Scene  scene.Builtin
	Pose   scene.Pose
	Config core.RenderConfig
}

// parseRenderRequest parses the scene, pose and quality parameters shared by
// the render and inspect endpoints
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	sceneName := values.Get("scene")
	if sceneName == "" {
		sceneName = scene.DefaultSceneID
	}
	builtin, err := scene.LookupBuiltin(sceneName)
	if err != nil {
		return nil, err
	}

	req := &RenderRequest{
		Scene:  builtin,
		Pose:   builtin.DefaultPose(),
		Config: core.DefaultRenderConfig(),
	}

	// Parse and validate all parameters using helper functions
	if req.Config.Dimension, err = parseIntParam(values, "dim", 400, 16, 2000); err != nil {
		return nil, err
	}
	if req.Config.Supersample, err = parseIntParam(values, "supersample", req.Config.Supersample, 1, 4); err != nil {
		return nil, err
	}
	if req.Config.MaxDepth, err = parseIntParam(values, "depth", req.Config.MaxDepth, 0, 20); err != nil {
		return nil, err
	}
	if req.Config.ShadowSamples, err = parseIntParam(values, "samples", req.Config.ShadowSamples, 0, 500); err != nil {
		return nil, err
	}
	if req.Config.LightRadius, err = parseFloatParam(values, "radius", req.Config.LightRadius, 0, 10); err != nil {
		return nil, err
	}
	if req.Pose.Eye, err = parseVecParam(values, "eye", req.Pose.Eye); err != nil {
		return nil, err
	}
	if req.Pose.LookAt, err = parseVecParam(values, "look", req.Pose.LookAt); err != nil {
		return nil, err
	}
	if req.Pose.Light, err = parseVecParam(values, "light", req.Pose.Light); err != nil {
		return nil, err
	}

	// Optional orbit: frame i of n rotates the eye about the look-at point
	frames, err := parseIntParam(values, "frames", 1, 1, 3600)
	if err != nil {
		return nil, err
	}
	frame, err := parseIntParam(values, "frame", 0, 0, frames-1)
	if err != nil {
		return nil, err
	}
	if frames > 1 {
		req.Pose = animation.NewOrbit(req.Pose, req.Config.Up, frames).Pose(frame)
	}

	if err := req.Config.ValidateView(req.Pose.Eye, req.Pose.LookAt); err != nil {
		return nil, err
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseVecParam parses an "x,y,z" parameter from URL query
func parseVecParam(values url.Values, key string, defaultValue core.Vec3) (core.Vec3, error) {
	if value := values.Get(key); value != "" {
		parsed, err := core.ParseVec3(value)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid %s: %w", key, err)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// acquireRender waits for a render slot or for the request to go away
func (s *Server) acquireRender(ctx context.Context) (release func(), err error) {
	select {
	case s.renders <- struct{}{}:
		return func() { <-s.renders }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// handleRender renders one frame and returns it as a PNG
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if errors.Is(err, scene.ErrUnknownScene) {
		return jsonError(c, http.StatusNotFound, err.Error())
	}
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
	}

	ctx := c.Request().Context()
	renderID := uuid.NewString()
	logger := NewWebLogger(renderID, s.console)

	release, err := s.acquireRender(ctx)
	if err != nil {
		return jsonError(c, http.StatusServiceUnavailable, "Render cancelled while queued")
	}
	defer release()

	logger.Printf("Rendering scene %s from eye %v toward %v\n", req.Scene.Info.ID, req.Pose.Eye, req.Pose.LookAt)

	sceneObj := req.Scene.Build(req.Pose.Light)
	raytracer, err := renderer.NewRaytracer(req.Config, sceneObj, req.Pose.Eye, req.Pose.LookAt, logger)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	frame, stats, err := raytracer.RenderFrame(ctx)
	if err != nil {
		logger.Printf("Render failed: %v\n", err)
		return jsonError(c, http.StatusInternalServerError, "Render error: "+err.Error())
	}

	data, err := encodePNG(frame.ToRGBA())
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "Failed to encode image: "+err.Error())
	}

	c.Response().Header().Set("X-Render-Id", renderID)
	c.Response().Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Total().Milliseconds(), 10))
	return c.Blob(http.StatusOK, "image/png", data)
}

// encodePNG converts an image to PNG bytes
func encodePNG(img *image.RGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := gg.NewContextForRGBA(img).EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
