package renderer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// smallConfig keeps end-to-end renders fast
func smallConfig() core.RenderConfig {
	config := core.DefaultRenderConfig()
	config.Dimension = 16
	config.ShadowSamples = 4
	config.NumWorkers = 2
	config.RowWorkers = 2
	return config
}

func newSingleSphereRaytracer(t *testing.T, config core.RenderConfig) *Raytracer {
	t.Helper()
	pose := scene.SingleSpherePose()
	sc := scene.NewSingleSphereScene(pose.Light, core.NewVec3(1, 0, 0))

	rt, err := NewRaytracer(config, sc, pose.Eye, pose.LookAt, nil)
	if err != nil {
		t.Fatalf("Failed to create raytracer: %v", err)
	}
	return rt
}

func TestRaytracer_SingleSphereCenterMatchesMaterial(t *testing.T) {
	config := smallConfig()
	frame, stats, err := newSingleSphereRaytracer(t, config).RenderFrame(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if frame.Width != config.Dimension || frame.Height != config.Dimension {
		t.Fatalf("Expected %dx%d frame, got %dx%d", config.Dimension, config.Dimension, frame.Width, frame.Height)
	}

	center := frame.At(config.Dimension/2, config.Dimension/2)
	if center.MaxComponent() != 0 {
		t.Errorf("Expected red dominant center pixel, got %v", center)
	}

	// The corners look past the sphere
	for _, corner := range [][2]int{{0, 0}, {15, 0}, {0, 15}, {15, 15}} {
		if got := frame.At(corner[0], corner[1]); got != config.Background {
			t.Errorf("Expected background at corner %v, got %v", corner, got)
		}
	}

	if stats.TotalPixels != 256 || stats.WorkingPixels != 1024 || stats.Tiles != 4 || stats.Workers != 2 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestRaytracer_DeterministicAcrossWorkerCounts(t *testing.T) {
	pose := scene.DefaultPose()
	sc := scene.NewSnowmanScene(pose.Light)

	render := func(numWorkers, rowWorkers int) *Frame {
		config := smallConfig()
		config.NumWorkers = numWorkers
		config.RowWorkers = rowWorkers
		rt, err := NewRaytracer(config, sc, pose.Eye, pose.LookAt, core.NopLogger{})
		if err != nil {
			t.Fatalf("Failed to create raytracer: %v", err)
		}
		frame, _, err := rt.RenderFrame(context.Background())
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		return frame
	}

	a := render(1, 1)
	b := render(4, 3)
	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			t.Fatalf("Pixel %d differs between worker counts: %v vs %v", i, a.Pixels[i], b.Pixels[i])
		}
	}
}

func TestRaytracer_TilingDoesNotChangeUnshadowedImage(t *testing.T) {
	quadrants, _, err := newSingleSphereRaytracer(t, smallConfig()).RenderFrame(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	config := smallConfig()
	config.TileSize = 5
	grid, stats, err := newSingleSphereRaytracer(t, config).RenderFrame(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if stats.Tiles != 49 {
		t.Errorf("Expected 49 tiles, got %d", stats.Tiles)
	}

	for i := range quadrants.Pixels {
		if quadrants.Pixels[i] != grid.Pixels[i] {
			t.Fatalf("Pixel %d differs between tilings: %v vs %v", i, quadrants.Pixels[i], grid.Pixels[i])
		}
	}
}

func TestRaytracer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frame, _, err := newSingleSphereRaytracer(t, smallConfig()).RenderFrame(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if frame != nil {
		t.Error("Expected no frame for a cancelled render")
	}
}

func TestNewRaytracer_Invalid(t *testing.T) {
	pose := scene.SingleSpherePose()
	sc := scene.NewSingleSphereScene(pose.Light, core.NewVec3(1, 0, 0))

	badDim := smallConfig()
	badDim.Dimension = 0

	tests := []struct {
		name   string
		config core.RenderConfig
		sc     *scene.Scene
		eye    core.Vec3
	}{
		{"Zero dimension", badDim, sc, pose.Eye},
		{"Nil scene", smallConfig(), nil, pose.Eye},
		{"Eye at look-at", smallConfig(), sc, pose.LookAt},
		{"Eye straight above look-at", smallConfig(), sc, core.NewVec3(0, 5, 0)},
		{"Eye straight below look-at", smallConfig(), sc, core.NewVec3(0, -3, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRaytracer(tt.config, tt.sc, tt.eye, pose.LookAt, nil)
			if !errors.Is(err, core.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestRenderStats(t *testing.T) {
	var empty RenderStats
	if empty.RaysPerSecond() != 0 {
		t.Errorf("Expected 0 rays/s without render time, got %f", empty.RaysPerSecond())
	}

	stats := RenderStats{WorkingPixels: 1000, RenderTime: 2 * time.Second, CompositeTime: time.Second}
	if stats.RaysPerSecond() != 500 {
		t.Errorf("Expected 500 rays/s, got %f", stats.RaysPerSecond())
	}
	if stats.Total() != 3*time.Second {
		t.Errorf("Expected 3s total, got %v", stats.Total())
	}
}

func TestDefaultWorkerCount(t *testing.T) {
	if n := DefaultWorkerCount(); n <= 0 {
		t.Errorf("Expected a positive worker count, got %d", n)
	}
}
