package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/integrator"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Raytracer renders one frame of a scene from a fixed eye and look-at point
type Raytracer struct {
	config core.RenderConfig
	scene  *scene.Scene
	basis  ViewBasis
	logger core.Logger
}

// NewRaytracer validates config and builds the frame's view basis
func NewRaytracer(config core.RenderConfig, sc *scene.Scene, eye, lookAt core.Vec3, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, fmt.Errorf("%w: scene is nil", core.ErrInvalidConfig)
	}
	if err := config.ValidateView(eye, lookAt); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Raytracer{
		config: config,
		scene:  sc,
		basis:  NewViewBasis(eye, lookAt, config.Up, config.WorkingDimension(), config.Near),
		logger: logger,
	}, nil
}

// Basis returns the frame's view basis
func (rt *Raytracer) Basis() ViewBasis {
	return rt.basis
}

// Tiles splits the working buffer into quadrants, or a grid when TileSize is set
func (rt *Raytracer) Tiles() []*Tile {
	workingDim := rt.config.WorkingDimension()
	if rt.config.TileSize <= 0 {
		return NewQuadrants(workingDim, workingDim)
	}
	return NewTileGrid(workingDim, workingDim, rt.config.TileSize)
}

// RenderFrame traces every working pixel once and returns the downsampled
// frame. Cancellation is honored until all tiles have been submitted.
func (rt *Raytracer) RenderFrame(ctx context.Context) (*Frame, RenderStats, error) {
	startTime := time.Now()

	tiles := rt.Tiles()
	tileRenderer := NewTileRenderer(rt.basis, integrator.NewWhittedIntegrator(rt.config, rt.scene), rt.config)
	workerPool := NewWorkerPool(tileRenderer, len(tiles), rt.config.NumWorkers)

	stats := RenderStats{
		TotalPixels:   rt.config.Dimension * rt.config.Dimension,
		WorkingPixels: rt.config.WorkingDimension() * rt.config.WorkingDimension(),
		Tiles:         len(tiles),
		Workers:       workerPool.GetNumWorkers(),
	}

	rt.logger.Printf("Rendering %dx%d (%dx supersampled) in %d tiles using %d workers...\n",
		rt.config.Dimension, rt.config.Dimension, rt.config.Supersample, stats.Tiles, stats.Workers)

	workerPool.Start()
	defer workerPool.Stop()

	// Submit all tiles as tasks
	for taskID, tile := range tiles {
		select {
		case <-ctx.Done():
			rt.logger.Printf("Rendering cancelled after %d of %d tiles\n", taskID, len(tiles))
			return nil, RenderStats{}, ctx.Err()
		default:
		}
		workerPool.SubmitTask(TileTask{Tile: tile, TaskID: taskID})
	}

	// Wait for all tiles to complete
	images := make([]*ImageTile, len(tiles))
	for i := 0; i < len(tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			return nil, RenderStats{}, fmt.Errorf("tile %d: %w", result.TaskID, result.Error)
		}
		images[result.TaskID] = result.Image
	}
	stats.RenderTime = time.Since(startTime)

	compositeStart := time.Now()
	frame, err := NewCompositor(rt.config.Dimension, rt.config.Supersample).Composite(images)
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("compositing frame: %w", err)
	}
	stats.CompositeTime = time.Since(compositeStart)

	rt.logger.Printf("Frame completed in %v (%.0f rays/s)\n", stats.Total(), stats.RaysPerSecond())

	return frame, stats, nil
}
