package renderer

import (
	"sync"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	basis      ViewBasis
	integrator integrator.Integrator
	config     core.RenderConfig
	rowWorkers int
}

// NewTileRenderer creates a tile renderer. basis and integratorInst are shared
// read-only between all tiles of a frame.
func NewTileRenderer(basis ViewBasis, integratorInst integrator.Integrator, config core.RenderConfig) *TileRenderer {
	rowWorkers := config.RowWorkers
	if rowWorkers <= 0 {
		rowWorkers = DefaultWorkerCount()
	}

	return &TileRenderer{
		basis:      basis,
		integrator: integratorInst,
		config:     config,
		rowWorkers: rowWorkers,
	}
}

// RenderTile computes every pixel inside the tile bounds. Rows are evaluated
// concurrently; each row writes a disjoint slice of the tile buffer and owns
// its sampler.
func (tr *TileRenderer) RenderTile(tile *Tile) *ImageTile {
	img := NewImageTile(tile.Bounds)
	if tile.Bounds.Empty() {
		return img
	}

	rows := make(chan int, tile.Bounds.Dy())
	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		rows <- y
	}
	close(rows)

	var wg sync.WaitGroup
	for i := 0; i < min(tr.rowWorkers, tile.Bounds.Dy()); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				tr.renderRow(img, y)
			}
		}()
	}
	wg.Wait()

	return img
}

// renderRow shades one row of the tile
func (tr *TileRenderer) renderRow(img *ImageTile, y int) {
	sampler := core.NewSeededSampler(tr.rowSeed(img.Bounds.Min.X, y))

	for x := img.Bounds.Min.X; x < img.Bounds.Max.X; x++ {
		ray := tr.basis.GetRay(x, y)
		img.Set(x, y, tr.integrator.RayColor(ray, tr.config.MaxDepth, sampler))
	}
}

// rowSeed derives a distinct, reproducible seed for the row segment starting at (x0, y)
func (tr *TileRenderer) rowSeed(x0, y int) int64 {
	return tr.config.Seed + int64(y)*int64(tr.config.WorkingDimension()) + int64(x0)
}
