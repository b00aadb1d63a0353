package renderer

import (
	"fmt"
	"image"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Tile represents a rectangular region of the working buffer to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1), y growing upward
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			// Calculate tile bounds
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

// NewQuadrants splits the image into four tiles by halving both axes.
// Odd sizes give the extra column and row to the upper quadrants.
func NewQuadrants(width, height int) []*Tile {
	midX := width / 2
	midY := height / 2

	return []*Tile{
		NewTile(0, image.Rect(0, 0, midX, midY)),
		NewTile(1, image.Rect(midX, 0, width, midY)),
		NewTile(2, image.Rect(0, midY, midX, height)),
		NewTile(3, image.Rect(midX, midY, width, height)),
	}
}

// ImageTile is the rendered color buffer for exactly one tile's bounds,
// stored row-major. It is written by one worker and then only read.
type ImageTile struct {
	Bounds image.Rectangle
	Pixels []core.Vec3
}

// NewImageTile allocates a zeroed buffer covering bounds
func NewImageTile(bounds image.Rectangle) *ImageTile {
	return &ImageTile{
		Bounds: bounds,
		Pixels: make([]core.Vec3, bounds.Dx()*bounds.Dy()),
	}
}

// index converts working-buffer coordinates to a buffer offset
func (it *ImageTile) index(x, y int) int {
	return (y-it.Bounds.Min.Y)*it.Bounds.Dx() + (x - it.Bounds.Min.X)
}

// At returns the color at working-buffer coordinates (x, y)
func (it *ImageTile) At(x, y int) core.Vec3 {
	return it.Pixels[it.index(x, y)]
}

// Set stores the color at working-buffer coordinates (x, y)
func (it *ImageTile) Set(x, y int, color core.Vec3) {
	it.Pixels[it.index(x, y)] = color
}

// Validate checks the buffer length matches the bounds
func (it *ImageTile) Validate() error {
	if it.Bounds.Empty() {
		return nil
	}
	if len(it.Pixels) != it.Bounds.Dx()*it.Bounds.Dy() {
		return fmt.Errorf("tile %v has %d pixels, expected %d", it.Bounds, len(it.Pixels), it.Bounds.Dx()*it.Bounds.Dy())
	}
	return nil
}
