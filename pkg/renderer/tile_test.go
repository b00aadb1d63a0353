package renderer

import (
	"image"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// coverage counts how often each pixel of a width x height image is inside a tile
func coverage(tiles []*Tile, width, height int) []int {
	counts := make([]int, width*height)
	for _, tile := range tiles {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				counts[y*width+x]++
			}
		}
	}
	return counts
}

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"Exact fit", 128, 128, 64, 4},
		{"Partial edge tiles", 100, 70, 32, 12},
		{"Single tile", 10, 10, 64, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
			if len(tiles) != tt.expectedTiles {
				t.Errorf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Expected tile id %d, got %d", i, tile.ID)
				}
			}
			for i, n := range coverage(tiles, tt.width, tt.height) {
				if n != 1 {
					t.Fatalf("Pixel (%d,%d) covered %d times", i%tt.width, i/tt.width, n)
				}
			}
		})
	}
}

func TestNewQuadrants(t *testing.T) {
	for _, size := range []int{2, 7, 32, 1600} {
		tiles := NewQuadrants(size, size)
		if len(tiles) != 4 {
			t.Fatalf("Expected 4 quadrants, got %d", len(tiles))
		}
		for i, n := range coverage(tiles, size, size) {
			if n != 1 {
				t.Fatalf("Size %d: pixel (%d,%d) covered %d times", size, i%size, i/size, n)
			}
		}
	}
}

func TestImageTile_AtSet(t *testing.T) {
	bounds := image.Rect(4, 6, 8, 9)
	tile := NewImageTile(bounds)

	if len(tile.Pixels) != 12 {
		t.Fatalf("Expected 12 pixels, got %d", len(tile.Pixels))
	}

	color := core.NewVec3(0.1, 0.2, 0.3)
	tile.Set(7, 8, color)
	if tile.At(7, 8) != color {
		t.Errorf("Expected %v at (7,8), got %v", color, tile.At(7, 8))
	}
	if tile.Pixels[len(tile.Pixels)-1] != color {
		t.Error("Expected the last pixel of the buffer to be (7,8)")
	}
	if err := tile.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}

	tile.Pixels = tile.Pixels[:5]
	if err := tile.Validate(); err == nil {
		t.Error("Expected validation error for a short buffer")
	}
}

// constantIntegrator returns the same color for every ray
type constantIntegrator struct {
	color core.Vec3
}

func (c constantIntegrator) RayColor(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	return c.color
}

func TestTileRenderer_RenderTile(t *testing.T) {
	config := core.DefaultRenderConfig()
	config.Dimension = 8
	config.RowWorkers = 3

	color := core.NewVec3(0.25, 0.5, 0.75)
	basis := NewViewBasis(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 0), config.Up, config.WorkingDimension(), config.Near)
	tr := NewTileRenderer(basis, constantIntegrator{color: color}, config)

	tile := NewTile(0, image.Rect(3, 5, 11, 16))
	img := tr.RenderTile(tile)

	if img.Bounds != tile.Bounds {
		t.Errorf("Expected bounds %v, got %v", tile.Bounds, img.Bounds)
	}
	for i, c := range img.Pixels {
		if c != color {
			t.Fatalf("Pixel %d not rendered: %v", i, c)
		}
	}

	empty := tr.RenderTile(NewTile(1, image.Rect(2, 2, 2, 2)))
	if len(empty.Pixels) != 0 {
		t.Errorf("Expected no pixels for an empty tile, got %d", len(empty.Pixels))
	}
}

func TestNewTileRenderer_RowWorkers(t *testing.T) {
	config := core.DefaultRenderConfig()

	config.RowWorkers = 0
	if got := NewTileRenderer(ViewBasis{}, constantIntegrator{}, config).rowWorkers; got != DefaultWorkerCount() {
		t.Errorf("Expected the default worker count %d, got %d", DefaultWorkerCount(), got)
	}

	config.RowWorkers = 3
	if got := NewTileRenderer(ViewBasis{}, constantIntegrator{}, config).rowWorkers; got != 3 {
		t.Errorf("Expected 3 row workers, got %d", got)
	}
}
