package renderer

import (
	"errors"
	"fmt"
	"image"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// ErrIncompleteFrame is returned when the tiles do not cover the working buffer exactly once
var ErrIncompleteFrame = errors.New("tiles do not cover the frame")

// Compositor merges finished tiles into the working buffer and downsamples
// it to the output resolution
type Compositor struct {
	dimension   int
	supersample int
}

// NewCompositor creates a compositor for a square output of dimension pixels
func NewCompositor(dimension, supersample int) *Compositor {
	return &Compositor{
		dimension:   dimension,
		supersample: supersample,
	}
}

// Composite assembles tiles and returns the flipped, downsampled frame
func (c *Compositor) Composite(tiles []*ImageTile) (*Frame, error) {
	working, err := c.assemble(tiles)
	if err != nil {
		return nil, err
	}
	return Downsample(working, c.dimension*c.supersample, c.supersample), nil
}

// assemble copies every tile into one working buffer, checking that each
// working pixel is written exactly once
func (c *Compositor) assemble(tiles []*ImageTile) ([]core.Vec3, error) {
	workingDim := c.dimension * c.supersample
	frameBounds := image.Rect(0, 0, workingDim, workingDim)

	working := make([]core.Vec3, workingDim*workingDim)
	covered := make([]bool, len(working))

	for _, tile := range tiles {
		if err := tile.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIncompleteFrame, err)
		}
		if !tile.Bounds.In(frameBounds) {
			return nil, fmt.Errorf("%w: tile %v outside %v", ErrIncompleteFrame, tile.Bounds, frameBounds)
		}

		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				i := y*workingDim + x
				if covered[i] {
					return nil, fmt.Errorf("%w: pixel (%d,%d) rendered twice", ErrIncompleteFrame, x, y)
				}
				covered[i] = true
				working[i] = tile.At(x, y)
			}
		}
	}

	for i, ok := range covered {
		if !ok {
			return nil, fmt.Errorf("%w: pixel (%d,%d) missing", ErrIncompleteFrame, i%workingDim, i/workingDim)
		}
	}

	return working, nil
}

// Downsample box-averages factor x factor blocks of a square row-major
// working buffer with y growing upward, and returns a frame whose row 0 is
// the top of the image
func Downsample(working []core.Vec3, workingDim, factor int) *Frame {
	dim := workingDim / factor
	frame := NewFrame(dim, dim)
	block := make([]core.Vec3, factor*factor)
	scale := 1.0 / float64(len(block))

	for oy := 0; oy < dim; oy++ {
		for ox := 0; ox < dim; ox++ {
			i := 0
			for dy := 0; dy < factor; dy++ {
				row := (oy*factor + dy) * workingDim
				for dx := 0; dx < factor; dx++ {
					block[i] = working[row+ox*factor+dx]
					i++
				}
			}
			frame.Set(ox, dim-1-oy, blockAverage(block, scale))
		}
	}

	return frame
}

// blockAverage returns the mean of block. A block of one repeated color is
// returned unchanged, whatever its size.
func blockAverage(block []core.Vec3, scale float64) core.Vec3 {
	uniform := true
	for _, c := range block[1:] {
		if c != block[0] {
			uniform = false
			break
		}
	}
	if uniform {
		return block[0]
	}
	return pairwiseSum(block).Multiply(scale)
}

// pairwiseSum adds halves recursively so a block of equal colors with a
// power-of-two length sums without rounding
func pairwiseSum(values []core.Vec3) core.Vec3 {
	switch len(values) {
	case 0:
		return core.Vec3{}
	case 1:
		return values[0]
	}
	mid := len(values) / 2
	return pairwiseSum(values[:mid]).Add(pairwiseSum(values[mid:]))
}
