package core

import (
	"errors"
	"fmt"
)

// RenderConfig holds the fixed parameters of one render. It is built once per
// frame and treated as read-only by every worker.
type RenderConfig struct {
	Dimension   int // Output image width and height in pixels
	Supersample int // Linear supersampling factor (2 renders 4 rays per output pixel)
	MaxDepth    int // Maximum reflection recursion depth

	Near    float64 // Distance from eye to view plane along w
	Epsilon float64 // Hit point pull-back to avoid self-intersection
	TMin    float64 // Exclusive lower ray parameter bound
	TMax    float64 // Exclusive upper ray parameter bound

	Background Vec3 // Color returned for rays that hit nothing
	Up         Vec3 // World up vector for the camera basis

	LightRadius    float64 // Half extent of the jittered area light
	ShadowSamples  int     // Shadow rays per shading point
	LightIntensity float64 // Global scale applied to the lit color

	TileSize   int   // Tile edge in working pixels (0 = split into quadrants)
	NumWorkers int   // Parallel tile workers (0 = logical CPU count)
	RowWorkers int   // Goroutines sharing the rows of one tile (0 = logical CPU count)
	Seed       int64 // Base seed for the per-tile shadow samplers
}

// DefaultRenderConfig returns the reference values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Dimension:      800,
		Supersample:    2,
		MaxDepth:       5,
		Near:           1.2,
		Epsilon:        1.0 / 10000.0,
		TMin:           0.0,
		TMax:           100000.0,
		Background:     NewVec3(0.4, 0.698, 1.0),
		Up:             NewVec3(0, 1, 0),
		LightRadius:    1.0,
		ShadowSamples:  50,
		LightIntensity: 0.5,
		TileSize:       0,
		NumWorkers:     0,
		RowWorkers:     0,
		Seed:           42,
	}
}

// WorkingDimension returns the edge of the supersampled buffer
func (c RenderConfig) WorkingDimension() int {
	return c.Dimension * c.Supersample
}

// viewEpsilon bounds |forward × up|² below which the camera basis degenerates
const viewEpsilon = 1e-12

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid render config")

// Validate reports the first parameter that cannot produce an image
func (c RenderConfig) Validate() error {
	switch {
	case c.Dimension <= 0:
		return fmt.Errorf("%w: dimension must be positive, got %d", ErrInvalidConfig, c.Dimension)
	case c.Supersample <= 0:
		return fmt.Errorf("%w: supersample must be positive, got %d", ErrInvalidConfig, c.Supersample)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	case c.TMax <= c.TMin:
		return fmt.Errorf("%w: tmax %g must exceed tmin %g", ErrInvalidConfig, c.TMax, c.TMin)
	case c.LightRadius < 0:
		return fmt.Errorf("%w: light radius must not be negative, got %g", ErrInvalidConfig, c.LightRadius)
	case c.ShadowSamples < 0:
		return fmt.Errorf("%w: shadow samples must not be negative, got %d", ErrInvalidConfig, c.ShadowSamples)
	case c.TileSize < 0:
		return fmt.Errorf("%w: tile size must not be negative, got %d", ErrInvalidConfig, c.TileSize)
	case c.Up.LengthSquared() == 0:
		return fmt.Errorf("%w: up vector must be non-zero", ErrInvalidConfig)
	}
	return nil
}

// ValidateView reports a camera that cannot form a basis: the eye on the
// look-at point, or a view direction parallel to Up
func (c RenderConfig) ValidateView(eye, lookAt Vec3) error {
	if eye == lookAt {
		return fmt.Errorf("%w: eye and look-at coincide at %v", ErrInvalidConfig, eye)
	}
	forward := lookAt.Subtract(eye).Normalize()
	if forward.Cross(c.Up.Normalize()).LengthSquared() < viewEpsilon {
		return fmt.Errorf("%w: view direction %v is parallel to up %v", ErrInvalidConfig, forward, c.Up)
	}
	return nil
}
