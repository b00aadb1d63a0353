package renderer

import "time"

// RenderStats contains statistics about the rendering of one frame
type RenderStats struct {
	TotalPixels   int           // Output pixels
	WorkingPixels int           // Supersampled pixels, one primary ray each
	Tiles         int           // Tiles the working buffer was split into
	Workers       int           // Parallel tile workers
	RenderTime    time.Duration // Time spent tracing rays
	CompositeTime time.Duration // Time spent merging and downsampling
}

// RaysPerSecond returns the primary ray throughput of the frame
func (s RenderStats) RaysPerSecond() float64 {
	if s.RenderTime <= 0 {
		return 0
	}
	return float64(s.WorkingPixels) / s.RenderTime.Seconds()
}

// Total returns the wall time of the frame
func (s RenderStats) Total() time.Duration {
	return s.RenderTime + s.CompositeTime
}
