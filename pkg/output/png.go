package output

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
)

// DefaultFramePattern names animation frames so ffmpeg can read them in order
const DefaultFramePattern = "frame_%04d.png"

// FrameWriter writes numbered PNG frames into a directory
type FrameWriter struct {
	Dir     string
	Pattern string // printf pattern taking the frame index
}

// NewFrameWriter creates a writer using DefaultFramePattern
func NewFrameWriter(dir string) FrameWriter {
	return FrameWriter{Dir: dir, Pattern: DefaultFramePattern}
}

// FramePath returns the file path for frame index
func (w FrameWriter) FramePath(index int) string {
	return filepath.Join(w.Dir, fmt.Sprintf(w.Pattern, index))
}

// InputPattern returns the frame path pattern as passed to the video encoder
func (w FrameWriter) InputPattern() string {
	return filepath.Join(w.Dir, w.Pattern)
}

// Write saves img as frame index, with caption drawn in the lower left when non-empty
func (w FrameWriter) Write(index int, img *image.RGBA, caption string) (string, error) {
	path := w.FramePath(index)
	var out image.Image = img
	if caption != "" {
		out = Annotate(img, caption)
	}
	if err := SavePNG(path, out); err != nil {
		return "", err
	}
	return path, nil
}

// SavePNG writes img to path, creating parent directories
func SavePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Annotate draws text over a copy of img
func Annotate(img *image.RGBA, text string) image.Image {
	dc := gg.NewContext(img.Bounds().Dx(), img.Bounds().Dy())
	dc.DrawImage(img, 0, 0)

	// Dark outline keeps the label readable over the sky and the floor
	x, y := 6.0, float64(img.Bounds().Dy())-6
	dc.SetRGB(0, 0, 0)
	for _, d := range [][2]float64{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		dc.DrawString(text, x+d[0], y+d[1])
	}
	dc.SetRGB(1, 1, 1)
	dc.DrawString(text, x, y)

	return dc.Image()
}
