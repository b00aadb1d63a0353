package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// ErrEncoderNotFound is returned when the ffmpeg binary cannot be located
var ErrEncoderNotFound = errors.New("video encoder not found")

// VideoEncoder assembles numbered PNG frames into an H.264 movie with ffmpeg
type VideoEncoder struct {
	Binary string // Executable name or path
	FPS    int
	logger core.Logger
}

// NewVideoEncoder creates an encoder for ffmpeg on PATH
func NewVideoEncoder(fps int, logger core.Logger) *VideoEncoder {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &VideoEncoder{
		Binary: "ffmpeg",
		FPS:    max(fps, 1),
		logger: logger,
	}
}

// Args returns the ffmpeg arguments that encode the frames matching pattern into out
func (e *VideoEncoder) Args(pattern, out string) []string {
	return []string{
		"-y",
		"-framerate", strconv.Itoa(e.FPS),
		"-i", pattern,
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		out,
	}
}

// Encode runs ffmpeg and waits for it to finish
func (e *VideoEncoder) Encode(ctx context.Context, pattern, out string) error {
	binary, err := exec.LookPath(e.Binary)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncoderNotFound, e.Binary, err)
	}

	args := e.Args(pattern, out)
	e.logger.Printf("Encoding video: %s %s\n", binary, strings.Join(args, " "))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	e.logger.Printf("Wrote %s\n", out)
	return nil
}
