package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/df07/go-recursive-raytracer/pkg/animation"
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/output"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// vecFlag is an "x,y,z" command line value that remembers whether it was given
type vecFlag struct {
	value core.Vec3
	set   bool
}

func (f *vecFlag) String() string {
	if f == nil {
		return ""
	}
	return f.value.String()
}

func (f *vecFlag) Set(s string) error {
	v, err := core.ParseVec3(s)
	if err != nil {
		return err
	}
	f.value = v
	f.set = true
	return nil
}

// options is everything the command line can change
type options struct {
	Scene  string
	Eye    vecFlag
	Look   vecFlag
	Light  vecFlag
	Config core.RenderConfig
	Frames int
	Out    string
	Video  string
	FPS    int
	Label  bool
	Help   bool
}

// parseOptions parses flags and the optional positional eye and look-at
// coordinates: three floats set the eye, six set the eye then the look-at
func parseOptions(args []string, stderr io.Writer) (*options, error) {
	opts := &options{Config: core.DefaultRenderConfig()}

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.Scene, "scene", scene.DefaultSceneID, "Scene: snowman, single-sphere or sphere-grid")
	fs.Var(&opts.Eye, "eye", "Eye position x,y,z (default: scene pose)")
	fs.Var(&opts.Look, "look", "Look-at point x,y,z (default: scene pose)")
	fs.Var(&opts.Light, "light", "Light position x,y,z (default: scene pose)")
	fs.IntVar(&opts.Config.Dimension, "dim", opts.Config.Dimension, "Output width and height in pixels")
	fs.IntVar(&opts.Config.Supersample, "supersample", opts.Config.Supersample, "Linear supersampling factor")
	fs.IntVar(&opts.Config.MaxDepth, "depth", opts.Config.MaxDepth, "Maximum reflection depth")
	fs.IntVar(&opts.Config.ShadowSamples, "samples", opts.Config.ShadowSamples, "Shadow rays per shading point")
	fs.Float64Var(&opts.Config.LightRadius, "radius", opts.Config.LightRadius, "Area light half extent (0 for hard shadows)")
	fs.IntVar(&opts.Config.NumWorkers, "workers", 0, "Tile workers (0 = logical CPU count)")
	fs.IntVar(&opts.Config.TileSize, "tile", 0, "Tile edge in working pixels (0 = quadrants)")
	fs.Int64Var(&opts.Config.Seed, "seed", opts.Config.Seed, "Shadow sampling seed")
	fs.IntVar(&opts.Frames, "frames", 1, "Frames in one orbit around the look-at point")
	fs.StringVar(&opts.Out, "out", "", "Output directory (default: output/<scene>/run_<timestamp>_<id>)")
	fs.StringVar(&opts.Video, "video", "", "Assemble the frames into this video file with ffmpeg")
	fs.IntVar(&opts.FPS, "fps", 24, "Video frame rate")
	fs.BoolVar(&opts.Label, "label", false, "Draw the frame number on each frame")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.Help {
		printHelp(fs)
		return opts, nil
	}

	if err := applyPositional(opts, fs.Args()); err != nil {
		return nil, err
	}
	if opts.Frames < 1 {
		return nil, fmt.Errorf("frames must be at least 1, got %d", opts.Frames)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// applyPositional reads 0, 3 or 6 floats into the eye and look-at overrides
func applyPositional(opts *options, args []string) error {
	if len(args) == 0 {
		return nil
	}
	if len(args) != 3 && len(args) != 6 {
		return fmt.Errorf("expected 3 or 6 positional coordinates, got %d", len(args))
	}

	values := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid coordinate %q: %w", arg, err)
		}
		values[i] = v
	}

	opts.Eye = vecFlag{value: core.NewVec3(values[0], values[1], values[2]), set: true}
	if len(values) == 6 {
		opts.Look = vecFlag{value: core.NewVec3(values[3], values[4], values[5]), set: true}
	}
	return nil
}

func printHelp(fs *flag.FlagSet) {
	fmt.Println("Recursive Raytracer")
	fmt.Println("Usage: raytracer [options] [eyeX eyeY eyeZ [lookX lookY lookZ]]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Printf("  %-14s %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Frames are saved as output/<scene>/run_<timestamp>_<id>/frame_NNNN.png")
}

// createScene resolves a scene name to a builtin scene
func createScene(name string) (scene.Builtin, error) {
	return scene.LookupBuiltin(name)
}

// createOutputDir names a fresh run directory under output/<scene>
func createOutputDir(sceneID string) string {
	timestamp := time.Now().Format("20060102_150405")
	return filepath.Join("output", sceneID, fmt.Sprintf("run_%s_%s", timestamp, uuid.NewString()[:8]))
}

// buildPath resolves the camera path for the run: a static pose for one
// frame, otherwise a full orbit
func buildPath(opts *options, builtin scene.Builtin) animation.Path {
	pose := builtin.DefaultPose()
	if opts.Eye.set {
		pose.Eye = opts.Eye.value
	}
	if opts.Look.set {
		pose.LookAt = opts.Look.value
	}
	if opts.Light.set {
		pose.Light = opts.Light.value
	}

	if opts.Frames == 1 {
		return animation.NewStatic(pose, 1)
	}
	return animation.NewOrbit(pose, opts.Config.Up, opts.Frames)
}

// printBanner reports the host the render runs on
func printBanner(logger core.Logger) {
	model := "unknown CPU"
	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		model = info[0].ModelName
	}
	memory := "unknown"
	if vm, err := mem.VirtualMemory(); err == nil {
		memory = fmt.Sprintf("%.1f GiB", float64(vm.Total)/(1<<30))
	}
	logger.Printf("Host: %s, %d logical CPUs, %s memory\n", model, renderer.DefaultWorkerCount(), memory)
}

// run renders every frame of the path and optionally assembles a video
func run(ctx context.Context, opts *options, logger core.Logger) error {
	builtin, err := createScene(opts.Scene)
	if err != nil {
		return err
	}

	outDir := opts.Out
	if outDir == "" {
		outDir = createOutputDir(builtin.Info.ID)
	}
	writer := output.NewFrameWriter(outDir)
	path := buildPath(opts, builtin)

	logger.Printf("Rendering %d frame(s) of %s into %s\n", path.Frames(), builtin.Info.DisplayName, outDir)

	var total time.Duration
	for frame := 0; frame < path.Frames(); frame++ {
		pose := path.Pose(frame)

		// Each frame builds its own scene and view basis
		sc := builtin.Build(pose.Light)
		raytracer, err := renderer.NewRaytracer(opts.Config, sc, pose.Eye, pose.LookAt, logger)
		if err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}

		img, stats, err := raytracer.RenderFrame(ctx)
		if err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		total += stats.Total()

		caption := ""
		if opts.Label {
			caption = fmt.Sprintf("%d/%d", frame+1, path.Frames())
		}
		filename, err := writer.Write(frame, img.ToRGBA(), caption)
		if err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}

		logger.Printf("Frame %d/%d saved as %s in %v (%.0f rays/s)\n",
			frame+1, path.Frames(), filename, stats.Total(), stats.RaysPerSecond())
	}

	logger.Printf("Render completed in %v\n", total)

	if opts.Video == "" {
		return nil
	}
	encoder := output.NewVideoEncoder(opts.FPS, logger)
	if err := encoder.Encode(ctx, writer.InputPattern(), opts.Video); err != nil {
		if errors.Is(err, output.ErrEncoderNotFound) {
			logger.Printf("Skipping video: %v\n", err)
			return nil
		}
		return err
	}
	return nil
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(2)
	}
	if opts.Help {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := renderer.NewDefaultLogger()
	fmt.Println("Starting Recursive Raytracer...")
	printBanner(logger)

	if err := run(ctx, opts, logger); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
