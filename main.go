package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/df07/sphere-pathtracer/pkg/imageio"
	"github.com/df07/sphere-pathtracer/pkg/integrator"
	"github.com/df07/sphere-pathtracer/pkg/renderer"
	"github.com/df07/sphere-pathtracer/pkg/scene"
)

type renderCmd struct {
	Scene  string `arg:"" optional:"" default:"random-spheres" help:"Built-in scene name or path to a YAML scene file."`
	Output string `help:"Output file (.ppm, .png or .zst). Defaults to output/<scene>/render_<timestamp>.ppm." short:"o"`

	Width         *int     `help:"Image width in pixels."`
	AspectRatio   *float64 `help:"Width divided by height." name:"aspect-ratio"`
	VFov          *float64 `help:"Vertical field of view in degrees." name:"vfov"`
	DefocusAngle  *float64 `help:"Defocus cone angle in degrees, 0 disables depth of field." name:"defocus-angle"`
	FocusDistance *float64 `help:"Distance to the plane of perfect focus." name:"focus-distance"`

	Samples *int   `help:"Samples per pixel." short:"s"`
	Depth   *int   `help:"Maximum bounce depth." short:"d"`
	Seed    *int64 `help:"Base random seed."`
	Workers *int   `help:"Number of render workers (0 = all CPUs)." short:"w"`
}

type convertCmd struct {
	Input  string `arg:"" help:"Raw linear dump (.zst)." type:"existingfile"`
	Output string `arg:"" help:"Output file (.ppm, .png or .zst)."`
}

var CLI struct {
	Debug bool `help:"Whether to enable debug logging."`

	Render  renderCmd  `cmd:"" help:"Render a scene."`
	Scenes  struct{}   `cmd:"" help:"List the built-in scenes."`
	Convert convertCmd `cmd:"" help:"Re-encode a raw linear dump as another format."`
}

func writeError(err error) {
	log.Error().Err(err).Msg("failed")
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("sphere-pathtracer"),
		kong.Description("a stochastic path tracer for sphere scenes"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Debug().Msg("debug logging enabled")
	}

	var err error
	switch ctx.Command() {
	case "render", "render <scene>":
		err = runRender(CLI.Render, time.Now())
	case "scenes":
		listScenes()
	case "convert <input> <output>":
		err = runConvert(CLI.Convert)
	}
	if err != nil {
		writeError(err)
	}
}

func runRender(cmd renderCmd, now time.Time) error {
	timer := renderer.NewTimer()

	s, err := scene.Create(cmd.Scene)
	if err != nil {
		return err
	}
	var sampling renderer.SamplingConfig
	s.CameraConfig, sampling = applyFlags(cmd, s.CameraConfig, s.SamplingConfig)

	if err := s.CameraConfig.Validate(); err != nil {
		return err
	}
	if err := sampling.Validate(); err != nil {
		return err
	}

	timer.Report(log.With().
		Str("scene", s.Name).
		Int("spheres", s.GetPrimitiveCount()).
		Logger(), "Scene ready")

	camera := renderer.NewCamera(s.CameraConfig)
	rt := renderer.NewRaytracer(s.World, camera, sampling, integrator.NewPathTracingIntegrator(s.Background))
	img, _, err := rt.Render()
	if err != nil {
		return err
	}

	output := cmd.Output
	if output == "" {
		output = defaultOutputPath(s.Name, now)
	}
	meta := imageio.Metadata{Seed: sampling.Seed, SamplesPerPixel: sampling.SamplesPerPixel}
	if err := imageio.Save(output, img, meta); err != nil {
		return err
	}

	timer.Report(log.With().Str("path", output).Logger(), "Image saved")
	return nil
}

func runConvert(cmd convertCmd) error {
	img, meta, err := imageio.Load(cmd.Input)
	if err != nil {
		return err
	}
	if err := imageio.Save(cmd.Output, img, meta); err != nil {
		return err
	}
	log.Info().
		Str("from", cmd.Input).
		Str("to", cmd.Output).
		Int("width", img.Width).
		Int("height", img.Height).
		Msg("Converted")
	return nil
}

func listScenes() {
	for _, info := range scene.ListScenes() {
		marker := " "
		if info.Name == scene.DefaultSceneName {
			marker = "*"
		}
		fmt.Printf("%s %-16s %s\n", marker, info.Name, info.Description)
	}
	fmt.Println("\nAny path ending in .yaml or .yml is loaded as a scene file.")
}

// applyFlags overrides the scene's configs with every flag that was given.
// Absent flags are nil, so an explicit zero still overrides.
func applyFlags(cmd renderCmd, camera renderer.CameraConfig, sampling renderer.SamplingConfig) (renderer.CameraConfig, renderer.SamplingConfig) {
	setIfGiven(&camera.Width, cmd.Width)
	setIfGiven(&camera.AspectRatio, cmd.AspectRatio)
	setIfGiven(&camera.VFov, cmd.VFov)
	setIfGiven(&camera.DefocusAngle, cmd.DefocusAngle)
	setIfGiven(&camera.FocusDistance, cmd.FocusDistance)

	setIfGiven(&sampling.SamplesPerPixel, cmd.Samples)
	setIfGiven(&sampling.MaxDepth, cmd.Depth)
	setIfGiven(&sampling.Seed, cmd.Seed)
	setIfGiven(&sampling.NumWorkers, cmd.Workers)
	return camera, sampling
}

func setIfGiven[T any](dst *T, flag *T) {
	if flag != nil {
		*dst = *flag
	}
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.ppm
func defaultOutputPath(sceneName string, now time.Time) string {
	dir := filepath.Join("output", sanitizeName(sceneName))
	return filepath.Join(dir, fmt.Sprintf("render_%s.ppm", now.Format("20060102_150405")))
}

// sanitizeName lowercases name and replaces anything unsafe in a path with '-'
func sanitizeName(name string) string {
	name = filepath.Base(name)
	switch ext := filepath.Ext(name); ext {
	case ".yaml", ".yml":
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, name)
	if strings.Trim(name, "-") == "" {
		return "scene"
	}
	return name
}
