package renderer

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/df07/sphere-pathtracer/pkg/core"
	"github.com/df07/sphere-pathtracer/pkg/integrator"
)

// progressInterval bounds how often row progress is logged
const progressInterval = 2 * time.Second

// Raytracer handles the rendering process
type Raytracer struct {
	world      core.Hittable
	camera     *Camera
	config     SamplingConfig
	integrator integrator.Integrator
	logger     zerolog.Logger
}

// NewRaytracer creates a new raytracer. A nil integrator uses path tracing
// against the sky background.
func NewRaytracer(world core.Hittable, camera *Camera, config SamplingConfig, integ integrator.Integrator) *Raytracer {
	if integ == nil {
		integ = integrator.NewPathTracingIntegrator(nil)
	}
	return &Raytracer{
		world:      world,
		camera:     camera,
		config:     config,
		integrator: integ,
		logger:     log.With().Str("component", "renderer").Logger(),
	}
}

// MergeSamplingConfig applies non-zero fields of config to the current configuration
func (rt *Raytracer) MergeSamplingConfig(config SamplingConfig) {
	rt.config = MergeSamplingConfig(rt.config, config)
}

// Render renders the whole image and blocks until every pixel is done
func (rt *Raytracer) Render() (*Image, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	width, height := rt.camera.Width(), rt.camera.Height()
	img := NewImage(width, height)
	timer := NewTimer()
	progress := NewProgress(height, progressInterval, timer, rt.logger)

	pool := NewWorkerPool(rt.config.NumWorkers, height, func(task RowTask) (RenderStats, error) {
		stats, err := rt.RenderRow(task, img)
		if err == nil {
			progress.RowDone()
		}
		return stats, err
	})

	rt.logger.Info().
		Int("width", width).
		Int("height", height).
		Int("samples", rt.config.SamplesPerPixel).
		Int("depth", rt.config.MaxDepth).
		Int("workers", pool.GetNumWorkers()).
		Int64("seed", rt.config.Seed).
		Msg("Starting render")

	pool.Start()
	for j := 0; j < height; j++ {
		pool.SubmitTask(RowTask{Row: j, Seed: RowSeed(rt.config.Seed, j)})
	}
	err := pool.Stop()

	var stats RenderStats
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.Merge(result.Stats)
	}
	if err != nil {
		return nil, stats, err
	}

	stats.Duration = timer.Elapsed()
	stats.Finalize()

	rt.logger.Info().
		Int("pixels", stats.TotalPixels).
		Int("samples", stats.TotalSamples).
		Int("escaped", stats.Escaped).
		Int("absorbed", stats.Absorbed).
		Int("depthExhausted", stats.DepthExhausted).
		Dur("duration", stats.Duration).
		Str("checksum", fmt.Sprintf("%016x", img.Checksum())).
		Msg("Render complete")

	return img, stats, nil
}

// RenderRow renders every pixel of one row into img. Rows are disjoint,
// so concurrent calls for different rows need no locking.
func (rt *Raytracer) RenderRow(task RowTask, img *Image) (RenderStats, error) {
	if task.Row < 0 || task.Row >= img.Height {
		return RenderStats{}, fmt.Errorf("row %d outside image of height %d", task.Row, img.Height)
	}

	sampler := core.NewSeededSampler(task.Seed)
	var stats RenderStats

	for i := 0; i < img.Width; i++ {
		img.Set(i, task.Row, rt.RenderPixel(i, task.Row, sampler, &stats))
		stats.TotalPixels++
	}

	return stats, nil
}

// RenderPixel averages SamplesPerPixel jittered samples of pixel (i, j)
func (rt *Raytracer) RenderPixel(i, j int, sampler core.Sampler, stats *RenderStats) core.Vec3 {
	var ps PixelStats
	for s := 0; s < rt.config.SamplesPerPixel; s++ {
		ray := rt.camera.GetRay(i, j, sampler)
		color, termination := rt.integrator.RayColor(ray, rt.world, sampler, rt.config.MaxDepth)
		ps.AddSample(color)
		stats.Record(termination)
	}
	return ps.GetColor()
}
