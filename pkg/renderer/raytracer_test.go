package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/sphere-pathtracer/pkg/core"
	"github.com/df07/sphere-pathtracer/pkg/geometry"
	"github.com/df07/sphere-pathtracer/pkg/integrator"
	"github.com/df07/sphere-pathtracer/pkg/material"
)

// createTwoSphereWorld builds a ground sphere and a small sphere in front of the camera
func createTwoSphereWorld() *geometry.HittableList {
	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	return geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
	)
}

func smallCameraConfig(width int) CameraConfig {
	config := DefaultCameraConfig()
	config.Width = width
	return config
}

func TestRaytracer_BufferSize(t *testing.T) {
	for _, width := range []int{1, 7, 32} {
		camera := NewCamera(smallCameraConfig(width))
		rt := NewRaytracer(createTwoSphereWorld(), camera, SamplingConfig{SamplesPerPixel: 1, MaxDepth: 3, Seed: 1}, nil)

		img, stats, err := rt.Render()
		require.NoError(t, err)
		assert.Len(t, img.Pixels, camera.Width()*camera.Height())
		assert.Equal(t, camera.Width()*camera.Height(), stats.TotalPixels)
		assert.Equal(t, stats.TotalPixels, stats.TotalSamples)
		assert.Equal(t, stats.TotalSamples, stats.Escaped+stats.Absorbed+stats.DepthExhausted)
	}
}

func TestRaytracer_ReproducibleAcrossWorkerCounts(t *testing.T) {
	world := createTwoSphereWorld()
	camera := NewCamera(smallCameraConfig(48))

	render := func(seed int64, workers int) *Image {
		rt := NewRaytracer(world, camera, SamplingConfig{SamplesPerPixel: 2, MaxDepth: 8, Seed: seed, NumWorkers: workers}, nil)
		img, _, err := rt.Render()
		require.NoError(t, err)
		return img
	}

	reference := render(42, 1)
	for _, workers := range []int{1, 2, 5, 0} {
		img := render(42, workers)
		assert.Equal(t, reference.Checksum(), img.Checksum(), "workers=%d", workers)
		assert.Equal(t, reference.Pixels, img.Pixels, "workers=%d", workers)
	}

	assert.NotEqual(t, reference.Checksum(), render(43, 2).Checksum())
}

func TestRaytracer_TwoSphereScene(t *testing.T) {
	world := createTwoSphereWorld()
	camera := NewCamera(smallCameraConfig(64))
	integ := integrator.NewPathTracingIntegrator(nil)
	sampler := core.NewSeededSampler(42)
	const depth = 10

	// Pinhole ray through the middle of the image hits the small sphere
	centerRay := camera.GetCenterRay(camera.Width()/2, camera.Height()/2)
	hit, isHit := world.Hit(centerRay, core.NewInterval(integrator.HitEpsilon, 1e9))
	require.True(t, isHit)
	assert.InDelta(t, 0.5, hit.Point.Subtract(core.NewVec3(0, 0, -1)).Length(), 1e-9)

	sky := integrator.NewSkyBackground()
	color, termination := integ.RayColor(centerRay, world, sampler, depth)
	assert.NotEqual(t, sky.Color(centerRay), color)
	if termination == integrator.Escaped {
		// One bounce at least attenuates by the sphere's albedo
		assert.Less(t, color.Z, 1.0)
	}

	// The top-left corner looks up into the sky and misses everything
	cornerRay := camera.GetCenterRay(0, 0)
	color, termination = integ.RayColor(cornerRay, world, sampler, depth)
	assert.Equal(t, integrator.Escaped, termination)
	assert.Equal(t, sky.Color(cornerRay), color)
}

func TestRaytracer_SingleSampleMatchesIntegrator(t *testing.T) {
	world := createTwoSphereWorld()
	camera := NewCamera(smallCameraConfig(16))
	config := SamplingConfig{SamplesPerPixel: 1, MaxDepth: 6, Seed: 7, NumWorkers: 3}
	rt := NewRaytracer(world, camera, config, nil)

	img, _, err := rt.Render()
	require.NoError(t, err)

	// Replay row 4 by hand with the same per-row seed
	row := 4
	sampler := core.NewSeededSampler(RowSeed(config.Seed, row))
	integ := integrator.NewPathTracingIntegrator(nil)
	for i := 0; i < camera.Width(); i++ {
		ray := camera.GetRay(i, row, sampler)
		expected, _ := integ.RayColor(ray, world, sampler, config.MaxDepth)
		require.Equal(t, expected, img.At(i, row), "pixel %d", i)
	}
}

func TestRaytracer_ZeroDepthIsBlack(t *testing.T) {
	camera := NewCamera(smallCameraConfig(8))
	rt := NewRaytracer(createTwoSphereWorld(), camera, SamplingConfig{SamplesPerPixel: 3, MaxDepth: 0}, nil)

	img, stats, err := rt.Render()
	require.NoError(t, err)
	for _, p := range img.Pixels {
		require.Equal(t, core.Vec3{}, p)
	}
	assert.Equal(t, stats.TotalSamples, stats.DepthExhausted)
	assert.Equal(t, 3.0, stats.AverageSamples)
}

func TestRaytracer_InvalidSamplingConfig(t *testing.T) {
	rt := NewRaytracer(createTwoSphereWorld(), NewCamera(smallCameraConfig(4)), SamplingConfig{SamplesPerPixel: 0}, nil)
	_, _, err := rt.Render()
	assert.ErrorIs(t, err, ErrInvalidConfig)

	rt.MergeSamplingConfig(SamplingConfig{SamplesPerPixel: 1})
	_, _, err = rt.Render()
	assert.NoError(t, err)
}

func TestRaytracer_RenderRowOutOfBounds(t *testing.T) {
	camera := NewCamera(smallCameraConfig(4))
	rt := NewRaytracer(createTwoSphereWorld(), camera, DefaultSamplingConfig(), nil)
	img := NewImage(camera.Width(), camera.Height())

	_, err := rt.RenderRow(RowTask{Row: camera.Height()}, img)
	assert.Error(t, err)
	_, err = rt.RenderRow(RowTask{Row: -1}, img)
	assert.Error(t, err)
}
