package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/sphere-pathtracer/pkg/core"
	"github.com/df07/sphere-pathtracer/pkg/imageio"
	"github.com/df07/sphere-pathtracer/pkg/renderer"
	"github.com/df07/sphere-pathtracer/pkg/scene"
)

func TestDefaultOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	tests := []struct {
		name      string
		sceneName string
		expected  string
	}{
		{"built-in scene", "random-spheres", filepath.Join("output", "random-spheres", "render_20240309_140507.ppm")},
		{"scene file path", "scenes/My Scene.yaml", filepath.Join("output", "my-scene", "render_20240309_140507.ppm")},
		{"dots become dashes", "glass 1.5", filepath.Join("output", "glass-1-5", "render_20240309_140507.ppm")},
		{"empty name", "", filepath.Join("output", "scene", "render_20240309_140507.ppm")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, defaultOutputPath(tt.sceneName, now))
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestApplyFlags(t *testing.T) {
	s, err := scene.Create("materials")
	require.NoError(t, err)
	require.Equal(t, 10.0, s.CameraConfig.DefocusAngle)
	require.Equal(t, 50, s.SamplingConfig.MaxDepth)
	require.Equal(t, int64(42), s.SamplingConfig.Seed)

	tests := []struct {
		name  string
		cmd   renderCmd
		check func(t *testing.T, camera renderer.CameraConfig, sampling renderer.SamplingConfig)
	}{
		{
			name: "no flags keeps scene values",
			cmd:  renderCmd{},
			check: func(t *testing.T, camera renderer.CameraConfig, sampling renderer.SamplingConfig) {
				assert.Equal(t, s.CameraConfig, camera)
				assert.Equal(t, s.SamplingConfig, sampling)
			},
		},
		{
			name: "zero defocus angle disables depth of field",
			cmd:  renderCmd{DefocusAngle: ptr(0.0)},
			check: func(t *testing.T, camera renderer.CameraConfig, _ renderer.SamplingConfig) {
				assert.Equal(t, 0.0, camera.DefocusAngle)
				assert.Equal(t, s.CameraConfig.FocusDistance, camera.FocusDistance)
			},
		},
		{
			name: "zero depth is kept",
			cmd:  renderCmd{Depth: ptr(0)},
			check: func(t *testing.T, _ renderer.CameraConfig, sampling renderer.SamplingConfig) {
				assert.Equal(t, 0, sampling.MaxDepth)
				assert.NoError(t, sampling.Validate())
			},
		},
		{
			name: "zero seed is kept",
			cmd:  renderCmd{Seed: ptr(int64(0))},
			check: func(t *testing.T, _ renderer.CameraConfig, sampling renderer.SamplingConfig) {
				assert.Equal(t, int64(0), sampling.Seed)
			},
		},
		{
			name: "non-zero flags override",
			cmd:  renderCmd{Width: ptr(320), VFov: ptr(40.0), Samples: ptr(8)},
			check: func(t *testing.T, camera renderer.CameraConfig, sampling renderer.SamplingConfig) {
				assert.Equal(t, 320, camera.Width)
				assert.Equal(t, 40.0, camera.VFov)
				assert.Equal(t, 8, sampling.SamplesPerPixel)
				assert.Equal(t, s.SamplingConfig.MaxDepth, sampling.MaxDepth)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camera, sampling := applyFlags(tt.cmd, s.CameraConfig, s.SamplingConfig)
			tt.check(t, camera, sampling)
		})
	}
}

func TestRunRender_ZeroDepthAndSeed(t *testing.T) {
	output := filepath.Join(t.TempDir(), "black.zst")

	err := runRender(renderCmd{
		Scene:   "materials",
		Output:  output,
		Width:   ptr(8),
		Samples: ptr(1),
		Depth:   ptr(0),
		Seed:    ptr(int64(0)),
	}, time.Now())
	require.NoError(t, err)

	img, meta, err := imageio.Load(output)
	require.NoError(t, err)
	assert.Equal(t, int64(0), meta.Seed)
	for _, p := range img.Pixels {
		assert.Equal(t, core.Vec3{}, p)
	}
}

func TestRunRender_WritesRequestedFormat(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "nested", "two.zst")

	err := runRender(renderCmd{
		Scene:   "two-spheres",
		Output:  output,
		Width:   ptr(16),
		Samples: ptr(2),
		Depth:   ptr(4),
		Seed:    ptr(int64(5)),
		Workers: ptr(2),
	}, time.Now())
	require.NoError(t, err)

	img, meta, err := imageio.Load(output)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Width)
	assert.Equal(t, 9, img.Height)
	assert.Equal(t, imageio.Metadata{Seed: 5, SamplesPerPixel: 2}, meta)
}

func TestRunRender_RejectsInvalidFlags(t *testing.T) {
	err := runRender(renderCmd{
		Scene:   "two-spheres",
		Output:  filepath.Join(t.TempDir(), "bad.ppm"),
		Width:   ptr(8),
		Workers: ptr(-1),
	}, time.Now())
	assert.ErrorIs(t, err, renderer.ErrInvalidConfig)
}

func TestRunRender_UnknownScene(t *testing.T) {
	err := runRender(renderCmd{Scene: "no-such-scene"}, time.Now())
	assert.Error(t, err)
}

func TestRunConvert(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, "in.zst")
	png := filepath.Join(dir, "out.png")

	img := renderer.NewImage(3, 2)
	img.Set(1, 1, core.NewVec3(0.25, 0.5, 1))
	require.NoError(t, imageio.Save(raw, img, imageio.Metadata{Seed: 1, SamplesPerPixel: 1}))

	require.NoError(t, runConvert(convertCmd{Input: raw, Output: png}))

	info, err := os.Stat(png)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
