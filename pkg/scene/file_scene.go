package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/df07/sphere-pathtracer/pkg/core"
	"github.com/df07/sphere-pathtracer/pkg/integrator"
	"github.com/df07/sphere-pathtracer/pkg/loaders"
	"github.com/df07/sphere-pathtracer/pkg/material"
	"github.com/df07/sphere-pathtracer/pkg/renderer"
)

// NewFileScene loads a YAML scene description from disk
func NewFileScene(filename string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	file, err := loaders.LoadSceneFile(filename)
	if err != nil {
		return nil, err
	}

	if file.Name == "" {
		file.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}

	s, err := NewSceneFromFile(file, cameraOverrides...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	log.Debug().
		Str("component", "scene").
		Str("file", filename).
		Int("materials", len(s.Materials)).
		Int("spheres", s.GetPrimitiveCount()).
		Msg("Loaded scene file")

	return s, nil
}

// NewSceneFromFile converts a parsed scene file into a scene. Every material
// is built once and shared by all spheres that name it.
func NewSceneFromFile(file *loaders.SceneFile, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	cameraConfig := renderer.DefaultCameraConfig()
	if file.Camera != nil {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, renderer.CameraConfig{
			LookFrom:      file.Camera.LookFrom.ToVec3(),
			LookAt:        file.Camera.LookAt.ToVec3(),
			Up:            file.Camera.Up.ToVec3(),
			Width:         file.Camera.Width,
			AspectRatio:   file.Camera.AspectRatio,
			VFov:          file.Camera.VFov,
			DefocusAngle:  file.Camera.DefocusAngle,
			FocusDistance: file.Camera.FocusDistance,
		})
	}
	cameraConfig = applyCameraOverrides(cameraConfig, cameraOverrides)

	samplingConfig := renderer.DefaultSamplingConfig()
	if file.Sampling != nil {
		samplingConfig = renderer.MergeSamplingConfig(samplingConfig, renderer.SamplingConfig{
			SamplesPerPixel: file.Sampling.SamplesPerPixel,
			MaxDepth:        file.Sampling.MaxDepth,
			Seed:            file.Sampling.Seed,
		})
	}

	s := newScene(file.Name, file.Description, cameraConfig, samplingConfig)

	if file.Background != nil {
		sky := integrator.NewSkyBackground()
		if file.Background.Top != nil {
			sky.Top = file.Background.Top.ToVec3()
		}
		if file.Background.Bottom != nil {
			sky.Bottom = file.Background.Bottom.ToVec3()
		}
		s.Background = sky
	}

	for name, spec := range file.Materials {
		mat, err := buildMaterial(spec)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		s.Materials[name] = mat
	}

	for i, spec := range file.Spheres {
		mat, ok := s.Materials[spec.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: unknown material %q", i, spec.Material)
		}
		s.AddSphere(spec.Center.ToVec3(), spec.Radius, mat)
	}

	return s, nil
}

func buildMaterial(spec loaders.MaterialSpec) (core.Material, error) {
	switch spec.Type {
	case loaders.MaterialLambertian:
		return material.NewLambertian(spec.Albedo.ToVec3()), nil
	case loaders.MaterialMetal:
		return material.NewMetal(spec.Albedo.ToVec3(), spec.Fuzz), nil
	case loaders.MaterialDielectric:
		return material.NewDielectric(spec.RefractionIndex), nil
	default:
		return nil, fmt.Errorf("unknown type %q", spec.Type)
	}
}
