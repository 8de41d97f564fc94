package scene

import (
	"github.com/df07/sphere-pathtracer/pkg/core"
	"github.com/df07/sphere-pathtracer/pkg/geometry"
	"github.com/df07/sphere-pathtracer/pkg/integrator"
	"github.com/df07/sphere-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Description    string
	World          *geometry.HittableList   // Objects in the scene
	Materials      map[string]core.Material // Named materials shared by the objects
	Background     integrator.Background
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
}

// newScene creates an empty scene with the sky background and the given configs
func newScene(name, description string, cameraConfig renderer.CameraConfig, samplingConfig renderer.SamplingConfig) *Scene {
	return &Scene{
		Name:           name,
		Description:    description,
		World:          geometry.NewHittableList(),
		Materials:      make(map[string]core.Material),
		Background:     integrator.NewSkyBackground(),
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
	}
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, material core.Material) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, material)
	s.World.Add(sphere)
	return sphere
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return countPrimitives(s.World)
}

func countPrimitives(h core.Hittable) int {
	switch obj := h.(type) {
	case *geometry.HittableList:
		count := 0
		for _, child := range obj.Objects() {
			count += countPrimitives(child)
		}
		return count
	default:
		return 1
	}
}

// applyCameraOverrides merges the first override, if any, onto the defaults
func applyCameraOverrides(defaults renderer.CameraConfig, overrides []renderer.CameraConfig) renderer.CameraConfig {
	if len(overrides) > 0 {
		return renderer.MergeCameraConfig(defaults, overrides[0])
	}
	return defaults
}
