package scene

import (
	"github.com/df07/sphere-pathtracer/pkg/core"
	"github.com/df07/sphere-pathtracer/pkg/material"
	"github.com/df07/sphere-pathtracer/pkg/renderer"
)

// NewTwoSpheresScene creates a small sphere resting on a large ground sphere,
// seen from the origin with the default camera
func NewTwoSpheresScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := applyCameraOverrides(renderer.DefaultCameraConfig(), cameraOverrides)

	s := newScene("two-spheres", "Small sphere on a ground sphere, default camera",
		cameraConfig, renderer.DefaultSamplingConfig())

	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	s.Materials["ground"] = ground
	s.Materials["center"] = center

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, ground)
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, center)

	return s
}
