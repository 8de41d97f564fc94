package scene

import (
	"github.com/df07/sphere-pathtracer/pkg/core"
	"github.com/df07/sphere-pathtracer/pkg/material"
	"github.com/df07/sphere-pathtracer/pkg/renderer"
)

// NewMaterialsScene shows one sphere of each material: diffuse in the center,
// a hollow glass bubble on the left and fuzzy metal on the right
func NewMaterialsScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(-2, 2, 1),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         800,
		AspectRatio:   16.0 / 9.0,
		VFov:          20,
		DefocusAngle:  10,
		FocusDistance: 3.4,
	}
	cameraConfig := applyCameraOverrides(defaultCameraConfig, cameraOverrides)

	samplingConfig := renderer.SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            42,
	}

	s := newScene("materials", "Lambertian, glass bubble and fuzzy metal side by side",
		cameraConfig, samplingConfig)

	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.50)
	bubble := material.NewDielectric(1.00 / 1.50)
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	s.Materials["ground"] = ground
	s.Materials["center"] = center
	s.Materials["glass"] = glass
	s.Materials["bubble"] = bubble
	s.Materials["gold"] = gold

	s.AddSphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, ground)
	s.AddSphere(core.NewVec3(0.0, 0.0, -1.2), 0.5, center)
	s.AddSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.5, glass)
	s.AddSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.4, bubble)
	s.AddSphere(core.NewVec3(1.0, 0.0, -1.0), 0.5, gold)

	return s
}
