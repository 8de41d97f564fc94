package scene

import (
	"github.com/df07/sphere-pathtracer/pkg/core"
	"github.com/df07/sphere-pathtracer/pkg/material"
	"github.com/df07/sphere-pathtracer/pkg/renderer"
)

const (
	gridHalfExtent   = 16  // Grid spans [-16, 16) on x and z
	smallRadius      = 0.2 // Radius of the grid spheres
	heroRadius       = 1.0 // Radius of the large feature spheres
	heroHeight       = 1.0
	lambertianChance = 0.7
	metalChance      = 0.2 // Remainder is glass
)

// RandomSpheresSeed seeds the layout of the random spheres scene
const RandomSpheresSeed = 1

// NewRandomSpheresScene creates a jittered grid of small random spheres around
// five large feature spheres, all on a huge ground sphere
func NewRandomSpheresScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	return NewRandomSpheresSceneWithSeed(RandomSpheresSeed, cameraOverrides...)
}

// NewRandomSpheresSceneWithSeed is NewRandomSpheresScene with an explicit layout seed
func NewRandomSpheresSceneWithSeed(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(11, 3, 8),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         1600,
		AspectRatio:   16.0 / 9.0,
		VFov:          25,
		DefocusAngle:  0.1,
		FocusDistance: 12,
	}
	cameraConfig := applyCameraOverrides(defaultCameraConfig, cameraOverrides)

	samplingConfig := renderer.SamplingConfig{
		SamplesPerPixel: 250,
		MaxDepth:        50,
		Seed:            42,
	}

	s := newScene("random-spheres", "Jittered grid of random spheres around five large feature spheres",
		cameraConfig, samplingConfig)

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.Materials["ground"] = ground
	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, ground)

	metalHero := core.NewVec3(3.5, heroHeight, 0)
	glassHero := core.NewVec3(0, heroHeight, 0)
	diffuseHero := core.NewVec3(-4, heroHeight, 0)
	hollowHero := core.NewVec3(0, heroHeight, 4)
	heroes := []core.Vec3{metalHero, glassHero, diffuseHero, hollowHero}

	// Grid glass spheres share one material
	glass := material.NewDielectric(1.5)
	s.Materials["glass"] = glass

	sampler := core.NewSeededSampler(seed)
	for a := -gridHalfExtent; a < gridHalfExtent; a++ {
		for b := -gridHalfExtent; b < gridHalfExtent; b++ {
			chooseMaterial := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.8*sampler.Get1D(),
				smallRadius,
				float64(b)+0.8*sampler.Get1D(),
			)

			if !clearOfAll(center, heroes, heroRadius+smallRadius) {
				continue
			}

			switch {
			case chooseMaterial < lambertianChance:
				albedo := core.RandomColor(sampler, 0, 1)
				s.AddSphere(center, smallRadius, material.NewLambertian(albedo))
			case chooseMaterial < lambertianChance+metalChance:
				albedo := core.RandomColor(sampler, 0.5, 1)
				fuzz := core.RandomInRange(sampler, 0, 0.5)
				s.AddSphere(center, smallRadius, material.NewMetal(albedo, fuzz))
			default:
				s.AddSphere(center, smallRadius, glass)
			}
		}
	}

	s.Materials["hero-metal"] = material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)
	s.Materials["hero-glass"] = material.NewDielectric(1.5)
	s.Materials["hero-diffuse"] = material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))
	s.Materials["hollow-shell"] = material.NewDielectric(1.5)
	s.Materials["hollow-air"] = material.NewDielectric(1 / 1.5)

	s.AddSphere(metalHero, heroRadius, s.Materials["hero-metal"])
	s.AddSphere(glassHero, heroRadius, s.Materials["hero-glass"])
	s.AddSphere(diffuseHero, heroRadius, s.Materials["hero-diffuse"])
	s.AddSphere(hollowHero, heroRadius, s.Materials["hollow-shell"])
	s.AddSphere(hollowHero, heroRadius-0.2, s.Materials["hollow-air"])

	return s
}

// clearOfAll reports whether p is farther than distance from every point
func clearOfAll(p core.Vec3, points []core.Vec3, distance float64) bool {
	for _, q := range points {
		if p.Subtract(q).Length() <= distance {
			return false
		}
	}
	return true
}
