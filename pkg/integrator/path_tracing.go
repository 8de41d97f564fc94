package integrator

import (
	"math"

	"github.com/df07/sphere-pathtracer/pkg/core"
)

// HitEpsilon is the lower bound of the valid hit interval. It keeps scattered
// rays from re-hitting the surface they start on due to rounding.
const HitEpsilon = 1e-5

// Background supplies the color of rays that escape the scene
type Background interface {
	Color(ray core.Ray) core.Vec3
}

// GradientBackground blends vertically between Bottom (straight down) and Top (straight up)
type GradientBackground struct {
	Bottom core.Vec3
	Top    core.Vec3
}

// NewSkyBackground returns the white to light blue sky gradient
func NewSkyBackground() GradientBackground {
	return GradientBackground{
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
		Top:    core.NewVec3(0.5, 0.7, 1.0),
	}
}

// Color returns the gradient color for the ray's direction
func (g GradientBackground) Color(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	a := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-a)*bottom + a*top
	return g.Bottom.Multiply(1.0 - a).Add(g.Top.Multiply(a))
}

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	background Background
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// A nil background falls back to the sky gradient.
func NewPathTracingIntegrator(background Background) *PathTracingIntegrator {
	if background == nil {
		background = NewSkyBackground()
	}
	return &PathTracingIntegrator{background: background}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler, depth int) (core.Vec3, Termination) {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}, DepthExhausted
	}

	hit, isHit := world.Hit(ray, core.NewInterval(HitEpsilon, math.Inf(1)))
	if !isHit {
		return pt.background.Color(ray), Escaped
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0}, Absorbed
	}

	incoming, termination := pt.RayColor(scatter.Scattered, world, sampler, depth-1)
	return scatter.Attenuation.MultiplyVec(incoming), termination
}
