package integrator

import (
	"github.com/df07/sphere-pathtracer/pkg/core"
)

// Termination records how a camera path ended
type Termination int

const (
	// Escaped paths left the scene and picked up the background
	Escaped Termination = iota
	// Absorbed paths hit a material that did not scatter
	Absorbed
	// DepthExhausted paths ran out of bounces before escaping
	DepthExhausted
)

// String returns a lowercase name for logs and stats
func (t Termination) String() string {
	switch t {
	case Escaped:
		return "escaped"
	case Absorbed:
		return "absorbed"
	case DepthExhausted:
		return "depth-exhausted"
	default:
		return "unknown"
	}
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray with at most depth bounces.
	// Returns (linear color, how the path terminated)
	RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler, depth int) (core.Vec3, Termination)
}
