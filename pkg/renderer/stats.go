package renderer

import (
	"time"

	"github.com/df07/sphere-pathtracer/pkg/core"
	"github.com/df07/sphere-pathtracer/pkg/integrator"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	Escaped        int           // Paths that reached the background
	Absorbed       int           // Paths absorbed by a material
	DepthExhausted int           // Paths cut off by the bounce limit
	Duration       time.Duration // Wall time of the whole render
}

// Record counts one finished sample path
func (s *RenderStats) Record(termination integrator.Termination) {
	s.TotalSamples++
	switch termination {
	case integrator.Escaped:
		s.Escaped++
	case integrator.Absorbed:
		s.Absorbed++
	case integrator.DepthExhausted:
		s.DepthExhausted++
	}
}

// Merge adds the counters of other into s
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.Escaped += other.Escaped
	s.Absorbed += other.Absorbed
	s.DepthExhausted += other.DepthExhausted
}

// Finalize computes derived values once all counters are merged
func (s *RenderStats) Finalize() {
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
