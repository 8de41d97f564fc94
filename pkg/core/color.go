package core

import "math"

// Intensity is the range linear color channels are clamped to before quantization
var Intensity = Interval{Min: 0.000, Max: 0.999}

// LinearToGamma applies gamma 2 correction. Non-positive values pass through unchanged.
func LinearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return linear
}

// QuantizeChannel maps a linear channel value to an integer in [0, 255]
func QuantizeChannel(linear float64) int {
	return int(256 * Intensity.Clamp(LinearToGamma(linear)))
}

// Quantize converts a linear RGB color to gamma corrected 8-bit channels
func Quantize(color Vec3) (r, g, b int) {
	return QuantizeChannel(color.X), QuantizeChannel(color.Y), QuantizeChannel(color.Z)
}
