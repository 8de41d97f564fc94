package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearToGamma(t *testing.T) {
	assert.Equal(t, 0.5, LinearToGamma(0.25))
	assert.Equal(t, 1.0, LinearToGamma(1))
	assert.Equal(t, 0.0, LinearToGamma(0))
	assert.Equal(t, -0.2, LinearToGamma(-0.2))
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		name     string
		linear   float64
		expected int
	}{
		{"black", 0, 0},
		{"negative clamps to zero", -1, 0},
		{"quarter becomes half after gamma", 0.25, 128},
		{"white clamps below 256", 1, 255},
		{"overexposed", 40, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, QuantizeChannel(tt.linear))
		})
	}

	r, g, b := Quantize(NewVec3(1, 0.25, 0))
	assert.Equal(t, []int{255, 128, 0}, []int{r, g, b})
}
