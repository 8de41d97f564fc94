package material

import (
	"math"
	"testing"

	"github.com/df07/sphere-pathtracer/pkg/core"
)

func TestDielectricBasicBehavior(t *testing.T) {
	glass := NewDielectric(1.5)

	rayDirection := core.NewVec3(1, -1, 0).Normalize() // 45-degree angle
	ray := core.NewRay(core.NewVec3(0, 1, 0), rayDirection)

	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  glass,
	}

	hasReflection := false
	hasRefraction := false

	for seed := int64(0); seed < 1000 && (!hasReflection || !hasRefraction); seed++ {
		sampler := core.NewSeededSampler(seed)
		result, scattered := glass.Scatter(ray, hit, sampler)
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}

		expectedAttenuation := core.NewVec3(1.0, 1.0, 1.0)
		if result.Attenuation != expectedAttenuation {
			t.Errorf("Expected attenuation %v, got %v", expectedAttenuation, result.Attenuation)
		}

		// Reflection goes up, refraction continues down and bends toward the normal
		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
			sinOut := math.Abs(result.Scattered.Direction.Normalize().X)
			if math.Abs(sinOut-math.Sin(math.Pi/4)/1.5) > 1e-9 {
				t.Errorf("Refracted ray violates Snell's law: sin=%f", sinOut)
			}
		}
	}

	if !hasRefraction {
		t.Error("Expected to see refraction in at least some cases")
	}
	if !hasReflection {
		t.Error("Expected to see Fresnel reflection in at least some cases")
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Shallow angle from inside the glass
	rayDirection := core.NewVec3(1, -0.1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(0, 0, 0), rayDirection)

	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: false, // Exiting the material
		Material:  glass,
	}

	cosTheta := -rayDirection.Dot(hit.Normal)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)
	if 1.5*sinTheta <= 1.0 {
		t.Fatalf("Test setup error: this angle should cause total internal reflection")
	}

	for i := 0; i < 10; i++ {
		sampler := core.NewSeededSampler(int64(i))
		result, scattered := glass.Scatter(ray, hit, sampler)

		if !scattered {
			t.Error("Dielectric should always scatter")
		}
		if result.Scattered.Direction.Y <= 0 {
			t.Errorf("Expected total internal reflection (ray going up), got %+v", result.Scattered.Direction)
		}
	}
}

func TestDielectricMatchedIndexPassesStraightThrough(t *testing.T) {
	air := NewDielectric(1.0)

	directions := []core.Vec3{
		core.NewVec3(0, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(5, -0.2, 1),
		core.NewVec3(-0.3, -2, 0.7),
	}

	for _, frontFace := range []bool{true, false} {
		for i, dir := range directions {
			sampler := core.NewSeededSampler(int64(i))
			ray := core.NewRay(core.NewVec3(0, 1, 0), dir)
			hit := core.HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: frontFace}

			for j := 0; j < 50; j++ {
				result, scattered := air.Scatter(ray, hit, sampler)
				if !scattered {
					t.Fatal("Dielectric should always scatter")
				}
				got := result.Scattered.Direction
				want := dir.Normalize()
				if got.Subtract(want).Length() > 1e-9 {
					t.Fatalf("Expected unbent direction %v, got %v (front=%t)", want, got, frontFace)
				}
			}
		}
	}
}

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ratio    float64
		expected float64
	}{
		{"normal incidence glass", 1.0, 1.5, 0.04},
		{"normal incidence inverse", 1.0, 1.0 / 1.5, 0.04},
		{"grazing incidence", 0.0, 1.5, 1.0},
		{"matched index", 0.3, 1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflectance(tt.cosine, tt.ratio)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Reflectance(%f, %f) = %f, want %f", tt.cosine, tt.ratio, got, tt.expected)
			}
		})
	}
}
