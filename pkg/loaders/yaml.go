package loaders

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/df07/sphere-pathtracer/pkg/core"
)

// Material types understood in scene files
const (
	MaterialLambertian = "lambertian"
	MaterialMetal      = "metal"
	MaterialDielectric = "dielectric"
)

// Vec3 is a YAML triple [x, y, z]
type Vec3 [3]float64

// ToVec3 converts the triple to a core vector
func (v Vec3) ToVec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// CameraSection overrides camera parameters. Zero values are left unset.
type CameraSection struct {
	LookFrom      Vec3    `yaml:"lookfrom"`
	LookAt        Vec3    `yaml:"lookat"`
	Up            Vec3    `yaml:"up"`
	Width         int     `yaml:"width"`
	AspectRatio   float64 `yaml:"aspect_ratio"`
	VFov          float64 `yaml:"vfov"`
	DefocusAngle  float64 `yaml:"defocus_angle"`
	FocusDistance float64 `yaml:"focus_distance"`
}

// SamplingSection overrides sampling parameters. Zero values are left unset.
type SamplingSection struct {
	SamplesPerPixel int   `yaml:"samples_per_pixel"`
	MaxDepth        int   `yaml:"max_depth"`
	Seed            int64 `yaml:"seed"`
}

// BackgroundSection describes the sky gradient. A missing key keeps the
// default sky color for that end.
type BackgroundSection struct {
	Top    *Vec3 `yaml:"top"`
	Bottom *Vec3 `yaml:"bottom"`
}

// MaterialSpec describes one named material
type MaterialSpec struct {
	Type            string  `yaml:"type"`
	Albedo          Vec3    `yaml:"albedo"`
	Fuzz            float64 `yaml:"fuzz"`
	RefractionIndex float64 `yaml:"refraction_index"`
}

// SphereSpec places a sphere with a named material
type SphereSpec struct {
	Center   Vec3    `yaml:"center"`
	Radius   float64 `yaml:"radius"`
	Material string  `yaml:"material"`
}

// SceneFile is the parsed form of a YAML scene description
type SceneFile struct {
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	Camera      *CameraSection          `yaml:"camera"`
	Sampling    *SamplingSection        `yaml:"sampling"`
	Background  *BackgroundSection      `yaml:"background"`
	Materials   map[string]MaterialSpec `yaml:"materials"`
	Spheres     []SphereSpec            `yaml:"spheres"`
}

// LoadSceneFile reads and validates a YAML scene file
func LoadSceneFile(filename string) (*SceneFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	scene, err := ParseSceneFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return scene, nil
}

// ParseSceneFile parses and validates a YAML scene description.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func ParseSceneFile(r io.Reader) (*SceneFile, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var scene SceneFile
	if err := decoder.Decode(&scene); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("scene file is empty")
		}
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}

	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return &scene, nil
}

// Validate checks material definitions and sphere references
func (s *SceneFile) Validate() error {
	// Sorted for deterministic error messages
	names := make([]string, 0, len(s.Materials))
	for name := range s.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec := s.Materials[name]
		switch spec.Type {
		case MaterialLambertian, MaterialMetal:
		case MaterialDielectric:
			if !(spec.RefractionIndex > 0) {
				return fmt.Errorf("material %q: refraction_index must be positive, got %g", name, spec.RefractionIndex)
			}
		case "":
			return fmt.Errorf("material %q: missing type", name)
		default:
			return fmt.Errorf("material %q: unknown type %q", name, spec.Type)
		}
	}

	for i, sphere := range s.Spheres {
		if sphere.Material == "" {
			return fmt.Errorf("sphere %d: missing material", i)
		}
		if _, ok := s.Materials[sphere.Material]; !ok {
			return fmt.Errorf("sphere %d: unknown material %q", i, sphere.Material)
		}
	}

	return nil
}
