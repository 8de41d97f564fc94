package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/sphere-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned when a name is neither a built-in scene nor a scene file
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string
	Description string
}

type builtinScene struct {
	info  SceneInfo
	build func(cameraOverrides ...renderer.CameraConfig) *Scene
}

var builtinScenes = []builtinScene{
	{
		info:  SceneInfo{Name: "random-spheres", Description: "Jittered grid of random spheres around five large feature spheres"},
		build: NewRandomSpheresScene,
	},
	{
		info:  SceneInfo{Name: "two-spheres", Description: "Small sphere on a ground sphere, default camera"},
		build: NewTwoSpheresScene,
	},
	{
		info:  SceneInfo{Name: "materials", Description: "Lambertian, glass bubble and fuzzy metal side by side"},
		build: NewMaterialsScene,
	},
}

// DefaultSceneName is rendered when no scene is named
const DefaultSceneName = "random-spheres"

// ListScenes returns the built-in scenes in display order
func ListScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		infos = append(infos, b.info)
	}
	return infos
}

// Create resolves name to a built-in scene, or else loads it as a YAML scene file
func Create(name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.Name == name {
			return b.build(cameraOverrides...), nil
		}
	}

	if isSceneFile(name) {
		if _, err := os.Stat(name); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrUnknownScene, name, err)
		}
		return NewFileScene(name, cameraOverrides...)
	}

	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(sceneNames(), ", "))
}

func isSceneFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func sceneNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		names = append(names, b.info.Name)
	}
	return names
}
