package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// ErrUnknownScene is returned when a scene name matches no builtin scene
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a builtin scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

// Builtin pairs a scene constructor with the pose it is framed for
type Builtin struct {
	Info        SceneInfo
	DefaultPose func() Pose
	Build       func(light core.Vec3) *Scene
}

var builtins = map[string]Builtin{
	"snowman": {
		Info: SceneInfo{
			ID:          "snowman",
			DisplayName: "Snowman",
			Description: "Snowman, mirror sphere and brass cube on a checkered floor",
		},
		DefaultPose: DefaultPose,
		Build:       NewSnowmanScene,
	},
	"single-sphere": {
		Info: SceneInfo{
			ID:          "single-sphere",
			DisplayName: "Single Sphere",
			Description: "One red unit sphere at the origin",
		},
		DefaultPose: SingleSpherePose,
		Build: func(light core.Vec3) *Scene {
			return NewSingleSphereScene(light, core.NewVec3(1, 0, 0))
		},
	},
	"sphere-grid": {
		Info: SceneInfo{
			ID:          "sphere-grid",
			DisplayName: "Sphere Grid",
			Description: "5x5 grid of rainbow spheres with increasing reflectivity",
		},
		DefaultPose: SphereGridPose,
		Build:       NewSphereGridScene,
	},
}

// DefaultSceneID is used when no scene is requested
const DefaultSceneID = "snowman"

// ListBuiltinScenes returns the builtin scenes sorted by display name
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		scenes = append(scenes, b.Info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes
}

// LookupBuiltin finds a builtin scene by id. Matching ignores case and
// surrounding whitespace; "default" aliases DefaultSceneID.
func LookupBuiltin(id string) (Builtin, error) {
	key := strings.ToLower(strings.TrimSpace(id))
	if key == "default" {
		key = DefaultSceneID
	}

	b, ok := builtins[key]
	if !ok {
		return Builtin{}, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	return b, nil
}
