// internal/component/light.go
package component

import (
	"go-maze-shooter/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

// Light - точечный источник света.
type Light struct {
	Position mgl32.Vec3
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
}

// DefaultLight - глобальный свет сцены.
func DefaultLight() Light {
	return Light{
		Position: config.DefaultLightPosition,
		Ambient:  config.DefaultLightAmbient,
		Diffuse:  config.DefaultLightDiffuse,
		Specular: config.DefaultLightSpecular,
	}
}
