// pkg/render/renderer.go
package render

import (
	"go-maze-shooter/internal/assets"

	"github.com/go-gl/mathgl/mgl32"
)

// PassState - состояние конвейера для прохода.
type PassState struct {
	DepthWrite bool
	Cull       bool
	Blend      bool
}

var (
	OpaquePass      = PassState{DepthWrite: true, Cull: true, Blend: false}
	TransparentPass = PassState{DepthWrite: false, Cull: false, Blend: true}
)

// Renderer - то, что нужно игровому циклу от графики.
// Uniform-ы программы выставляет вызывающий через assets.Program.SetUniform.
type Renderer interface {
	BeginFrame(view, projection mgl32.Mat4)
	SetPass(p PassState)
	Pass() PassState
	Activate(p assets.Program)
	DrawIndexed(mesh *assets.Mesh, tex assets.Texture, tint mgl32.Vec3, model mgl32.Mat4) error
	EndFrame()
}

// FrameStats - счётчики последнего кадра, для диагностики.
type FrameStats struct {
	DrawCalls int
	Triangles int
	Culled    int
	Clipped   int
}
