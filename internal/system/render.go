// internal/system/render.go
package system

import (
	"sort"

	"go-maze-shooter/internal/assets"
	"go-maze-shooter/internal/camera"
	"go-maze-shooter/internal/component"
	"go-maze-shooter/internal/config"
	"go-maze-shooter/internal/entity"
	"go-maze-shooter/internal/gameerr"
	"go-maze-shooter/pkg/render"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// RenderSystem делит сцену на проходы и отдаёт её рендереру.
type RenderSystem struct {
	world  *entity.World
	warner *gameerr.Warner

	opaque      []*entity.Entity
	transparent []*entity.Entity
	dist        map[*entity.Entity]float32
}

func NewRenderSystem(world *entity.World, log *zap.Logger) *RenderSystem {
	return &RenderSystem{
		world:  world,
		warner: gameerr.NewWarner(log),
		dist:   make(map[*entity.Entity]float32),
	}
}

// Partition раскладывает рисуемые сущности по проходам. Прозрачные упорядочены
// от дальних к ближним, при равной дальности сохраняется порядок мира.
// Срезы переиспользуются следующим вызовом.
func (s *RenderSystem) Partition(camPos mgl32.Vec3) (opaque, transparent []*entity.Entity) {
	s.opaque = s.opaque[:0]
	s.transparent = s.transparent[:0]
	clear(s.dist)

	for _, e := range s.world.Entities {
		if !e.Drawable() {
			continue
		}
		if e.Transparent() {
			s.transparent = append(s.transparent, e)
			s.dist[e] = camPos.Sub(e.Transform.Origin).Len()
			continue
		}
		s.opaque = append(s.opaque, e)
	}

	sort.SliceStable(s.transparent, func(i, j int) bool {
		return s.dist[s.transparent[i]] > s.dist[s.transparent[j]]
	})
	return s.opaque, s.transparent
}

// Draw рисует кадр: непрозрачный проход со светом, затем прозрачный.
// Ошибка отдельной сущности пропускает только её. Возвращает число нарисованных.
func (s *RenderSystem) Draw(r render.Renderer, cam *camera.Camera, projection mgl32.Mat4, lights []component.Light) int {
	view := cam.View()
	opaque, transparent := s.Partition(cam.Position)

	if len(lights) > config.MaxLights {
		s.warner.Warn("lights", "Источников света больше, чем поддерживает шейдер",
			zap.Int("lights", len(lights)), zap.Int("max", config.MaxLights))
		lights = lights[:config.MaxLights]
	}

	r.BeginFrame(view, projection)
	drawn := 0

	r.SetPass(render.OpaquePass)
	for _, e := range opaque {
		if s.drawEntity(r, e, cam, view, projection, lights) {
			drawn++
		}
	}

	r.SetPass(render.TransparentPass)
	for _, e := range transparent {
		if s.drawEntity(r, e, cam, view, projection, nil) {
			drawn++
		}
	}

	r.SetPass(render.OpaquePass)
	r.EndFrame()
	return drawn
}

func (s *RenderSystem) drawEntity(r render.Renderer, e *entity.Entity, cam *camera.Camera, view, projection mgl32.Mat4, lights []component.Light) bool {
	t := e.Template
	if t.Program == nil {
		s.warner.Warn("program:"+t.Name, "Модель без программы", zap.String("model", t.Name))
		return false
	}

	prog := t.Program
	r.Activate(prog)
	prog.SetUniform("View", view)
	prog.SetUniform("Projection", projection)
	if lights != nil {
		setLights(prog, view, lights)
	}

	var yaw float32
	if t.Sprite {
		yaw = cam.YawTowards(e.Transform.Origin)
	}
	if err := r.DrawIndexed(t.Mesh, t.Texture, t.Tint, e.Transform.Model(yaw)); err != nil {
		s.warner.Warn("draw:"+t.Name, "Не удалось нарисовать модель",
			zap.String("model", t.Name), zap.Error(err))
		return false
	}
	return true
}

// setLights выбирает схему освещения по uniform-ам программы.
// Одиночный свет передаётся в пространстве вида, массив - в мировом.
func setLights(prog assets.Program, view mgl32.Mat4, lights []component.Light) {
	if len(lights) == 0 {
		return
	}
	switch {
	case prog.HasUniform("LightPosition"):
		l := lights[0]
		prog.SetUniform("LightPosition", view.Mul4x1(l.Position.Vec4(1)).Vec3())
		prog.SetUniform("AmbientIntensity", l.Ambient)
		prog.SetUniform("DiffuseIntensity", l.Diffuse)
		prog.SetUniform("SpecularIntensity", l.Specular)

	case prog.HasUniform("LightPositions"):
		positions := make([]mgl32.Vec3, config.MaxLights)
		ambient := make([]mgl32.Vec3, config.MaxLights)
		diffuse := make([]mgl32.Vec3, config.MaxLights)
		specular := make([]mgl32.Vec3, config.MaxLights)
		active := make([]bool, config.MaxLights)
		for i, l := range lights {
			positions[i] = l.Position
			ambient[i] = l.Ambient
			diffuse[i] = l.Diffuse
			specular[i] = l.Specular
			active[i] = true
		}
		prog.SetUniform("LightPositions", positions)
		prog.SetUniform("LightAmbient", ambient)
		prog.SetUniform("LightDiffuse", diffuse)
		prog.SetUniform("LightSpecular", specular)
		prog.SetUniform("LightActive", active)
		prog.SetUniform("LightCount", len(lights))
	}
}
