// internal/system/interaction.go
package system

import (
	"go-maze-shooter/internal/entity"
	"go-maze-shooter/internal/interfaces"

	"github.com/go-gl/mathgl/mgl32"
)

// InteractionSystem - клавиша E: дверь или финиш в пределах досягаемости.
type InteractionSystem struct {
	world *entity.World
	reach float32
}

func NewInteractionSystem(world *entity.World, reach float32) *InteractionSystem {
	return &InteractionSystem{world: world, reach: reach}
}

// Update возвращает сущность, которая откликнулась, или nil.
func (s *InteractionSystem) Update(pos mgl32.Vec3, pressed bool, ctx interfaces.GameContext) *entity.Entity {
	if !pressed {
		return nil
	}
	e := s.world.NearestInteractable(pos, s.reach)
	if e == nil || !e.Interact(ctx) {
		return nil
	}
	return e
}
