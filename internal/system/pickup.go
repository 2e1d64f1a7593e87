// internal/system/pickup.go
package system

import (
	"go-maze-shooter/internal/entity"
	"go-maze-shooter/internal/event"
	"go-maze-shooter/internal/gameerr"
	"go-maze-shooter/internal/interfaces"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// PickupSystem подбирает предметы в радиусе игрока.
type PickupSystem struct {
	world  *entity.World
	radius float32
	warner *gameerr.Warner
}

func NewPickupSystem(world *entity.World, radius float32, log *zap.Logger) *PickupSystem {
	return &PickupSystem{world: world, radius: radius, warner: gameerr.NewWarner(log)}
}

// Update применяет эффекты и убирает подобранное за один проход.
// Каждая сущность рассматривается ровно один раз, двойного подбора не бывает.
func (s *PickupSystem) Update(pos mgl32.Vec3, ctx interfaces.GameContext) int {
	player := ctx.Player()
	collected := s.world.RemoveIf(func(e *entity.Entity) bool {
		if e.Kind != entity.KindCollectible {
			return false
		}
		if entity.HorizontalDistance(pos, e.Transform.Origin) > s.radius {
			return false
		}
		t := e.Template
		if !player.Apply(t.CollectType, t.Value) {
			s.warner.Warn("pickup:"+t.Name, "Предмет без известного эффекта",
				zap.String("model", t.Name),
				zap.String("type", string(t.CollectType)),
				zap.Int("value", t.Value))
		}
		return true
	})

	for _, e := range collected {
		ctx.Dispatch(event.Event{Type: event.ItemCollected, Data: event.Fields{
			"id":    e.ID,
			"model": e.Template.Name,
			"type":  string(e.Template.CollectType),
			"value": e.Template.Value,
		}})
	}
	return len(collected)
}
