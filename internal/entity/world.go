// internal/entity/world.go
package entity

import (
	"go-maze-shooter/internal/catalog"
	"go-maze-shooter/internal/component"
	"go-maze-shooter/internal/interfaces"
	"go-maze-shooter/internal/types"

	"github.com/go-gl/mathgl/mgl32"
)

// World владеет всеми размещёнными сущностями и снарядами уровня.
type World struct {
	NextID      types.EntityID
	Entities    []*Entity
	Projectiles []*component.Projectile
}

func NewWorld() *World {
	return &World{NextID: 1}
}

func (w *World) NewID() types.EntityID {
	id := w.NextID
	w.NextID++
	return id
}

// Spawn размещает копию шаблона и возвращает её.
func (w *World) Spawn(t *catalog.Template, origin mgl32.Vec3) *Entity {
	e := New(w.NewID(), t, origin)
	w.Entities = append(w.Entities, e)
	return e
}

// Find ищет сущность по ID.
func (w *World) Find(id types.EntityID) *Entity {
	for _, e := range w.Entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Remove удаляет сущность, сохраняя порядок остальных.
func (w *World) Remove(id types.EntityID) bool {
	for i, e := range w.Entities {
		if e.ID == id {
			copy(w.Entities[i:], w.Entities[i+1:])
			w.Entities[len(w.Entities)-1] = nil
			w.Entities = w.Entities[:len(w.Entities)-1]
			return true
		}
	}
	return false
}

// RemoveIf удаляет за один проход все сущности, для которых pred вернул true,
// и возвращает их в исходном порядке. pred вызывается ровно один раз на сущность.
func (w *World) RemoveIf(pred func(*Entity) bool) []*Entity {
	var removed []*Entity
	kept := w.Entities[:0]
	for _, e := range w.Entities {
		if pred(e) {
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(w.Entities); i++ {
		w.Entities[i] = nil
	}
	w.Entities = kept
	return removed
}

// Update вызывает Update у каждой сущности.
func (w *World) Update(deltaTime float64, ctx interfaces.GameContext) {
	for _, e := range w.Entities {
		e.Update(deltaTime, ctx)
	}
}

// Lights возвращает источники света сцены в порядке размещения.
func (w *World) Lights() []component.Light {
	var out []component.Light
	for _, e := range w.Entities {
		if e.Light != nil {
			out = append(out, *e.Light)
		}
	}
	return out
}

// NearestInteractable - ближайшая по горизонтали интерактивная сущность в пределах maxDist.
func (w *World) NearestInteractable(pos mgl32.Vec3, maxDist float32) *Entity {
	var best *Entity
	bestDist := maxDist
	for _, e := range w.Entities {
		if !e.Interactable() {
			continue
		}
		if d := HorizontalDistance(pos, e.Transform.Origin); d <= bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// AddProjectile добавляет снаряд.
func (w *World) AddProjectile(p *component.Projectile) {
	w.Projectiles = append(w.Projectiles, p)
}

// CompactProjectiles убирает погасшие снаряды. Вызывается после прохода, не во время.
func (w *World) CompactProjectiles() int {
	kept := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if p.Active {
			kept = append(kept, p)
		}
	}
	removed := len(w.Projectiles) - len(kept)
	for i := len(kept); i < len(w.Projectiles); i++ {
		w.Projectiles[i] = nil
	}
	w.Projectiles = kept
	return removed
}

// Reset очищает мир перед загрузкой уровня. Счётчик ID не сбрасывается.
func (w *World) Reset() {
	w.Entities = nil
	w.Projectiles = nil
}

// HorizontalDistance - расстояние в плоскости XZ.
func HorizontalDistance(a, b mgl32.Vec3) float32 {
	return mgl32.Vec2{a.X() - b.X(), a.Z() - b.Z()}.Len()
}
