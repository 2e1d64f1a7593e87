// internal/collision/resolver.go
package collision

import (
	"math"

	"go-maze-shooter/internal/component"
	"go-maze-shooter/internal/config"
	"go-maze-shooter/internal/entity"
	"go-maze-shooter/pkg/gridmap"

	"github.com/go-gl/mathgl/mgl32"
)

// Cell возвращает клетку сетки под мировой точкой.
func Cell(pos mgl32.Vec3) gridmap.Cell {
	return gridmap.Cell{
		X: int(math.Floor(float64(pos.X()))),
		Y: int(math.Floor(float64(pos.Z()))),
	}
}

// CanMove проверяет шаг delta из pos. Шаг удлиняется на config.CollisionMargin,
// затем проверяются границы карты и пересечение коробки игрока с твёрдыми сущностями.
func CanMove(grid *gridmap.GridMap, entities []*entity.Entity, pos mgl32.Vec3, radius float32, delta mgl32.Vec3) bool {
	if l := delta.Len(); l > 0 {
		delta = delta.Mul((l + config.CollisionMargin) / l)
	}
	dest := pos.Add(delta)

	c := Cell(dest)
	if grid.IsOutOfBounds(c.X, c.Y) {
		return false
	}

	box := Around(dest, radius)
	for _, e := range entities {
		if e.Solid() && Intersect(box, Bounds(e)) {
			return false
		}
	}
	return true
}

// HitKind - во что попал снаряд.
type HitKind int

const (
	HitNone HitKind = iota
	HitEnemy
	HitSolid
)

// Hit - результат шага снаряда.
type Hit struct {
	Kind   HitKind
	Entity *entity.Entity
}

// ResolveProjectileStep сдвигает снаряд на dt и ищет первое попадание.
// Сначала проверяются враги (точка внутри сферы радиуса врага), потом твёрдые сущности
// (та же AABB-проверка, что у игрока). Первое попадание гасит снаряд, после этого
// никаких эффектов за шаг больше нет. Урон применяет вызывающий.
func ResolveProjectileStep(p *component.Projectile, entities []*entity.Entity, deltaTime float64) Hit {
	if !p.Active {
		return Hit{}
	}
	p.Advance(deltaTime)
	if !p.Active {
		return Hit{}
	}

	for _, e := range entities {
		if e.Kind != entity.KindEnemy || e.Health <= 0 {
			continue
		}
		if p.Position.Sub(e.Transform.Origin).Len() < e.Template.Radius {
			p.Active = false
			return Hit{Kind: HitEnemy, Entity: e}
		}
	}

	box := Around(p.Position, p.Radius)
	for _, e := range entities {
		if e.Kind == entity.KindEnemy || !e.Solid() {
			continue
		}
		if Intersect(box, Bounds(e)) {
			p.Active = false
			return Hit{Kind: HitSolid, Entity: e}
		}
	}
	return Hit{}
}
