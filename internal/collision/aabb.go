// Package collision answers "may the player move here" and "what did this projectile hit".
// All functions are stateless.
package collision

import (
	"go-maze-shooter/internal/entity"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB - выровненный по осям параллелепипед.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Around строит куб center ± radius.
func Around(center mgl32.Vec3, radius float32) AABB {
	r := mgl32.Vec3{radius, radius, radius}
	return AABB{Min: center.Sub(r), Max: center.Add(r)}
}

// FromScale строит коробку center ± scale/2.
func FromScale(center, scale mgl32.Vec3) AABB {
	half := scale.Mul(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Bounds - коробка сущности.
func Bounds(e *entity.Entity) AABB {
	return FromScale(e.Transform.Origin, e.Transform.Scale)
}

// Intersect - пересечение на замкнутых интервалах: касание считается столкновением.
func Intersect(a, b AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Min[i] > b.Max[i] || a.Max[i] < b.Min[i] {
			return false
		}
	}
	return true
}
