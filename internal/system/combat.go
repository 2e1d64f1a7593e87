// internal/system/combat.go
package system

import (
	"go-maze-shooter/internal/camera"
	"go-maze-shooter/internal/catalog"
	"go-maze-shooter/internal/collision"
	"go-maze-shooter/internal/component"
	"go-maze-shooter/internal/config"
	"go-maze-shooter/internal/entity"
	"go-maze-shooter/internal/event"
	"go-maze-shooter/internal/interfaces"

	"go.uber.org/zap"
)

// CombatSystem стреляет и разбирает попадания снарядов.
type CombatSystem struct {
	world  *entity.World
	corpse *catalog.Template
	log    *zap.Logger
}

// NewCombatSystem принимает шаблон трупа; nil - враг просто исчезает.
func NewCombatSystem(world *entity.World, corpse *catalog.Template, log *zap.Logger) *CombatSystem {
	return &CombatSystem{world: world, corpse: corpse, log: log}
}

// Fire выпускает снаряд из камеры, если кнопка зажата и оружие готово.
func (s *CombatSystem) Fire(cam *camera.Camera, player *component.Player, held bool, deltaTime float64, ctx interfaces.GameContext) bool {
	player.Tick(deltaTime)
	if !held {
		return false
	}
	weapon := player.CurrentWeapon()
	stats, ok := player.TryFire()
	if !ok {
		return false
	}

	lifetime := config.ProjectileLifetime
	if stats.Range > 0 {
		lifetime = float64(stats.Range / config.ProjectileSpeed)
	}
	origin := cam.Position.Add(cam.Front().Mul(config.MuzzleOffset))
	p := component.NewProjectile(origin, cam.Front(), config.ProjectileSpeed, stats.Damage, config.ProjectileRadius, lifetime)
	s.world.AddProjectile(p)

	ctx.Dispatch(event.Event{Type: event.ProjectileFired, Data: event.Fields{
		"weapon": weapon.String(),
		"ammo":   player.Ammo,
	}})
	return true
}

// Update сдвигает снаряды и применяет попадания по одному снаряду за раз.
// Убитый враг заменяется трупом до проверки следующего снаряда.
// Погасшие снаряды убираются после прохода.
func (s *CombatSystem) Update(deltaTime float64, ctx interfaces.GameContext) (hits, kills int) {
	for _, p := range s.world.Projectiles {
		hit := collision.ResolveProjectileStep(p, s.world.Entities, deltaTime)
		if hit.Kind != collision.HitEnemy {
			continue
		}
		hits++
		enemy := hit.Entity
		enemy.Health -= p.Damage
		ctx.Dispatch(event.Event{Type: event.EnemyHit, Data: event.Fields{
			"id": enemy.ID, "damage": p.Damage, "health": enemy.Health,
		}})
		if enemy.Health <= 0 {
			s.kill(enemy, ctx)
			kills++
		}
	}
	s.world.CompactProjectiles()
	return hits, kills
}

func (s *CombatSystem) kill(enemy *entity.Entity, ctx interfaces.GameContext) {
	s.world.Remove(enemy.ID)
	if s.corpse != nil {
		s.world.Spawn(s.corpse, enemy.Transform.Origin)
	}
	s.log.Debug("Враг убит", zap.Uint64("id", uint64(enemy.ID)), zap.String("model", enemy.Template.Name))
	ctx.Dispatch(event.Event{Type: event.EnemyKilled, Data: event.Fields{
		"id": enemy.ID, "model": enemy.Template.Name,
	}})
}
