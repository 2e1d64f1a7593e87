// internal/component/player.go
package component

import (
	"go-maze-shooter/internal/config"
	"go-maze-shooter/internal/defs"
)

// Weapon - оружие игрока.
type Weapon int

const (
	WeaponKnife Weapon = iota
	WeaponPistol
	WeaponMachinegun
	WeaponChaingun
)

func (w Weapon) String() string {
	switch w {
	case WeaponKnife:
		return "Knife"
	case WeaponPistol:
		return "Pistol"
	case WeaponMachinegun:
		return "Machinegun"
	case WeaponChaingun:
		return "Chaingun"
	}
	return "Unknown"
}

// WeaponStats - параметры выстрела.
type WeaponStats struct {
	Damage   int
	Cooldown float64 // секунды между выстрелами
	Range    float32 // 0 - ограничено только временем жизни снаряда
	AmmoCost int
}

// Weapons - таблица оружия.
var Weapons = map[Weapon]WeaponStats{
	WeaponKnife:      {Damage: 5, Cooldown: 0.5, Range: 0.8},
	WeaponPistol:     {Damage: 10, Cooldown: 0.4, AmmoCost: 1},
	WeaponMachinegun: {Damage: 10, Cooldown: 0.15, AmmoCost: 1},
	WeaponChaingun:   {Damage: 10, Cooldown: 0.08, AmmoCost: 1},
}

// WeaponFromValue переводит value подбираемого оружия: 1 - пулемёт, 2 - миниган.
func WeaponFromValue(value int) (Weapon, bool) {
	switch value {
	case 1:
		return WeaponMachinegun, true
	case 2:
		return WeaponChaingun, true
	}
	return WeaponKnife, false
}

// Player - состояние игрока.
type Player struct {
	Health int
	Gold   int
	Ammo   int
	Lives  int
	Weapon Weapon
	Radius float32

	lastGun  Weapon
	cooldown float64
}

// NewPlayer создаёт игрока. Без патронов в руках нож.
func NewPlayer(health, gold, ammo, lives int) *Player {
	p := &Player{
		Health:  min(health, config.MaxHealth),
		Gold:    gold,
		Ammo:    ammo,
		Lives:   lives,
		Weapon:  WeaponPistol,
		lastGun: WeaponPistol,
	}
	if p.Ammo == 0 {
		p.Weapon = WeaponKnife
	}
	return p
}

// CurrentWeapon возвращает оружие в руках.
func (p *Player) CurrentWeapon() Weapon {
	return p.Weapon
}

// Apply применяет эффект подобранного предмета. false - эффект не распознан.
func (p *Player) Apply(kind defs.CollectType, value int) bool {
	switch kind {
	case defs.CollectGold:
		p.Gold += value
	case defs.CollectHealth:
		p.Health = min(config.MaxHealth, p.Health+value)
	case defs.CollectAmmo:
		wasEmpty := p.Ammo == 0
		p.Ammo += value
		if wasEmpty && p.Ammo > 0 && p.Weapon == WeaponKnife {
			p.Weapon = p.lastGun
		}
	case defs.CollectLife:
		p.Lives += value
	case defs.CollectWeapon:
		w, ok := WeaponFromValue(value)
		if !ok {
			return false
		}
		p.Weapon = w
		p.lastGun = w
	default:
		return false
	}
	return true
}

// Tick уменьшает перезарядку.
func (p *Player) Tick(deltaTime float64) {
	if p.cooldown > 0 {
		p.cooldown = max(0, p.cooldown-deltaTime)
	}
}

// TryFire тратит патрон, если оружие готово. Последний патрон переключает на нож.
func (p *Player) TryFire() (WeaponStats, bool) {
	stats := Weapons[p.Weapon]
	if p.cooldown > 0 || p.Ammo < stats.AmmoCost {
		return stats, false
	}
	p.Ammo -= stats.AmmoCost
	p.cooldown = stats.Cooldown
	if stats.AmmoCost > 0 && p.Ammo == 0 {
		p.lastGun = p.Weapon
		p.Weapon = WeaponKnife
	}
	return stats, true
}
