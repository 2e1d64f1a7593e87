// internal/component/projectile.go
package component

import "github.com/go-gl/mathgl/mgl32"

// Projectile - летящая точка. Direction нормализуется при создании.
type Projectile struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Speed     float32
	Damage    int
	Radius    float32
	Active    bool
	Age       float64
	Lifetime  float64 // 0 - без ограничения
}

// NewProjectile создаёт активный снаряд. Нулевое направление даёт неактивный снаряд.
func NewProjectile(origin, direction mgl32.Vec3, speed float32, damage int, radius float32, lifetime float64) *Projectile {
	p := &Projectile{
		Position: origin,
		Speed:    speed,
		Damage:   damage,
		Radius:   radius,
		Lifetime: lifetime,
	}
	if direction.Len() > 0 {
		p.Direction = direction.Normalize()
		p.Active = true
	}
	return p
}

// Advance сдвигает снаряд на Direction*Speed*dt и гасит его по истечении времени жизни.
func (p *Projectile) Advance(deltaTime float64) {
	if !p.Active {
		return
	}
	p.Position = p.Position.Add(p.Direction.Mul(p.Speed * float32(deltaTime)))
	p.Age += deltaTime
	if p.Lifetime > 0 && p.Age >= p.Lifetime {
		p.Active = false
	}
}
