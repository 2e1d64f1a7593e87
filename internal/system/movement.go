// internal/system/movement.go
package system

import (
	"go-maze-shooter/internal/camera"
	"go-maze-shooter/internal/collision"
	"go-maze-shooter/internal/entity"
	"go-maze-shooter/internal/input"
	"go-maze-shooter/internal/tracking"
	"go-maze-shooter/pkg/gridmap"
)

// MovementSystem двигает камеру игрока: мышь, колесо, WASD и сигнал трекинга.
type MovementSystem struct {
	grid  *gridmap.GridMap
	world *entity.World
	cam   *camera.Camera

	radius        float32
	rotationSpeed float32 // градусов в секунду от сигнала трекинга
}

func NewMovementSystem(world *entity.World, cam *camera.Camera, radius, rotationSpeed float32) *MovementSystem {
	return &MovementSystem{world: world, cam: cam, radius: radius, rotationSpeed: rotationSpeed}
}

// SetGrid подменяет карту при смене уровня.
func (s *MovementSystem) SetGrid(g *gridmap.GridMap) {
	s.grid = g
}

// Update применяет ввод за кадр и возвращает true, если камера сместилась.
// Сигнал трекинга дополняет клавиатуру, а не заменяет её.
func (s *MovementSystem) Update(deltaTime float64, in input.Snapshot, signal tracking.Signal) bool {
	if in.CursorDX != 0 || in.CursorDY != 0 {
		s.cam.Look(in.CursorDX, in.CursorDY)
	}
	if in.ScrollY != 0 {
		s.cam.Zoom(-in.ScrollY)
	}

	switch signal {
	case tracking.SignalRight:
		s.cam.Rotate(s.rotationSpeed * float32(deltaTime))
	case tracking.SignalLeft:
		s.cam.Rotate(-s.rotationSpeed * float32(deltaTime))
	}

	delta := s.cam.MoveDelta(in.Forward, in.Back, in.Left, in.Right, deltaTime)
	if delta.Len() == 0 {
		return false
	}
	if !s.cam.FreeCam {
		if s.grid == nil || !collision.CanMove(s.grid, s.world.Entities, s.cam.Position, s.radius, delta) {
			return false
		}
	}
	s.cam.Position = s.cam.Position.Add(delta)
	return true
}
