// Package camera is the first-person view: yaw/pitch orientation, basis vectors and projection.
package camera

import (
	"math"

	"go-maze-shooter/internal/config"
	"go-maze-shooter/internal/utils"

	"github.com/go-gl/mathgl/mgl32"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Camera - положение и ориентация игрока. Углы в градусах.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Roll     float32
	FOV      float32
	FreeCam  bool

	front, right, up mgl32.Vec3
}

// New создаёт камеру, смотрящую вдоль -Z.
func New(pos mgl32.Vec3, fov float32) *Camera {
	c := &Camera{
		Position: pos,
		Yaw:      config.DefaultYaw,
		Pitch:    config.DefaultPitch,
		FOV:      fov,
	}
	c.updateVectors()
	return c
}

func (c *Camera) Front() mgl32.Vec3 { return c.front }
func (c *Camera) Right() mgl32.Vec3 { return c.right }
func (c *Camera) Up() mgl32.Vec3    { return c.up }

// Look поворачивает камеру на смещение курсора. dy положителен вниз, как у экрана.
func (c *Camera) Look(dx, dy float64) {
	c.Yaw = utils.WrapDegrees(c.Yaw + float32(dx)*config.MouseSensitivity)
	c.Pitch = utils.Clamp(c.Pitch-float32(dy)*config.MouseSensitivity, -config.MaxPitch, config.MaxPitch)
	c.updateVectors()
}

// Rotate поворачивает камеру по yaw (положительно - вправо).
func (c *Camera) Rotate(degrees float32) {
	c.Yaw = utils.WrapDegrees(c.Yaw + degrees)
	c.updateVectors()
}

// Zoom меняет поле зрения на 10° за щелчок колеса.
func (c *Camera) Zoom(scroll float64) {
	c.FOV = utils.Clamp(c.FOV+float32(scroll)*config.ZoomStep, config.MinFOV, config.MaxFOV)
}

// MoveDelta - смещение за кадр по WASD. Вне free-cam движение остаётся в плоскости XZ.
func (c *Camera) MoveDelta(forward, back, left, right bool, deltaTime float64) mgl32.Vec3 {
	front := c.front
	if !c.FreeCam {
		front = mgl32.Vec3{front.X(), 0, front.Z()}
		if front.Len() > 0 {
			front = front.Normalize()
		}
	}

	var dir mgl32.Vec3
	if forward {
		dir = dir.Add(front)
	}
	if back {
		dir = dir.Sub(front)
	}
	if left {
		dir = dir.Sub(c.right)
	}
	if right {
		dir = dir.Add(c.right)
	}
	if dir.Len() == 0 {
		return mgl32.Vec3{}
	}
	return dir.Normalize().Mul(config.MovementSpeed * float32(deltaTime))
}

// View - матрица вида.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.front), c.up)
}

// Projection - перспективная проекция для соотношения сторон aspect.
func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, config.NearPlane, config.FarPlane)
}

// YawTowards - поворот вокруг Y (радианы), при котором спрайт в точке target смотрит на камеру.
func (c *Camera) YawTowards(target mgl32.Vec3) float32 {
	dir := c.Position.Sub(target)
	return float32(atan2(dir.X(), dir.Z()))
}

func (c *Camera) updateVectors() {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	c.front = mgl32.Vec3{
		cos(yaw) * cos(pitch),
		sin(pitch),
		sin(yaw) * cos(pitch),
	}.Normalize()
	c.right = c.front.Cross(worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

func sin(a float32) float32 { return float32(math.Sin(float64(a))) }
func cos(a float32) float32 { return float32(math.Cos(float64(a))) }

func atan2(y, x float32) float64 { return math.Atan2(float64(y), float64(x)) }
