// internal/config/config.go
package config

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	ScreenWidth  = 1000
	ScreenHeight = 800
	MaxDeltaTime = 0.06

	SettingsFile = "assets/settings.yaml"

	// Коллизии
	CollisionMargin = 0.2 // удлинение шага перед проверкой, против туннелирования

	// Снаряды
	ProjectileSpeed    = 20.0
	ProjectileRadius   = 0.05
	ProjectileLifetime = 3.0 // секунды
	MuzzleOffset       = 0.3

	// Двери
	DoorSpeed        = 0.8
	DoorOpenDistance = 1.01

	// Камера
	DefaultYaw       = -90.0
	DefaultPitch     = 0.0
	MovementSpeed    = 1.0
	MouseSensitivity = 0.25
	MaxPitch         = 89.0
	MinFOV           = 20.0
	MaxFOV           = 170.0
	ZoomStep         = 10.0
	NearPlane        = 0.05
	FarPlane         = 100.0

	// Игрок
	MaxHealth = 100

	// Свет
	MaxLights = 8

	// HUD
	StatusBarHeight = 64
	FaceCount       = 24
	FPSWindow       = 1.0 // секунды
)

// Глобальный свет по умолчанию, всегда присутствует в сцене.
var (
	DefaultLightPosition = mgl32.Vec3{10, 15, 10}
	DefaultLightAmbient  = mgl32.Vec3{0.3, 0.3, 0.3}
	DefaultLightDiffuse  = mgl32.Vec3{0.1, 0.1, 0.1}
	DefaultLightSpecular = mgl32.Vec3{0.1, 0.1, 0.1}
)

var (
	BackgroundColor   = color.RGBA{20, 20, 30, 255}
	StatusBarColor    = color.RGBA{0, 0, 64, 230}
	StatusBarBorder   = color.RGBA{90, 90, 140, 255}
	TextLightColor    = color.RGBA{230, 230, 230, 255}
	HealthGoodColor   = color.RGBA{60, 200, 90, 255}
	HealthBadColor    = color.RGBA{220, 60, 60, 255}
	TrackerCrossColor = color.RGBA{255, 200, 0, 255}
	PauseOverlayColor = color.RGBA{0, 0, 0, 128}
)
