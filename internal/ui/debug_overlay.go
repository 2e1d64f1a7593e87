// internal/ui/debug_overlay.go
package ui

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DebugInfo - что показывает диагностический оверлей.
type DebugInfo struct {
	FPS       float64
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	FOV       float32
	FreeCam   bool
	VSync     bool
	Entities  int
	Bullets   int
	Triangles int
	Tracker   string
}

func (d DebugInfo) Lines() []string {
	return []string{
		fmt.Sprintf("FPS: %.1f  vsync: %v", d.FPS, d.VSync),
		fmt.Sprintf("pos: %.2f %.2f %.2f", d.Position.X(), d.Position.Y(), d.Position.Z()),
		fmt.Sprintf("dir: %.2f %.2f %.2f  fov: %.0f", d.Direction.X(), d.Direction.Y(), d.Direction.Z(), d.FOV),
		fmt.Sprintf("free cam: %v", d.FreeCam),
		fmt.Sprintf("entities: %d  bullets: %d  tris: %d", d.Entities, d.Bullets, d.Triangles),
		d.Tracker,
	}
}

// DrawDebug печатает оверлей в левом верхнем углу.
func DrawDebug(screen *ebiten.Image, d DebugInfo) {
	ebitenutil.DebugPrint(screen, strings.Join(d.Lines(), "\n"))
}
