// Package input turns the window's key, cursor and wheel state into a per-frame snapshot.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Snapshot - состояние ввода за кадр. Toggle-поля истинны только в кадре нажатия.
type Snapshot struct {
	Forward, Back, Left, Right bool

	CursorDX, CursorDY float64
	ScrollY            float64

	Fire     bool // удерживается
	Interact bool

	ToggleFreeCam bool
	ToggleDebug   bool
	ToggleVSync   bool
	Pause         bool
	Quit          bool

	ReleaseCursor bool
	CaptureCursor bool
}

// Source - источник снимков ввода.
type Source interface {
	Poll() Snapshot
}

// EbitenSource читает ввод из ebiten. Смещение курсора считается от прошлого опроса.
type EbitenSource struct {
	lastX, lastY int
	primed       bool
}

func NewEbitenSource() *EbitenSource {
	return &EbitenSource{}
}

func (s *EbitenSource) Poll() Snapshot {
	x, y := ebiten.CursorPosition()
	var dx, dy float64
	if s.primed && ebiten.CursorMode() == ebiten.CursorModeCaptured {
		dx, dy = float64(x-s.lastX), float64(y-s.lastY)
	}
	s.lastX, s.lastY, s.primed = x, y, true

	_, wheelY := ebiten.Wheel()

	return Snapshot{
		Forward: ebiten.IsKeyPressed(ebiten.KeyW),
		Back:    ebiten.IsKeyPressed(ebiten.KeyS),
		Left:    ebiten.IsKeyPressed(ebiten.KeyA),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD),

		CursorDX: dx,
		CursorDY: dy,
		ScrollY:  wheelY,

		Fire:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Interact: inpututil.IsKeyJustPressed(ebiten.KeyE),

		ToggleFreeCam: inpututil.IsKeyJustPressed(ebiten.KeyF),
		ToggleDebug:   inpututil.IsKeyJustPressed(ebiten.KeyC),
		ToggleVSync:   inpututil.IsKeyJustPressed(ebiten.KeyV),
		Pause:         inpututil.IsKeyJustPressed(ebiten.KeyP),
		Quit:          inpututil.IsKeyJustPressed(ebiten.KeyEscape),

		ReleaseCursor: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		CaptureCursor: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
}
