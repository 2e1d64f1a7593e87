// internal/state/pause_state.go
package state

import (
	"go-maze-shooter/internal/config"
	"go-maze-shooter/internal/input"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

// PauseState замораживает симуляцию и показывает последний кадр игры под затемнением.
type PauseState struct {
	stateMachine  *StateMachine
	previousState *GameState
	input         input.Source
	face          font.Face
}

func NewPauseState(sm *StateMachine, prev *GameState, in input.Source, face font.Face) *PauseState {
	return &PauseState{
		stateMachine:  sm,
		previousState: prev,
		input:         in,
		face:          face,
	}
}

func (s *PauseState) Enter() {
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
}

func (s *PauseState) Update(deltaTime float64) error {
	in := s.input.Poll()
	switch {
	case in.Quit:
		return ebiten.Termination
	case in.Pause:
		s.stateMachine.SetState(s.previousState)
	}
	return nil
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	if s.previousState != nil {
		s.previousState.DrawFrozen(screen)
	}

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), config.PauseOverlayColor, false)

	const pauseText = "PAUSED"
	if s.face == nil {
		return
	}
	b := text.BoundString(s.face, pauseText)
	text.Draw(screen, pauseText, s.face, (w-b.Dx())/2, h/2, config.TextLightColor)
}

func (s *PauseState) Exit() {
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
}
