// internal/state/game_state.go
package state

import (
	"fmt"
	"image"
	"time"

	"go-maze-shooter/internal/app"
	"go-maze-shooter/internal/config"
	"go-maze-shooter/internal/input"
	"go-maze-shooter/internal/tracking"
	"go-maze-shooter/internal/ui"
	"go-maze-shooter/pkg/render"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font"
)

// GameState - состояние игры: симуляция, 3D-кадр и HUD.
type GameState struct {
	sm       *StateMachine
	game     *app.Game
	renderer *render.EbitenRenderer
	input    input.Source
	log      *zap.Logger

	statusBar *ui.StatusBar
	tracker   *ui.TrackerIndicator // nil, если трекинг выключен
	titleFace font.Face

	debug bool
	fps   float64
}

// Fonts - шрифты HUD.
type Fonts struct {
	Label font.Face
	Value font.Face
	Title font.Face
}

func NewGameState(sm *StateMachine, g *app.Game, in input.Source, fonts Fonts, withTracker bool, log *zap.Logger) *GameState {
	gs := &GameState{
		sm:        sm,
		game:      g,
		renderer:  render.NewEbitenRenderer(),
		input:     in,
		log:       log.Named("state"),
		statusBar: ui.NewStatusBar(config.ScreenWidth, config.StatusBarHeight, fonts.Label, fonts.Value),
		titleFace: fonts.Title,
	}
	if withTracker {
		gs.tracker = ui.NewTrackerIndicator(config.ScreenWidth-170, 10, 160, 120, fonts.Label)
	}
	return gs
}

func (g *GameState) Enter() {
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
}

// Update - шаги 1–6 кадра плюс переключатели окна.
func (g *GameState) Update(deltaTime float64) error {
	in := g.input.Poll()

	switch {
	case in.Quit:
		return ebiten.Termination
	case in.Pause:
		g.sm.SetState(NewPauseState(g.sm, g, g.input, g.titleFace))
		return nil
	}

	if in.ReleaseCursor {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	if in.CaptureCursor {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}
	if in.ToggleVSync {
		ebiten.SetVsyncEnabled(!ebiten.IsVsyncEnabled())
		g.log.Info("VSync", zap.Bool("enabled", ebiten.IsVsyncEnabled()))
	}
	if in.ToggleDebug {
		g.debug = !g.debug
	}
	if in.ToggleFreeCam {
		g.game.Camera.FreeCam = !g.game.Camera.FreeCam
		g.log.Info("Free cam", zap.Bool("enabled", g.game.Camera.FreeCam))
	}

	return g.game.Update(deltaTime, in)
}

// Draw - шаги 7–10: сцена, строка состояния, индикатор трекинга, FPS.
func (g *GameState) Draw(screen *ebiten.Image) {
	g.DrawFrozen(screen)
	if fps, updated := g.game.Tick(time.Now()); updated {
		g.fps = fps
	}
}

// DrawFrozen рисует кадр без учёта FPS; так пауза показывает застывшую сцену.
func (g *GameState) DrawFrozen(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	sceneH := max(1, h-config.StatusBarHeight)
	g.renderer.SetTarget(screen.SubImage(image.Rect(0, 0, w, sceneH)).(*ebiten.Image))
	g.game.Draw(g.renderer, float32(w)/float32(sceneH))

	g.statusBar.Draw(screen, g.game.Overlay.Overlay)

	_, sample := g.game.Signal()
	if g.tracker != nil {
		g.tracker.Draw(screen, sample, g.game.TrackerLost())
	}
	if g.debug {
		ui.DrawDebug(screen, g.debugInfo(sample))
	}
}

func (g *GameState) debugInfo(sample tracking.Sample) ui.DebugInfo {
	cam := g.game.Camera
	tracker := "tracker: off"
	if g.tracker != nil {
		tracker = fmt.Sprintf("tracker: %s seq %d", sample.Signal, sample.Seq)
		if g.game.TrackerLost() {
			tracker = "tracker: disconnected"
		}
	}
	return ui.DebugInfo{
		FPS:       g.fps,
		Position:  cam.Position,
		Direction: cam.Front(),
		FOV:       cam.FOV,
		FreeCam:   cam.FreeCam,
		VSync:     ebiten.IsVsyncEnabled(),
		Entities:  len(g.game.World.Entities),
		Bullets:   len(g.game.World.Projectiles),
		Triangles: g.renderer.Stats().Triangles,
		Tracker:   tracker,
	}
}

func (g *GameState) Exit() {}
