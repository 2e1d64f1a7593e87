// internal/app/game.go
package app

import (
	"errors"
	"fmt"
	"time"

	"go-maze-shooter/internal/camera"
	"go-maze-shooter/internal/catalog"
	"go-maze-shooter/internal/component"
	"go-maze-shooter/internal/config"
	"go-maze-shooter/internal/entity"
	"go-maze-shooter/internal/event"
	"go-maze-shooter/internal/gameerr"
	"go-maze-shooter/internal/input"
	"go-maze-shooter/internal/system"
	"go-maze-shooter/internal/tracking"
	"go-maze-shooter/pkg/gridmap"
	"go-maze-shooter/pkg/render"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var (
	// ErrRunComplete - пройден последний уровень.
	ErrRunComplete = errors.New("run complete")
	// ErrTrackerLost - трекинг отвалился, а настройки требуют выхода.
	ErrTrackerLost = errors.New("tracker disconnected")
)

// Options - зависимости игры.
type Options struct {
	Settings   *config.Settings
	Catalog    *catalog.Catalog
	Levels     LevelSource
	Mailbox    *tracking.Mailbox // nil - трекинг выключен
	Dispatcher *event.Dispatcher
	Logger     *zap.Logger
}

// Game владеет всем состоянием симуляции. Вызывается только из игрового цикла.
type Game struct {
	settings   *config.Settings
	catalog    *catalog.Catalog
	levels     LevelSource
	mailbox    *tracking.Mailbox
	dispatcher *event.Dispatcher
	log        *zap.Logger

	World   *entity.World
	Camera  *camera.Camera
	Grid    *gridmap.GridMap
	Overlay *entity.Entity

	player      *component.Player
	level       int
	pendingNext bool

	signal      tracking.Signal
	sample      tracking.Sample
	trackerLost bool

	Movement    *system.MovementSystem
	Pickup      *system.PickupSystem
	Combat      *system.CombatSystem
	Interaction *system.InteractionSystem
	Render      *system.RenderSystem
	FPS         *system.FPSCounter
}

// NewGame собирает игру и загружает стартовый уровень. Ошибка загрузки фатальна.
func NewGame(opts Options) (*Game, error) {
	s := opts.Settings
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = event.NewDispatcher()
	}

	corpse, ok := opts.Catalog.ByToken(s.Assets.CorpseToken[0])
	if !ok {
		return nil, gameerr.Fatal("catalog", fmt.Errorf("corpse token %q is missing", s.Assets.CorpseToken))
	}

	world := entity.NewWorld()
	cam := camera.New(mgl32.Vec3{}, s.Window.FOV)
	g := &Game{
		settings:   s,
		catalog:    opts.Catalog,
		levels:     opts.Levels,
		mailbox:    opts.Mailbox,
		dispatcher: dispatcher,
		log:        log.Named("game"),
		World:      world,
		Camera:     cam,
		player:     component.NewPlayer(s.Player.Health, s.Player.Gold, s.Player.Ammo, s.Player.Lives),

		Movement:    system.NewMovementSystem(world, cam, s.Player.Radius, s.Tracking.RotationSpeed),
		Pickup:      system.NewPickupSystem(world, s.Player.PickupRadius, log),
		Combat:      system.NewCombatSystem(world, corpse, log),
		Interaction: system.NewInteractionSystem(world, s.Player.InteractRange),
		Render:      system.NewRenderSystem(world, log),
		FPS:         system.NewFPSCounter(time.Duration(config.FPSWindow * float64(time.Second))),
	}

	if err := g.loadLevel(s.Level.Start); err != nil {
		if errors.Is(err, ErrNoMoreLevels) {
			return nil, gameerr.Fatal("load level", err)
		}
		return nil, err
	}
	return g, nil
}

// GameContext
func (g *Game) Player() *component.Player { return g.player }
func (g *Game) Level() int                { return g.level }
func (g *Game) RequestNextLevel()         { g.pendingNext = true }
func (g *Game) Dispatch(e event.Event)    { g.dispatcher.Dispatch(e) }

// Signal - действующий сигнал трекинга и последняя запись ящика.
func (g *Game) Signal() (tracking.Signal, tracking.Sample) { return g.signal, g.sample }

// TrackerLost - трекинг был и отвалился.
func (g *Game) TrackerLost() bool { return g.trackerLost }

// Update - один шаг симуляции. Порядок шагов фиксирован.
func (g *Game) Update(deltaTime float64, in input.Snapshot) error {
	// 1. переход на следующий уровень
	if g.pendingNext {
		g.pendingNext = false
		g.Dispatch(event.Event{Type: event.LevelCompleted, Data: event.Fields{"level": g.level}})
		if err := g.loadLevel(g.level + 1); err != nil {
			if errors.Is(err, ErrNoMoreLevels) {
				g.log.Info("Уровни закончились", zap.Int("level", g.level))
				return ErrRunComplete
			}
			return err
		}
	}

	// 2. сигнал трекинга, без ожидания
	if err := g.drainTracker(); err != nil {
		return err
	}

	// 3–4. движение
	g.Movement.Update(deltaTime, in, g.signal)

	// 5. подбор предметов
	g.Pickup.Update(g.Camera.Position, g)

	// 6. выстрелы и снаряды
	g.Combat.Fire(g.Camera, g.player, in.Fire, deltaTime, g)
	g.Combat.Update(deltaTime, g)

	g.Interaction.Update(g.Camera.Position, in.Interact, g)

	// двери и оверлей; оверлей обновляется только при изменении состояния
	g.World.Update(deltaTime, g)
	return nil
}

func (g *Game) drainTracker() error {
	if g.mailbox == nil {
		return nil
	}
	if s, fresh := g.mailbox.Drain(); fresh {
		g.sample = s
		g.signal = s.Signal
	}
	if g.trackerLost || !g.mailbox.Disconnected() {
		return nil
	}

	g.trackerLost = true
	g.signal = tracking.SignalNone
	if g.mailbox.Unavailable() {
		// трекера не было с запуска: это не потеря, выход не нужен
		g.log.Warn("Трекер недоступен, управление только с клавиатуры")
		return nil
	}
	g.Dispatch(event.Event{Type: event.TrackerDisconnected})
	if g.settings.Tracking.ExitOnDisconnect {
		return ErrTrackerLost
	}
	g.log.Warn("Трекинг отключён, управление только с клавиатуры")
	return nil
}

// Draw - шаги 7–8: разбиение на проходы и отрисовка.
func (g *Game) Draw(r render.Renderer, aspect float32) int {
	lights := append([]component.Light{component.DefaultLight()}, g.World.Lights()...)
	return g.Render.Draw(r, g.Camera, g.Camera.Projection(aspect), lights)
}

// Tick - шаг 10: учёт кадра для FPS.
func (g *Game) Tick(now time.Time) (float64, bool) {
	return g.FPS.Tick(now)
}

func (g *Game) loadLevel(index int) error {
	m, err := g.levels.Level(index)
	if err != nil {
		if errors.Is(err, ErrNoMoreLevels) {
			return err
		}
		return gameerr.Fatal(fmt.Sprintf("load level %d", index), err)
	}

	g.World.Reset()
	if err := BuildScene(m, g.catalog, g.World); err != nil {
		return gameerr.Fatal(fmt.Sprintf("build level %d", index), err)
	}
	g.Overlay = entity.NewStatusOverlay(g.World.NewID(), config.FaceCount)
	g.World.Entities = append(g.World.Entities, g.Overlay)

	g.Grid = m
	g.level = index
	g.Movement.SetGrid(m)
	g.Camera.Position = StartPosition(m, g.settings.Player.CameraHeight)
	g.Camera.Yaw, g.Camera.Pitch = config.DefaultYaw, config.DefaultPitch
	g.Camera.Rotate(0)
	g.Overlay.Overlay.Refresh(g.player, g.level)

	g.log.Info("Уровень загружен",
		zap.Int("level", index),
		zap.Int("rows", m.Rows),
		zap.Int("cols", m.Cols),
		zap.Int("entities", len(g.World.Entities)),
		zap.Int("lights", len(g.World.Lights())+1))
	g.Dispatch(event.Event{Type: event.LevelLoaded, Data: event.Fields{"level": index}})
	return nil
}
