// cmd/game/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go-maze-shooter/internal/app"
	"go-maze-shooter/internal/assets"
	"go-maze-shooter/internal/catalog"
	"go-maze-shooter/internal/config"
	"go-maze-shooter/internal/event"
	"go-maze-shooter/internal/gameerr"
	"go-maze-shooter/internal/input"
	"go-maze-shooter/internal/logging"
	"go-maze-shooter/internal/sfx"
	"go-maze-shooter/internal/state"
	"go-maze-shooter/internal/tracking"
	"go-maze-shooter/internal/ui"
	"go-maze-shooter/internal/utils"
	"go-maze-shooter/pkg/gridmap"
	"go-maze-shooter/pkg/render"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	exitOK          = 0
	exitFatal       = 1
	exitTrackerLost = 2
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	return a.stateMachine.Update(deltaTime)
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	os.Exit(run())
}

func run() int {
	settings, err := config.Load(config.SettingsFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFatal
	}
	logger, err := logging.New(settings.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFatal
	}
	defer logger.Sync()

	if err := settings.CheckDirs(); err != nil {
		logger.Error("Нет каталога ресурсов", zap.Error(err))
		return exitFatal
	}

	cache := assets.NewCache(render.NewEbitenBackend(), logger)
	cat, err := catalog.Load(settings.Assets.Models, settings.Assets.Tokens, cache, logger)
	if err == nil {
		err = cat.Require([]string{app.FloorModel}, []byte(settings.Assets.CorpseToken))
	}
	if err != nil {
		logger.Error("Каталог не загружен", zap.Error(gameerr.Fatal("catalog", err)))
		return exitFatal
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	group, gctx := errgroup.WithContext(ctx)

	var (
		mailbox *tracking.Mailbox
		worker  *tracking.Worker
	)
	if settings.Tracking.Enabled {
		mailbox = tracking.NewMailbox()
		src, err := tracking.DialWebSocket(gctx, settings.Tracking.URL)
		if err != nil {
			gameerr.Degrade(logger, "tracking "+settings.Tracking.URL, err)
			mailbox.MarkUnavailable()
		} else {
			defer src.Close()
			worker = tracking.NewWorker(src, nil, mailbox,
				settings.Tracking.RightThreshold, settings.Tracking.LeftThreshold, logger.Named("tracking"))
			group.Go(func() error { return worker.Run(gctx) })
		}
	}

	dispatcher := event.NewDispatcher()
	dispatcher.SubscribeAll(app.NewEventLogger(logger))
	if settings.Audio.Enabled {
		player := sfx.New(settings.Audio, logger)
		if err := player.Init(); err == nil {
			player.Subscribe(dispatcher)
			defer player.Close()
		}
	}

	game, err := app.NewGame(app.Options{
		Settings:   settings,
		Catalog:    cat,
		Levels:     levelSource(settings, logger),
		Mailbox:    mailbox,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("Игра не запущена", zap.Error(err))
		return exitFatal
	}

	fonts, err := loadFonts()
	if err != nil {
		logger.Error("Шрифты не загружены", zap.Error(err))
		return exitFatal
	}

	sm := state.NewStateMachine()
	sm.SetState(state.NewGameState(sm, game, input.NewEbitenSource(), fonts, settings.Tracking.Enabled, logger))
	appGame := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}

	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle(settings.Window.Title)
	ebiten.SetVsyncEnabled(settings.Window.VSync)
	runErr := ebiten.RunGame(appGame)

	if worker != nil && worker.Running() {
		worker.Stop()
	}
	cancel()
	if err := group.Wait(); err != nil && !errors.Is(err, tracking.ErrDisconnected) {
		logger.Warn("Трекинг завершился с ошибкой", zap.Error(err))
	}

	switch {
	case runErr == nil, errors.Is(runErr, app.ErrRunComplete):
		logger.Info("Игра завершена", zap.Int("level", game.Level()))
		return exitOK
	case errors.Is(runErr, app.ErrTrackerLost):
		logger.Error("Трекинг отключён, выход", zap.Error(runErr))
		return exitTrackerLost
	default:
		logger.Error("Игра остановлена", zap.Error(runErr))
		return exitFatal
	}
}

func levelSource(s *config.Settings, log *zap.Logger) app.LevelSource {
	if !s.Level.Procedural {
		return app.FileLevels{Dir: s.Assets.LevelsDir, Pattern: s.Assets.LevelPattern}
	}
	rng := utils.NewPRNGService(s.Level.Seed)
	log.Info("Процедурные уровни", zap.Int64("seed", rng.Seed()), zap.Int("count", s.Level.Count))
	return &app.GeneratedLevels{
		Config: gridmap.GenerateConfig{
			Rows:       s.Level.Rows,
			Cols:       s.Level.Cols,
			WallChance: s.Level.WallChance,
			WallGlyph:  s.Level.WallGlyph[0],
		},
		Count: s.Level.Count,
		Rng:   rng,
	}
}

func loadFonts() (state.Fonts, error) {
	label, err := ui.NewFace(12)
	if err != nil {
		return state.Fonts{}, err
	}
	value, err := ui.NewFace(22)
	if err != nil {
		return state.Fonts{}, err
	}
	title, err := ui.NewFace(40)
	if err != nil {
		return state.Fonts{}, err
	}
	return state.Fonts{Label: label, Value: value, Title: title}, nil
}
