// internal/config/settings.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go-maze-shooter/pkg/gridmap"

	"gopkg.in/yaml.v3"
)

// Settings - настраиваемые параметры игры, читаются из YAML.
type Settings struct {
	Window   WindowSettings   `yaml:"window"`
	Log      LogSettings      `yaml:"log"`
	Assets   AssetSettings    `yaml:"assets"`
	Level    LevelSettings    `yaml:"level"`
	Player   PlayerSettings   `yaml:"player"`
	Tracking TrackingSettings `yaml:"tracking"`
	Audio    AudioSettings    `yaml:"audio"`
}

type WindowSettings struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Title  string  `yaml:"title"`
	VSync  bool    `yaml:"vsync"`
	FOV    float32 `yaml:"fov"`
}

type LogSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console | json
}

type AssetSettings struct {
	Root         string `yaml:"root"`
	Models       string `yaml:"models"`
	Tokens       string `yaml:"tokens"`
	LevelsDir    string `yaml:"levels_dir"`
	LevelPattern string `yaml:"level_pattern"`
	CorpseToken  string `yaml:"corpse_token"`
}

type LevelSettings struct {
	Start      int    `yaml:"start"`
	Procedural bool   `yaml:"procedural"`
	Rows       int    `yaml:"rows"`
	Cols       int    `yaml:"cols"`
	WallChance int    `yaml:"wall_chance"` // 1 из N клеток - стена
	WallGlyph  string `yaml:"wall_glyph"`
	Seed       int64  `yaml:"seed"`
	Count      int    `yaml:"count"` // сколько уровней генерировать, 0 - бесконечно
}

type PlayerSettings struct {
	Health        int     `yaml:"health"`
	Gold          int     `yaml:"gold"`
	Ammo          int     `yaml:"ammo"`
	Lives         int     `yaml:"lives"`
	Radius        float32 `yaml:"radius"`
	CameraHeight  float32 `yaml:"camera_height"`
	PickupRadius  float32 `yaml:"pickup_radius"`
	InteractRange float32 `yaml:"interact_range"`
}

type TrackingSettings struct {
	Enabled          bool    `yaml:"enabled"`
	URL              string  `yaml:"url"`
	ExitOnDisconnect bool    `yaml:"exit_on_disconnect"`
	RotationSpeed    float32 `yaml:"rotation_speed"` // градусов в секунду
	RightThreshold   float32 `yaml:"right_threshold"`
	LeftThreshold    float32 `yaml:"left_threshold"`
}

type AudioSettings struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0..1
}

// Default возвращает настройки по умолчанию.
func Default() *Settings {
	return &Settings{
		Window: WindowSettings{Width: ScreenWidth, Height: ScreenHeight, Title: "Maze", VSync: true, FOV: 60},
		Log:    LogSettings{Level: "info", Format: "console"},
		Assets: AssetSettings{
			Root:         "assets",
			Models:       "assets/models.json",
			Tokens:       "assets/map_tokens.json",
			LevelsDir:    "assets/levels",
			LevelPattern: "level%02d.txt",
			CorpseToken:  "k",
		},
		Level: LevelSettings{Start: 1, Rows: 10, Cols: 25, WallChance: 16, WallGlyph: "S"},
		Player: PlayerSettings{
			Health: 25, Gold: 0, Ammo: 25, Lives: 3,
			Radius: 0.2, CameraHeight: 0.1, PickupRadius: 0.7, InteractRange: 1.2,
		},
		Tracking: TrackingSettings{
			Enabled:        false,
			URL:            "ws://127.0.0.1:8765/faces",
			RotationSpeed:  60,
			RightThreshold: 0.4,
			LeftThreshold:  0.6,
		},
		Audio: AudioSettings{Enabled: true, Volume: 0.3},
	}
}

// Load читает настройки из файла. Отсутствующий файл - не ошибка: возвращаются значения по умолчанию.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse накладывает YAML поверх значений по умолчанию и проверяет результат.
func Parse(r io.Reader) (*Settings, error) {
	s := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate проверяет согласованность значений.
func (s *Settings) Validate() error {
	var errs []error
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", s.Window.Width, s.Window.Height))
	}
	if s.Window.FOV < MinFOV || s.Window.FOV > MaxFOV {
		errs = append(errs, fmt.Errorf("window.fov must be within [%v, %v], got %v", MinFOV, MaxFOV, s.Window.FOV))
	}
	if s.Level.Start < 1 {
		errs = append(errs, fmt.Errorf("level.start must be >= 1, got %d", s.Level.Start))
	}
	if s.Level.Procedural {
		if s.Level.Rows < 3 || s.Level.Cols < 3 {
			errs = append(errs, fmt.Errorf("procedural level must be at least 3x3, got %dx%d", s.Level.Rows, s.Level.Cols))
		} else if (s.Level.Rows-2)*(s.Level.Cols-2) < 2 {
			errs = append(errs, fmt.Errorf("procedural level %dx%d has fewer than two interior cells", s.Level.Rows, s.Level.Cols))
		}
		// при 1 стеной становится каждая клетка
		if s.Level.WallChance < 2 {
			errs = append(errs, fmt.Errorf("level.wall_chance must be >= 2, got %d", s.Level.WallChance))
		}
		if len(s.Level.WallGlyph) != 1 {
			errs = append(errs, fmt.Errorf("level.wall_glyph must be a single character, got %q", s.Level.WallGlyph))
		} else if !strings.Contains(gridmap.DefaultSolid, s.Level.WallGlyph) {
			errs = append(errs, fmt.Errorf("level.wall_glyph %q is not a wall glyph (%s)", s.Level.WallGlyph, gridmap.DefaultSolid))
		}
	}
	if len(s.Assets.CorpseToken) != 1 {
		errs = append(errs, fmt.Errorf("assets.corpse_token must be a single character, got %q", s.Assets.CorpseToken))
	}
	if s.Player.Radius <= 0 || s.Player.PickupRadius <= 0 {
		errs = append(errs, errors.New("player.radius and player.pickup_radius must be positive"))
	}
	if s.Player.Health < 0 || s.Player.Health > MaxHealth {
		errs = append(errs, fmt.Errorf("player.health must be within [0, %d], got %d", MaxHealth, s.Player.Health))
	}
	if s.Tracking.RightThreshold >= s.Tracking.LeftThreshold {
		errs = append(errs, fmt.Errorf("tracking.right_threshold (%v) must be below tracking.left_threshold (%v)",
			s.Tracking.RightThreshold, s.Tracking.LeftThreshold))
	}
	if s.Audio.Volume < 0 || s.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be within [0, 1], got %v", s.Audio.Volume))
	}
	return errors.Join(errs...)
}

// CheckDirs убеждается, что обязательные каталоги существуют.
func (s *Settings) CheckDirs() error {
	for _, dir := range []string{s.Assets.Root, filepath.Dir(s.Assets.Models)} {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("required directory %q: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("required directory %q is not a directory", dir)
		}
	}
	if !s.Level.Procedural {
		if _, err := os.Stat(s.Assets.LevelsDir); err != nil {
			return fmt.Errorf("required directory %q: %w", s.Assets.LevelsDir, err)
		}
	}
	return nil
}
