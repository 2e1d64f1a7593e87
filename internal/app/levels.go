// internal/app/levels.go
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go-maze-shooter/internal/utils"
	"go-maze-shooter/pkg/gridmap"
)

// ErrNoMoreLevels - следующего уровня нет, забег пройден.
var ErrNoMoreLevels = errors.New("no more levels")

// LevelSource выдаёт карту уровня по номеру (с единицы).
type LevelSource interface {
	Level(index int) (*gridmap.GridMap, error)
}

// FileLevels читает уровни из файлов Dir/Pattern, например assets/levels/level01.txt.
type FileLevels struct {
	Dir     string
	Pattern string
	Solid   string
}

func (f FileLevels) Path(index int) string {
	return filepath.Join(f.Dir, fmt.Sprintf(f.Pattern, index))
}

func (f FileLevels) Level(index int) (*gridmap.GridMap, error) {
	path := f.Path(index)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("level %d (%s): %w", index, path, ErrNoMoreLevels)
	}
	var opts []gridmap.Option
	if f.Solid != "" {
		opts = append(opts, gridmap.WithSolid(f.Solid))
	}
	return gridmap.LoadFile(path, opts...)
}

// GeneratedLevels строит каждый уровень генератором. Count == 0 - без конца.
type GeneratedLevels struct {
	Config gridmap.GenerateConfig
	Count  int
	Rng    *utils.PRNGService
}

func (g *GeneratedLevels) Level(index int) (*gridmap.GridMap, error) {
	if g.Count > 0 && index > g.Count {
		return nil, fmt.Errorf("level %d of %d: %w", index, g.Count, ErrNoMoreLevels)
	}
	return gridmap.Generate(g.Config, g.Rng)
}
