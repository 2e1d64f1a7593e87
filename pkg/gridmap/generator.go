// pkg/gridmap/generator.go
package gridmap

import (
	"errors"
	"fmt"
)

// Rand - источник случайных чисел для генератора (utils.PRNGService, *rand.Rand).
type Rand interface {
	Intn(n int) int
}

// GenerateConfig - параметры процедурного уровня.
type GenerateConfig struct {
	Rows, Cols int
	WallChance int  // клетка становится стеной с вероятностью 1/WallChance, не меньше 2
	WallGlyph  byte // должен входить в Solid
	Solid      string
}

// Generate строит случайный уровень: равномерные стены, сплошная рамка,
// старт и финиш выбираются отбором внутри рамки.
func Generate(cfg GenerateConfig, rng Rand) (*GridMap, error) {
	if cfg.Rows < 3 || cfg.Cols < 3 {
		return nil, fmt.Errorf("generated level must be at least 3x3, got %dx%d", cfg.Rows, cfg.Cols)
	}
	if (cfg.Rows-2)*(cfg.Cols-2) < 2 {
		return nil, errors.New("generated level needs at least two interior cells")
	}
	if cfg.WallChance < 2 {
		return nil, fmt.Errorf("wall chance must be >= 2, got %d", cfg.WallChance)
	}
	if cfg.Solid == "" {
		cfg.Solid = DefaultSolid
	}

	m := newGridMap(cfg.Rows, cfg.Cols, cfg.Solid)
	if !m.IsSolid(cfg.WallGlyph) {
		return nil, fmt.Errorf("wall glyph %q is not in the solid set %q", cfg.WallGlyph, cfg.Solid)
	}

	free := 0
	for y := 0; y < m.Rows; y++ {
		for x := 0; x < m.Cols; x++ {
			border := x == 0 || y == 0 || x == m.Cols-1 || y == m.Rows-1
			if border || rng.Intn(cfg.WallChance) == 0 {
				m.tiles[y][x] = cfg.WallGlyph
			} else {
				free++
			}
		}
	}
	if free == 0 {
		return nil, errors.New("generated level has no free interior cell for the start")
	}

	interior := func() Cell {
		return Cell{X: 1 + rng.Intn(m.Cols-2), Y: 1 + rng.Intn(m.Rows-2)}
	}

	start := interior()
	for m.IsSolid(m.tiles[start.Y][start.X]) {
		start = interior()
	}
	end := interior()
	for end == start {
		end = interior()
	}

	m.Start = start
	m.End = end
	m.set(end, EndGlyph)
	return m, nil
}
