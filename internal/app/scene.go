// internal/app/scene.go
package app

import (
	"fmt"
	"sort"

	"go-maze-shooter/internal/catalog"
	"go-maze-shooter/internal/entity"
	"go-maze-shooter/pkg/gridmap"

	"github.com/go-gl/mathgl/mgl32"
)

// FloorModel - модель пола под каждой проходимой клеткой.
const FloorModel = "floor"

// floorDepth - пол лежит под нижней гранью стен единичного масштаба.
const floorDepth = -0.5

// CellCenter - мировой центр клетки на высоте y.
func CellCenter(c gridmap.Cell, y float32) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.X) + 0.5, y, float32(c.Y) + 0.5}
}

// MissingTokenError - глиф карты не описан в реестре токенов.
type MissingTokenError struct {
	Glyph byte
	Cell  gridmap.Cell
}

func (e *MissingTokenError) Error() string {
	return fmt.Sprintf("scene: glyph %q at (%d,%d) has no token", e.Glyph, e.Cell.X, e.Cell.Y)
}

// BuildScene размещает в мире пол, рельеф и объекты уровня.
// Любой глиф без токена - ошибка; такой уровень загружать нельзя.
func BuildScene(m *gridmap.GridMap, cat *catalog.Catalog, w *entity.World) error {
	floor, ok := cat.ByName(FloorModel)
	if !ok {
		return fmt.Errorf("scene: required model %q is missing", FloorModel)
	}

	for y := 0; y < m.Rows; y++ {
		for x := 0; x < m.Cols; x++ {
			c := gridmap.Cell{X: x, Y: y}
			tile := m.TileAt(x, y)
			if !m.IsSolid(tile) {
				w.Spawn(floor, CellCenter(c, floorDepth))
			}
			if tile == gridmap.Empty {
				continue
			}
			t, ok := cat.ByToken(tile)
			if !ok {
				return &MissingTokenError{Glyph: tile, Cell: c}
			}
			w.Spawn(t, CellCenter(c, 0))
		}
	}

	// объекты - в порядке строк и столбцов, чтобы ID были воспроизводимы
	objects := m.Objects()
	cells := make([]gridmap.Cell, 0, len(objects))
	for c := range objects {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	for _, c := range cells {
		glyph := objects[c]
		t, ok := cat.ByToken(glyph)
		if !ok {
			return &MissingTokenError{Glyph: glyph, Cell: c}
		}
		w.Spawn(t, CellCenter(c, 0))
	}
	return nil
}

// StartPosition - позиция камеры на старте уровня.
func StartPosition(m *gridmap.GridMap, height float32) mgl32.Vec3 {
	return CellCenter(m.Start, height)
}
