// pkg/gridmap/map.go
package gridmap

import "strings"

const (
	Empty      byte = '.'
	DoorGlyph  byte = 'd'
	StartGlyph byte = 'p'
	EndGlyph   byte = 'X'
)

// DefaultSolid - глифы стен по умолчанию.
const DefaultSolid = "BDESTUWXY"

// Cell - целочисленные координаты клетки: X - столбец, Y - строка.
type Cell struct {
	X, Y int
}

// GridMap - неизменяемая после загрузки сетка тайлов.
// Клетки рельефа (стены и двери) хранятся в tiles, остальные глифы уровня - в слое объектов.
type GridMap struct {
	Rows  int
	Cols  int
	Start Cell
	End   Cell

	tiles   [][]byte
	objects map[Cell]byte
	solid   [256]bool
}

func newGridMap(rows, cols int, solid string) *GridMap {
	m := &GridMap{
		Rows:    rows,
		Cols:    cols,
		tiles:   make([][]byte, rows),
		objects: make(map[Cell]byte),
	}
	for i := range m.tiles {
		m.tiles[i] = []byte(strings.Repeat(string(Empty), cols))
	}
	for i := 0; i < len(solid); i++ {
		m.solid[solid[i]] = true
	}
	return m
}

// IsTerrain сообщает, остаётся ли глиф в сетке тайлов при загрузке.
func (m *GridMap) IsTerrain(glyph byte) bool {
	return glyph == DoorGlyph || m.solid[glyph]
}

// IsSolid сообщает, является ли глиф стеной.
func (m *GridMap) IsSolid(glyph byte) bool {
	return m.solid[glyph]
}

// IsOutOfBounds - строгая проверка диапазона, без клампа.
func (m *GridMap) IsOutOfBounds(x, y int) bool {
	return x < 0 || y < 0 || x >= m.Cols || y >= m.Rows
}

// TileAt возвращает тайл, прижимая координаты к ближайшему краю.
func (m *GridMap) TileAt(x, y int) byte {
	return m.tiles[clamp(y, 0, m.Rows-1)][clamp(x, 0, m.Cols-1)]
}

// ObjectAt возвращает глиф объекта в клетке, если он есть.
func (m *GridMap) ObjectAt(c Cell) (byte, bool) {
	g, ok := m.objects[c]
	return g, ok
}

// Objects возвращает копию слоя объектов.
func (m *GridMap) Objects() map[Cell]byte {
	out := make(map[Cell]byte, len(m.objects))
	for c, g := range m.objects {
		out[c] = g
	}
	return out
}

// String печатает карту в формате файла уровня (без заголовка).
func (m *GridMap) String() string {
	var b strings.Builder
	for y := 0; y < m.Rows; y++ {
		for x := 0; x < m.Cols; x++ {
			c := Cell{x, y}
			switch g, ok := m.objects[c]; {
			case c == m.Start:
				b.WriteByte(StartGlyph)
			case ok:
				b.WriteByte(g)
			default:
				b.WriteByte(m.tiles[y][x])
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m *GridMap) set(c Cell, glyph byte) {
	if m.IsTerrain(glyph) {
		m.tiles[c.Y][c.X] = glyph
		return
	}
	m.tiles[c.Y][c.X] = Empty
	if glyph != Empty && glyph != ' ' {
		m.objects[c] = glyph
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
