package gridmap

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallLevel = `5 5
SSSSS
Sp.gS
S.S.S
Sd.XS
SSSSS
`

func TestLoad(t *testing.T) {
	m, err := Load(strings.NewReader(smallLevel))
	require.NoError(t, err)

	assert.Equal(t, 5, m.Rows)
	assert.Equal(t, 5, m.Cols)
	assert.Equal(t, Cell{1, 1}, m.Start)
	assert.Equal(t, Cell{3, 3}, m.End)
	assert.Equal(t, Empty, m.TileAt(1, 1), "start is consumed")
	assert.Equal(t, byte('S'), m.TileAt(2, 2))
	assert.Equal(t, DoorGlyph, m.TileAt(1, 3))
	assert.Equal(t, EndGlyph, m.TileAt(3, 3))

	// 'g' не рельеф: тайл пустой, глиф уходит в слой объектов
	assert.Equal(t, Empty, m.TileAt(3, 1))
	g, ok := m.ObjectAt(Cell{3, 1})
	require.True(t, ok)
	assert.Equal(t, byte('g'), g)

	t.Run("round trip through String", func(t *testing.T) {
		again, err := Load(strings.NewReader("5 5\n" + m.String()))
		require.NoError(t, err)
		assert.Equal(t, m.String(), again.String())
		assert.Equal(t, m.Start, again.Start)
		assert.Equal(t, m.End, again.End)
	})
}

func TestLoadFormatErrors(t *testing.T) {
	tests := []struct {
		name  string
		level string
		row   int
		want  string
	}{
		{"missing header", "", 0, "header"},
		{"bad header", "5\nSSSSS\n", 0, "rows cols"},
		{"too many rows", "2 3\nSpS\nSXS\nSSS\n", 3, "too many rows"},
		{"wrong width", "3 3\nSSS\nSpXS\nSSS\n", 2, "has 4 columns"},
		{"too few rows", "3 3\nSpS\nSXS\n", 3, "too few rows"},
		{"no start", "3 3\nSSS\nSXS\nSSS\n", 0, "no start"},
		{"no end", "3 3\nSSS\nSpS\nSSS\n", 0, "no end"},
		{"duplicate start", "3 4\nSSSS\nSppX\nSSSS\n", 2, "duplicate start"},
		{"blank middle row", "3 3\nSpS\n\nSXS\n", 2, "has 0 columns"},
		{"short row after blank", "4 3\nSSS\n\nSpX\nSS\n", 2, "has 0 columns"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.level))
			require.Error(t, err)
			var fe *FormatError
			require.True(t, errors.As(err, &fe), "want FormatError, got %v", err)
			assert.Equal(t, tt.row, fe.Row)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadBlankLinesOutsideBody(t *testing.T) {
	m, err := Load(strings.NewReader("\r\n3 3\r\nSSS\r\nSpS\r\nSXS\r\n\r\n\n"))
	require.NoError(t, err)
	assert.Equal(t, Cell{1, 1}, m.Start)
	assert.Equal(t, Cell{1, 2}, m.End)
}

func TestLoadSpaceRowIsEmpty(t *testing.T) {
	m, err := Load(strings.NewReader("4 3\nSpS\n   \nSXS\nSSS\n"))
	require.NoError(t, err)
	for x := 0; x < 3; x++ {
		assert.Equal(t, Empty, m.TileAt(x, 1))
	}
	assert.Empty(t, m.Objects())
}

func TestWithSolid(t *testing.T) {
	m, err := Load(strings.NewReader("3 3\n###\n#pX\n###\n"), WithSolid("#X"))
	require.NoError(t, err)
	assert.True(t, m.IsSolid('#'))
	assert.False(t, m.IsSolid('S'))
	assert.Equal(t, byte('#'), m.TileAt(0, 0))
}

func TestTileAtClamps(t *testing.T) {
	m, err := Load(strings.NewReader(smallLevel))
	require.NoError(t, err)

	assert.Equal(t, m.TileAt(0, 0), m.TileAt(-5, -5))
	assert.Equal(t, m.TileAt(4, 4), m.TileAt(99, 99))
	assert.Equal(t, m.TileAt(1, 4), m.TileAt(1, 10))

	assert.True(t, m.IsOutOfBounds(-1, 0))
	assert.True(t, m.IsOutOfBounds(0, 5))
	assert.True(t, m.IsOutOfBounds(5, 0))
	assert.False(t, m.IsOutOfBounds(4, 4))
}

func TestGenerate(t *testing.T) {
	cfg := GenerateConfig{Rows: 10, Cols: 25, WallChance: 16, WallGlyph: 'S'}

	for seed := int64(1); seed <= 50; seed++ {
		m, err := Generate(cfg, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		for x := 0; x < m.Cols; x++ {
			assert.True(t, m.IsSolid(m.TileAt(x, 0)))
			assert.True(t, m.IsSolid(m.TileAt(x, m.Rows-1)))
		}
		for y := 0; y < m.Rows; y++ {
			assert.True(t, m.IsSolid(m.TileAt(0, y)))
			assert.True(t, m.IsSolid(m.TileAt(m.Cols-1, y)))
		}

		assert.NotEqual(t, m.Start, m.End)
		assert.False(t, m.IsOutOfBounds(m.Start.X, m.Start.Y))
		assert.False(t, m.IsOutOfBounds(m.End.X, m.End.Y))
		assert.False(t, m.IsSolid(m.TileAt(m.Start.X, m.Start.Y)), "start must not be a wall")
		assert.Equal(t, EndGlyph, m.TileAt(m.End.X, m.End.Y))
	}

	t.Run("deterministic for a seed", func(t *testing.T) {
		a, err := Generate(cfg, rand.New(rand.NewSource(7)))
		require.NoError(t, err)
		b, err := Generate(cfg, rand.New(rand.NewSource(7)))
		require.NoError(t, err)
		assert.Equal(t, a.String(), b.String())
	})

	t.Run("rejects bad config", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		_, err := Generate(GenerateConfig{Rows: 3, Cols: 3, WallChance: 4, WallGlyph: 'S'}, rng)
		require.Error(t, err)
		_, err = Generate(GenerateConfig{Rows: 5, Cols: 5, WallChance: 0, WallGlyph: 'S'}, rng)
		require.Error(t, err)
		_, err = Generate(GenerateConfig{Rows: 5, Cols: 5, WallChance: 1, WallGlyph: 'S'}, rng)
		require.Error(t, err)
		_, err = Generate(GenerateConfig{Rows: 5, Cols: 5, WallChance: 4, WallGlyph: '#'}, rng)
		require.Error(t, err)
	})

	t.Run("generated map loads back", func(t *testing.T) {
		m, err := Generate(cfg, rand.New(rand.NewSource(3)))
		require.NoError(t, err)
		again, err := Load(strings.NewReader("10 25\n" + m.String()))
		require.NoError(t, err)
		assert.Equal(t, m.Start, again.Start)
		assert.Equal(t, m.End, again.End)
	})
}
