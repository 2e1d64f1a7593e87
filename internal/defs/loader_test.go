package defs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadModels(t *testing.T) {
	path := writeFile(t, "models.json", `{"models": [
		{"name": "stone_wall", "mesh": "cube.obj", "shader": "lit.kage", "tint": [0.5, 0.5, 0.5]},
		{"name": "gold", "mesh": "quad.obj", "shader": "unlit.kage", "transparent": true, "sprite": true}
	]}`)

	models, err := LoadModels(path)
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "stone_wall", models[0].Name)
	require.NotNil(t, models[0].Tint)
	assert.Equal(t, Vec3{0.5, 0.5, 0.5}, *models[0].Tint)
	assert.True(t, models[1].Sprite)

	t.Run("unknown field", func(t *testing.T) {
		_, err := LoadModels(writeFile(t, "m.json", `{"models": [{"name": "a", "mesh": "b", "shader": "c", "colour": 1}]}`))
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadModels(filepath.Join(t.TempDir(), "none.json"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoadTokens(t *testing.T) {
	path := writeFile(t, "tokens.json", `{"tokens": [
		{"token": "S", "model": "stone_wall", "solid": true},
		{"token": "e", "model": "guard", "isEnemy": true, "radius": 0.4, "health": 30},
		{"token": "h", "model": "medkit", "type": "collectible", "collect_type": "health", "value": 25}
	]}`)

	tokens, err := LoadTokens(path)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	require.NotNil(t, tokens[0].Solid)
	assert.True(t, *tokens[0].Solid)
	assert.Equal(t, TokenProp, tokens[0].Kind())
	assert.Equal(t, TokenEnemy, tokens[1].Kind())
	assert.Equal(t, TokenCollectible, tokens[2].Kind())
}

func TestValidate(t *testing.T) {
	models := []ModelDefinition{
		{Name: "wall", Mesh: "cube.obj", Shader: "lit.kage"},
		{Name: "guard", Mesh: "quad.obj", Shader: "unlit.kage"},
	}

	t.Run("valid", func(t *testing.T) {
		tokens := []TokenDefinition{
			{Token: "S", Model: "wall"},
			{Token: "e", Model: "guard", IsEnemy: true, Radius: 0.4, Health: 10},
			{Token: "X", Model: "wall", Type: TokenEndLevel},
		}
		require.NoError(t, Validate(models, tokens))
	})

	tests := []struct {
		name   string
		models []ModelDefinition
		tokens []TokenDefinition
		want   string
	}{
		{"model without mesh", []ModelDefinition{{Name: "a", Shader: "s"}}, nil, "missing mesh"},
		{"duplicate model", append(models, models[0]), nil, "defined twice"},
		{"unknown model", models, []TokenDefinition{{Token: "S", Model: "brick"}}, "unknown model"},
		{"long token", models, []TokenDefinition{{Token: "SS", Model: "wall"}}, "one character"},
		{"reserved token", models, []TokenDefinition{{Token: "p", Model: "wall"}}, "reserved"},
		{"bad collect type", models, []TokenDefinition{{Token: "g", Model: "wall", Collectible: true, CollectType: "gems"}}, "collect_type"},
		{"enemy without health", models, []TokenDefinition{{Token: "e", Model: "guard", Type: TokenEnemy, Radius: 1}}, "positive radius"},
		{"light without intensities", models, []TokenDefinition{{Token: "L", Model: "wall", LightSource: true}}, "light intensities"},
		{"type conflicts", models, []TokenDefinition{{Token: "e", Model: "guard", Type: TokenDoor, IsEnemy: true}}, "conflicts"},
		{"unknown type", models, []TokenDefinition{{Token: "z", Model: "wall", Type: "vehicle"}}, "unknown type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.models, tt.tokens)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
