// Package catalog resolves model and token definitions into shared entity templates.
package catalog

import (
	"fmt"
	"sort"

	"go-maze-shooter/internal/assets"
	"go-maze-shooter/internal/component"
	"go-maze-shooter/internal/defs"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Template - общий, неизменяемый после загрузки шаблон сущности.
type Template struct {
	Name  string
	Token byte // 0 у шаблонов моделей без глифа
	Kind  defs.TokenType

	Mesh    *assets.Mesh
	Program assets.Program
	Texture assets.Texture
	Tint    mgl32.Vec3

	Scale       mgl32.Vec3
	Orientation mgl32.Vec3

	Transparent bool
	Solid       bool
	Sprite      bool

	CollectType defs.CollectType
	Value       int

	Radius float32
	Health int

	LightSource bool
	Light       component.Light
}

// Catalog - шаблоны по имени модели и по глифу карты.
type Catalog struct {
	byName  map[string]*Template
	byToken map[byte]*Template
}

// Load reads both registries, validates them and resolves every model through the cache.
// Any failure is fatal for the caller.
func Load(modelsPath, tokensPath string, cache *assets.Cache, log *zap.Logger) (*Catalog, error) {
	models, err := defs.LoadModels(modelsPath)
	if err != nil {
		return nil, err
	}
	tokens, err := defs.LoadTokens(tokensPath)
	if err != nil {
		return nil, err
	}
	if err := defs.Validate(models, tokens); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	c, err := Build(models, tokens, cache)
	if err != nil {
		return nil, err
	}

	s := c.Summary()
	log.Info("catalog loaded",
		zap.Int("models", len(c.byName)),
		zap.Int("tokens", len(c.byToken)),
		zap.Strings("collectibles", s.Collectibles),
		zap.Strings("lights", s.Lights),
		zap.Strings("enemies", s.Enemies),
		zap.Strings("doors", s.Doors),
		zap.Strings("end_markers", s.EndMarkers),
	)
	return c, nil
}

// Build resolves definitions that already passed defs.Validate.
func Build(models []defs.ModelDefinition, tokens []defs.TokenDefinition, cache *assets.Cache) (*Catalog, error) {
	c := &Catalog{
		byName:  make(map[string]*Template, len(models)),
		byToken: make(map[byte]*Template, len(tokens)),
	}

	for _, m := range models {
		t, err := buildModel(m, cache)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", m.Name, err)
		}
		c.byName[m.Name] = t
	}

	for _, td := range tokens {
		base, ok := c.byName[td.Model]
		if !ok {
			return nil, fmt.Errorf("token %q: unknown model %q", td.Token, td.Model)
		}
		t := *base
		t.Token = td.Token[0]
		t.Kind = td.Kind()
		if td.Scale != nil {
			t.Scale = mgl32.Vec3(*td.Scale)
		}
		if td.Transparent != nil {
			t.Transparent = *td.Transparent
		}
		if td.Solid != nil {
			t.Solid = *td.Solid
		}
		if td.Sprite != nil {
			t.Sprite = *td.Sprite
		}
		switch t.Kind {
		case defs.TokenCollectible:
			t.CollectType = td.CollectType
			t.Value = td.Value
		case defs.TokenEnemy:
			t.Radius = td.Radius
			t.Health = td.Health
		case defs.TokenDoor, defs.TokenEndLevel:
			t.Solid = td.Solid == nil || *td.Solid
		}
		if td.LightSource && td.Light != nil {
			t.LightSource = true
			t.Light = component.Light{
				Ambient:  mgl32.Vec3(td.Light.Ambient),
				Diffuse:  mgl32.Vec3(td.Light.Diffuse),
				Specular: mgl32.Vec3(td.Light.Specular),
			}
		}
		c.byToken[t.Token] = &t
	}
	return c, nil
}

func buildModel(m defs.ModelDefinition, cache *assets.Cache) (*Template, error) {
	mesh, err := cache.Mesh(m.Mesh)
	if err != nil {
		return nil, err
	}
	prog, err := cache.Program(m.Shader)
	if err != nil {
		return nil, err
	}
	tex, err := cache.Texture(m.Texture)
	if err != nil {
		return nil, err
	}

	t := &Template{
		Name:        m.Name,
		Kind:        defs.TokenProp,
		Mesh:        mesh,
		Program:     prog,
		Texture:     tex,
		Tint:        mgl32.Vec3{1, 1, 1},
		Scale:       mgl32.Vec3{1, 1, 1},
		Transparent: m.Transparent,
		Sprite:      m.Sprite,
	}
	if m.Tint != nil {
		t.Tint = mgl32.Vec3(*m.Tint)
	}
	if m.Scale != nil {
		t.Scale = mgl32.Vec3(*m.Scale)
	}
	if m.Orientation != nil {
		t.Orientation = mgl32.Vec3(*m.Orientation)
	}
	return t, nil
}

// ByName возвращает шаблон модели.
func (c *Catalog) ByName(name string) (*Template, bool) {
	t, ok := c.byName[name]
	return t, ok
}

// ByToken возвращает шаблон глифа карты.
func (c *Catalog) ByToken(glyph byte) (*Template, bool) {
	t, ok := c.byToken[glyph]
	return t, ok
}

// Require проверяет наличие обязательных шаблонов.
func (c *Catalog) Require(names []string, tokens []byte) error {
	for _, n := range names {
		if _, ok := c.byName[n]; !ok {
			return fmt.Errorf("catalog: required model %q is missing", n)
		}
	}
	for _, g := range tokens {
		if _, ok := c.byToken[g]; !ok {
			return fmt.Errorf("catalog: required token %q is missing", g)
		}
	}
	return nil
}

// Summary - глифы по игровым ролям, отсортированные.
type Summary struct {
	Collectibles []string
	Lights       []string
	Enemies      []string
	Doors        []string
	EndMarkers   []string
}

func (c *Catalog) Summary() Summary {
	var s Summary
	for g, t := range c.byToken {
		tok := string(g)
		switch t.Kind {
		case defs.TokenCollectible:
			s.Collectibles = append(s.Collectibles, tok)
		case defs.TokenEnemy:
			s.Enemies = append(s.Enemies, tok)
		case defs.TokenDoor:
			s.Doors = append(s.Doors, tok)
		case defs.TokenEndLevel:
			s.EndMarkers = append(s.EndMarkers, tok)
		}
		if t.LightSource {
			s.Lights = append(s.Lights, tok)
		}
	}
	for _, l := range [][]string{s.Collectibles, s.Lights, s.Enemies, s.Doors, s.EndMarkers} {
		sort.Strings(l)
	}
	return s
}
