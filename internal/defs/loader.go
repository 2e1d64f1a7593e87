// internal/defs/loader.go
package defs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

type modelRegistry struct {
	Models []ModelDefinition `json:"models"`
}

type tokenRegistry struct {
	Tokens []TokenDefinition `json:"tokens"`
}

// LoadModels reads the model registry document.
func LoadModels(path string) ([]ModelDefinition, error) {
	var doc modelRegistry
	if err := decodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("failed to load model definitions: %w", err)
	}
	return doc.Models, nil
}

// LoadTokens reads the map-token registry document.
func LoadTokens(path string) ([]TokenDefinition, error) {
	var doc tokenRegistry
	if err := decodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("failed to load token definitions: %w", err)
	}
	return doc.Tokens, nil
}

func decodeFile(path string, v any) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(file))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Validate checks required fields and cross references. All problems are reported at once.
func Validate(models []ModelDefinition, tokens []TokenDefinition) error {
	var errs []error

	names := make(map[string]struct{}, len(models))
	for i, m := range models {
		switch {
		case m.Name == "":
			errs = append(errs, fmt.Errorf("model #%d: missing name", i))
			continue
		case m.Mesh == "":
			errs = append(errs, fmt.Errorf("model %q: missing mesh", m.Name))
		case m.Shader == "":
			errs = append(errs, fmt.Errorf("model %q: missing shader", m.Name))
		}
		if _, dup := names[m.Name]; dup {
			errs = append(errs, fmt.Errorf("model %q: defined twice", m.Name))
		}
		names[m.Name] = struct{}{}
	}

	glyphs := make(map[string]struct{}, len(tokens))
	for i, t := range tokens {
		if len(t.Token) != 1 {
			errs = append(errs, fmt.Errorf("token #%d: token must be one character, got %q", i, t.Token))
			continue
		}
		if t.Token == "." || t.Token == "p" {
			errs = append(errs, fmt.Errorf("token %q: reserved glyph", t.Token))
		}
		if _, dup := glyphs[t.Token]; dup {
			errs = append(errs, fmt.Errorf("token %q: defined twice", t.Token))
		}
		glyphs[t.Token] = struct{}{}

		if t.Model == "" {
			errs = append(errs, fmt.Errorf("token %q: missing model", t.Token))
		} else if _, ok := names[t.Model]; !ok {
			errs = append(errs, fmt.Errorf("token %q: unknown model %q", t.Token, t.Model))
		}

		switch t.Kind() {
		case TokenCollectible:
			if !t.CollectType.Valid() {
				errs = append(errs, fmt.Errorf("token %q: unknown collect_type %q", t.Token, t.CollectType))
			}
		case TokenEnemy:
			if t.Radius <= 0 || t.Health <= 0 {
				errs = append(errs, fmt.Errorf("token %q: enemy needs positive radius and health", t.Token))
			}
		case TokenProp, TokenDoor, TokenEndLevel:
		default:
			errs = append(errs, fmt.Errorf("token %q: unknown type %q", t.Token, t.Type))
		}
		if t.Type != "" && (t.IsEnemy && t.Type != TokenEnemy || t.Collectible && t.Type != TokenCollectible) {
			errs = append(errs, fmt.Errorf("token %q: type %q conflicts with flags", t.Token, t.Type))
		}
		if t.LightSource && t.Light == nil {
			errs = append(errs, fmt.Errorf("token %q: light_source needs light intensities", t.Token))
		}
	}
	return errors.Join(errs...)
}
