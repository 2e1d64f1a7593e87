// internal/defs/models.go
package defs

// ModelDefinition - запись реестра моделей: геометрия, программа и материал.
type ModelDefinition struct {
	Name        string `json:"name"`
	Mesh        string `json:"mesh"`
	Shader      string `json:"shader"`
	Texture     string `json:"texture,omitempty"`
	Tint        *Vec3  `json:"tint,omitempty"`
	Scale       *Vec3  `json:"scale,omitempty"`
	Orientation *Vec3  `json:"orientation,omitempty"` // градусы по X, Y, Z
	Transparent bool   `json:"transparent,omitempty"`
	Sprite      bool   `json:"sprite,omitempty"`
}

// TokenDefinition связывает глиф карты с моделью и переопределяет игровые флаги.
// Поля-указатели применяются, только если заданы.
type TokenDefinition struct {
	Token string    `json:"token"`
	Model string    `json:"model"`
	Type  TokenType `json:"type,omitempty"`

	Scale       *Vec3 `json:"scale,omitempty"`
	Transparent *bool `json:"transparent,omitempty"`
	Solid       *bool `json:"solid,omitempty"`
	Sprite      *bool `json:"sprite,omitempty"`

	Collectible bool        `json:"collectible,omitempty"`
	CollectType CollectType `json:"collect_type,omitempty"`
	Value       int         `json:"value,omitempty"`

	IsEnemy bool    `json:"isEnemy,omitempty"`
	Radius  float32 `json:"radius,omitempty"`
	Health  int     `json:"health,omitempty"`

	LightSource bool      `json:"light_source,omitempty"`
	Light       *LightDef `json:"light,omitempty"`
}

// Kind возвращает роль глифа: явный type, иначе по флагам.
func (t TokenDefinition) Kind() TokenType {
	switch {
	case t.Type != "":
		return t.Type
	case t.IsEnemy:
		return TokenEnemy
	case t.Collectible:
		return TokenCollectible
	}
	return TokenProp
}
