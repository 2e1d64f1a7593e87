// internal/defs/types.go
package defs

// Vec3 - тройка чисел в JSON: [x, y, z].
type Vec3 [3]float32

// TokenType - игровая роль, назначаемая глифу карты.
type TokenType string

const (
	TokenProp        TokenType = "prop"
	TokenEnemy       TokenType = "enemy"
	TokenCollectible TokenType = "collectible"
	TokenDoor        TokenType = "door"
	TokenEndLevel    TokenType = "end_level"
)

// CollectType - эффект подбираемого предмета.
type CollectType string

const (
	CollectGold   CollectType = "gold"
	CollectHealth CollectType = "health"
	CollectAmmo   CollectType = "ammo"
	CollectLife   CollectType = "life"
	CollectWeapon CollectType = "weapon"
)

// Valid сообщает, известен ли тип.
func (c CollectType) Valid() bool {
	switch c {
	case CollectGold, CollectHealth, CollectAmmo, CollectLife, CollectWeapon:
		return true
	}
	return false
}

// LightDef - интенсивности источника света.
type LightDef struct {
	Ambient  Vec3 `json:"ambient"`
	Diffuse  Vec3 `json:"diffuse"`
	Specular Vec3 `json:"specular"`
}
