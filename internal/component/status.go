// internal/component/status.go
package component

// StatusSnapshot - видимое игроку состояние.
type StatusSnapshot struct {
	Health int
	Gold   int
	Ammo   int
	Lives  int
	Weapon Weapon
	Level  int
}

// StatusOverlay хранит последний показанный снимок. Version растёт при каждом изменении,
// по нему отрисовка понимает, что кэш картинки устарел.
type StatusOverlay struct {
	Current   StatusSnapshot
	Version   uint64
	FaceCount int

	primed bool
}

// NewStatusOverlay создаёт оверлей с заданным числом лиц.
func NewStatusOverlay(faces int) *StatusOverlay {
	return &StatusOverlay{FaceCount: faces}
}

// Refresh сравнивает состояние игрока с показанным и обновляет снимок только при изменении.
func (s *StatusOverlay) Refresh(p *Player, level int) bool {
	next := StatusSnapshot{
		Health: p.Health,
		Gold:   p.Gold,
		Ammo:   p.Ammo,
		Lives:  p.Lives,
		Weapon: p.CurrentWeapon(),
		Level:  level,
	}
	if s.primed && next == s.Current {
		return false
	}
	s.primed = true
	s.Current = next
	s.Version++
	return true
}

// Face - индекс лица для текущего здоровья.
func (s *StatusOverlay) Face() int {
	return FaceIndex(s.Current.Health, s.FaceCount)
}

// FaceIndex = (faces-1)*health/100, с клампом в [0, faces-1].
func FaceIndex(health, faces int) int {
	if faces <= 0 {
		return 0
	}
	idx := (faces - 1) * health / 100
	return max(0, min(idx, faces-1))
}
