// internal/interfaces/game_context.go
package interfaces

import (
	"go-maze-shooter/internal/component"
	"go-maze-shooter/internal/event"
)

// GameContext - то, что сущности могут трогать во время Update/Interact.
type GameContext interface {
	Player() *component.Player
	Level() int
	RequestNextLevel()
	Dispatch(e event.Event)
}
