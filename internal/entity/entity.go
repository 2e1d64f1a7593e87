// internal/entity/entity.go
package entity

import (
	"go-maze-shooter/internal/catalog"
	"go-maze-shooter/internal/component"
	"go-maze-shooter/internal/defs"
	"go-maze-shooter/internal/event"
	"go-maze-shooter/internal/interfaces"
	"go-maze-shooter/internal/types"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind - дискриминант варианта сущности.
type Kind int

const (
	KindProp Kind = iota
	KindDoor
	KindEnemy
	KindCollectible
	KindLight
	KindEndMarker
	KindStatusOverlay
)

func (k Kind) String() string {
	switch k {
	case KindProp:
		return "prop"
	case KindDoor:
		return "door"
	case KindEnemy:
		return "enemy"
	case KindCollectible:
		return "collectible"
	case KindLight:
		return "light"
	case KindEndMarker:
		return "end_marker"
	case KindStatusOverlay:
		return "status_overlay"
	}
	return "unknown"
}

// Entity - размещённый экземпляр шаблона. Шаблон общий и не меняется;
// всё изменяемое лежит в самой сущности. Поля Door, Light и Overlay заданы
// только у соответствующих видов.
type Entity struct {
	ID        types.EntityID
	Kind      Kind
	Template  *catalog.Template
	Transform component.Transform
	Health    int

	Door    *component.Door
	Light   *component.Light
	Overlay *component.StatusOverlay
}

// KindOf выбирает вид сущности по шаблону.
func KindOf(t *catalog.Template) Kind {
	switch t.Kind {
	case defs.TokenDoor:
		return KindDoor
	case defs.TokenEnemy:
		return KindEnemy
	case defs.TokenCollectible:
		return KindCollectible
	case defs.TokenEndLevel:
		return KindEndMarker
	}
	if t.LightSource {
		return KindLight
	}
	return KindProp
}

// New копирует шаблон в мировую позицию origin.
func New(id types.EntityID, t *catalog.Template, origin mgl32.Vec3) *Entity {
	e := &Entity{
		ID:       id,
		Kind:     KindOf(t),
		Template: t,
		Transform: component.Transform{
			Origin:      origin,
			Scale:       t.Scale,
			Orientation: t.Orientation,
		},
		Health: t.Health,
	}
	switch e.Kind {
	case KindDoor:
		e.Door = component.NewDoor(origin.Y())
	case KindLight:
		l := t.Light
		l.Position = origin
		e.Light = &l
	}
	return e
}

// NewStatusOverlay создаёт сущность HUD без шаблона и геометрии.
func NewStatusOverlay(id types.EntityID, faces int) *Entity {
	return &Entity{
		ID:      id,
		Kind:    KindStatusOverlay,
		Overlay: component.NewStatusOverlay(faces),
	}
}

// Solid сообщает, блокирует ли сущность движение и снаряды.
func (e *Entity) Solid() bool {
	return e.Template != nil && e.Template.Solid
}

// Transparent - рисуется ли сущность во втором, полупрозрачном проходе.
func (e *Entity) Transparent() bool {
	return e.Template != nil && e.Template.Transparent
}

// Drawable - есть ли у сущности геометрия.
func (e *Entity) Drawable() bool {
	return e.Template != nil && e.Template.Mesh != nil
}

// Interactable - откликается ли сущность на Interact.
func (e *Entity) Interactable() bool {
	return e.Kind == KindDoor || e.Kind == KindEndMarker
}

// Update - покадровое обновление. Для большинства видов ничего не делает.
func (e *Entity) Update(deltaTime float64, ctx interfaces.GameContext) {
	switch e.Kind {
	case KindDoor:
		if e.Door.Update(deltaTime) {
			ctx.Dispatch(event.Event{Type: event.DoorStateChanged, Data: event.Fields{
				"id": e.ID, "state": e.Door.State.String(),
			}})
		}
		e.Transform.Origin[1] = e.Door.Offset()
	case KindStatusOverlay:
		e.Overlay.Refresh(ctx.Player(), ctx.Level())
	}
}

// Interact - реакция на действие игрока. Возвращает true, если что-то произошло.
func (e *Entity) Interact(ctx interfaces.GameContext) bool {
	switch e.Kind {
	case KindDoor:
		if !e.Door.Interact() {
			return false
		}
		ctx.Dispatch(event.Event{Type: event.DoorStateChanged, Data: event.Fields{
			"id": e.ID, "state": e.Door.State.String(),
		}})
		return true
	case KindEndMarker:
		ctx.RequestNextLevel()
		return true
	}
	return false
}
